package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/contoroinc/depthai-ros/device"
	"github.com/contoroinc/depthai-ros/errors"
	"github.com/contoroinc/depthai-ros/flowgraph"
	"github.com/contoroinc/depthai-ros/health"
	"github.com/contoroinc/depthai-ros/metric"
	"github.com/contoroinc/depthai-ros/nnmode"
	"github.com/contoroinc/depthai-ros/node"
)

// Graph is the result of one successful build. It owns every node.
type Graph struct {
	ID      uuid.UUID
	Variant string
	NNType  string
	Nodes   []node.Node
	Links   []node.LinkDirective
	Flow    *flowgraph.FlowAnalysisResult

	pl *device.Pipeline
}

// Assemble builds the variant registered under variantName and validates the
// wiring. On failure nothing the variant created remains in pl.
func Assemble(ctx context.Context, registry *Registry, variantName string, host *node.Host,
	dev device.Device, pl *device.Pipeline, nnType string) (*Graph, error) {
	if registry == nil {
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: nil registry", errors.ErrMissingConfig),
			"Pipeline", "Assemble", "registry check")
	}
	if pl == nil {
		return nil, errors.WrapFatal(
			fmt.Errorf("%w: nil pipeline", errors.ErrMissingConfig),
			"Pipeline", "Assemble", "pipeline check")
	}

	variant, err := registry.Create(variantName)
	if err != nil {
		return nil, errors.Wrap(err, "Pipeline", "Assemble", "variant lookup")
	}

	id := uuid.New()
	name := variant.Name()
	info, _ := registry.Lookup(variantName)
	metrics := host.CoreMetrics()
	monitor := host.HealthMonitor()
	logger := host.GetLogger().With(
		"variant", name,
		"nn_type", nnType,
		"build_id", id.String())

	logger.Info("Building pipeline")
	start := time.Now()

	nodes, err := variant.CreatePipeline(ctx, host, dev, pl, nnType)
	if err != nil {
		metrics.RecordBuildDuration(name, time.Since(start))
		metrics.RecordBuild(name, resultLabel(err))
		monitor.Update(name, health.FromBuildError(name, err))
		logger.Error("Pipeline build failed", "error", err)
		return nil, errors.Wrap(err, "Pipeline", "Assemble", "variant build")
	}

	g := &Graph{
		ID:      id,
		Variant: name,
		NNType:  nnType,
		Nodes:   nodes,
		pl:      pl,
	}
	for _, n := range nodes {
		g.Links = append(g.Links, n.Links()...)
	}

	if err := g.validate(); err != nil {
		err = errors.Join(err, g.release()...)
		metrics.RecordBuildDuration(name, time.Since(start))
		metrics.RecordBuild(name, resultLabel(err))
		monitor.Update(name, health.FromBuildError(name, err))
		logger.Error("Pipeline validation failed", "error", err)
		return nil, errors.Wrap(err, "Pipeline", "Assemble", "graph validation")
	}

	duration := time.Since(start)
	metrics.RecordBuildDuration(name, duration)
	metrics.RecordBuild(name, metric.ResultOK)
	for _, n := range nodes {
		metrics.RecordNodeCreated(name, string(n.Meta().Kind))
	}
	metrics.RecordLinks(name, len(g.Links))
	monitor.Update(name, g.buildHealth(info.UsesNN, duration))

	logger.Info("Built pipeline",
		"nodes", len(nodes),
		"links", len(g.Links),
		"status", g.Flow.ValidationStatus,
		"duration", duration)

	return g, nil
}

// validate checks each node appears once and every required input is linked
func (g *Graph) validate() error {
	seen := make(map[node.Node]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n == nil {
			return errors.WrapFatal(
				fmt.Errorf("%w: nil node in result", errors.ErrNodeNotFound),
				"Graph", "validate", "node check")
		}
		if seen[n] {
			return errors.WrapFatal(
				fmt.Errorf("%w: %s", errors.ErrDuplicateNode, n.Meta().Name),
				"Graph", "validate", "duplicate check")
		}
		seen[n] = true
	}

	flow, err := flowgraph.Build(g.Nodes)
	if err != nil {
		return err
	}
	if err := flow.Validate(); err != nil {
		return err
	}
	g.Flow = flow.AnalyzeConnectivity()
	return nil
}

// buildHealth derives the build status. A requested network the topology could not
// wire degrades the build.
func (g *Graph) buildHealth(usesNN bool, duration time.Duration) health.Status {
	var issues []string
	if usesNN {
		mode, err := nnmode.Resolve(g.NNType)
		if err == nil && mode != nnmode.None && !g.hasNN() {
			issues = append(issues, fmt.Sprintf("nn type %s not wired by %s", mode, g.Variant))
		}
	}

	info := &health.BuildInfo{
		BuildID:  g.ID.String(),
		Nodes:    len(g.Nodes),
		Links:    len(g.Links),
		Duration: duration,
		Issues:   issues,
	}
	if len(issues) > 0 {
		return health.NewDegraded(g.Variant, "Pipeline built with warnings").WithBuild(info)
	}
	return health.NewHealthy(g.Variant, "Pipeline built").WithBuild(info)
}

func (g *Graph) hasNN() bool {
	for _, n := range g.Nodes {
		if kind := n.Meta().Kind; kind == node.KindNN || kind == node.KindSpatialNN {
			return true
		}
	}
	return false
}

// Release closes every node in reverse order. It returns the close failures joined.
func (g *Graph) Release() error {
	return errors.Join(nil, g.release()...)
}

func (g *Graph) release() []error {
	if g == nil {
		return nil
	}
	return releaseAll(g.Nodes)
}

// Find returns the node with the given name
func (g *Graph) Find(name string) (node.Node, bool) {
	for _, n := range g.Nodes {
		if n.Meta().Name == name {
			return n, true
		}
	}
	return nil, false
}

func resultLabel(err error) string {
	if errors.Classify(err) == errors.ErrorInvalid {
		return metric.ResultInvalid
	}
	return metric.ResultFatal
}
