package pipeline_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contoroinc/depthai-ros/device"
	"github.com/contoroinc/depthai-ros/errors"
	"github.com/contoroinc/depthai-ros/flowgraph"
	"github.com/contoroinc/depthai-ros/health"
	"github.com/contoroinc/depthai-ros/metric"
	"github.com/contoroinc/depthai-ros/node"
	"github.com/contoroinc/depthai-ros/pipeline"
	"github.com/contoroinc/depthai-ros/pipelineregistry"
	"github.com/contoroinc/depthai-ros/testutil"
)

func newRegistry(t *testing.T) *pipeline.Registry {
	t.Helper()
	registry := pipeline.NewRegistry()
	require.NoError(t, pipelineregistry.Register(registry))
	return registry
}

func newHost() (*node.Host, *testutil.RecordingHandler, *metric.MetricsRegistry) {
	logs := testutil.NewRecordingHandler()
	metrics := metric.NewMetricsRegistry()
	return &node.Host{Logger: slog.New(logs), Metrics: metrics}, logs, metrics
}

func TestAssemble(t *testing.T) {
	host, logs, metrics := newHost()
	pl := device.NewPipeline()
	dev := device.NewStaticDevice("oak-d", device.OAKDProfile()...)

	g, err := pipeline.Assemble(context.Background(), newRegistry(t), "rgbd", host, dev, pl, "spatial")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, g.ID)
	assert.Equal(t, "RGBD", g.Variant)
	assert.Equal(t, "spatial", g.NNType)
	assert.Equal(t, []string{"nn", "rgb", "stereo"}, testutil.Names(g.Nodes))
	require.Len(t, g.Links, 2)
	assert.Equal(t, "rgb.preview -> nn.input", g.Links[0].String())
	assert.Equal(t, "stereo.depth -> nn.input_depth", g.Links[1].String())

	require.NotNil(t, g.Flow)
	assert.Equal(t, flowgraph.StatusHealthy, g.Flow.ValidationStatus)
	assert.Empty(t, g.Flow.DisconnectedNodes)

	core := metrics.CoreMetrics()
	assert.Equal(t, 1.0, promtest.ToFloat64(core.BuildsTotal.WithLabelValues("RGBD", metric.ResultOK)))
	assert.Equal(t, 1.0, promtest.ToFloat64(core.NodesCreated.WithLabelValues("RGBD", "spatial_nn")))
	assert.Equal(t, 1.0, promtest.ToFloat64(core.NodesCreated.WithLabelValues("RGBD", "sensor")))
	assert.Equal(t, 1.0, promtest.ToFloat64(core.NodesCreated.WithLabelValues("RGBD", "stereo")))
	assert.Equal(t, 2.0, promtest.ToFloat64(core.LinksTotal.WithLabelValues("RGBD")))
	assert.Equal(t, 1, promtest.CollectAndCount(core.BuildDuration))

	var finished *testutil.Record
	for _, r := range logs.Records() {
		if r.Message == "Built pipeline" {
			finished = &r
		}
	}
	require.NotNil(t, finished)
	assert.Equal(t, g.ID.String(), finished.Attrs["build_id"])
	assert.Equal(t, "RGBD", finished.Attrs["variant"])
	assert.EqualValues(t, 3, finished.Attrs["nodes"])
	assert.EqualValues(t, 2, finished.Attrs["links"])
}

func TestAssemble_UniqueBuildIDs(t *testing.T) {
	registry := newRegistry(t)
	dev := device.NewStaticDevice("oak-d", device.OAKDProfile()...)

	a, err := pipeline.Assemble(context.Background(), registry, "Depth", nil, dev, device.NewPipeline(), "")
	require.NoError(t, err)
	b, err := pipeline.Assemble(context.Background(), registry, "Depth", nil, dev, device.NewPipeline(), "")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestAssemble_DisconnectedSensorsWarn(t *testing.T) {
	g, err := pipeline.Assemble(context.Background(), newRegistry(t), "Stereo", nil,
		device.NewStaticDevice("oak-d", device.OAKDProfile()...), device.NewPipeline(), "")
	require.NoError(t, err)

	assert.Equal(t, flowgraph.StatusWarnings, g.Flow.ValidationStatus)
	assert.Len(t, g.Flow.DisconnectedNodes, 2)
}

func TestAssemble_UnknownVariant(t *testing.T) {
	host, _, metrics := newHost()
	pl := device.NewPipeline()

	g, err := pipeline.Assemble(context.Background(), newRegistry(t), "Mono", host,
		device.NewStaticDevice("oak-d", device.OAKDProfile()...), pl, "")
	require.Error(t, err)
	assert.Nil(t, g)
	assert.ErrorIs(t, err, errors.ErrUnknownVariant)
	assert.True(t, errors.IsInvalid(err))
	assert.Zero(t, pl.Len())
	assert.Zero(t, promtest.CollectAndCount(metrics.CoreMetrics().BuildsTotal))
}

func TestAssemble_BuildFailure(t *testing.T) {
	host, logs, metrics := newHost()
	pl := device.NewPipeline()
	dev := testutil.NewMockDevice(device.OAKDProfile()...)

	_, err := pipeline.Assemble(context.Background(), newRegistry(t), "Rae", host, dev, pl, "spatial")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSocketNotConnected)
	assert.True(t, errors.IsFatal(err))
	assert.Zero(t, pl.Len())
	assert.Empty(t, pl.Connections())

	assert.Equal(t, 1.0, promtest.ToFloat64(
		metrics.CoreMetrics().BuildsTotal.WithLabelValues("Rae", metric.ResultFatal)))
	assert.Equal(t, 1, logs.Count(slog.LevelError))
}

func TestAssemble_InvalidNNType(t *testing.T) {
	host, _, metrics := newHost()

	_, err := pipeline.Assemble(context.Background(), newRegistry(t), "RGB", host,
		device.NewStaticDevice("oak-d", device.OAKDProfile()...), device.NewPipeline(), "foo")
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
	assert.Equal(t, 1.0, promtest.ToFloat64(
		metrics.CoreMetrics().BuildsTotal.WithLabelValues("RGB", metric.ResultInvalid)))
}

func TestAssemble_NilArguments(t *testing.T) {
	dev := device.NewStaticDevice("oak-d", device.OAKDProfile()...)

	_, err := pipeline.Assemble(context.Background(), nil, "RGB", nil, dev, device.NewPipeline(), "")
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))

	_, err = pipeline.Assemble(context.Background(), newRegistry(t), "RGB", nil, dev, nil, "")
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

// duplicateVariant returns its only sensor twice.
type duplicateVariant struct{}

func (duplicateVariant) Name() string { return "Duplicate" }

func (duplicateVariant) CreatePipeline(ctx context.Context, host *node.Host, dev device.Device,
	pl *device.Pipeline, _ string) ([]node.Node, error) {
	s, err := node.NewSensor(ctx, "rgb", host, pl, dev, device.CamA)
	if err != nil {
		return nil, err
	}
	return []node.Node{s, s}, nil
}

// unwiredVariant creates a network and never feeds it.
type unwiredVariant struct{}

func (unwiredVariant) Name() string { return "Unwired" }

func (unwiredVariant) CreatePipeline(ctx context.Context, host *node.Host, dev device.Device,
	pl *device.Pipeline, _ string) ([]node.Node, error) {
	nn, err := node.NewNN("nn", host, pl)
	if err != nil {
		return nil, err
	}
	s, err := node.NewSensor(ctx, "rgb", host, pl, dev, device.CamA)
	if err != nil {
		return nil, err
	}
	return []node.Node{nn, s}, nil
}

func TestAssemble_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		variant pipeline.Variant
		wantErr error
	}{
		{"duplicate node", duplicateVariant{}, errors.ErrDuplicateNode},
		{"unlinked network", unwiredVariant{}, errors.ErrIncompleteWiring},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := pipeline.NewRegistry()
			require.NoError(t, registry.RegisterWithConfig(pipeline.RegistrationConfig{
				Name:    tt.variant.Name(),
				Factory: func() pipeline.Variant { return tt.variant },
			}))
			host, _, metrics := newHost()
			pl := device.NewPipeline()

			g, err := pipeline.Assemble(context.Background(), registry, tt.variant.Name(), host,
				device.NewStaticDevice("oak-d", device.OAKDProfile()...), pl, "")
			require.Error(t, err)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, errors.IsFatal(err))
			assert.Zero(t, pl.Len(), "rejected graph is released")
			assert.Equal(t, 1.0, promtest.ToFloat64(
				metrics.CoreMetrics().BuildsTotal.WithLabelValues(tt.variant.Name(), metric.ResultFatal)))
		})
	}
}

func TestGraph_Release(t *testing.T) {
	pl := device.NewPipeline()
	g, err := pipeline.Assemble(context.Background(), newRegistry(t), "Rae", nil,
		device.NewStaticDevice("rae", device.RaeProfile()...), pl, "spatial")
	require.NoError(t, err)
	require.Equal(t, 3, pl.Len())
	require.Len(t, pl.Connections(), 2)

	require.NoError(t, g.Release())
	assert.Zero(t, pl.Len())
	assert.Empty(t, pl.Connections())

	// Releasing again is a no-op
	require.NoError(t, g.Release())
}

func TestGraph_Find(t *testing.T) {
	g, err := pipeline.Assemble(context.Background(), newRegistry(t), "RGBStereo", nil,
		device.NewStaticDevice("oak-d", device.OAKDProfile()...), device.NewPipeline(), "rgb")
	require.NoError(t, err)

	left, ok := g.Find("left")
	require.True(t, ok)
	assert.Equal(t, []device.CameraSocket{device.CamB}, left.Meta().Sockets)

	_, ok = g.Find("stereo")
	assert.False(t, ok)
}

func TestGraph_Summary(t *testing.T) {
	pl := device.NewPipeline()
	g, err := pipeline.Assemble(context.Background(), newRegistry(t), "RGBD", nil,
		device.NewStaticDevice("oak-d", device.OAKDProfile()...), pl, "rgb")
	require.NoError(t, err)

	s := g.Summary()
	assert.Equal(t, g.ID.String(), s.ID)
	assert.Equal(t, "RGBD", s.Variant)
	assert.Equal(t, "rgb", s.NNType)
	assert.Equal(t, flowgraph.StatusWarnings, s.Status)
	require.Len(t, s.Nodes, 3)
	assert.Equal(t, node.KindNN, s.Nodes[0].Kind)
	assert.Equal(t, "IMX378", s.Nodes[1].Properties["sensor"])
	assert.Len(t, s.Nodes[2].Outputs, 4)
	assert.Equal(t, pl.Connections(), s.Connections)
	assert.Len(t, s.Links, 1)
}

func TestAssemble_HealthTracking(t *testing.T) {
	monitor := health.NewMonitor()
	host := &node.Host{Health: monitor}
	registry := newRegistry(t)
	oakD := device.NewStaticDevice("oak-d", device.OAKDProfile()...)

	g, err := pipeline.Assemble(context.Background(), registry, "RGBD", host, oakD, device.NewPipeline(), "spatial")
	require.NoError(t, err)
	status, ok := monitor.Get("RGBD")
	require.True(t, ok)
	assert.True(t, status.IsHealthy())
	require.NotNil(t, status.Build)
	assert.Equal(t, g.ID.String(), status.Build.BuildID)
	assert.Equal(t, 3, status.Build.Nodes)
	assert.Equal(t, 2, status.Build.Links)

	_, err = pipeline.Assemble(context.Background(), registry, "RGB", host, oakD, device.NewPipeline(), "spatial")
	require.NoError(t, err)
	status, ok = monitor.Get("RGB")
	require.True(t, ok)
	assert.True(t, status.IsDegraded())
	require.Len(t, status.Build.Issues, 1)
	assert.Contains(t, status.Build.Issues[0], "spatial")

	_, err = pipeline.Assemble(context.Background(), registry, "Depth", host, oakD, device.NewPipeline(), "spatial")
	require.NoError(t, err)
	status, _ = monitor.Get("Depth")
	assert.True(t, status.IsHealthy(), "variants without a network ignore the nn type")

	_, err = pipeline.Assemble(context.Background(), registry, "Rae", host, oakD, device.NewPipeline(), "")
	require.Error(t, err)
	status, ok = monitor.Get("Rae")
	require.True(t, ok)
	assert.True(t, status.IsUnhealthy())
	assert.Contains(t, status.Message, "CAM_D")

	assert.True(t, monitor.AggregateHealth("depthai").IsUnhealthy())
}
