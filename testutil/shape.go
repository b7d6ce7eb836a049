package testutil

import (
	"github.com/contoroinc/depthai-ros/node"
)

// Kinds returns the kind of each node, in order.
func Kinds(nodes []node.Node) []node.Kind {
	kinds := make([]node.Kind, 0, len(nodes))
	for _, n := range nodes {
		kinds = append(kinds, n.Meta().Kind)
	}
	return kinds
}

// Names returns the name of each node, in order.
func Names(nodes []node.Node) []string {
	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, n.Meta().Name)
	}
	return names
}

// AllLinks returns every link the nodes emitted, in node order.
func AllLinks(nodes []node.Node) []node.LinkDirective {
	var links []node.LinkDirective
	for _, n := range nodes {
		links = append(links, n.Links()...)
	}
	return links
}

// IncomingLinks returns the links that target the named node.
func IncomingLinks(nodes []node.Node, target string) []node.LinkDirective {
	var links []node.LinkDirective
	for _, l := range AllLinks(nodes) {
		if l.Target == target {
			links = append(links, l)
		}
	}
	return links
}

// Touching returns the links that have the named node at either end.
func Touching(nodes []node.Node, name string) []node.LinkDirective {
	var links []node.LinkDirective
	for _, l := range AllLinks(nodes) {
		if l.Source == name || l.Target == name {
			links = append(links, l)
		}
	}
	return links
}
