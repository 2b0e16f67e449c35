// Package graph contains pure functions for building container dependency
// graphs from relationship facts. This is part of the Functional Core -
// all functions are pure with no I/O.
package graph

import "sort"

// =============================================================================
// Relationship Facts
// =============================================================================

// Kind identifies how a dependency relationship was discovered.
type Kind string

const (
	// Runtime relationships (from the container engine).
	KindNetworkShared   Kind = "network_shared"
	KindVolumeShared    Kind = "volume_shared"
	KindBindShared      Kind = "bind_shared"
	KindEnvReference    Kind = "env_reference"
	KindContainerLink   Kind = "container_link"
	KindLabelDependency Kind = "label_dependency"

	// Declarative relationships (from compose files).
	KindComposeDependsOn     Kind = "compose_depends_on"
	KindComposeLinks         Kind = "compose_links"
	KindComposeVolumesFrom   Kind = "compose_volumes_from"
	KindComposeNetworkShared Kind = "compose_network_shared"
)

// Fact is a single directed relationship observation: Source depends on
// Target. Multiple facts may exist for the same (Source, Target) pair with
// different kinds; they collapse to one edge in the graph, which retains
// every kind for reporting.
type Fact struct {
	Source string
	Target string
	Kind   Kind
}

// =============================================================================
// Dependency Graph
// =============================================================================

// Edge is a directed depends-on relationship between two nodes, annotated
// with every kind of fact that produced it.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Kinds []Kind `json:"kinds"`
}

// Graph is a directed dependency graph over container/service identifiers.
// Edge direction is depends-on: an edge A→B means A depends on B.
//
// Graphs are built once by Build and immutable afterwards. All accessors
// return nodes in lexicographic order so downstream traversals (and test
// output) are reproducible.
type Graph struct {
	nodes     map[string]struct{}
	deps      map[string][]string // node → sorted direct dependencies
	edgeKinds map[[2]string][]Kind
	selfLoops []string // sorted nodes that had a self-referencing fact
}

// Nodes returns every node in lexicographic order.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// HasNode reports whether the graph contains the given node.
func (g *Graph) HasNode(node string) bool {
	_, ok := g.nodes[node]
	return ok
}

// Dependencies returns the sorted direct dependencies of a node. Unknown
// nodes return nil rather than failing, so callers never need to guard
// against nodes that only appear as edge targets.
func (g *Graph) Dependencies(node string) []string {
	return g.deps[node]
}

// Edges returns every deduplicated edge sorted by (From, To), with the
// kinds that produced it sorted as well.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edgeKinds))
	for pair, kinds := range g.edgeKinds {
		sorted := make([]Kind, len(kinds))
		copy(sorted, kinds)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		out = append(out, Edge{From: pair[0], To: pair[1], Kinds: sorted})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// EdgeCount returns the number of deduplicated edges, self-loops excluded.
func (g *Graph) EdgeCount() int {
	return len(g.edgeKinds)
}

// SelfLoops returns the sorted nodes that appeared in a self-referencing
// fact. Self-loop edges never enter the adjacency; the cycle detector
// reports them as cycles of length 1.
func (g *Graph) SelfLoops() []string {
	return g.selfLoops
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
