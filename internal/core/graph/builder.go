package graph

import (
	"sort"
	"strings"
)

// =============================================================================
// Graph Builder
// =============================================================================

// Build merges relationship facts from every extractor into one dependency
// graph. This is a pure function - no I/O, no side effects.
//
// Rules:
//   - Nodes are the union of all sources and targets across all facts.
//   - Duplicate (source, target) pairs collapse to one edge; the kinds of
//     every contributing fact are retained on the edge.
//   - Facts with an empty source or target are dropped. The analysis is
//     advisory, so a silently incomplete graph beats a failed run.
//   - Self-referencing facts record the node as a self-loop instead of an
//     edge; DetectCycles surfaces them as cycles of length 1.
//
// A target never observed as a source still becomes a node, so downstream
// stages never fail on a dependency that names an unknown container.
//
// known lists identifiers from the raw inventory; each becomes a degree-0
// vertex even when no fact mentions it, so relationship-free containers
// still receive a level and a phase.
func Build(facts []Fact, known []string) *Graph {
	g := &Graph{
		nodes:     make(map[string]struct{}),
		deps:      make(map[string][]string),
		edgeKinds: make(map[[2]string][]Kind),
	}

	for _, node := range known {
		if name := strings.TrimSpace(node); name != "" {
			g.nodes[name] = struct{}{}
		}
	}

	selfLoops := make(map[string]struct{})

	for _, f := range facts {
		source := strings.TrimSpace(f.Source)
		target := strings.TrimSpace(f.Target)
		if source == "" || target == "" {
			continue
		}

		g.nodes[source] = struct{}{}
		g.nodes[target] = struct{}{}

		if source == target {
			selfLoops[source] = struct{}{}
			continue
		}

		pair := [2]string{source, target}
		kinds, seen := g.edgeKinds[pair]
		if !seen {
			g.deps[source] = append(g.deps[source], target)
		}
		if !containsKind(kinds, f.Kind) {
			g.edgeKinds[pair] = append(kinds, f.Kind)
		}
	}

	for node := range g.deps {
		sort.Strings(g.deps[node])
	}

	for node := range selfLoops {
		g.selfLoops = append(g.selfLoops, node)
	}
	sort.Strings(g.selfLoops)

	return g
}

func containsKind(kinds []Kind, k Kind) bool {
	for _, existing := range kinds {
		if existing == k {
			return true
		}
	}
	return false
}
