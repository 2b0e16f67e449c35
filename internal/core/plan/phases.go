package plan

import (
	"fmt"
	"sort"

	"github.com/podshift/podshift/internal/core/graph"
)

// =============================================================================
// Phase Planning
// =============================================================================

const (
	cyclePhaseName        = "Phase 0 - Cycle Resolution"
	cyclePhaseDescription = "Containers with circular dependencies - manual intervention required"
	parallelGroupReason   = "No interdependencies within group"
)

// BuildSequence groups a startup order into dependency-level phases and
// attaches the duration estimate.
//
// Each node's level is computed in startup-order iteration as
// 1 + max(level of its direct dependencies), 0 when it has none. Because
// the startup order already places every dependency before its dependents,
// all dependencies are leveled by the time a node is reached; dependencies
// missing from the order (cycle members) are skipped and handled by the
// cycle phase. Nodes sharing a level have no edge between them, so a
// multi-node phase is safe to run in parallel.
//
// When the startup order is empty but the inventory is not, the fall back
// is a single non-parallel phase over the full inventory - an analysis
// must never yield zero phases for a nonempty inventory. When cycles were
// detected, a special non-parallel cycle-resolution phase is prepended
// carrying the full cycle list for operator inspection; it is never merged
// with the level phases.
func BuildSequence(order []string, g *graph.Graph, cycles [][]string, inventory []string, opts Options) Sequence {
	seq := Sequence{
		Phases:          []Phase{},
		ParallelGroups:  []ParallelGroup{},
		SequentialOrder: []string{},
	}

	if len(order) == 0 {
		if len(inventory) > 0 {
			all := make([]string, len(inventory))
			copy(all, inventory)
			sort.Strings(all)
			seq.Phases = append(seq.Phases, Phase{
				Name:       "Phase 1",
				Containers: all,
				Parallel:   false,
			})
			seq.SequentialOrder = all
		}
	} else {
		levels := assignLevels(order, g)
		seq.Phases, seq.ParallelGroups = levelPhases(levels)
		seq.SequentialOrder = order
	}

	if len(cycles) > 0 {
		cyclePhase := Phase{
			Name:        cyclePhaseName,
			Containers:  graph.CycleNodes(cycles),
			Parallel:    false,
			Description: cyclePhaseDescription,
			Special:     true,
			Cycles:      cycles,
		}
		seq.Phases = append([]Phase{cyclePhase}, seq.Phases...)
	}

	seq.TotalPhases = len(seq.Phases)
	seq.EstimatedDuration = EstimateDuration(seq.Phases, opts)
	return seq
}

// assignLevels walks the startup order and assigns each node a dependency
// level. Returns levels as a slice indexed by level number.
func assignLevels(order []string, g *graph.Graph) [][]string {
	levelOf := make(map[string]int, len(order))
	var levels [][]string

	for _, node := range order {
		level := 0
		for _, dep := range g.Dependencies(node) {
			if depLevel, ok := levelOf[dep]; ok && depLevel+1 > level {
				level = depLevel + 1
			}
		}
		levelOf[node] = level

		for len(levels) <= level {
			levels = append(levels, nil)
		}
		levels[level] = append(levels[level], node)
	}

	return levels
}

// levelPhases converts per-level node groups into phases and parallel
// group annotations. Phase names are 1-indexed.
func levelPhases(levels [][]string) ([]Phase, []ParallelGroup) {
	phases := []Phase{}
	groups := []ParallelGroup{}

	for level, containers := range levels {
		phases = append(phases, Phase{
			Name:        fmt.Sprintf("Phase %d", level+1),
			Containers:  containers,
			Parallel:    len(containers) > 1,
			Description: fmt.Sprintf("Migrate containers with dependency level %d", level),
		})

		if len(containers) > 1 {
			groups = append(groups, ParallelGroup{
				Phase:      level + 1,
				Containers: containers,
				Reason:     parallelGroupReason,
			})
		}
	}

	return phases, groups
}
