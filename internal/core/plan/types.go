// Package plan contains pure functions for turning a dependency graph into
// a phased migration sequence. This is part of the Functional Core - all
// functions are pure with no I/O.
package plan

// =============================================================================
// Migration Sequence Types
// =============================================================================

// Phase is a group of containers migrated together. Phases partition the
// handled nodes and are executed in slice order.
type Phase struct {
	Name        string     `json:"name"`
	Containers  []string   `json:"containers"`
	Parallel    bool       `json:"parallel"`
	Description string     `json:"description,omitempty"`
	Special     bool       `json:"special,omitempty"`
	Cycles      [][]string `json:"cycles,omitempty"`
}

// ParallelGroup annotates a phase whose containers can migrate
// concurrently.
type ParallelGroup struct {
	Phase      int      `json:"phase"`
	Containers []string `json:"containers"`
	Reason     string   `json:"reason"`
}

// Sequence is the complete migration plan for one analysis run. It is
// built once from the dependency graph and cycle list and immutable
// afterwards.
type Sequence struct {
	Phases            []Phase         `json:"phases"`
	ParallelGroups    []ParallelGroup `json:"parallel_groups"`
	SequentialOrder   []string        `json:"sequential_order"`
	TotalPhases       int             `json:"total_phases"`
	EstimatedDuration Estimate        `json:"estimated_duration"`
}

// Estimate compares sequential and parallel migration cost.
type Estimate struct {
	TotalContainers   int     `json:"total_containers"`
	SequentialMinutes float64 `json:"estimated_sequential_minutes"`
	ParallelMinutes   float64 `json:"estimated_parallel_minutes"`
	SequentialHours   float64 `json:"estimated_sequential_hours"`
	ParallelHours     float64 `json:"estimated_parallel_hours"`
	TimeSavingsPct    float64 `json:"time_savings_percent"`
}
