package plan

import "math"

// =============================================================================
// Duration Estimation
// =============================================================================

const (
	// DefaultMinutesPerContainer is the fixed per-container migration cost.
	DefaultMinutesPerContainer = 5.0

	// DefaultParallelEfficiency models N parallel migrations completing in
	// roughly the time of one, plus 30% coordination overhead.
	DefaultParallelEfficiency = 0.7
)

// Options configures the estimation model.
type Options struct {
	MinutesPerContainer float64
	ParallelEfficiency  float64
}

// DefaultOptions returns the standard estimation model.
func DefaultOptions() Options {
	return Options{
		MinutesPerContainer: DefaultMinutesPerContainer,
		ParallelEfficiency:  DefaultParallelEfficiency,
	}
}

// EstimateDuration converts a phase list into a sequential-vs-parallel
// time estimate.
//
// Sequential cost is total containers times the per-container cost. A
// parallel phase costs one per-container unit scaled by the efficiency
// factor regardless of its size; a non-parallel phase costs its full
// container count. Savings is 0 when there is nothing to migrate.
func EstimateDuration(phases []Phase, opts Options) Estimate {
	if opts.MinutesPerContainer <= 0 {
		opts.MinutesPerContainer = DefaultMinutesPerContainer
	}
	if opts.ParallelEfficiency <= 0 {
		opts.ParallelEfficiency = DefaultParallelEfficiency
	}

	totalContainers := 0
	for _, phase := range phases {
		totalContainers += len(phase.Containers)
	}

	sequentialMinutes := float64(totalContainers) * opts.MinutesPerContainer

	parallelMinutes := 0.0
	for _, phase := range phases {
		if phase.Parallel {
			parallelMinutes += opts.MinutesPerContainer * opts.ParallelEfficiency
		} else {
			parallelMinutes += float64(len(phase.Containers)) * opts.MinutesPerContainer
		}
	}

	savings := 0.0
	if sequentialMinutes > 0 {
		savings = round1((1 - parallelMinutes/sequentialMinutes) * 100)
	}

	return Estimate{
		TotalContainers:   totalContainers,
		SequentialMinutes: sequentialMinutes,
		ParallelMinutes:   parallelMinutes,
		SequentialHours:   round1(sequentialMinutes / 60),
		ParallelHours:     round1(parallelMinutes / 60),
		TimeSavingsPct:    savings,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
