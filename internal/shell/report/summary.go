package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/podshift/podshift/internal/core/domain"
)

// =============================================================================
// Terminal Summary
// =============================================================================

// WriteSummary renders a human-readable overview of the analysis to w.
func WriteSummary(w io.Writer, rep *domain.Report, artifactPath string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Container Dependency Analysis")
	fmt.Fprintln(w, strings.Repeat("=", 40))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendRows([]table.Row{
		{"Containers analyzed", len(rep.Containers)},
		{"Compose files", len(rep.ComposeProjects)},
		{"Dependency edges", len(rep.DependencyGraph.Edges)},
		{"Circular dependencies", len(rep.DependencyGraph.Cycles)},
		{"Migration phases", rep.MigrationSequence.TotalPhases},
	})
	if est := rep.MigrationSequence.EstimatedDuration; est.TotalContainers > 0 {
		t.AppendRows([]table.Row{
			{"Sequential estimate", fmt.Sprintf("%.1f h", est.SequentialHours)},
			{"Parallel estimate", fmt.Sprintf("%.1f h", est.ParallelHours)},
			{"Time savings", fmt.Sprintf("%.1f%%", est.TimeSavingsPct)},
		})
	}
	t.Render()

	writePhases(w, rep)

	if len(rep.DependencyGraph.Cycles) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Warning: circular dependencies detected:")
		for _, cycle := range rep.DependencyGraph.Cycles {
			fmt.Fprintf(w, "  %s\n", strings.Join(cycle, " -> "))
		}
	}

	if artifactPath != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Full report written to %s\n", artifactPath)
	}
}

func writePhases(w io.Writer, rep *domain.Report) {
	if len(rep.MigrationSequence.Phases) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Migration sequence:")
	for _, phase := range rep.MigrationSequence.Phases {
		mode := "sequential"
		if phase.Parallel {
			mode = "parallel"
		}
		fmt.Fprintf(w, "  %s (%s): %s\n", phase.Name, mode, strings.Join(phase.Containers, ", "))
	}
}
