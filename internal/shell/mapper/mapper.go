// Package mapper orchestrates a full dependency analysis run: observe the
// engine, parse compose files, build the graph, plan the migration sequence,
// and persist the results.
package mapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/podshift/podshift/internal/core/domain"
	"github.com/podshift/podshift/internal/core/graph"
	"github.com/podshift/podshift/internal/core/plan"
	"github.com/podshift/podshift/internal/shell/docker"
	"github.com/podshift/podshift/internal/shell/report"
	"github.com/podshift/podshift/internal/shell/store"
)

// TimestampLayout is the artifact timestamp format.
const TimestampLayout = "20060102_150405"

// =============================================================================
// Configuration
// =============================================================================

// Config configures an analysis run.
type Config struct {
	// OutputDir is where the JSON artifact is written.
	OutputDir string

	// Timestamp overrides the artifact timestamp. Empty means now.
	Timestamp string

	// ComposeFiles are explicit compose files to analyze.
	ComposeFiles []string

	// ComposeSearchPaths are directories probed for compose files by their
	// conventional names.
	ComposeSearchPaths []string

	// ContainersOnly skips compose file analysis entirely.
	ContainersOnly bool

	// MinutesPerContainer and ParallelEfficiency tune the duration estimate.
	// Zero values fall back to the defaults.
	MinutesPerContainer float64
	ParallelEfficiency  float64
}

// DefaultConfig returns the default analysis configuration.
func DefaultConfig() Config {
	return Config{
		OutputDir:           ".",
		ComposeSearchPaths:  []string{"."},
		MinutesPerContainer: plan.DefaultMinutesPerContainer,
		ParallelEfficiency:  plan.DefaultParallelEfficiency,
	}
}

// Result is the outcome of one analysis run.
type Result struct {
	RunID        string
	Report       domain.Report
	ArtifactPath string
}

// =============================================================================
// Mapper
// =============================================================================

// Mapper runs dependency analyses against a Docker engine.
type Mapper struct {
	docker docker.Client
	store  store.Store // nil disables run history
	config Config
	logger *slog.Logger
	now    func() time.Time
}

// NewMapper creates a mapper. The store may be nil to disable run history.
func NewMapper(dockerClient docker.Client, st store.Store, config Config, logger *slog.Logger) *Mapper {
	if logger == nil {
		logger = slog.Default()
	}
	if config.OutputDir == "" {
		config.OutputDir = "."
	}

	return &Mapper{
		docker: dockerClient,
		store:  st,
		config: config,
		logger: logger.With("component", "mapper"),
		now:    time.Now,
	}
}

// RunFullAnalysis performs a complete analysis: engine snapshot, compose
// discovery, graph construction, cycle detection, startup ordering, migration
// planning, artifact write, and run history.
func (m *Mapper) RunFullAnalysis(ctx context.Context) (*Result, error) {
	generatedAt := m.now().UTC()
	timestamp := m.config.Timestamp
	if timestamp == "" {
		timestamp = generatedAt.Format(TimestampLayout)
	}

	m.logger.Info("starting dependency analysis", "timestamp", timestamp)

	snapshot, err := m.docker.TakeSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to observe docker engine: %w", err)
	}
	m.logger.Info("engine snapshot complete",
		"containers", len(snapshot.Containers),
		"networks", len(snapshot.Networks),
		"volumes", len(snapshot.Volumes))

	facts := docker.ExtractFacts(snapshot)

	composeProjects := map[string]domain.ComposeProject{}
	if !m.config.ContainersOnly {
		var composeFacts []graph.Fact
		composeFacts, composeProjects = m.analyzeComposeFiles()
		facts = append(facts, composeFacts...)
	}

	g := graph.Build(facts, snapshot.ContainerNames())
	cycles := graph.DetectCycles(g)
	order := graph.StartupOrder(g)

	if len(cycles) > 0 {
		m.logger.Warn("circular dependencies detected", "count", len(cycles))
	}

	seq := plan.BuildSequence(order, g, cycles, g.Nodes(), plan.Options{
		MinutesPerContainer: m.config.MinutesPerContainer,
		ParallelEfficiency:  m.config.ParallelEfficiency,
	})

	summaries := make([]domain.ContainerSummary, 0, len(snapshot.Containers))
	for _, c := range snapshot.Containers {
		summaries = append(summaries, domain.ContainerSummary{
			Name:   c.Name,
			ID:     c.ID,
			Status: c.Status,
			Image:  c.Image,
		})
	}

	rep := domain.BuildReport(timestamp, generatedAt, snapshot.ServerVersion,
		summaries, composeProjects, g, cycles, order, seq)

	artifactPath, err := report.WriteArtifact(&rep, m.config.OutputDir)
	if err != nil {
		return nil, err
	}
	m.logger.Info("analysis artifact written", "path", artifactPath)

	runID := m.recordRun(ctx, &rep, g, cycles, artifactPath)

	return &Result{
		RunID:        runID,
		Report:       rep,
		ArtifactPath: artifactPath,
	}, nil
}

// recordRun persists the run to history. History is best effort: failures
// are logged, not propagated, since the artifact is already on disk.
func (m *Mapper) recordRun(ctx context.Context, rep *domain.Report, g *graph.Graph, cycles [][]string, artifactPath string) string {
	if m.store == nil {
		return ""
	}

	reportJSON, err := json.Marshal(rep)
	if err != nil {
		m.logger.Warn("failed to serialize report for history", "error", err)
		return ""
	}

	run := &store.Run{
		ID:             uuid.New().String(),
		CreatedAt:      m.now().UTC(),
		DockerVersion:  rep.Metadata.DockerVersion,
		ContainerCount: len(rep.Containers),
		EdgeCount:      g.EdgeCount(),
		CycleCount:     len(cycles),
		PhaseCount:     rep.MigrationSequence.TotalPhases,
		TimeSavingsPct: rep.MigrationSequence.EstimatedDuration.TimeSavingsPct,
		ArtifactPath:   artifactPath,
		Report:         string(reportJSON),
	}

	if err := m.store.SaveRun(ctx, run); err != nil {
		m.logger.Warn("failed to record run history", "error", err)
		return ""
	}

	m.logger.Info("run recorded", "run_id", run.ID)
	return run.ID
}
