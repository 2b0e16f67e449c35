package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/podshift/podshift/internal/shell/docker"
	"github.com/podshift/podshift/internal/shell/mapper"
	"github.com/podshift/podshift/internal/shell/report"
	"github.com/podshift/podshift/internal/shell/store"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess       = 0
	ExitConfigError   = 1
	ExitDatabaseError = 2
	ExitDockerError   = 3
	ExitAnalysisError = 4
)

// engine ping timeout before starting an analysis
const pingTimeout = 10 * time.Second

// =============================================================================
// App
// =============================================================================

// App wires the analysis pipeline together.
type App struct {
	config *Config
	store  store.Store // nil when run history is disabled
	docker docker.Client
	mapper *mapper.Mapper
	logger *slog.Logger
}

// AppError carries an exit code alongside the failure.
type AppError struct {
	Op       string
	Err      error
	ExitCode int
}

func (e *AppError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// runOptions are the per-invocation overrides from command line flags.
type runOptions struct {
	OutputDir      string
	Timestamp      string
	ComposeFiles   []string
	ContainersOnly bool
}

// NewApp creates the application from config plus flag overrides.
func NewApp(cfg *Config, opts runOptions, logger *slog.Logger) (*App, error) {
	// Open run history unless disabled
	var st store.Store
	if cfg.Database.DSN != "" {
		s, err := store.NewSQLiteStore(cfg.Database.DSN)
		if err != nil {
			return nil, &AppError{
				Op:       "NewApp",
				Err:      err,
				ExitCode: ExitDatabaseError,
			}
		}
		st = s
	}

	// Connect to Docker
	d, err := docker.NewDockerClient(cfg.Docker.Host)
	if err != nil {
		closeStore(st)
		return nil, &AppError{
			Op:       "NewApp",
			Err:      err,
			ExitCode: ExitDockerError,
		}
	}

	// Verify Docker connection
	pingCtx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := d.Ping(pingCtx); err != nil {
		closeStore(st)
		d.Close()
		return nil, &AppError{
			Op:       "NewApp",
			Err:      err,
			ExitCode: ExitDockerError,
		}
	}

	outputDir := cfg.Output.Dir
	if opts.OutputDir != "" {
		outputDir = opts.OutputDir
	}
	composeFiles := cfg.Compose.Files
	if len(opts.ComposeFiles) > 0 {
		composeFiles = opts.ComposeFiles
	}

	m := mapper.NewMapper(d, st, mapper.Config{
		OutputDir:           outputDir,
		Timestamp:           opts.Timestamp,
		ComposeFiles:        composeFiles,
		ComposeSearchPaths:  cfg.Compose.SearchPaths,
		ContainersOnly:      opts.ContainersOnly,
		MinutesPerContainer: cfg.Estimate.MinutesPerContainer,
		ParallelEfficiency:  cfg.Estimate.ParallelEfficiency,
	}, logger)

	return &App{
		config: cfg,
		store:  st,
		docker: d,
		mapper: m,
		logger: logger,
	}, nil
}

// Run executes one full analysis and prints the summary.
func (a *App) Run(ctx context.Context) error {
	result, err := a.mapper.RunFullAnalysis(ctx)
	if err != nil {
		return &AppError{
			Op:       "Run",
			Err:      err,
			ExitCode: ExitAnalysisError,
		}
	}

	report.WriteSummary(os.Stdout, &result.Report, result.ArtifactPath)
	return nil
}

// Close releases the engine and database connections.
func (a *App) Close() {
	if a.docker != nil {
		if err := a.docker.Close(); err != nil {
			a.logger.Warn("failed to close docker client", "error", err)
		}
	}
	closeStore(a.store)
}

func closeStore(st store.Store) {
	if st != nil {
		st.Close()
	}
}
