package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Print version and exit")
	outputDir := flag.String("output-dir", "", "Directory for the JSON artifact (overrides config)")
	timestamp := flag.String("timestamp", "", "Artifact timestamp override (YYYYMMDD_HHMMSS)")
	composeFiles := flag.String("compose-files", "", "Comma-separated compose files to analyze (overrides config)")
	containersOnly := flag.Bool("containers-only", false, "Skip compose file analysis")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	// Handle version flag
	if *showVersion {
		fmt.Printf("podshift %s (built %s)\n", Version, BuildTime)
		return ExitSuccess
	}

	// Load configuration
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return ExitConfigError
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}

	// Setup logger
	logger := SetupLogger(cfg)
	logger.Info("starting podshift",
		"version", Version,
		"config", *configPath,
	)

	opts := runOptions{
		OutputDir:      *outputDir,
		Timestamp:      *timestamp,
		ComposeFiles:   splitList(*composeFiles),
		ContainersOnly: *containersOnly,
	}

	// Create application
	app, err := NewApp(cfg, opts, logger)
	if err != nil {
		if aErr, ok := err.(*AppError); ok {
			logger.Error("failed to initialize",
				"error", aErr.Err,
				"operation", aErr.Op,
			)
			return aErr.ExitCode
		}
		logger.Error("failed to initialize", "error", err)
		return ExitConfigError
	}
	defer app.Close()

	// Run the analysis
	ctx := context.Background()
	if err := app.Run(ctx); err != nil {
		if aErr, ok := err.(*AppError); ok {
			logger.Error("analysis failed",
				"error", aErr.Err,
				"operation", aErr.Op,
			)
			return aErr.ExitCode
		}
		logger.Error("analysis failed", "error", err)
		return ExitAnalysisError
	}

	return ExitSuccess
}

// splitList parses a comma-separated flag value, dropping empty entries.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
