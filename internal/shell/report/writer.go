// Package report writes analysis results to disk and renders
// human-readable summaries.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/podshift/podshift/internal/core/domain"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrWriteFailed is returned when the artifact cannot be written.
	ErrWriteFailed = errors.New("failed to write report artifact")

	// ErrEncodeFailed is returned when the report cannot be serialized.
	ErrEncodeFailed = errors.New("failed to encode report")
)

// WriteError wraps report write failures with path context.
type WriteError struct {
	Op      string
	Path    string
	Message string
	Err     error
}

func (e *WriteError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// =============================================================================
// Artifact Writer
// =============================================================================

// ArtifactName returns the artifact file name for a run timestamp.
func ArtifactName(timestamp string) string {
	return fmt.Sprintf("container_dependencies_%s.json", timestamp)
}

// WriteArtifact serializes the report as indented JSON into outputDir,
// creating the directory if needed. It returns the full artifact path.
func WriteArtifact(rep *domain.Report, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", &WriteError{Op: "WriteArtifact", Path: outputDir, Message: "failed to create output directory", Err: ErrWriteFailed}
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", &WriteError{Op: "WriteArtifact", Path: outputDir, Message: err.Error(), Err: ErrEncodeFailed}
	}
	data = append(data, '\n')

	path := filepath.Join(outputDir, ArtifactName(rep.Metadata.Timestamp))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &WriteError{Op: "WriteArtifact", Path: path, Message: err.Error(), Err: ErrWriteFailed}
	}

	return path, nil
}
