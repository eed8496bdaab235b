// Package validation checks tailored resume content against its original and compiles LaTeX output.
package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/tailor-agent/internal/types"
)

// AggregateValidationError lists every bullet that failed preservation checks.
// It blocks the whole document update.
type AggregateValidationError struct {
	Failures []types.BulletFailure
}

func (e *AggregateValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation error: %d tailored bullet(s) failed preservation checks; no changes were applied\n", len(e.Failures)))
	for i, f := range e.Failures {
		sb.WriteString(fmt.Sprintf("\n%d. [%s] %s\n", i+1, f.Section, f.Result.Reason))
		sb.WriteString(fmt.Sprintf("   original: %s\n", f.Bullet.OriginalText))
		sb.WriteString(fmt.Sprintf("   tailored: %s\n", f.Bullet.TailoredText))
	}
	sb.WriteString("\nKeep every number, metric and organization name exactly as written and only add keywords, e.g.\n")
	sb.WriteString("   original: Reduced latency by 50% using Redis caching\n")
	sb.WriteString("   tailored: Reduced API latency by 50% using Redis caching and Docker-based deployment\n")
	return sb.String()
}

// CompilationError represents a LaTeX compilation failure
type CompilationError struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LaTeX compilation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("LaTeX compilation error: %s", e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}

// FileReadError represents an error reading a file
type FileReadError struct {
	Message string
	Cause   error
}

func (e *FileReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("file read error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("file read error: %s", e.Message)
}

func (e *FileReadError) Unwrap() error {
	return e.Cause
}
