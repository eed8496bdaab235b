// Package steps provides step definitions and dependency tracking
// for the tailoring pipeline.
package steps

import (
	"fmt"
	"sort"
)

// Step names
const (
	StepLoadJob         = "load_job"
	StepExtractKeywords = "extract_keywords"
	StepParseResume     = "parse_resume"
	StepSuggestKeywords = "suggest_keywords"
	StepLoadRequest     = "load_request"
	StepReassemble      = "reassemble"
	StepWriteTeX        = "write_tex"
	StepCompilePDF      = "compile_pdf"
	StepCoverLetter     = "cover_letter"
)

// Step categories
const (
	CategoryIngestion = "ingestion"
	CategoryKeywords  = "keywords"
	CategoryTailoring = "tailoring"
	CategoryRendering = "rendering"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	StepLoadJob: {
		Name:         StepLoadJob,
		Category:     CategoryIngestion,
		Dependencies: []string{},
	},
	StepExtractKeywords: {
		Name:         StepExtractKeywords,
		Category:     CategoryKeywords,
		Dependencies: []string{StepLoadJob},
	},
	StepParseResume: {
		Name:         StepParseResume,
		Category:     CategoryIngestion,
		Dependencies: []string{},
	},
	StepSuggestKeywords: {
		Name:         StepSuggestKeywords,
		Category:     CategoryKeywords,
		Dependencies: []string{StepExtractKeywords, StepParseResume},
	},
	StepLoadRequest: {
		Name:         StepLoadRequest,
		Category:     CategoryTailoring,
		Dependencies: []string{},
	},
	StepReassemble: {
		Name:         StepReassemble,
		Category:     CategoryTailoring,
		Dependencies: []string{StepParseResume, StepLoadRequest},
	},
	StepWriteTeX: {
		Name:         StepWriteTeX,
		Category:     CategoryRendering,
		Dependencies: []string{StepReassemble},
	},
	StepCompilePDF: {
		Name:         StepCompilePDF,
		Category:     CategoryRendering,
		Dependencies: []string{StepWriteTeX},
	},
	StepCoverLetter: {
		Name:         StepCoverLetter,
		Category:     CategoryRendering,
		Dependencies: []string{},
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s has missing dependencies: %v", e.Step, e.MissingDependencies)
}

// Tracker records which steps of a single run have completed.
// It is not safe for concurrent use.
type Tracker struct {
	completed map[string]bool
}

// NewTracker creates an empty Tracker
func NewTracker() *Tracker {
	return &Tracker{completed: make(map[string]bool)}
}

// ValidateDependencies checks if all required dependencies for a step are completed
func (t *Tracker) ValidateDependencies(stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !t.completed[dep] {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}
	return nil
}

// Complete marks a step as done after checking its dependencies
func (t *Tracker) Complete(stepName string) error {
	if err := t.ValidateDependencies(stepName); err != nil {
		return err
	}
	t.completed[stepName] = true
	return nil
}

// IsCompleted reports whether stepName has completed
func (t *Tracker) IsCompleted(stepName string) bool {
	return t.completed[stepName]
}

// Completed returns the completed steps in sorted order
func (t *Tracker) Completed() []string {
	out := make([]string, 0, len(t.completed))
	for name := range t.completed {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// GetAvailableSteps returns steps that can be executed (dependencies met), sorted
func (t *Tracker) GetAvailableSteps() []string {
	var available []string
	for stepName := range StepRegistry {
		if t.completed[stepName] {
			continue
		}
		if err := t.ValidateDependencies(stepName); err != nil {
			continue
		}
		available = append(available, stepName)
	}
	sort.Strings(available)
	return available
}

// GetBlockedSteps returns steps that are blocked (dependencies not met), sorted
func (t *Tracker) GetBlockedSteps() []string {
	var blocked []string
	for stepName := range StepRegistry {
		if t.completed[stepName] {
			continue
		}
		if err := t.ValidateDependencies(stepName); err != nil {
			blocked = append(blocked, stepName)
		}
	}
	sort.Strings(blocked)
	return blocked
}
