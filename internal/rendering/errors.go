// Package rendering reassembles tailored resumes and renders cover letters as LaTeX.
package rendering

import "fmt"

// TemplateError represents an error reading or filling a LaTeX template.
// Path is empty when the template came from memory.
type TemplateError struct {
	Path    string
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	msg := "template error: " + e.Message
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents cover letter input the renderer cannot use
type RenderError struct {
	Language string
	Message  string
	Cause    error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error (%s): %s: %v", e.Language, e.Message, e.Cause)
	}
	return fmt.Sprintf("render error (%s): %s", e.Language, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
