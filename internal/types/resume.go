// Package types provides type definitions for structured data used throughout the tailor-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// SectionKind identifies which part of the resume a section came from
type SectionKind string

const (
	// SectionExperience is a professional work experience entry
	SectionExperience SectionKind = "experience"
	// SectionProject is a project entry
	SectionProject SectionKind = "project"
	// SectionHackathon is a hackathon project entry with a single paragraph
	SectionHackathon SectionKind = "hackathon"
)

// BulletPoint pairs a bullet as it appears in the document with a proposed rewrite
type BulletPoint struct {
	OriginalText string `json:"original_text" validate:"required"`
	TailoredText string `json:"tailored_text" validate:"required"`
}

// ResumeSection is one experience, project or hackathon entry in document order
type ResumeSection struct {
	Kind         SectionKind   `json:"kind"`
	Title        string        `json:"title"`
	Organization string        `json:"organization,omitempty"`
	Dates        string        `json:"dates,omitempty"`
	Location     string        `json:"location,omitempty"`
	Bullets      []BulletPoint `json:"bullets"`
}

// ID returns the identifying label used for keyword mappings and error reports
func (s ResumeSection) ID() string {
	if s.Organization == "" {
		return s.Title
	}
	return s.Title + " | " + s.Organization
}

// Text concatenates the label and all original bullet text
func (s ResumeSection) Text() string {
	parts := []string{s.Title, s.Organization}
	for _, b := range s.Bullets {
		parts = append(parts, b.OriginalText)
	}
	return strings.Join(parts, "\n")
}

// ParsedResume is the structured view of a templated resume document
type ParsedResume struct {
	Experience []ResumeSection `json:"experience"`
	Projects   []ResumeSection `json:"projects"`
	Hackathons []ResumeSection `json:"hackathons"`
	Skills     string          `json:"skills"`
}

// Sections returns experience, projects and hackathons in that order
func (p ParsedResume) Sections() []ResumeSection {
	out := make([]ResumeSection, 0, len(p.Experience)+len(p.Projects)+len(p.Hackathons))
	out = append(out, p.Experience...)
	out = append(out, p.Projects...)
	out = append(out, p.Hackathons...)
	return out
}

// TailoredSection carries the proposed bullet rewrites for one section
type TailoredSection struct {
	Label   string        `json:"label" validate:"required"`
	Bullets []BulletPoint `json:"bullets" validate:"dive"`
}

// TailorRequest is the file the agent layer hands to the tailor command
type TailorRequest struct {
	Sections []TailoredSection `json:"sections" validate:"dive"`
	Skills   string            `json:"skills,omitempty"`
}

// BulletCount returns the number of bullets across all sections
func (r TailorRequest) BulletCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Bullets)
	}
	return n
}
