// Package types provides type definitions for structured data used throughout the tailor-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CoverLetterInput is the content the agent layer proposes for a cover letter
type CoverLetterInput struct {
	CompanyName      string   `json:"company_name" validate:"required"`
	JobPosition      string   `json:"job_position" validate:"required"`
	Subject          string   `json:"subject" validate:"required"`
	IntroParagraph   string   `json:"intro_paragraph" validate:"required"`
	BulletSections   []string `json:"bullet_sections" validate:"min=1,dive,required"`
	ClosingParagraph string   `json:"closing_paragraph" validate:"required"`
	Salutation       string   `json:"salutation,omitempty"`
	CompanyAddress   string   `json:"company_address,omitempty"`
	// German maps source text to a pre-translated German version
	German map[string]string `json:"german,omitempty"`
}

// DefaultSalutation is used when the input leaves the salutation empty
const DefaultSalutation = "Dear Hiring Manager:"

// WithDefaults returns a copy with optional fields filled in
func (c CoverLetterInput) WithDefaults() CoverLetterInput {
	if c.Salutation == "" {
		c.Salutation = DefaultSalutation
	}
	return c
}

// Applicant holds the personal details printed on generated documents
type Applicant struct {
	FullName     string `json:"full_name" yaml:"full_name" validate:"required"`
	Location     string `json:"location,omitempty" yaml:"location"`
	Phone        string `json:"phone,omitempty" yaml:"phone"`
	Email        string `json:"email,omitempty" yaml:"email" validate:"omitempty,email"`
	LinkedInURL  string `json:"linkedin_url,omitempty" yaml:"linkedin_url" validate:"omitempty,url"`
	GitHubURL    string `json:"github_url,omitempty" yaml:"github_url" validate:"omitempty,url"`
	NameForFiles string `json:"name_for_files,omitempty" yaml:"name_for_files"`
}
