// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/tailor-agent/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	ResumeTemplate        string `json:"resume_template,omitempty"`         // Path to the LaTeX resume
	CoverLetterTemplateEN string `json:"cover_letter_template_en,omitempty"` // Path to the English cover letter template
	CoverLetterTemplateDE string `json:"cover_letter_template_de,omitempty"` // Path to the German cover letter template
	Taxonomy              string `json:"taxonomy,omitempty"`                 // Path to a YAML keyword taxonomy
	OutputDir             string `json:"output_dir,omitempty"`               // Base directory for generated documents

	// Candidate Info
	Applicant types.Applicant `json:"applicant"`

	// Behavior
	GenerateEnglish bool `json:"generate_english,omitempty"` // Build the English cover letter
	GenerateGerman  bool `json:"generate_german,omitempty"`  // Build the German cover letter
	Verbose         bool `json:"verbose,omitempty"`          // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Applicant fields are only checked when present
	if err := validator.New().StructPartial(c.Applicant, "Email", "LinkedInURL", "GitHubURL"); err != nil {
		return fmt.Errorf("config error: invalid applicant: %w", err)
	}

	// Validate file paths exist (if specified)
	for name, path := range map[string]string{
		"resume_template":          c.ResumeTemplate,
		"cover_letter_template_en": c.CoverLetterTemplateEN,
		"cover_letter_template_de": c.CoverLetterTemplateDE,
		"taxonomy":                 c.Taxonomy,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.ResumeTemplate == "" {
		result.ResumeTemplate = defaults.ResumeTemplate
	}
	if result.CoverLetterTemplateEN == "" {
		result.CoverLetterTemplateEN = defaults.CoverLetterTemplateEN
	}
	if result.CoverLetterTemplateDE == "" {
		result.CoverLetterTemplateDE = defaults.CoverLetterTemplateDE
	}
	if result.Taxonomy == "" {
		result.Taxonomy = defaults.Taxonomy
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}

	a, d := &result.Applicant, defaults.Applicant
	if a.FullName == "" {
		a.FullName = d.FullName
	}
	if a.Location == "" {
		a.Location = d.Location
	}
	if a.Phone == "" {
		a.Phone = d.Phone
	}
	if a.Email == "" {
		a.Email = d.Email
	}
	if a.LinkedInURL == "" {
		a.LinkedInURL = d.LinkedInURL
	}
	if a.GitHubURL == "" {
		a.GitHubURL = d.GitHubURL
	}
	if a.NameForFiles == "" {
		a.NameForFiles = d.NameForFiles
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ResolveTaxonomy loads the configured taxonomy, or the built-in one when no path is set
func (c *Config) ResolveTaxonomy() (*Taxonomy, error) {
	if c == nil || c.Taxonomy == "" {
		return DefaultTaxonomy(), nil
	}
	return LoadTaxonomy(c.Taxonomy)
}
