// Package types provides type definitions for structured data used throughout the tailor-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PreservationRule names the check a bullet rewrite failed
type PreservationRule string

const (
	// RuleNumbers means a number-like token from the original is missing
	RuleNumbers PreservationRule = "numbers"
	// RuleOrganizations means an allow-listed organization name is missing
	RuleOrganizations PreservationRule = "organizations"
	// RuleRemovalRatio means too many significant words were removed
	RuleRemovalRatio PreservationRule = "removal_ratio"
)

// ValidationResult is the outcome of checking one tailored bullet against its original
type ValidationResult struct {
	Label        string           `json:"label"`
	Valid        bool             `json:"valid"`
	Reason       string           `json:"reason,omitempty"`
	Rule         PreservationRule `json:"rule,omitempty"`
	Missing      []string         `json:"missing,omitempty"`
	RemovedRatio float64          `json:"removed_ratio"`
}

// BulletFailure ties a failed validation to the bullet that produced it
type BulletFailure struct {
	Section string           `json:"section"`
	Bullet  BulletPoint      `json:"bullet"`
	Result  ValidationResult `json:"result"`
}
