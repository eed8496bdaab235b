// Package validation checks tailored resume content against its original and compiles LaTeX output.
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/jonathan/tailor-agent/internal/config"
	"github.com/jonathan/tailor-agent/internal/types"
)

// numberPattern matches integers, decimals, percentages and "N+" counts
var numberPattern = regexp.MustCompile(`\d+(?:[.,]\d+)?%?(?:\+)?`)

// significantWordLen is the rune length a word must exceed to count toward the removal ratio
const significantWordLen = 3

// Validator guards surgical edits: a tailored bullet may add content but must
// keep every number and allow-listed organization of the original and most
// of its significant words. It cannot judge whether added content is true.
type Validator struct {
	organizations   []string
	maxRemovedRatio float64
}

// NewValidator creates a Validator from the organization allow-list and thresholds of a taxonomy
func NewValidator(tax *config.Taxonomy) *Validator {
	orgs := make([]string, len(tax.Organizations))
	copy(orgs, tax.Organizations)
	return &Validator{
		organizations:   orgs,
		maxRemovedRatio: tax.Thresholds.MaxRemovedRatio,
	}
}

// Validate checks tailored against original. Checks run in order (numbers,
// organizations, removal ratio) and the first failing rule is reported.
func (v *Validator) Validate(original, tailored, label string) types.ValidationResult {
	orig := PlainText(original)
	tail := PlainText(tailored)

	result := types.ValidationResult{
		Label:        label,
		RemovedRatio: v.removedRatio(orig, tail),
	}

	if missing := missingNumbers(orig, tail); len(missing) > 0 {
		result.Rule = types.RuleNumbers
		result.Missing = missing
		result.Reason = fmt.Sprintf("%s: missing numbers/metrics: %s", label, strings.Join(missing, ", "))
		return result
	}

	if missing := v.missingOrganizations(orig, tail); len(missing) > 0 {
		result.Rule = types.RuleOrganizations
		result.Missing = missing
		result.Reason = fmt.Sprintf("%s: missing company/institution name: %s", label, strings.Join(missing, ", "))
		return result
	}

	if result.RemovedRatio > v.maxRemovedRatio {
		removed := removedWords(orig, tail)
		result.Rule = types.RuleRemovalRatio
		result.Missing = removed
		result.Reason = fmt.Sprintf("%s: removed %.0f%% of significant words (limit %.0f%%): %s",
			label, result.RemovedRatio*100, v.maxRemovedRatio*100, strings.Join(removed, ", "))
		return result
	}

	result.Valid = true
	return result
}

// ChangeRatio returns how much of the wording changed, from 0 (identical) to 1,
// as one minus the similarity of the two word sequences.
func (v *Validator) ChangeRatio(original, tailored string) float64 {
	a := Words(PlainText(original))
	b := Words(PlainText(tailored))
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	return 1 - difflib.NewMatcher(a, b).Ratio()
}

// NumberTokens returns the distinct number-like tokens of text, sorted
func NumberTokens(text string) []string {
	set := tokenSet(numberPattern.FindAllString(text, -1))
	return sortedKeys(set)
}

func missingNumbers(original, tailored string) []string {
	have := tokenSet(numberPattern.FindAllString(tailored, -1))
	var missing []string
	for _, tok := range NumberTokens(original) {
		if !have[tok] {
			missing = append(missing, tok)
		}
	}
	return missing
}

func (v *Validator) missingOrganizations(original, tailored string) []string {
	var missing []string
	for _, org := range v.organizations {
		if strings.Contains(original, org) && !strings.Contains(tailored, org) {
			missing = append(missing, org)
		}
	}
	return missing
}

// removedRatio is the share of the original's distinct significant words
// that no longer appear in tailored
func (v *Validator) removedRatio(original, tailored string) float64 {
	significant := significantWords(original)
	if len(significant) == 0 {
		return 0
	}
	return float64(len(removedWords(original, tailored))) / float64(len(significant))
}

func removedWords(original, tailored string) []string {
	have := tokenSet(Words(tailored))
	var removed []string
	for w := range significantWords(original) {
		if !have[w] {
			removed = append(removed, w)
		}
	}
	sort.Strings(removed)
	return removed
}

func significantWords(text string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range Words(text) {
		if utf8.RuneCountInString(w) > significantWordLen {
			out[w] = true
		}
	}
	return out
}

func tokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
