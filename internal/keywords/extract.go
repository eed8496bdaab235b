// Package keywords extracts technical keywords from job descriptions and maps them onto resume sections.
package keywords

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/tailor-agent/internal/config"
	"github.com/jonathan/tailor-agent/internal/types"
)

// Extractor finds taxonomy keywords in free text
type Extractor struct {
	categories []config.Category
	logger     *slog.Logger
}

// NewExtractor creates an Extractor over the categories of the given taxonomy
func NewExtractor(tax *config.Taxonomy, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{categories: tax.Categories, logger: logger}
}

// Extract returns the keywords found in jobDescription, grouped by category.
// Every category is present in the result even when nothing matched.
func (e *Extractor) Extract(jobDescription string) types.KeywordSet {
	text := strings.ToLower(jobDescription)

	categories := make([]types.KeywordCategory, 0, len(e.categories))
	for _, cat := range e.categories {
		found := []string{}
		seen := make(map[string]bool)
		for _, entry := range cat.Keywords {
			if !matches(text, strings.ToLower(entry.Term), entry.WholeWord) {
				continue
			}
			display := entry.DisplayForm()
			if seen[display] {
				continue
			}
			seen[display] = true
			found = append(found, display)
		}
		categories = append(categories, types.KeywordCategory{Name: cat.Name, Keywords: found})
	}

	set := types.NewKeywordSet(categories)
	e.logger.Debug("extracted job description keywords", slog.Int("count", set.Count()))
	return set
}

// matches reports whether term occurs in text. With wholeWord set, an
// occurrence only counts when it is not glued to letters or digits.
func matches(text, term string, wholeWord bool) bool {
	if term == "" {
		return false
	}
	if !wholeWord {
		return strings.Contains(text, term)
	}
	offset := 0
	for {
		idx := strings.Index(text[offset:], term)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(term)
		if isBoundary(text, start, end) {
			return true
		}
		offset = start + 1
	}
}

func isBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Flatten extracts keywords from jobDescription and returns them in category
// order with case-insensitive duplicates removed.
func (e *Extractor) Flatten(jobDescription string) []string {
	return e.Extract(jobDescription).All()
}
