// Package locate finds a resume bullet inside a LaTeX document and replaces it.
package locate

import (
	"log/slog"

	"github.com/jonathan/tailor-agent/internal/config"
)

// Match is the span a strategy located, in byte offsets of the document
type Match struct {
	Strategy string `json:"strategy"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// Replacer runs its strategies in order and replaces the first match
type Replacer struct {
	strategies []Strategy
	logger     *slog.Logger
}

// NewReplacer creates a Replacer with the exact, whitespace, escape and
// anchor strategies configured from the taxonomy
func NewReplacer(tax *config.Taxonomy, logger *slog.Logger) *Replacer {
	return NewReplacerWithStrategies(logger,
		exactStrategy{},
		whitespaceStrategy{},
		escapeStrategy{},
		anchorStrategy{
			itemCommand: tax.Layout.ItemCommand,
			properNouns: append([]string(nil), tax.ProperNouns...),
			minOverlap:  tax.Thresholds.AnchorOverlap,
		},
	)
}

// NewReplacerWithStrategies creates a Replacer with a custom strategy chain
func NewReplacerWithStrategies(logger *slog.Logger, strategies ...Strategy) *Replacer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Replacer{strategies: strategies, logger: logger}
}

// Locate returns the first match of snippet in doc
func (r *Replacer) Locate(doc, snippet string) (Match, bool) {
	for _, s := range r.strategies {
		if span, ok := s.Find(doc, snippet); ok {
			return Match{Strategy: s.Name(), Start: span.Start, End: span.End}, true
		}
	}
	return Match{}, false
}

// Replace substitutes replacement for the first occurrence of original. A
// miss leaves doc unchanged and logs a warning.
func (r *Replacer) Replace(doc, original, replacement string) string {
	out, _, _ := r.Apply(doc, original, replacement)
	return out
}

// Apply is Replace that also reports the match
func (r *Replacer) Apply(doc, original, replacement string) (string, Match, bool) {
	m, ok := r.Locate(doc, original)
	if !ok {
		r.logger.Warn("bullet not found in document, leaving it unchanged", "original", truncate(original, 80))
		return doc, Match{}, false
	}
	r.logger.Debug("bullet located", "strategy", m.Strategy, "start", m.Start, "end", m.End)
	return doc[:m.Start] + replacement + doc[m.End:], m, true
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
