// Package rendering reassembles tailored resumes and renders cover letters as LaTeX.
package rendering

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/jonathan/tailor-agent/internal/config"
	"github.com/jonathan/tailor-agent/internal/locate"
	"github.com/jonathan/tailor-agent/internal/parsing"
	"github.com/jonathan/tailor-agent/internal/types"
	"github.com/jonathan/tailor-agent/internal/validation"
)

// BulletChange records what happened to one tailored bullet
type BulletChange struct {
	Section      string  `json:"section"`
	OriginalText string  `json:"original_text"`
	TailoredText string  `json:"tailored_text"`
	Located      bool    `json:"located"`
	Strategy     string  `json:"strategy,omitempty"`
	ChangeRatio  float64 `json:"change_ratio"`
	RemovedRatio float64 `json:"removed_ratio"`
}

// Report is the outcome of one reassembly run
type Report struct {
	RunID          string         `json:"run_id"`
	Document       string         `json:"-"`
	Changes        []BulletChange `json:"changes"`
	Misses         []string       `json:"misses"`
	SkillsReplaced bool           `json:"skills_replaced"`
}

// Applied returns the number of bullets written into the document
func (r *Report) Applied() int {
	n := 0
	for _, c := range r.Changes {
		if c.Located {
			n++
		}
	}
	return n
}

// Reassembler writes validated bullet rewrites and a new skills block back
// into the resume document. Either every bullet passes validation and the
// document is updated, or nothing is touched.
type Reassembler struct {
	validator       *validation.Validator
	replacer        *locate.Replacer
	parser          *parsing.Parser
	changeWarnRatio float64
	runID           string
	logger          *slog.Logger
}

// Option configures a Reassembler
type Option func(*Reassembler)

// WithRunID sets the run ID attached to logs and the report
func WithRunID(id string) Option {
	return func(r *Reassembler) {
		r.runID = id
	}
}

// WithReplacer overrides the locator used to place bullets
func WithReplacer(replacer *locate.Replacer) Option {
	return func(r *Reassembler) {
		r.replacer = replacer
	}
}

// NewReassembler creates a Reassembler from a taxonomy's thresholds and layout
func NewReassembler(tax *config.Taxonomy, logger *slog.Logger, opts ...Option) *Reassembler {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Reassembler{
		validator:       validation.NewValidator(tax),
		parser:          parsing.NewParser(tax.Layout, logger),
		changeWarnRatio: tax.Thresholds.ChangeWarnRatio,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.runID == "" {
		r.runID = uuid.NewString()
	}
	r.logger = r.logger.With("run_id", r.runID)
	if r.replacer == nil {
		r.replacer = locate.NewReplacer(tax, r.logger)
	}
	return r
}

// Reassemble returns doc with every tailored bullet and the skills block
// applied. If any bullet fails validation the error is an
// *validation.AggregateValidationError and doc is returned unchanged.
func (r *Reassembler) Reassemble(doc string, sections []types.TailoredSection, skills string) (string, error) {
	report, err := r.Run(doc, sections, skills)
	if err != nil {
		return doc, err
	}
	return report.Document, nil
}

// Run is Reassemble returning the full report
func (r *Reassembler) Run(doc string, sections []types.TailoredSection, skills string) (*Report, error) {
	report := &Report{RunID: r.runID, Document: doc, Changes: []BulletChange{}, Misses: []string{}}

	var failures []types.BulletFailure
	for _, section := range sections {
		for _, bullet := range section.Bullets {
			result := r.validator.Validate(bullet.OriginalText, bullet.TailoredText, section.Label)
			if !result.Valid {
				failures = append(failures, types.BulletFailure{Section: section.Label, Bullet: bullet, Result: result})
				continue
			}
			report.Changes = append(report.Changes, BulletChange{
				Section:      section.Label,
				OriginalText: bullet.OriginalText,
				TailoredText: bullet.TailoredText,
				ChangeRatio:  r.validator.ChangeRatio(bullet.OriginalText, bullet.TailoredText),
				RemovedRatio: result.RemovedRatio,
			})
		}
	}
	if len(failures) > 0 {
		r.logger.Warn("tailored bullets rejected", "failures", len(failures))
		return nil, &validation.AggregateValidationError{Failures: failures}
	}

	for i := range report.Changes {
		change := &report.Changes[i]
		updated, match, ok := r.replacer.Apply(report.Document, change.OriginalText, change.TailoredText)
		if !ok {
			report.Misses = append(report.Misses, change.OriginalText)
			continue
		}
		report.Document = updated
		change.Located = true
		change.Strategy = match.Strategy
		if change.ChangeRatio > r.changeWarnRatio {
			r.logger.Info("bullet wording changed substantially",
				"section", change.Section,
				"change_ratio", change.ChangeRatio,
				"removed_ratio", change.RemovedRatio)
		}
	}

	if skills != "" {
		span, ok := r.parser.SkillsSpan(report.Document)
		if ok {
			report.Document = report.Document[:span.Start] + skills + report.Document[span.End:]
			report.SkillsReplaced = true
		} else {
			r.logger.Warn("skills section not found, skills left unchanged")
		}
	}

	r.logger.Debug("reassembly complete",
		"applied", report.Applied(),
		"misses", len(report.Misses),
		"skills_replaced", report.SkillsReplaced)
	return report, nil
}
