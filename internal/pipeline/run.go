// Package pipeline provides the high-level orchestration for tailoring a resume to a job description.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/tailor-agent/internal/config"
	"github.com/jonathan/tailor-agent/internal/ingestion"
	"github.com/jonathan/tailor-agent/internal/keywords"
	"github.com/jonathan/tailor-agent/internal/observability"
	"github.com/jonathan/tailor-agent/internal/parsing"
	"github.com/jonathan/tailor-agent/internal/pipeline/steps"
	"github.com/jonathan/tailor-agent/internal/rendering"
	"github.com/jonathan/tailor-agent/internal/types"
	"github.com/jonathan/tailor-agent/internal/validation"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// TailorOptions holds configuration for a tailoring run
type TailorOptions struct {
	ResumePath   string    // LaTeX resume template
	JobSource    string    // job description file, URL or "-" for stdin; optional
	RequestPath  string    // tailoring request JSON; without it the run only analyzes
	OutputDir    string    // where the tailored .tex (and .pdf) are written
	NameForFiles string    // prefix of generated file names
	CompilePDF   bool      // run pdflatex on the tailored document
	MaxPages     int       // warn when the compiled PDF is longer; 0 disables the check
	Verbose      bool      // print boxed summaries of each step
	Taxonomy     *config.Taxonomy
	Stdin        io.Reader // read when JobSource is "-"
	Out          io.Writer // progress lines; defaults to os.Stdout
	Logger       *slog.Logger
	OnProgress   ProgressCallback
	Now          func() time.Time
}

// TailorResult holds everything a tailoring run produced
type TailorResult struct {
	RunID       string               `json:"run_id"`
	Resume      types.ParsedResume   `json:"resume"`
	Keywords    *types.KeywordSet    `json:"keywords,omitempty"`
	Suggestions types.KeywordMapping `json:"suggestions,omitempty"`
	Report      *rendering.Report    `json:"report,omitempty"`
	TeXPath     string               `json:"tex_path,omitempty"`
	PDFPath     string               `json:"pdf_path,omitempty"`
	PageCount   int                  `json:"page_count,omitempty"`
	Steps       []string             `json:"steps"`
}

// run carries the per-invocation state shared by the steps
type run struct {
	opts    TailorOptions
	id      string
	out     io.Writer
	logger  *slog.Logger
	tracker *steps.Tracker
	printer *observability.Printer
}

func (r *run) complete(step, message string, content any) error {
	if err := r.tracker.Complete(step); err != nil {
		return err
	}
	r.logger.Debug("step completed", "step", step)
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: steps.StepRegistry[step].Category,
			Message:  message,
			RunID:    r.id,
			Content:  content,
		})
	}
	return nil
}

//nolint:errcheck // progress output; errors are not recoverable
func (r *run) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Tailor parses the resume, analyzes the job description, and applies the
// tailoring request to the resume. Each input is optional except the resume:
// without a job description keyword analysis is skipped, and without a
// request nothing is written.
func Tailor(ctx context.Context, opts TailorOptions) (*TailorResult, error) {
	if opts.ResumePath == "" {
		return nil, fmt.Errorf("resume path is required")
	}
	if opts.Taxonomy == nil {
		opts.Taxonomy = config.DefaultTaxonomy()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.NewString()
	r := &run{
		opts:    opts,
		id:      id,
		out:     out,
		logger:  logger.With("run_id", id),
		tracker: steps.NewTracker(),
		printer: observability.NewPrinter(out),
	}
	result := &TailorResult{RunID: id}
	tax := opts.Taxonomy

	r.printf("Step 1/5: Parsing resume %s...\n", opts.ResumePath)
	doc, err := rendering.LoadTemplate(opts.ResumePath)
	if err != nil {
		return nil, fmt.Errorf("loading resume failed: %w", err)
	}
	parser := parsing.NewParser(tax.Layout, r.logger)
	result.Resume = parser.Parse(doc)
	if opts.Verbose {
		r.printer.PrintParsedResume(result.Resume)
	}
	if err := r.complete(steps.StepParseResume,
		fmt.Sprintf("Parsed %d resume sections", len(result.Resume.Sections())), result.Resume); err != nil {
		return nil, err
	}

	if opts.JobSource != "" {
		r.printf("Step 2/5: Analyzing job description from %s...\n", opts.JobSource)
		if err := r.analyzeJob(ctx, result); err != nil {
			return nil, err
		}
	} else {
		r.printf("Step 2/5: No job description given, skipping keyword analysis\n")
	}

	if opts.RequestPath == "" {
		r.printf("Step 3/5: No tailoring request given, nothing to apply\n")
		result.Steps = r.tracker.Completed()
		return result, nil
	}

	r.printf("Step 3/5: Applying tailoring request %s...\n", opts.RequestPath)
	req, err := LoadTailorRequest(opts.RequestPath)
	if err != nil {
		return nil, fmt.Errorf("loading tailoring request failed: %w", err)
	}
	if err := r.complete(steps.StepLoadRequest,
		fmt.Sprintf("Loaded %d tailored bullets", req.BulletCount()), nil); err != nil {
		return nil, err
	}

	reassembler := rendering.NewReassembler(tax, logger, rendering.WithRunID(id))
	report, err := reassembler.Run(doc, EscapeSections(req.Sections), req.Skills)
	if err != nil {
		if opts.Verbose {
			r.printer.PrintValidationResults(CheckBullets(tax, req))
		}
		return nil, fmt.Errorf("reassembling resume failed: %w", err)
	}
	result.Report = report
	if opts.Verbose {
		r.printer.PrintReport(report)
	}
	if err := r.complete(steps.StepReassemble,
		fmt.Sprintf("Applied %d of %d bullets", report.Applied(), len(report.Changes)), report); err != nil {
		return nil, err
	}
	if len(report.Misses) > 0 {
		r.printf("⚠️ Warning: %d bullet(s) were not found in the resume and were left unchanged.\n", len(report.Misses))
	}

	r.printf("Step 4/5: Writing tailored resume...\n")
	pdfName := rendering.ResumeFileName(fileNamePrefix(opts.NameForFiles), opts.Now().Year())
	result.TeXPath = filepath.Join(opts.OutputDir, strings.TrimSuffix(pdfName, ".pdf")+".tex")
	if err := os.MkdirAll(filepath.Dir(result.TeXPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(result.TeXPath, []byte(report.Document), 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", result.TeXPath, err)
	}
	if err := r.complete(steps.StepWriteTeX, "Wrote "+result.TeXPath, nil); err != nil {
		return nil, err
	}

	if opts.CompilePDF {
		r.printf("Step 5/5: Compiling PDF...\n")
		pdfPath := filepath.Join(opts.OutputDir, pdfName)
		if err := validation.CompileToPDF(ctx, report.Document, pdfPath); err != nil {
			return nil, fmt.Errorf("compiling resume failed: %w", err)
		}
		result.PDFPath = pdfPath
		if opts.MaxPages > 0 {
			r.checkPageCount(ctx, result)
		}
		if err := r.complete(steps.StepCompilePDF, "Compiled "+pdfPath, nil); err != nil {
			return nil, err
		}
	} else {
		r.printf("Step 5/5: PDF compilation disabled\n")
	}

	result.Steps = r.tracker.Completed()
	r.printf("Done! Tailored resume written to %s\n", result.TeXPath)
	return result, nil
}

// analyzeJob loads the job description, extracts its keywords and maps them
// onto the parsed resume sections
func (r *run) analyzeJob(ctx context.Context, result *TailorResult) error {
	text, meta, err := ingestion.Load(ctx, r.opts.JobSource, r.opts.Stdin)
	if err != nil {
		return fmt.Errorf("job ingestion failed: %w", err)
	}
	if len(meta.Flagged) > 0 {
		r.logger.Warn("job description contains instruction-like text", "matches", meta.Flagged)
	}
	if err := r.complete(steps.StepLoadJob,
		fmt.Sprintf("Loaded %s job description (%s)", meta.Format, meta.Hash[:12]), meta); err != nil {
		return err
	}

	set := keywords.NewExtractor(r.opts.Taxonomy, r.logger).Extract(text)
	result.Keywords = &set
	if r.opts.Verbose {
		r.printer.PrintKeywords(set)
	}
	if err := r.complete(steps.StepExtractKeywords,
		fmt.Sprintf("Extracted %d keywords", set.Count()), set); err != nil {
		return err
	}

	result.Suggestions = keywords.NewMapper(r.opts.Taxonomy, r.logger).Map(set, result.Resume.Sections())
	if r.opts.Verbose {
		r.printer.PrintMapping(result.Suggestions)
	}
	return r.complete(steps.StepSuggestKeywords,
		fmt.Sprintf("Suggested keywords for %d sections", len(result.Suggestions)), result.Suggestions)
}

// checkPageCount records the page count of the compiled resume and warns when
// it exceeds the limit. Counting failures are logged, not returned.
func (r *run) checkPageCount(ctx context.Context, result *TailorResult) {
	pages, err := validation.CountPDFPages(ctx, result.PDFPath)
	if err != nil {
		r.logger.Warn("could not count resume pages", "error", err)
		return
	}
	result.PageCount = pages
	if pages > r.opts.MaxPages {
		r.logger.Warn("tailored resume exceeds page limit", "pages", pages, "max_pages", r.opts.MaxPages)
		r.printf("⚠️ Warning: tailored resume has %d pages, limit is %d.\n", pages, r.opts.MaxPages)
	}
}

// EscapeSections returns a copy of sections with the tailored text made
// safe for insertion into LaTeX. Original text is left as written.
func EscapeSections(sections []types.TailoredSection) []types.TailoredSection {
	out := make([]types.TailoredSection, len(sections))
	for i, s := range sections {
		bullets := make([]types.BulletPoint, len(s.Bullets))
		for j, b := range s.Bullets {
			bullets[j] = types.BulletPoint{
				OriginalText: b.OriginalText,
				TailoredText: rendering.EscapeInline(b.TailoredText),
			}
		}
		out[i] = types.TailoredSection{Label: s.Label, Bullets: bullets}
	}
	return out
}

// CheckBullets validates every bullet of req without touching any document.
// A nil taxonomy uses the built-in one.
func CheckBullets(tax *config.Taxonomy, req *types.TailorRequest) []types.ValidationResult {
	if tax == nil {
		tax = config.DefaultTaxonomy()
	}
	v := validation.NewValidator(tax)
	results := make([]types.ValidationResult, 0, req.BulletCount())
	for _, s := range req.Sections {
		for _, b := range s.Bullets {
			results = append(results, v.Validate(b.OriginalText, b.TailoredText, s.Label))
		}
	}
	return results
}

func fileNamePrefix(name string) string {
	if name == "" {
		return "tailored"
	}
	return rendering.SanitizeFilename(name, 40)
}
