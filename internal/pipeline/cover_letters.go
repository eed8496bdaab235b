package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/tailor-agent/internal/pipeline/steps"
	"github.com/jonathan/tailor-agent/internal/rendering"
	"github.com/jonathan/tailor-agent/internal/types"
	"github.com/jonathan/tailor-agent/internal/validation"
)

// CoverLetterOptions holds configuration for building cover letters
type CoverLetterOptions struct {
	Input      types.CoverLetterInput
	Applicant  types.Applicant
	Templates  map[string]string // language -> template path
	OutputDir  string            // base directory; a per-application folder is created inside
	CompilePDF bool
	Translator rendering.Translator // nil uses the input's German text, if any
	Out        io.Writer
	Logger     *slog.Logger
	OnProgress ProgressCallback
	Now        func() time.Time
}

// CoverLetter is one generated letter
type CoverLetter struct {
	Language string `json:"language"`
	TeXPath  string `json:"tex_path"`
	PDFPath  string `json:"pdf_path,omitempty"`
}

// BuildCoverLetters renders the letter in every language that has a template
// and writes the results to the application's output directory. Languages
// are built concurrently; the first failure cancels the rest.
func BuildCoverLetters(ctx context.Context, opts CoverLetterOptions) ([]CoverLetter, error) {
	if len(opts.Templates) == 0 {
		return nil, fmt.Errorf("no cover letter templates given")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	translator := opts.Translator
	if translator == nil && len(opts.Input.German) > 0 {
		translator = rendering.StaticTranslator(opts.Input.German)
	}
	renderer := rendering.NewCoverLetterRenderer(opts.Applicant, translator, logger)
	renderer.SetClock(opts.Now)

	dir := rendering.OutputDirectory(opts.OutputDir, opts.Input.CompanyName, opts.Input.JobPosition)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	prefix := fileNamePrefix(opts.Applicant.NameForFiles)
	year := opts.Now().Year()

	langs := sortedLanguages(opts.Templates)
	letters := make([]CoverLetter, len(langs))
	var outMu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	for i, lang := range langs {
		i, lang := i, lang
		g.Go(func() error {
			template, err := rendering.LoadTemplate(opts.Templates[lang])
			if err != nil {
				return fmt.Errorf("%s cover letter: %w", lang, err)
			}
			latex, err := renderer.Render(template, opts.Input, lang)
			if err != nil {
				return fmt.Errorf("%s cover letter: %w", lang, err)
			}

			pdfName := rendering.CoverLetterFileName(prefix, lang, year)
			letter := CoverLetter{
				Language: lang,
				TeXPath:  filepath.Join(dir, strings.TrimSuffix(pdfName, ".pdf")+".tex"),
			}
			if err := os.WriteFile(letter.TeXPath, []byte(latex), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", letter.TeXPath, err)
			}
			if opts.CompilePDF {
				letter.PDFPath = filepath.Join(dir, pdfName)
				if err := validation.CompileToPDF(gCtx, latex, letter.PDFPath); err != nil {
					return fmt.Errorf("%s cover letter: %w", lang, err)
				}
			}
			letters[i] = letter

			outMu.Lock()
			//nolint:errcheck // progress output
			fmt.Fprintf(out, "✅ %s cover letter written to %s\n", strings.ToUpper(lang), letter.TeXPath)
			if opts.OnProgress != nil {
				opts.OnProgress(ProgressEvent{
					Step:     steps.StepCoverLetter,
					Category: steps.CategoryRendering,
					Message:  fmt.Sprintf("Rendered %s cover letter", lang),
					Content:  letter,
				})
			}
			outMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("cover letters built", "count", len(letters), "dir", dir)
	return letters, nil
}

// sortedLanguages returns English first, then German, then anything else
// alphabetically, so output order is stable
func sortedLanguages(templates map[string]string) []string {
	var langs []string
	for _, known := range []string{rendering.LangEnglish, rendering.LangGerman} {
		if _, ok := templates[known]; ok {
			langs = append(langs, known)
		}
	}
	var rest []string
	for lang := range templates {
		if lang != rendering.LangEnglish && lang != rendering.LangGerman {
			rest = append(rest, lang)
		}
	}
	sort.Strings(rest)
	return append(langs, rest...)
}
