// Package rendering reassembles tailored resumes and renders cover letters as LaTeX.
package rendering

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/tailor-agent/internal/types"
)

// Supported cover letter languages
const (
	LangEnglish = "en"
	LangGerman  = "de"
)

var germanMonths = [...]string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

var (
	unresolvedPlaceholder = regexp.MustCompile(`\{\{[A-Z_]+\}\}`)
	unsafeFileChars       = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)
)

// Translator translates text into the target language
type Translator interface {
	Translate(text, lang string) (string, error)
}

// IdentityTranslator returns text unchanged
type IdentityTranslator struct{}

// Translate returns text as is
func (IdentityTranslator) Translate(text, _ string) (string, error) {
	return text, nil
}

// StaticTranslator looks up pre-translated text; unknown text is an error
type StaticTranslator map[string]string

// Translate returns the stored translation of text
func (s StaticTranslator) Translate(text, lang string) (string, error) {
	if out, ok := s[text]; ok {
		return out, nil
	}
	return "", fmt.Errorf("no %s translation for %q", lang, text)
}

// CoverLetterRenderer fills {{PLACEHOLDER}} cover letter templates
type CoverLetterRenderer struct {
	applicant  types.Applicant
	translator Translator
	validate   *validator.Validate
	now        func() time.Time
	logger     *slog.Logger
}

// NewCoverLetterRenderer creates a renderer; a nil translator keeps German
// letters in the source language
func NewCoverLetterRenderer(applicant types.Applicant, translator Translator, logger *slog.Logger) *CoverLetterRenderer {
	if translator == nil {
		translator = IdentityTranslator{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CoverLetterRenderer{
		applicant:  applicant,
		translator: translator,
		validate:   validator.New(),
		now:        time.Now,
		logger:     logger,
	}
}

// SetClock replaces the time source used for the {{DATE}} placeholder
func (r *CoverLetterRenderer) SetClock(now func() time.Time) {
	r.now = now
}

// Render fills template for lang. User content is translated (German only)
// and LaTeX-escaped; applicant details are inserted verbatim.
func (r *CoverLetterRenderer) Render(template string, input types.CoverLetterInput, lang string) (string, error) {
	if lang != LangEnglish && lang != LangGerman {
		return "", &RenderError{Language: lang, Message: fmt.Sprintf("unsupported language: %s", lang)}
	}
	input = input.WithDefaults()
	if err := r.validate.Struct(input); err != nil {
		return "", &RenderError{Language: lang, Message: "invalid cover letter input", Cause: err}
	}

	text := func(s string) string {
		if s == "" {
			return ""
		}
		return EscapeLaTeX(r.translate(s, lang))
	}

	items := make([]string, len(input.BulletSections))
	for i, b := range input.BulletSections {
		items[i] = `  \item ` + text(b)
	}

	replacer := strings.NewReplacer(
		"{{FULL_NAME}}", r.applicant.FullName,
		"{{LOCATION}}", r.applicant.Location,
		"{{PHONE}}", r.applicant.Phone,
		"{{EMAIL}}", r.applicant.Email,
		"{{LINKEDIN_URL}}", r.applicant.LinkedInURL,
		"{{GITHUB_URL}}", r.applicant.GitHubURL,
		"{{DATE}}", FormatDate(r.now(), lang),
		"{{COMPANY_NAME}}", text(input.CompanyName),
		"{{COMPANY_ADDRESS}}", text(input.CompanyAddress),
		"{{SUBJECT}}", text(input.Subject),
		"{{SALUTATION}}", text(input.Salutation),
		"{{INTRO_PARAGRAPH}}", text(input.IntroParagraph),
		"{{BULLET_SECTIONS}}", strings.Join(items, "\n"),
		"{{CLOSING_PARAGRAPH}}", text(input.ClosingParagraph),
	)
	out := replacer.Replace(template)

	if left := unresolvedPlaceholder.FindAllString(out, -1); len(left) > 0 {
		return "", &TemplateError{Message: fmt.Sprintf("unknown placeholders: %s", strings.Join(left, ", "))}
	}
	return out, nil
}

// translate falls back to the source text when translation fails
func (r *CoverLetterRenderer) translate(text, lang string) string {
	if lang == LangEnglish {
		return text
	}
	out, err := r.translator.Translate(text, lang)
	if err != nil {
		r.logger.Warn("translation failed, using source text", "lang", lang, "error", err)
		return text
	}
	return out
}

// LoadTemplate reads a LaTeX template file
func LoadTemplate(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &TemplateError{Path: path, Message: "template file not found", Cause: err}
		}
		return "", &TemplateError{Path: path, Message: "failed to read template file", Cause: err}
	}
	return string(content), nil
}

// FormatDate formats t as "January 02, 2006" or, in German, "14. Januar 2026"
func FormatDate(t time.Time, lang string) string {
	if lang == LangGerman {
		return fmt.Sprintf("%d. %s %d", t.Day(), germanMonths[t.Month()-1], t.Year())
	}
	return t.Format("January 02, 2006")
}

// SanitizeFilename replaces characters unsafe in file names with underscores
// and truncates the result to maxLen bytes
func SanitizeFilename(name string, maxLen int) string {
	s := unsafeFileChars.ReplaceAllString(strings.TrimSpace(name), "_")
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}

// OutputDirectory returns base/{company[:6]}_{position[:20]}
func OutputDirectory(base, company, position string) string {
	return filepath.Join(base, SanitizeFilename(company, 6)+"_"+SanitizeFilename(position, 20))
}

// CoverLetterFileName returns {name}_cover_letter_{lang}_{year}.pdf
func CoverLetterFileName(nameForFiles, lang string, year int) string {
	return fmt.Sprintf("%s_cover_letter_%s_%d.pdf", nameForFiles, lang, year)
}

// ResumeFileName returns {name}_resume_{year}.pdf
func ResumeFileName(nameForFiles string, year int) string {
	return fmt.Sprintf("%s_resume_%d.pdf", nameForFiles, year)
}
