package rendering

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/tailor-agent/internal/types"
)

const letterTemplate = `\signature{{{FULL_NAME}}}
\address{{{LOCATION}} \\ {{PHONE}} \\ {{EMAIL}} \\ \href{{{LINKEDIN_URL}}}{LinkedIn} \\ \href{{{GITHUB_URL}}}{GitHub}}
\date{{{DATE}}}
\begin{letter}{{{COMPANY_NAME}} \\ {{COMPANY_ADDRESS}}}
\textbf{{{SUBJECT}}}
\opening{{{SALUTATION}}}
{{INTRO_PARAGRAPH}}
\begin{itemize}
{{BULLET_SECTIONS}}
\end{itemize}
{{CLOSING_PARAGRAPH}}
\end{letter}`

var testApplicant = types.Applicant{
	FullName:    "Jane Doe",
	Location:    "Braunschweig, Germany",
	Phone:       "+49 000 000000",
	Email:       "jane.doe@example.com",
	LinkedInURL: "https://www.linkedin.com/in/janedoe",
	GitHubURL:   "https://github.com/janedoe",
}

func testInput() types.CoverLetterInput {
	return types.CoverLetterInput{
		CompanyName:      "R&D Labs",
		JobPosition:      "ML Engineer",
		Subject:          "Application for ML Engineer",
		IntroParagraph:   "I am excited to apply.",
		BulletSections:   []string{"Cut costs by 30%", "Shipped C# tooling"},
		ClosingParagraph: "Thank you for your time.",
	}
}

func newTestRenderer(buf *bytes.Buffer, tr Translator) *CoverLetterRenderer {
	r := NewCoverLetterRenderer(testApplicant, tr, slog.New(slog.NewTextHandler(buf, nil)))
	r.now = func() time.Time { return time.Date(2026, time.January, 4, 9, 0, 0, 0, time.UTC) }
	return r
}

func TestRender_English(t *testing.T) {
	out, err := newTestRenderer(&bytes.Buffer{}, nil).Render(letterTemplate, testInput(), LangEnglish)
	require.NoError(t, err)

	assert.Contains(t, out, `\signature{Jane Doe}`)
	assert.Contains(t, out, `\href{https://github.com/janedoe}{GitHub}`)
	assert.Contains(t, out, `\date{January 04, 2026}`)
	assert.Contains(t, out, `\begin{letter}{R\&D Labs \\ }`)
	assert.Contains(t, out, `\opening{Dear Hiring Manager:}`)
	assert.Contains(t, out, "  \\item Cut costs by 30\\%\n  \\item Shipped C\\# tooling")
	assert.NotContains(t, out, "{{")
}

func TestRender_GermanTranslatesContent(t *testing.T) {
	tr := StaticTranslator{
		"Application for ML Engineer": "Bewerbung als ML Engineer",
		"I am excited to apply.":      "Ich freue mich, mich zu bewerben.",
	}
	var buf bytes.Buffer

	out, err := newTestRenderer(&buf, tr).Render(letterTemplate, testInput(), LangGerman)
	require.NoError(t, err)

	assert.Contains(t, out, `\date{4. Januar 2026}`)
	assert.Contains(t, out, `\textbf{Bewerbung als ML Engineer}`)
	assert.Contains(t, out, "Ich freue mich, mich zu bewerben.")
	// untranslated text falls back to the source
	assert.Contains(t, out, "Thank you for your time.")
	assert.Contains(t, buf.String(), "translation failed")
}

func TestRender_EnglishSkipsTranslator(t *testing.T) {
	var buf bytes.Buffer
	_, err := newTestRenderer(&buf, StaticTranslator{}).Render(letterTemplate, testInput(), LangEnglish)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestRender_InvalidInput(t *testing.T) {
	input := testInput()
	input.BulletSections = nil

	_, err := newTestRenderer(&bytes.Buffer{}, nil).Render(letterTemplate, input, LangEnglish)

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Contains(t, err.Error(), "invalid cover letter input")
}

func TestRender_UnsupportedLanguage(t *testing.T) {
	_, err := newTestRenderer(&bytes.Buffer{}, nil).Render(letterTemplate, testInput(), "fr")
	assert.Error(t, err)
}

func TestRender_UnknownPlaceholder(t *testing.T) {
	_, err := newTestRenderer(&bytes.Buffer{}, nil).Render(letterTemplate+"{{PORTFOLIO_URL}}", testInput(), LangEnglish)

	var tmplErr *TemplateError
	require.True(t, errors.As(err, &tmplErr))
	assert.Contains(t, err.Error(), "{{PORTFOLIO_URL}}")
}

func TestLoadTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letter.tex")
	require.NoError(t, os.WriteFile(path, []byte(letterTemplate), 0644))

	content, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, letterTemplate, content)

	_, err = LoadTemplate(filepath.Join(t.TempDir(), "missing.tex"))
	var tmplErr *TemplateError
	require.True(t, errors.As(err, &tmplErr))
	assert.Contains(t, err.Error(), "template file not found")
}

func TestFormatDate(t *testing.T) {
	day := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "March 14, 2026", FormatDate(day, LangEnglish))
	assert.Equal(t, "14. März 2026", FormatDate(day, LangGerman))
	assert.Equal(t, "1. Dezember 2025", FormatDate(time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), LangGerman))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "Brandl_Nutrition", SanitizeFilename("  Brandl Nutrition ", 30))
	assert.Equal(t, "Senior", SanitizeFilename("Senior Engineer", 6))
	assert.Equal(t, "M_ller_Co_", SanitizeFilename("Müller/Co.", 30))
}

func TestOutputDirectory(t *testing.T) {
	dir := OutputDirectory("/out", "SciBiome GmbH", "Senior Machine Learning Engineer (m/w/d)")
	assert.Equal(t, filepath.Join("/out", "SciBio_Senior_Machine_Learn"), dir)
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "JANE_DOE_cover_letter_de_2026.pdf", CoverLetterFileName("JANE_DOE", LangGerman, 2026))
	assert.Equal(t, "JANE_DOE_resume_2026.pdf", ResumeFileName("JANE_DOE", 2026))
}
