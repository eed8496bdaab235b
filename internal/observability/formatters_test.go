package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/tailor-agent/internal/rendering"
	"github.com/jonathan/tailor-agent/internal/types"
)

func TestPrintKeywords(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	set := types.NewKeywordSet([]types.KeywordCategory{
		{Name: "languages", Keywords: []string{"Python", "SQL"}},
		{Name: "databases", Keywords: []string{}},
		{Name: "libraries", Keywords: []string{"NumPy"}},
	})

	p.PrintKeywords(set)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED KEYWORDS")
	assert.Contains(t, output, "Total keywords: 3")
	assert.Contains(t, output, "languages:")
	assert.Contains(t, output, "Python, SQL")
	assert.NotContains(t, output, "databases:")
}

func TestPrintMapping(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMapping(types.KeywordMapping{
		"Workout Robot":        {"NumPy", "Computer Vision"},
		"AI-Driven Reels Pipe": {"LLMs"},
	})
	output := buf.String()

	assert.Contains(t, output, "KEYWORD SUGGESTIONS")
	assert.Contains(t, output, "+ NumPy, Computer Vision")
	assert.Less(t, strings.Index(output, "AI-Driven"), strings.Index(output, "Workout Robot"))
}

func TestPrintMapping_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMapping(nil)

	assert.Contains(t, buf.String(), "No suggestions")
}

func TestPrintParsedResume(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintParsedResume(types.ParsedResume{
		Experience: []types.ResumeSection{{
			Kind: types.SectionExperience, Title: "Engineer", Organization: "Brandl Nutrition",
			Bullets: []types.BulletPoint{{OriginalText: "a", TailoredText: "a"}},
		}},
		Projects:   []types.ResumeSection{},
		Hackathons: []types.ResumeSection{},
	})
	output := buf.String()

	assert.Contains(t, output, "Experience: 1  Projects: 0  Hackathons: 0")
	assert.Contains(t, output, "[experience] Engineer | Brandl Nutrition")
	assert.Contains(t, output, "Skills: not found")
}

func TestPrintValidationResults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidationResults([]types.ValidationResult{
		{Label: "Forecasting", Valid: true, RemovedRatio: 0.1},
		{Label: "Latency", Rule: types.RuleNumbers, Missing: []string{"50%"}},
	})
	output := buf.String()

	assert.Contains(t, output, "✓ Forecasting (removed 10%)")
	assert.Contains(t, output, "✗ Latency")
	assert.Contains(t, output, "50%")
	assert.Contains(t, output, "1 passed, 1 failed")
}

func TestPrintValidationResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintValidationResults(nil)

	assert.Empty(t, buf.String())
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(&rendering.Report{
		RunID: "run-1",
		Changes: []rendering.BulletChange{
			{TailoredText: "Reduced latency by 50%", Located: true, Strategy: "escape", ChangeRatio: 0.4},
			{TailoredText: "Designed a compiler"},
		},
		Misses:         []string{"Designed a compiler"},
		SkillsReplaced: true,
	})
	output := buf.String()

	assert.Contains(t, output, "TAILORING REPORT")
	assert.Contains(t, output, "Applied: 1 of 2 bullets")
	assert.Contains(t, output, "escape, changed 40%")
	assert.Contains(t, output, "not found")
	assert.Contains(t, output, "1 bullet(s) not found")
	assert.Contains(t, output, "Skills: replaced")
}

func TestPrintReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintReport(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("ü", 100))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")

	for _, line := range lines {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"aa, bb,", "cc"}, wrap([]string{"aa", "bb", "cc"}, 6))
	assert.Nil(t, wrap(nil, 10))
}
