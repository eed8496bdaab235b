package keywords

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/tailor-agent/internal/config"
)

func newTestExtractor() *Extractor {
	return NewExtractor(config.DefaultTaxonomy(), nil)
}

func TestExtract_RequiredScenario(t *testing.T) {
	set := newTestExtractor().Extract("Requires Python, AWS, Docker, NLP experience")

	assert.Equal(t, []string{"Python"}, set.Get(config.CategoryLanguages))
	assert.Equal(t, []string{"AWS", "Docker"}, set.Get(config.CategoryCloudDevOps))
	assert.Equal(t, []string{"NLP"}, set.Get(config.CategoryAIMLConcepts))
	assert.Empty(t, set.Get(config.CategoryDatabases))
	assert.Equal(t, 4, set.Count())
}

func TestExtract_AllCategoriesPresentWhenEmpty(t *testing.T) {
	set := newTestExtractor().Extract("We value punctuality.")

	tax := config.DefaultTaxonomy()
	require.Len(t, set.Categories, len(tax.Categories))
	for i, c := range tax.Categories {
		assert.Equal(t, c.Name, set.Categories[i].Name)
		assert.NotNil(t, set.Categories[i].Keywords)
		assert.Empty(t, set.Categories[i].Keywords)
	}
}

func TestExtract_CaseInsensitive(t *testing.T) {
	inputs := []string{
		"Requires Python, AWS, Docker, NLP experience",
		"Looking for llm and ci/cd skills with PostgreSQL, pandas and numpy",
		"Scrum team building RAG systems on GCP with PyTorch",
	}
	ex := newTestExtractor()
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, ex.Extract(in), ex.Extract(strings.ToUpper(in)))
		})
	}
}

func TestExtract_DisplayCasing(t *testing.T) {
	set := newTestExtractor().Extract("experience with llm apps and ci/cd pipelines")

	assert.Equal(t, []string{"LLMs"}, set.Get(config.CategoryAIMLConcepts))
	assert.Equal(t, []string{"CI/CD"}, set.Get(config.CategoryCloudDevOps))
}

func TestExtract_DeduplicatesByDisplayForm(t *testing.T) {
	set := newTestExtractor().Extract("Postgres or PostgreSQL, Next.js / NextJS")

	assert.Equal(t, []string{"PostgreSQL"}, set.Get(config.CategoryDatabases))
	assert.Equal(t, []string{"Next.js"}, set.Get(config.CategoryFrameworks))
}

func TestExtract_DeclarationOrder(t *testing.T) {
	set := newTestExtractor().Extract("Docker and AWS")

	// AWS precedes Docker in the taxonomy
	assert.Equal(t, []string{"AWS", "Docker"}, set.Get(config.CategoryCloudDevOps))
}

func TestExtract_WholeWordTerms(t *testing.T) {
	set := newTestExtractor().Extract("JavaScript storage layer with trusted, scalable laws")

	assert.Equal(t, []string{"JavaScript"}, set.Get(config.CategoryLanguages))
	assert.Empty(t, set.Get(config.CategoryAIMLConcepts))
	assert.Empty(t, set.Get(config.CategoryCloudDevOps))
}

func TestExtract_WholeWordIsPerEntry(t *testing.T) {
	set := newTestExtractor().Extract("Five years of MySQL administration")
	assert.Empty(t, set.Get(config.CategoryLanguages))
	assert.Equal(t, []string{"MySQL"}, set.Get(config.CategoryDatabases))

	tax := &config.Taxonomy{Categories: []config.Category{
		{Name: "languages", Keywords: []config.KeywordEntry{{Term: "sql", Display: "SQL"}}},
	}}
	set = NewExtractor(tax, nil).Extract("Five years of MySQL administration")
	assert.Equal(t, []string{"SQL"}, set.Get("languages"))
}

func TestExtract_Deterministic(t *testing.T) {
	ex := newTestExtractor()
	jd := "Python FastAPI Docker Kubernetes Redis MongoDB NLP LLM leadership"
	first := ex.Extract(jd)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ex.Extract(jd))
	}
}

func TestExtract_CustomTaxonomy(t *testing.T) {
	tax := &config.Taxonomy{
		Categories: []config.Category{
			{Name: "tools", Keywords: []config.KeywordEntry{{Term: "n8n"}, {Term: "zapier", Display: "Zapier"}}},
		},
	}
	set := NewExtractor(tax, nil).Extract("Automations in N8N and Zapier")

	assert.Equal(t, []string{"n8n", "Zapier"}, set.Get("tools"))
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		term      string
		wholeWord bool
		want      bool
	}{
		{"substring", "postgresql", "sql", false, true},
		{"whole word at start", "aws lambda", "aws", true, true},
		{"whole word at end", "deployed on aws", "aws", true, true},
		{"whole word glued", "laws", "aws", true, false},
		{"whole word second occurrence", "laws and aws", "aws", true, true},
		{"punctuation boundary", "(rag)", "rag", true, true},
		{"empty term", "anything", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matches(tt.text, tt.term, tt.wholeWord))
		})
	}
}

func TestFlatten(t *testing.T) {
	got := newTestExtractor().Flatten("Requires Python, AWS, Docker, NLP experience")

	assert.Equal(t, []string{"Python", "AWS", "Docker", "NLP"}, got)
	assert.Empty(t, newTestExtractor().Flatten("nothing technical here"))
}
