package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/tailor-agent/internal/config"
	"github.com/jonathan/tailor-agent/internal/types"
)

func section(title, org string, bullets ...string) types.ResumeSection {
	s := types.ResumeSection{Kind: types.SectionExperience, Title: title, Organization: org}
	for _, b := range bullets {
		s.Bullets = append(s.Bullets, types.BulletPoint{OriginalText: b})
	}
	return s
}

func TestMap_PyTorchImpliesNumPy(t *testing.T) {
	tax := config.DefaultTaxonomy()
	set := NewExtractor(tax, nil).Extract("PyTorch, NumPy and deep learning experience")
	sections := []types.ResumeSection{
		section("AI/ML Engineer Intern", "TECHR",
			"Built image enhancement pipeline using PyTorch and OpenCV"),
	}

	mapping := NewMapper(tax, nil).Map(set, sections)

	assert.Equal(t, []string{"NumPy", "Deep Learning"}, mapping["AI/ML Engineer Intern | TECHR"])
}

func TestMap_ImpliedKeywordMustBeExtracted(t *testing.T) {
	tax := config.DefaultTaxonomy()
	set := NewExtractor(tax, nil).Extract("We need Vector Database knowledge")
	sections := []types.ResumeSection{
		section("Research Assistant", "SciBiome", "Built agent with Qdrant and PyTorch"),
	}

	mapping := NewMapper(tax, nil).Map(set, sections)

	// NumPy is implied by PyTorch but not requested by the job description
	assert.Equal(t, []string{"Vector Database"}, mapping["Research Assistant | SciBiome"])
}

func TestMap_NoEntryWithoutHints(t *testing.T) {
	tax := config.DefaultTaxonomy()
	set := NewExtractor(tax, nil).Extract("NumPy, Vector Database, LLMs")
	sections := []types.ResumeSection{
		section("Barista", "Cafe", "Served coffee to 200 customers a day"),
	}

	mapping := NewMapper(tax, nil).Map(set, sections)

	_, ok := mapping["Barista | Cafe"]
	assert.False(t, ok)
	assert.Empty(t, mapping)
}

func TestMap_NeverSuggestsRAG(t *testing.T) {
	tax := config.DefaultTaxonomy()
	tax.Hints = append(tax.Hints, config.HintRule{Hint: "langgraph", Implies: []string{"RAG"}})
	set := NewExtractor(tax, nil).Extract("RAG pipelines, LLM agents")
	sections := []types.ResumeSection{
		{Kind: types.SectionProject, Title: "AI ReAs", Bullets: []types.BulletPoint{
			{OriginalText: "Built multi-agent system with LangGraph"},
		}},
	}

	mapping := NewMapper(tax, nil).Map(set, sections)

	assert.Equal(t, []string{"LLMs"}, mapping["AI ReAs"])
}

func TestMap_SkipsKeywordsAlreadyPresent(t *testing.T) {
	tax := config.DefaultTaxonomy()
	set := NewExtractor(tax, nil).Extract("numpy pandas")
	sections := []types.ResumeSection{
		section("Data Engineer", "Acme", "Cleaned data with Pandas and NumPy"),
	}

	mapping := NewMapper(tax, nil).Map(set, sections)

	assert.Empty(t, mapping)
}

func TestMap_PreservesHintOrderWithoutDuplicates(t *testing.T) {
	tax := config.DefaultTaxonomy()
	set := NewExtractor(tax, nil).Extract("numpy, deep learning, computer vision")
	sections := []types.ResumeSection{
		section("Engineer", "Lab", "Trained models in PyTorch and TensorFlow with OpenCV preprocessing"),
	}

	mapping := NewMapper(tax, nil).Map(set, sections)

	assert.Equal(t, []string{"NumPy", "Deep Learning", "Computer Vision"}, mapping["Engineer | Lab"])
}

func TestMap_KeywordInsideLongerWordIsStillSuggested(t *testing.T) {
	tax := config.DefaultTaxonomy()
	set := NewExtractor(tax, nil).Extract("We run on AWS and use SQL daily")
	sections := []types.ResumeSection{
		section("Data Engineer", "Acme", "Built reporting that draws sales data through EventBridge"),
		section("Backend Engineer", "Shop", "Tuned PostgreSQL indexes"),
	}

	mapping := NewMapper(tax, nil).Map(set, sections)

	assert.Equal(t, []string{"AWS"}, mapping["Data Engineer | Acme"])
	assert.Equal(t, []string{"SQL"}, mapping["Backend Engineer | Shop"])
}
