// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// KeywordEntry is one recognizable term. Term is matched case-insensitively as a
// substring of the job description; WholeWord additionally requires that the
// characters around the match are not letters or digits.
type KeywordEntry struct {
	Term      string `yaml:"term" validate:"required"`
	Display   string `yaml:"display,omitempty"`
	WholeWord bool   `yaml:"whole_word,omitempty"`
}

// DisplayForm returns the casing used when the term is reported
func (e KeywordEntry) DisplayForm() string {
	if e.Display != "" {
		return e.Display
	}
	return e.Term
}

// Category groups keyword entries under a fixed name
type Category struct {
	Name     string         `yaml:"name" validate:"required"`
	Keywords []KeywordEntry `yaml:"keywords" validate:"dive"`
}

// HintRule says that a section mentioning Hint may safely gain the Implies keywords
type HintRule struct {
	Hint    string   `yaml:"hint" validate:"required"`
	Implies []string `yaml:"implies" validate:"min=1,dive,required"`
}

// Thresholds are the numeric policies of the surgical editing pipeline
type Thresholds struct {
	MaxRemovedRatio float64 `yaml:"max_removed_ratio" validate:"gt=0,lte=1"`
	ChangeWarnRatio float64 `yaml:"change_warn_ratio" validate:"gt=0,lte=1"`
	AnchorOverlap   float64 `yaml:"anchor_overlap" validate:"gt=0,lte=1"`
}

// Layout describes the structural markers of the resume template
type Layout struct {
	ExperienceHeadings []string `yaml:"experience_headings" validate:"min=1"`
	ProjectHeadings    []string `yaml:"project_headings" validate:"min=1"`
	HackathonHeadings  []string `yaml:"hackathon_headings" validate:"min=1"`
	SkillsHeadings     []string `yaml:"skills_headings" validate:"min=1"`
	ItemCommand        string   `yaml:"item_command" validate:"required"`
}

// Taxonomy is the swappable table set consumed by the keyword, parsing,
// validation and locating components.
type Taxonomy struct {
	Categories    []Category `yaml:"categories" validate:"min=1,dive"`
	Hints         []HintRule `yaml:"hints" validate:"dive"`
	NeverSuggest  []string   `yaml:"never_suggest"`
	Organizations []string   `yaml:"organizations" validate:"dive,required"`
	ProperNouns   []string   `yaml:"proper_nouns" validate:"dive,required"`
	Thresholds    Thresholds `yaml:"thresholds"`
	Layout        Layout     `yaml:"layout"`
}

// LoadTaxonomy reads a YAML taxonomy file. Omitted thresholds and layout
// fields keep their default values.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	if path == "" {
		return nil, fmt.Errorf("taxonomy path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file %s: %w", path, err)
	}
	return ParseTaxonomy(data)
}

// ParseTaxonomy decodes and validates a YAML taxonomy document
func ParseTaxonomy(data []byte) (*Taxonomy, error) {
	defaults := DefaultTaxonomy()
	tax := &Taxonomy{
		Thresholds: defaults.Thresholds,
		Layout:     defaults.Layout,
	}
	if err := yaml.Unmarshal(data, tax); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy YAML: %w", err)
	}
	if err := tax.Validate(); err != nil {
		return nil, err
	}
	return tax, nil
}

// Validate checks the taxonomy against its struct rules
func (t *Taxonomy) Validate() error {
	if err := validator.New().Struct(t); err != nil {
		return fmt.Errorf("taxonomy error: %w", err)
	}
	seen := make(map[string]bool)
	for _, c := range t.Categories {
		if seen[c.Name] {
			return fmt.Errorf("taxonomy error: duplicate category %q", c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

// Category names of the default taxonomy
const (
	CategoryLanguages    = "languages"
	CategoryFrameworks   = "frameworks"
	CategoryLibraries    = "libraries"
	CategoryCloudDevOps  = "cloud_devops"
	CategoryDatabases    = "databases"
	CategoryAIMLConcepts = "ai_ml_concepts"
	CategorySoftConcepts = "soft_concepts"
)

func kw(term, display string) KeywordEntry {
	return KeywordEntry{Term: term, Display: display}
}

func word(term, display string) KeywordEntry {
	return KeywordEntry{Term: term, Display: display, WholeWord: true}
}

// DefaultTaxonomy returns the built-in tables. Each call returns a fresh value.
func DefaultTaxonomy() *Taxonomy {
	return &Taxonomy{
		Categories: []Category{
			{Name: CategoryLanguages, Keywords: []KeywordEntry{
				kw("python", "Python"),
				kw("javascript", "JavaScript"),
				kw("typescript", "TypeScript"),
				word("java", "Java"),
				kw("golang", "Go"),
				word("rust", "Rust"),
				kw("c++", "C++"),
				word("bash", "Bash"),
				word("sql", "SQL"),
				word("scala", "Scala"),
				kw("kotlin", "Kotlin"),
			}},
			{Name: CategoryFrameworks, Keywords: []KeywordEntry{
				kw("fastapi", "FastAPI"),
				kw("django", "Django"),
				kw("flask", "Flask"),
				word("react", "React"),
				kw("next.js", "Next.js"),
				kw("nextjs", "Next.js"),
				kw("node.js", "Node.js"),
				kw("langchain", "LangChain"),
				kw("langgraph", "LangGraph"),
				kw("rest api", "REST APIs"),
				word("spring", "Spring"),
			}},
			{Name: CategoryLibraries, Keywords: []KeywordEntry{
				kw("numpy", "NumPy"),
				kw("pandas", "Pandas"),
				kw("pytorch", "PyTorch"),
				kw("tensorflow", "TensorFlow"),
				kw("scikit-learn", "Scikit-learn"),
				kw("opencv", "OpenCV"),
				kw("huggingface", "HuggingFace"),
				kw("hugging face", "HuggingFace"),
				kw("spacy", "spaCy"),
				kw("playwright", "Playwright"),
				kw("selenium", "Selenium"),
			}},
			{Name: CategoryCloudDevOps, Keywords: []KeywordEntry{
				word("aws", "AWS"),
				word("gcp", "GCP"),
				kw("azure", "Azure"),
				kw("docker", "Docker"),
				kw("kubernetes", "Kubernetes"),
				kw("terraform", "Terraform"),
				kw("ci/cd", "CI/CD"),
				kw("github actions", "GitHub Actions"),
				kw("linux", "Linux"),
				kw("vertex ai", "Vertex AI"),
			}},
			{Name: CategoryDatabases, Keywords: []KeywordEntry{
				kw("postgresql", "PostgreSQL"),
				kw("postgres", "PostgreSQL"),
				kw("mysql", "MySQL"),
				kw("mongodb", "MongoDB"),
				kw("redis", "Redis"),
				kw("qdrant", "Qdrant"),
				kw("neo4j", "Neo4j"),
				word("faiss", "FAISS"),
				kw("vector database", "Vector Database"),
				kw("elasticsearch", "Elasticsearch"),
			}},
			{Name: CategoryAIMLConcepts, Keywords: []KeywordEntry{
				kw("machine learning", "Machine Learning"),
				kw("deep learning", "Deep Learning"),
				word("nlp", "NLP"),
				kw("llm", "LLMs"),
				word("rag", "RAG"),
				kw("computer vision", "Computer Vision"),
				kw("generative ai", "Generative AI"),
				kw("transformers", "Transformers"),
				kw("time series", "Time Series"),
				kw("forecasting", "Forecasting"),
				kw("mlops", "MLOps"),
				kw("ai agents", "AI Agents"),
				kw("prompt engineering", "Prompt Engineering"),
			}},
			{Name: CategorySoftConcepts, Keywords: []KeywordEntry{
				kw("communication", "Communication"),
				kw("leadership", "Leadership"),
				kw("teamwork", "Teamwork"),
				kw("collaboration", "Collaboration"),
				word("agile", "Agile"),
				word("scrum", "Scrum"),
				kw("problem-solving", "Problem-solving"),
				kw("stakeholder", "Stakeholder Management"),
				kw("mentoring", "Mentoring"),
				kw("ownership", "Ownership"),
			}},
		},
		Hints: []HintRule{
			{Hint: "pytorch", Implies: []string{"NumPy", "Deep Learning"}},
			{Hint: "tensorflow", Implies: []string{"NumPy", "Deep Learning"}},
			{Hint: "pandas", Implies: []string{"NumPy"}},
			{Hint: "opencv", Implies: []string{"Computer Vision", "NumPy"}},
			{Hint: "qdrant", Implies: []string{"Vector Database"}},
			{Hint: "faiss", Implies: []string{"Vector Database"}},
			{Hint: "fastapi", Implies: []string{"REST APIs", "Python"}},
			{Hint: "langgraph", Implies: []string{"LLMs", "AI Agents"}},
			{Hint: "langchain", Implies: []string{"LLMs"}},
			{Hint: "gemini", Implies: []string{"LLMs", "Generative AI"}},
			{Hint: "eventbridge", Implies: []string{"AWS"}},
			{Hint: "cloudwatch", Implies: []string{"AWS"}},
			{Hint: "postgresql", Implies: []string{"SQL"}},
			{Hint: "prophet", Implies: []string{"Time Series", "Forecasting"}},
			{Hint: "chronos", Implies: []string{"Time Series", "Forecasting"}},
		},
		NeverSuggest: []string{"RAG"},
		Organizations: []string{
			"Brandl Nutrition",
			"Brandl",
			"Nutrition",
			"Braunschweig",
			"SciBiome",
			"TECHR",
			"TU",
		},
		ProperNouns: []string{
			"Prophet", "Chronos-2", "Moirai", "Looker Studio", "EventBridge",
			"CloudWatch", "Shopify", "DHL", "FastAPI", "Gemini", "Docling",
			"LangGraph", "LightRAG", "Neo4j", "Qdrant", "CycleGAN", "KBNets",
			"Real-ESRGAN", "YOLOv11", "ElevenLabs", "Raspberry Pi",
		},
		Thresholds: Thresholds{
			MaxRemovedRatio: 0.25,
			ChangeWarnRatio: 0.30,
			AnchorOverlap:   0.70,
		},
		Layout: Layout{
			ExperienceHeadings: []string{"experience"},
			ProjectHeadings:    []string{"project"},
			HackathonHeadings:  []string{"hackathon"},
			SkillsHeadings:     []string{"skills"},
			ItemCommand:        "resumeItem",
		},
	}
}
