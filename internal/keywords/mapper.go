package keywords

import (
	"log/slog"
	"strings"

	"github.com/jonathan/tailor-agent/internal/config"
	"github.com/jonathan/tailor-agent/internal/types"
)

// Mapper proposes keywords that can be truthfully attached to resume sections.
// Its output is advisory; nothing downstream treats it as verified.
type Mapper struct {
	hints        []config.HintRule
	neverSuggest map[string]bool
	logger       *slog.Logger
}

// NewMapper creates a Mapper from the hint table of the given taxonomy
func NewMapper(tax *config.Taxonomy, logger *slog.Logger) *Mapper {
	if logger == nil {
		logger = slog.Default()
	}
	never := make(map[string]bool, len(tax.NeverSuggest))
	for _, k := range tax.NeverSuggest {
		never[strings.ToLower(k)] = true
	}
	return &Mapper{hints: tax.Hints, neverSuggest: never, logger: logger}
}

// Map returns suggestions per section ID. A suggestion is made when a hint occurs
// in the section text and the implied keyword was extracted from the job
// description. Keywords the section already mentions as a whole word are not
// suggested again; "aws" inside "draws" does not count as a mention.
func (m *Mapper) Map(set types.KeywordSet, sections []types.ResumeSection) types.KeywordMapping {
	mapping := types.KeywordMapping{}

	for _, section := range sections {
		text := strings.ToLower(section.Text())
		var suggestions []string
		seen := make(map[string]bool)

		for _, rule := range m.hints {
			if !strings.Contains(text, strings.ToLower(rule.Hint)) {
				continue
			}
			for _, implied := range rule.Implies {
				key := strings.ToLower(implied)
				if seen[key] || m.neverSuggest[key] {
					continue
				}
				if !set.Contains(implied) || matches(text, key, true) {
					continue
				}
				seen[key] = true
				suggestions = append(suggestions, implied)
			}
		}

		if len(suggestions) == 0 {
			continue
		}
		mapping[section.ID()] = append(mapping[section.ID()], suggestions...)
		m.logger.Debug("keyword suggestions", slog.String("section", section.ID()), slog.Any("keywords", suggestions))
	}

	return mapping
}
