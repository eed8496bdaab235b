// Package parsing extracts structured resume sections from a LaTeX resume template.
package parsing

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/jonathan/tailor-agent/internal/config"
	"github.com/jonathan/tailor-agent/internal/types"
)

const (
	cmdSection        = "section"
	cmdSubheading     = "resumeSubheading"
	cmdProjectHeading = "resumeProjectHeading"
	cmdEnd            = "end"
	cmdTextbf         = "textbf"
)

// sectionKind classifies a \section heading
type sectionKind int

const (
	kindUnknown sectionKind = iota
	kindExperience
	kindProjects
	kindHackathons
	kindSkills
)

func (k sectionKind) String() string {
	switch k {
	case kindExperience:
		return "experience"
	case kindProjects:
		return "projects"
	case kindHackathons:
		return "hackathons"
	case kindSkills:
		return "skills"
	default:
		return "unknown"
	}
}

// region is the body of one \section, from the end of its heading up to the
// next \section or \end{document}
type region struct {
	Kind    sectionKind
	Heading string
	Start   int
	End     int
}

// Span is a byte range [Start, End) in a document
type Span struct {
	Start int
	End   int
}

// Parser extracts sections using the structural markers of a Layout
type Parser struct {
	layout config.Layout
	logger *slog.Logger
}

// NewParser creates a Parser for the given template layout
func NewParser(layout config.Layout, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{layout: layout, logger: logger}
}

// Parse extracts experience, project and hackathon entries plus the skills
// block. Missing or malformed sections yield empty results and a warning.
func (p *Parser) Parse(doc string) types.ParsedResume {
	cmds := scanCommands(doc, p.arity())
	regions := p.regions(doc, cmds)

	result := types.ParsedResume{
		Experience: []types.ResumeSection{},
		Projects:   []types.ResumeSection{},
		Hackathons: []types.ResumeSection{},
	}

	found := make(map[sectionKind]bool)
	for _, r := range regions {
		inner := commandsWithin(cmds, r)
		switch r.Kind {
		case kindExperience:
			result.Experience = append(result.Experience, p.entries(inner, types.SectionExperience)...)
		case kindProjects:
			result.Projects = append(result.Projects, p.entries(inner, types.SectionProject)...)
		case kindHackathons:
			result.Hackathons = append(result.Hackathons, p.hackathons(doc, inner, r)...)
		case kindSkills:
			if result.Skills == "" {
				result.Skills = strings.TrimSpace(doc[r.Start:r.End])
			}
		default:
			continue
		}
		found[r.Kind] = true
	}

	for _, k := range []sectionKind{kindExperience, kindProjects, kindHackathons, kindSkills} {
		if !found[k] {
			p.logger.Warn("resume section not found", slog.String("section", k.String()))
		}
	}
	if found[kindExperience] && len(result.Experience) == 0 {
		p.logger.Warn("resume section has no entries", slog.String("section", kindExperience.String()))
	}
	if found[kindProjects] && len(result.Projects) == 0 {
		p.logger.Warn("resume section has no entries", slog.String("section", kindProjects.String()))
	}

	return result
}

// SkillsSpan returns the trimmed span of the first skills section body
func (p *Parser) SkillsSpan(doc string) (Span, bool) {
	cmds := scanCommands(doc, p.arity())
	for _, r := range p.regions(doc, cmds) {
		if r.Kind != kindSkills {
			continue
		}
		body := doc[r.Start:r.End]
		lead := len(body) - len(strings.TrimLeft(body, " \t\r\n"))
		trail := len(body) - len(strings.TrimRight(body, " \t\r\n"))
		if lead == len(body) {
			return Span{Start: r.Start, End: r.Start}, true
		}
		return Span{Start: r.Start + lead, End: r.End - trail}, true
	}
	return Span{}, false
}

// ItemSpans returns the content span of every list item command in doc
func ItemSpans(doc string, itemCommand string) []Span {
	var spans []Span
	for _, c := range scanCommands(doc, map[string]int{itemCommand: 1}) {
		if len(c.Args) == 1 {
			spans = append(spans, Span{Start: c.Args[0].Start, End: c.Args[0].End})
		}
	}
	return spans
}

func (p *Parser) arity() map[string]int {
	return map[string]int{
		cmdSection:           1,
		cmdSubheading:        4,
		cmdProjectHeading:    2,
		cmdEnd:               1,
		p.layout.ItemCommand: 1,
	}
}

func (p *Parser) regions(doc string, cmds []command) []region {
	var regions []region
	for i, c := range cmds {
		if c.Name != cmdSection || len(c.Args) == 0 {
			continue
		}
		r := region{
			Kind:    p.classify(c.arg(0)),
			Heading: c.arg(0),
			Start:   c.End,
			End:     len(doc),
		}
		for _, next := range cmds[i+1:] {
			if next.Name == cmdSection || (next.Name == cmdEnd && next.arg(0) == "document") {
				r.End = next.Start
				break
			}
		}
		regions = append(regions, r)
	}
	return regions
}

// classify maps a heading to a section kind. Hackathons are checked first
// because headings such as "Hackathon Projects" also name projects.
func (p *Parser) classify(heading string) sectionKind {
	h := strings.ToLower(heading)
	rules := []struct {
		kind     sectionKind
		keywords []string
	}{
		{kindHackathons, p.layout.HackathonHeadings},
		{kindExperience, p.layout.ExperienceHeadings},
		{kindProjects, p.layout.ProjectHeadings},
		{kindSkills, p.layout.SkillsHeadings},
	}
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if kw != "" && strings.Contains(h, strings.ToLower(kw)) {
				return rule.kind
			}
		}
	}
	return kindUnknown
}

func commandsWithin(cmds []command, r region) []command {
	var out []command
	for _, c := range cmds {
		if c.Start >= r.Start && c.Start < r.End {
			out = append(out, c)
		}
	}
	return out
}

// entries groups headings with the list items that follow them
func (p *Parser) entries(cmds []command, kind types.SectionKind) []types.ResumeSection {
	var out []types.ResumeSection
	for _, c := range cmds {
		switch c.Name {
		case cmdSubheading, cmdProjectHeading:
			out = append(out, headingSection(c, kind))
		case p.layout.ItemCommand:
			if len(out) == 0 || len(c.Args) == 0 {
				p.logger.Debug("skipping list item outside of an entry", slog.Int("offset", c.Start))
				continue
			}
			text := strings.TrimSpace(c.Args[0].Text)
			if text == "" {
				continue
			}
			last := &out[len(out)-1]
			last.Bullets = append(last.Bullets, types.BulletPoint{OriginalText: text})
		}
	}
	return out
}

// hackathons reads each heading's list items, or failing that the bare text
// up to the next heading. Items stay separate bullets since every bullet's
// OriginalText must be a literal span of doc for the locator to replace.
func (p *Parser) hackathons(doc string, cmds []command, r region) []types.ResumeSection {
	var out []types.ResumeSection
	for i, c := range cmds {
		if c.Name != cmdSubheading && c.Name != cmdProjectHeading {
			continue
		}
		section := headingSection(c, types.SectionHackathon)

		end := r.End
		var items []command
		for _, next := range cmds[i+1:] {
			if next.Name == cmdSubheading || next.Name == cmdProjectHeading {
				end = next.Start
				break
			}
			if next.Name == p.layout.ItemCommand && len(next.Args) == 1 {
				items = append(items, next)
			}
		}

		if len(items) > 0 {
			for _, it := range items {
				if text := strings.TrimSpace(it.Args[0].Text); text != "" {
					section.Bullets = append(section.Bullets, types.BulletPoint{OriginalText: text})
				}
			}
		} else if c.End < end {
			if text := bareParagraph(doc[c.End:end]); text != "" {
				section.Bullets = append(section.Bullets, types.BulletPoint{OriginalText: text})
			}
		}
		out = append(out, section)
	}
	return out
}

func headingSection(c command, kind types.SectionKind) types.ResumeSection {
	s := types.ResumeSection{Kind: kind, Bullets: []types.BulletPoint{}}
	if c.Name == cmdSubheading {
		s.Title = c.arg(0)
		s.Dates = c.arg(1)
		s.Organization = c.arg(2)
		s.Location = c.arg(3)
		return s
	}
	s.Title = projectName(c.arg(0))
	s.Dates = c.arg(1)
	return s
}

// projectName returns the bold part of a project heading, or the text before
// the first separator when nothing is bold
func projectName(heading string) string {
	for _, c := range scanCommands(heading, map[string]int{cmdTextbf: 1}) {
		if len(c.Args) == 1 {
			return strings.TrimSpace(c.Args[0].Text)
		}
	}
	for _, sep := range []string{"$|$", "|"} {
		if idx := strings.Index(heading, sep); idx >= 0 {
			return strings.TrimSpace(heading[:idx])
		}
	}
	return strings.TrimSpace(heading)
}

var markupOnlyLine = regexp.MustCompile(`^(\\[a-zA-Z]+\*?(\[[^\]]*\])?(\{[^{}]*\})*\s*)+$`)

// bareParagraph joins the prose lines of a block, dropping comments and
// lines made only of markup commands
func bareParagraph(block string) string {
	var parts []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(stripComment(line))
		if line == "" || markupOnlyLine.MatchString(line) {
			continue
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}

// stripComment removes an unescaped % and everything after it
func stripComment(line string) string {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '%':
			return line[:i]
		}
	}
	return line
}
