// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/tailor-agent/internal/rendering"
	"github.com/jonathan/tailor-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func pad(s string, n int) string {
	if l := len([]rune(s)); l < n {
		return s + strings.Repeat(" ", n-l)
	}
	return s
}

// PrintKeywords outputs the extracted keywords per category, skipping empty ones
func (p *Printer) PrintKeywords(set types.KeywordSet) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total keywords: %d\n", set.Count()))
	for _, c := range set.Categories {
		if len(c.Keywords) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s:\n", c.Name))
		for _, line := range wrap(c.Keywords, boxWidth-8) {
			sb.WriteString("  " + line + "\n")
		}
	}
	p.printBox("EXTRACTED KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMapping outputs keyword suggestions per resume section
func (p *Printer) PrintMapping(mapping types.KeywordMapping) {
	if len(mapping) == 0 {
		p.printBox("KEYWORD SUGGESTIONS", "No suggestions")
		return
	}

	ids := make([]string, 0, len(mapping))
	for id := range mapping {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var sb strings.Builder
	for i, id := range ids {
		sb.WriteString(id + "\n")
		sb.WriteString(fmt.Sprintf("  + %s\n", strings.Join(mapping[id], ", ")))
		if i < len(ids)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("KEYWORD SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintParsedResume outputs the sections found in a resume
func (p *Printer) PrintParsedResume(resume types.ParsedResume) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Experience: %d  Projects: %d  Hackathons: %d\n",
		len(resume.Experience), len(resume.Projects), len(resume.Hackathons)))

	sections := resume.Sections()
	count := min(len(sections), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := sections[i]
		sb.WriteString(fmt.Sprintf("\n[%s] %s\n", s.Kind, s.ID()))
		sb.WriteString(fmt.Sprintf("    %d bullet(s)\n", len(s.Bullets)))
	}
	if len(sections) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more sections\n", len(sections)-maxItemsToShow))
	}
	if resume.Skills == "" {
		sb.WriteString("\nSkills: not found")
	} else {
		sb.WriteString(fmt.Sprintf("\nSkills: %d characters", len(resume.Skills)))
	}
	p.printBox("PARSED RESUME", sb.String())
}

// PrintValidationResults outputs pass/fail status for each checked bullet
func (p *Printer) PrintValidationResults(results []types.ValidationResult) {
	if len(results) == 0 {
		return
	}

	failed := 0
	var sb strings.Builder
	for _, r := range results {
		if r.Valid {
			sb.WriteString(fmt.Sprintf("✓ %s (removed %.0f%%)\n", r.Label, r.RemovedRatio*100))
			continue
		}
		failed++
		sb.WriteString(fmt.Sprintf("✗ %s\n", r.Label))
		sb.WriteString(fmt.Sprintf("    %s: %s\n", r.Rule, strings.Join(r.Missing, ", ")))
	}
	sb.WriteString(fmt.Sprintf("\n%d passed, %d failed", len(results)-failed, failed))

	p.printBox("BULLET VALIDATION", sb.String())
}

// PrintReport outputs the outcome of a reassembly run
func (p *Printer) PrintReport(report *rendering.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run: %s\n", report.RunID))
	sb.WriteString(fmt.Sprintf("Applied: %d of %d bullets\n", report.Applied(), len(report.Changes)))
	if report.SkillsReplaced {
		sb.WriteString("Skills: replaced\n")
	}

	count := min(len(report.Changes), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := report.Changes[i]
		status := c.Strategy
		if !c.Located {
			status = "not found"
		}
		sb.WriteString(fmt.Sprintf("\n• %s\n", c.TailoredText))
		sb.WriteString(fmt.Sprintf("    %s, changed %.0f%%\n", status, c.ChangeRatio*100))
	}
	if len(report.Changes) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more bullets\n", len(report.Changes)-maxItemsToShow))
	}
	if len(report.Misses) > 0 {
		sb.WriteString(fmt.Sprintf("\n⚠️  %d bullet(s) not found in document", len(report.Misses)))
	}

	p.printBox("TAILORING REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// wrap joins items with ", " into lines of at most width runes
func wrap(items []string, width int) []string {
	var lines []string
	var line string
	for _, item := range items {
		switch {
		case line == "":
			line = item
		case len([]rune(line))+2+len([]rune(item)) > width:
			lines = append(lines, line+",")
			line = item
		default:
			line += ", " + item
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
