// Package locate finds a resume bullet inside a LaTeX document and replaces it.
package locate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/tailor-agent/internal/parsing"
	"github.com/jonathan/tailor-agent/internal/validation"
)

// Strategy names reported in a Match
const (
	StrategyExact      = "exact"
	StrategyWhitespace = "whitespace"
	StrategyEscape     = "escape"
	StrategyAnchor     = "anchor"
)

// Strategy finds the span of snippet in doc, or reports no match
type Strategy interface {
	Name() string
	Find(doc, snippet string) (parsing.Span, bool)
}

type exactStrategy struct{}

func (exactStrategy) Name() string { return StrategyExact }

func (exactStrategy) Find(doc, snippet string) (parsing.Span, bool) {
	if strings.TrimSpace(snippet) == "" {
		return parsing.Span{}, false
	}
	i := strings.Index(doc, snippet)
	if i < 0 {
		return parsing.Span{}, false
	}
	return parsing.Span{Start: i, End: i + len(snippet)}, true
}

// whitespaceStrategy tolerates any run of whitespace, including line breaks,
// between the words of the snippet
type whitespaceStrategy struct{}

func (whitespaceStrategy) Name() string { return StrategyWhitespace }

func (whitespaceStrategy) Find(doc, snippet string) (parsing.Span, bool) {
	words := strings.Fields(snippet)
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return findPattern(doc, quoted)
}

// escapableChars may appear with or without a preceding backslash
const escapableChars = `%&$#_`

var snippetEscape = regexp.MustCompile(`\\([%&$#_])`)

// escapeStrategy is the whitespace strategy with LaTeX escapes made optional
type escapeStrategy struct{}

func (escapeStrategy) Name() string { return StrategyEscape }

func (escapeStrategy) Find(doc, snippet string) (parsing.Span, bool) {
	plain := snippetEscape.ReplaceAllString(snippet, "$1")
	words := strings.Fields(plain)
	patterns := make([]string, len(words))
	for i, w := range words {
		var sb strings.Builder
		for _, r := range w {
			if strings.ContainsRune(escapableChars, r) {
				sb.WriteString(`\\?`)
			}
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
		patterns[i] = sb.String()
	}
	return findPattern(doc, patterns)
}

func findPattern(doc string, words []string) (parsing.Span, bool) {
	if len(words) == 0 {
		return parsing.Span{}, false
	}
	re, err := regexp.Compile(strings.Join(words, `\s+`))
	if err != nil {
		return parsing.Span{}, false
	}
	loc := re.FindStringIndex(doc)
	if loc == nil {
		return parsing.Span{}, false
	}
	return parsing.Span{Start: loc[0], End: loc[1]}, true
}

// anchorStrategy relocates a bullet whose wording drifted from the document.
// Every occurrence of an anchor token is expanded to its enclosing list item;
// the first item whose words cover enough of the snippet's words wins. When
// several near-duplicate items qualify the earliest in the document is chosen.
type anchorStrategy struct {
	itemCommand string
	properNouns []string
	minOverlap  float64
}

func (a anchorStrategy) Name() string { return StrategyAnchor }

func (a anchorStrategy) Find(doc, snippet string) (parsing.Span, bool) {
	snippetWords := wordSet(snippet)
	if len(snippetWords) == 0 {
		return parsing.Span{}, false
	}
	items := parsing.ItemSpans(doc, a.itemCommand)
	if len(items) == 0 {
		return parsing.Span{}, false
	}

	tried := make(map[int]bool)
	for _, anchor := range a.anchors(snippet) {
		for from := 0; from < len(doc); {
			i := strings.Index(doc[from:], anchor)
			if i < 0 {
				break
			}
			pos := from + i
			from = pos + len(anchor)

			item, ok := enclosing(items, pos, pos+len(anchor))
			if !ok || tried[item.Start] {
				continue
			}
			tried[item.Start] = true
			if overlap(snippetWords, wordSet(doc[item.Start:item.End])) > a.minOverlap {
				return item, true
			}
		}
	}
	return parsing.Span{}, false
}

// anchors returns the distinctive tokens of snippet: numbers, then
// capitalized words, then known proper nouns, without duplicates
func (a anchorStrategy) anchors(snippet string) []string {
	plain := validation.PlainText(snippet)
	seen := make(map[string]bool)
	var out []string
	add := func(tok string) {
		if tok != "" && !seen[tok] {
			seen[tok] = true
			out = append(out, tok)
		}
	}

	for _, n := range validation.NumberTokens(plain) {
		add(strings.TrimRight(n, "%+"))
	}
	for _, f := range strings.Fields(plain) {
		w := strings.TrimFunc(f, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
		if r, _ := utf8.DecodeRuneInString(w); unicode.IsUpper(r) && utf8.RuneCountInString(w) > 1 {
			add(w)
		}
	}
	for _, noun := range a.properNouns {
		if strings.Contains(plain, noun) {
			add(noun)
		}
	}
	return out
}

func enclosing(items []parsing.Span, start, end int) (parsing.Span, bool) {
	for _, item := range items {
		if item.Start <= start && end <= item.End {
			return item, true
		}
	}
	return parsing.Span{}, false
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range validation.Words(validation.PlainText(text)) {
		set[w] = true
	}
	return set
}

// overlap is the share of snippet words that also occur in the item
func overlap(snippet, item map[string]bool) float64 {
	if len(snippet) == 0 {
		return 0
	}
	shared := 0
	for w := range snippet {
		if item[w] {
			shared++
		}
	}
	return float64(shared) / float64(len(snippet))
}
