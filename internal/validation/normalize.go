// Package validation checks tailored resume content against its original and compiles LaTeX output.
package validation

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	latexCommand = regexp.MustCompile(`\\[a-zA-Z]+\*?`)
	wordPattern  = regexp.MustCompile(`[\p{L}\p{N}]+`)
)

// escapedChars are the characters LaTeX writes as a backslash plus the character
const escapedChars = `%&$#_{}`

// PlainText reduces a LaTeX fragment to the text a reader sees: escaped
// characters are unescaped, formatting commands and grouping braces are
// dropped, and the result is NFC-normalized. Plain input passes through
// unchanged apart from normalization.
func PlainText(text string) string {
	const backslash = "\x00"

	text = strings.ReplaceAll(text, `\textasciitilde{}`, "~")
	text = strings.ReplaceAll(text, `\textasciicircum{}`, "^")
	text = strings.ReplaceAll(text, `\textbackslash{}`, backslash)
	text = latexCommand.ReplaceAllString(text, "")

	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '\\' && i+1 < len(text) && strings.IndexByte(escapedChars, text[i+1]) >= 0:
			sb.WriteByte(text[i+1])
			i++
		case c == '{' || c == '}':
			// grouping braces carry no text
		default:
			sb.WriteByte(c)
		}
	}

	return norm.NFC.String(strings.ReplaceAll(sb.String(), backslash, `\`))
}

// Words returns the lowercase word tokens of a plain-text string
func Words(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}
