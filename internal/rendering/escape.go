// Package rendering reassembles tailored resumes and renders cover letters as LaTeX.
package rendering

import (
	"fmt"
	"strings"
)

// EscapeLaTeX escapes special LaTeX characters in text
// Special characters: \ { } $ & % # ^ _ ~
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2)

	for _, r := range text {
		switch r {
		case '\\':
			result.WriteString(`\textbackslash{}`)
		case '{':
			result.WriteString(`\{`)
		case '}':
			result.WriteString(`\}`)
		case '$':
			result.WriteString(`\$`)
		case '&':
			result.WriteString(`\&`)
		case '%':
			result.WriteString(`\%`)
		case '#':
			result.WriteString(`\#`)
		case '^':
			result.WriteString(`\textasciicircum{}`)
		case '_':
			result.WriteString(`\_`)
		case '~':
			result.WriteString(`\textasciitilde{}`)
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// EscapeInline escapes % & $ # _ in text that may already contain LaTeX
// markup. Characters already preceded by a backslash and commands such as
// \textbf{...} are left alone, so the result is safe to splice into a
// \resumeItem body. Inline math like $\sim$ or $O(n)$ is copied verbatim; a
// $ only opens math when the closing $ follows with no space just inside
// either delimiter, so "$5 to $10" is still escaped as currency.
func EscapeInline(text string) string {
	var result strings.Builder
	result.Grow(len(text) + 8)

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\\' && i+1 < len(text) {
			result.WriteByte(c)
			result.WriteByte(text[i+1])
			i++
			continue
		}
		if c == '$' {
			if end, ok := inlineMathEnd(text, i); ok {
				result.WriteString(text[i : end+1])
				i = end
				continue
			}
		}
		if strings.IndexByte(`%&$#_`, c) >= 0 {
			result.WriteByte('\\')
		}
		result.WriteByte(c)
	}

	return result.String()
}

// inlineMathEnd returns the index of the $ closing the math span opened at start
func inlineMathEnd(text string, start int) (int, bool) {
	for j := start + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case '$':
			body := text[start+1 : j]
			if body == "" || body != strings.TrimSpace(body) {
				return 0, false
			}
			return j, true
		}
	}
	return 0, false
}

// CheckBraces reports an error when the unescaped braces of text do not
// pair up. Tailored text with a stray brace would break the document.
func CheckBraces(text string) error {
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return fmt.Errorf("unmatched } at offset %d", i)
			}
			depth--
		}
	}
	if depth > 0 {
		return fmt.Errorf("%d unclosed {", depth)
	}
	return nil
}
