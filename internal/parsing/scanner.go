// Package parsing extracts structured resume sections from a LaTeX resume template.
package parsing

import "strings"

// group is the content of one brace-delimited argument. Start and End are byte
// offsets of the content, excluding the braces themselves.
type group struct {
	Text  string
	Start int
	End   int
}

// command is one occurrence of \name, or starred \name*, followed by up to n
// brace groups
type command struct {
	Name  string
	Start int // offset of the backslash
	End   int // offset just past the last argument read
	Args  []group
}

// arg returns the i-th argument text, trimmed, or "" when it was not present
func (c command) arg(i int) string {
	if i < len(c.Args) {
		return strings.TrimSpace(c.Args[i].Text)
	}
	return ""
}

// scanCommands walks src once and returns, in document order, every command
// whose name is in arity. Comments and escaped characters are skipped and
// arguments are read with balanced braces. A command whose arguments are
// missing or unbalanced is returned with the arguments that could be read.
func scanCommands(src string, arity map[string]int) []command {
	var out []command
	i := 0
	for i < len(src) {
		switch src[i] {
		case '%':
			i = skipComment(src, i)
		case '\\':
			name := commandName(src, i+1)
			if name == "" {
				// escaped character such as \% or \{
				i += 2
				continue
			}
			n, wanted := arity[name]
			if !wanted {
				i += 1 + len(name)
				continue
			}
			cmd := command{Name: name, Start: i, End: i + 1 + len(name)}
			if cmd.End < len(src) && src[cmd.End] == '*' {
				cmd.End++
			}
			pos := cmd.End
			for len(cmd.Args) < n {
				g, next, ok := readGroup(src, pos)
				if !ok {
					break
				}
				cmd.Args = append(cmd.Args, g)
				pos = next
				cmd.End = next
			}
			out = append(out, cmd)
			i = cmd.End
		default:
			i++
		}
	}
	return out
}

// commandName returns the run of ASCII letters starting at i
func commandName(src string, i int) string {
	j := i
	for j < len(src) && isASCIILetter(src[j]) {
		j++
	}
	return src[i:j]
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// skipComment returns the offset after the newline ending the comment at i
func skipComment(src string, i int) int {
	nl := strings.IndexByte(src[i:], '\n')
	if nl < 0 {
		return len(src)
	}
	return i + nl + 1
}

// readGroup reads a {…} group starting at pos, after optional whitespace.
// It returns the group, the offset just past the closing brace, and false if
// no opening brace is found or the braces never balance.
func readGroup(src string, pos int) (group, int, bool) {
	for pos < len(src) && isSpace(src[pos]) {
		pos++
	}
	if pos >= len(src) || src[pos] != '{' {
		return group{}, pos, false
	}
	end, ok := matchBrace(src, pos)
	if !ok {
		return group{}, pos, false
	}
	return group{Text: src[pos+1 : end], Start: pos + 1, End: end}, end + 1, true
}

// matchBrace returns the offset of the brace closing the one at open
func matchBrace(src string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '%':
			i = skipComment(src, i) - 1
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
