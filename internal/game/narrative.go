package game

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Narrative is the play-by-play text that agents read as their context. It
// spans the whole match so agents can learn from earlier rounds.
type Narrative struct {
	lines []string
}

// NewNarrative returns an empty narrative
func NewNarrative() *Narrative {
	return &Narrative{}
}

// Addf appends one line
func (n *Narrative) Addf(format string, args ...any) {
	n.lines = append(n.lines, fmt.Sprintf(format, args...))
}

// Appendf extends the last line, or starts one if the narrative is empty
func (n *Narrative) Appendf(format string, args ...any) {
	if len(n.lines) == 0 {
		n.Addf(format, args...)
		return
	}
	n.lines[len(n.lines)-1] += fmt.Sprintf(format, args...)
}

// Lines returns a copy of every line so far
func (n *Narrative) Lines() []string {
	return append([]string(nil), n.lines...)
}

// Len returns the number of lines
func (n *Narrative) Len() int { return len(n.lines) }

// Since returns the lines added after the first from lines
func (n *Narrative) Since(from int) []string {
	if from >= len(n.lines) {
		return nil
	}
	return append([]string(nil), n.lines[from:]...)
}

func (n *Narrative) String() string {
	return strings.Join(n.lines, "\n")
}

// MarkSelf tags every whole-word occurrence of name with " (you)" so an agent
// can find itself in the narrative. Names embedded in longer words are left alone.
func MarkSelf(text, name string) string {
	if name == "" {
		return text
	}
	var b strings.Builder
	for {
		i := strings.Index(text, name)
		if i < 0 {
			b.WriteString(text)
			return b.String()
		}
		end := i + len(name)
		b.WriteString(text[:end])
		if boundaryBefore(text, i) && boundaryAfter(text, end) {
			b.WriteString(" (you)")
		}
		text = text[end:]
	}
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// joinNames renders "A", "A and B" or "A, B and C"
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
