// Package scanner splits Lua source lines into the minimal lexical units the
// linter cares about: the leading whitespace run, block keywords found outside
// strings and comments, and whether the line trails off into whitespace.
// It is not a Lua lexer; everything that is not a block keyword is skipped.
package scanner

import "strings"

// Block keywords the scanner reports. `then`, `else` and `elseif` are
// markers inside an `if` construct and never open or close a frame on their
// own, but the block engine needs to see them for header handling and the
// indent checker needs them for dedent alignment.
var blockKeywords = map[string]bool{
	"do":       true,
	"if":       true,
	"for":      true,
	"while":    true,
	"function": true,
	"repeat":   true,
	"end":      true,
	"until":    true,
	"then":     true,
	"else":     true,
	"elseif":   true,
}

type maskMode int

const (
	maskNone maskMode = iota
	maskLongString
	maskLongComment
)

// MaskState carries the "inside a multi-line string or comment" flag across
// line boundaries. Long brackets are keyed by their equals count, so the
// level must match exactly for a closer to end the span.
type MaskState struct {
	mode  maskMode
	level int
}

// Masked reports whether the scanner is currently inside a long string or
// long comment.
func (m MaskState) Masked() bool { return m.mode != maskNone }

// Token is a block keyword found outside masked spans. Col is 1-indexed.
type Token struct {
	Keyword string
	Col     int
}

// Indent describes the leading whitespace run of a line.
type Indent struct {
	Tabs     int
	Spaces   int
	FirstTab int // 1-indexed column of the first tab, 0 if none
}

// Chars returns the number of characters in the indent run.
func (in Indent) Chars() int { return in.Tabs + in.Spaces }

// Mixed reports whether the run contains both tabs and spaces.
func (in Indent) Mixed() bool { return in.Tabs > 0 && in.Spaces > 0 }

// Line is the scanner's view of one source line.
type Line struct {
	Raw         string
	Blank       bool // only whitespace (or empty)
	TrailingWS  bool // ends in space or tab
	StartMasked bool // line began inside a long string/comment
	Indent      Indent
	Tokens      []Token
}

// Scanner tokenizes lines one at a time, threading the mask state between
// calls. Create a fresh Scanner per file.
type Scanner struct {
	mask MaskState
}

func New() *Scanner {
	return &Scanner{}
}

// Masked reports whether the scanner ended the last line inside a mask.
func (s *Scanner) Masked() bool { return s.mask.Masked() }

// Next scans one raw line and returns its lexical summary. The mask state is
// updated in place so the following call sees spans that stayed open.
func (s *Scanner) Next(raw string) Line {
	stripped := strings.TrimRight(raw, " \t")
	ln := Line{
		Raw:         raw,
		Blank:       stripped == "",
		TrailingWS:  len(raw) > 0 && raw != stripped,
		StartMasked: s.mask.Masked(),
		Indent:      leadingIndent(raw),
	}

	i := 0
	n := len(raw)
	for i < n {
		if s.mask.Masked() {
			if j, ok := matchLongClose(raw, i, s.mask.level); ok {
				s.mask = MaskState{}
				i = j
			} else {
				i++
			}
			continue
		}

		c := raw[i]
		switch {
		case c == '-' && i+1 < n && raw[i+1] == '-':
			// Comment. A long bracket immediately after `--` opens a long
			// comment; anything else masks the rest of the line.
			if level, j, ok := matchLongOpen(raw, i+2); ok {
				s.mask = MaskState{mode: maskLongComment, level: level}
				i = j
				continue
			}
			return ln

		case c == '[':
			if level, j, ok := matchLongOpen(raw, i); ok {
				s.mask = MaskState{mode: maskLongString, level: level}
				i = j
				continue
			}
			i++

		case c == '"' || c == '\'':
			i = skipShortString(raw, i)

		case isIdentStart(c):
			j := i + 1
			for j < n && isIdentChar(raw[j]) {
				j++
			}
			word := raw[i:j]
			// Boundary on the left: a keyword glued to a preceding
			// identifier character (e.g. `3end`) is part of a longer token.
			if blockKeywords[word] && (i == 0 || !isIdentChar(raw[i-1])) {
				ln.Tokens = append(ln.Tokens, Token{Keyword: word, Col: i + 1})
			}
			i = j

		default:
			i++
		}
	}

	return ln
}

func leadingIndent(raw string) Indent {
	var in Indent
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case ' ':
			in.Spaces++
		case '\t':
			in.Tabs++
			if in.FirstTab == 0 {
				in.FirstTab = i + 1
			}
		default:
			return in
		}
	}
	return in
}

// matchLongOpen matches `[`, optional `=`s, `[` starting at i. Returns the
// equals count and the index just past the opener.
func matchLongOpen(s string, i int) (level, next int, ok bool) {
	if i >= len(s) || s[i] != '[' {
		return 0, 0, false
	}
	j := i + 1
	for j < len(s) && s[j] == '=' {
		j++
	}
	if j < len(s) && s[j] == '[' {
		return j - i - 1, j + 1, true
	}
	return 0, 0, false
}

// matchLongClose matches `]`, exactly level `=`s, `]` starting at i. A closer
// with a different equals count does not end the span; that mirrors Lua's own
// rule for long brackets.
func matchLongClose(s string, i, level int) (next int, ok bool) {
	if s[i] != ']' {
		return 0, false
	}
	j := i + 1
	for j < len(s) && s[j] == '=' {
		j++
	}
	if j-i-1 == level && j < len(s) && s[j] == ']' {
		return j + 1, true
	}
	return 0, false
}

// skipShortString advances past a single-line string literal starting at the
// quote. Escaped delimiters do not terminate the literal. An unterminated
// literal simply ends with the line; short strings never span lines here.
func skipShortString(s string, i int) int {
	quote := s[i]
	i++
	for i < len(s) {
		switch s[i] {
		case '\\':
			i += 2
		case quote:
			return i + 1
		default:
			i++
		}
	}
	return i
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
