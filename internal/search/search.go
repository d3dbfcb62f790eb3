// Package search implements buffer-wide regex search with Vim's case
// options, literal fallback for invalid patterns, and wraparound.
package search

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dshills/vimkata/internal/editor"
)

// Match is one pattern occurrence.
type Match struct {
	Line int
	Col  int
}

// compile builds the search regex, honoring ignorecase/smartcase and
// falling back to a literal-escaped pattern when the regex is invalid.
// A nil return means even the literal form failed, and the search is
// skipped.
func compile(pattern string, opts editor.Options) *regexp.Regexp {
	ignoreCase := opts.IgnoreCase
	if opts.SmartCase && hasUpper(pattern) {
		ignoreCase = false
	}
	prefix := ""
	if ignoreCase {
		prefix = "(?i)"
	}

	re, err := regexp.Compile(prefix + pattern)
	if err == nil {
		return re
	}
	re, err = regexp.Compile(prefix + regexp.QuoteMeta(pattern))
	if err != nil {
		return nil
	}
	return re
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// Find locates the next match for pattern from the given position.
// backward searches toward the buffer start. The search wraps around the
// buffer edges when the options allow it. The second result is false
// when the buffer has no match at all.
func Find(lines []string, pattern string, from editor.Position, backward bool, opts editor.Options) (Match, bool) {
	re := compile(pattern, opts)
	if re == nil {
		return Match{}, false
	}

	var all []Match
	for i, line := range lines {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			all = append(all, Match{Line: i, Col: runeCol(line, loc[0])})
		}
	}
	if len(all) == 0 {
		return Match{}, false
	}

	if backward {
		for i := len(all) - 1; i >= 0; i-- {
			m := all[i]
			if m.Line < from.Line || (m.Line == from.Line && m.Col < from.Col) {
				return m, true
			}
		}
		if !opts.WrapScan {
			return Match{}, false
		}
		return all[len(all)-1], true
	}

	for _, m := range all {
		if m.Line > from.Line || (m.Line == from.Line && m.Col > from.Col) {
			return m, true
		}
	}
	if !opts.WrapScan {
		return Match{}, false
	}
	return all[0], true
}

// runeCol converts a byte offset within line to a rune column.
func runeCol(line string, byteOffset int) int {
	return len([]rune(line[:byteOffset]))
}

// WordPattern derives the literal word-boundary pattern * and # use from
// the word under the cursor. The returned word is empty when the cursor
// is not on a word character.
func WordPattern(lines []string, cur editor.Position) string {
	line := []rune(lines[cur.Line])
	if len(line) == 0 {
		return ""
	}
	col := cur.Col
	if col >= len(line) {
		col = len(line) - 1
	}

	isWord := func(r rune) bool {
		return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
	}

	// Seek forward to a word character, the way * does.
	for col < len(line) && !isWord(line[col]) {
		col++
	}
	if col >= len(line) {
		return ""
	}

	start, end := col, col
	for start > 0 && isWord(line[start-1]) {
		start--
	}
	for end < len(line)-1 && isWord(line[end+1]) {
		end++
	}
	word := string(line[start : end+1])
	return `\b` + regexp.QuoteMeta(word) + `\b`
}

// IsLiteral reports whether the pattern contains no regex metacharacters,
// which lets callers display it unquoted.
func IsLiteral(pattern string) bool {
	return !strings.ContainsAny(pattern, `\.*+?()[]{}|^$`)
}
