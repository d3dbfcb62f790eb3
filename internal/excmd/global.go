package excmd

import (
	"regexp"
	"strings"

	"github.com/dshills/vimkata/internal/editor"
)

// runGlobal executes :g/pattern/cmd and :v/pattern/cmd over a range.
// invert selects the lines that do NOT match (:v and :g!). Supported
// sub-commands are d (delete, the default), m0 (reverse by moving each
// matching line to the top), and s (substitute on matching lines). It
// reports whether the buffer changed.
func runGlobal(st *editor.State, rng lineRange, body string, invert bool) bool {
	rs := []rune(body)
	if len(rs) == 0 {
		return false
	}
	delim := rs[0]
	if delim != '/' && delim != '#' && delim != ',' {
		return false
	}

	// Split off the pattern, honoring escaped delimiters.
	var pattern strings.Builder
	i := 1
	for ; i < len(rs); i++ {
		if rs[i] == '\\' && i+1 < len(rs) && rs[i+1] == delim {
			pattern.WriteRune(delim)
			i++
			continue
		}
		if rs[i] == delim {
			break
		}
		pattern.WriteRune(rs[i])
	}
	cmd := ""
	if i < len(rs) {
		cmd = strings.TrimSpace(string(rs[i+1:]))
	}
	if cmd == "" {
		cmd = "d"
	}

	pat := pattern.String()
	if pat == "" {
		pat = st.Search.Pattern
	}
	re, err := regexp.Compile(TranslatePattern(pat))
	if err != nil {
		re, err = regexp.Compile(regexp.QuoteMeta(pat))
		if err != nil {
			return false
		}
	}

	matches := func(line string) bool {
		m := re.MatchString(line)
		if invert {
			return !m
		}
		return m
	}

	switch {
	case cmd == "d":
		return globalDelete(st, rng, matches)
	case cmd == "m0" || cmd == "m 0":
		return globalMoveTop(st, rng, matches)
	case strings.HasPrefix(cmd, "s"):
		return globalSubstitute(st, rng, matches, cmd[1:])
	default:
		return false
	}
}

func globalDelete(st *editor.State, rng lineRange, matches func(string) bool) bool {
	kept := make([]string, 0, len(st.Lines))
	kept = append(kept, st.Lines[:rng.start]...)
	deleted := 0
	firstDeleted := -1
	for i := rng.start; i <= rng.end && i < len(st.Lines); i++ {
		if matches(st.Lines[i]) {
			deleted++
			if firstDeleted < 0 {
				firstDeleted = i
			}
			continue
		}
		kept = append(kept, st.Lines[i])
	}
	kept = append(kept, st.Lines[rng.end+1:]...)
	if deleted == 0 {
		return false
	}
	if len(kept) == 0 {
		kept = []string{""}
	}
	st.Lines = kept
	if firstDeleted >= 0 {
		st.Cursor.Line = firstDeleted
	}
	st.Cursor.Col = 0
	st.ClampCursor()
	return true
}

// globalMoveTop implements g/pat/m0: each matching line moves to the
// top in turn, so the matching lines end up reversed above everything
// else.
func globalMoveTop(st *editor.State, rng lineRange, matches func(string) bool) bool {
	var matched, rest []string
	for i, line := range st.Lines {
		if i >= rng.start && i <= rng.end && matches(line) {
			matched = append(matched, line)
			continue
		}
		rest = append(rest, line)
	}
	if len(matched) == 0 {
		return false
	}
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	st.Lines = append(matched, rest...)
	st.Cursor = editor.Position{}
	st.ClampCursor()
	return true
}

func globalSubstitute(st *editor.State, rng lineRange, matches func(string) bool, subBody string) bool {
	changed := false
	for i := rng.start; i <= rng.end && i < len(st.Lines); i++ {
		if !matches(st.Lines[i]) {
			continue
		}
		if runSubstitute(st, lineRange{start: i, end: i}, subBody) {
			changed = true
		}
	}
	return changed
}
