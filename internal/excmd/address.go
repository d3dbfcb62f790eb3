package excmd

import (
	"fmt"
	"unicode"

	"github.com/dshills/vimkata/internal/editor"
)

// lineRange is a 0-indexed inclusive line span.
type lineRange struct {
	start int
	end   int
}

// parseRange reads an optional address range from the front of a command
// line and returns the range plus the remaining text. When no address is
// present the range is the current line.
func parseRange(line string, st *editor.State) (lineRange, string, error) {
	rs := []rune(line)
	pos := 0

	// % is the whole buffer.
	if pos < len(rs) && rs[pos] == '%' {
		return lineRange{start: 0, end: st.LineCount() - 1}, string(rs[pos+1:]), nil
	}

	start, next, ok, err := parseAddress(rs, pos, st)
	if err != nil {
		return lineRange{}, "", err
	}
	if !ok {
		cur := st.Cursor.Line
		return lineRange{start: cur, end: cur}, line, nil
	}
	pos = next

	if pos < len(rs) && (rs[pos] == ',' || rs[pos] == ';') {
		pos++
		end, next, ok, err := parseAddress(rs, pos, st)
		if err != nil {
			return lineRange{}, "", err
		}
		if !ok {
			end = st.Cursor.Line
		} else {
			pos = next
		}
		return clampRange(lineRange{start: start, end: end}, st), string(rs[pos:]), nil
	}

	return clampRange(lineRange{start: start, end: start}, st), string(rs[pos:]), nil
}

// parseAddress reads a single address: '.', '$', a number, a mark ('<,
// '>, 'x), each optionally followed by +n/-n offsets.
func parseAddress(rs []rune, pos int, st *editor.State) (int, int, bool, error) {
	base := -1
	switch {
	case pos < len(rs) && rs[pos] == '.':
		base = st.Cursor.Line
		pos++
	case pos < len(rs) && rs[pos] == '$':
		base = st.LineCount() - 1
		pos++
	case pos < len(rs) && unicode.IsDigit(rs[pos]):
		n := 0
		for pos < len(rs) && unicode.IsDigit(rs[pos]) {
			n = n*10 + int(rs[pos]-'0')
			pos++
		}
		base = n - 1
	case pos+1 < len(rs) && rs[pos] == '\'':
		name := rs[pos+1]
		mark, ok := st.Mark(name)
		if !ok {
			return 0, pos, false, fmt.Errorf("mark %q not set", name)
		}
		base = mark.Line
		pos += 2
	case pos < len(rs) && (rs[pos] == '+' || rs[pos] == '-'):
		// A bare offset is relative to the current line.
		base = st.Cursor.Line
	default:
		return 0, pos, false, nil
	}

	// Offsets.
	for pos < len(rs) && (rs[pos] == '+' || rs[pos] == '-') {
		sign := 1
		if rs[pos] == '-' {
			sign = -1
		}
		pos++
		n := 0
		digits := false
		for pos < len(rs) && unicode.IsDigit(rs[pos]) {
			n = n*10 + int(rs[pos]-'0')
			pos++
			digits = true
		}
		if !digits {
			n = 1
		}
		base += sign * n
	}

	return base, pos, true, nil
}

// parseTargetAddress reads the destination address of :move and :copy.
// Address 0 means "above the first line".
func parseTargetAddress(arg string, st *editor.State) (int, error) {
	rs := []rune(arg)
	addr, next, ok, err := parseAddress(rs, 0, st)
	if err != nil {
		return 0, err
	}
	if !ok || next != len(rs) {
		return 0, fmt.Errorf("bad address %q", arg)
	}
	// parseAddress is 0-indexed; the special address 0 arrives as -1,
	// meaning insertion at the top.
	if addr < -1 {
		addr = -1
	}
	if addr > st.LineCount()-1 {
		addr = st.LineCount() - 1
	}
	return addr, nil
}

func clampRange(r lineRange, st *editor.State) lineRange {
	last := st.LineCount() - 1
	if r.start < 0 {
		r.start = 0
	}
	if r.end > last {
		r.end = last
	}
	if r.start > r.end {
		r.start, r.end = r.end, r.start
	}
	return r
}
