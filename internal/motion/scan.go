package motion

import (
	"strings"

	"github.com/dshills/vimkata/internal/editor"
)

// findChar implements f, F, t, and T on the current line. The motion
// fails when the target character does not occur count times.
func findChar(lines []string, cur editor.Position, kind Kind, count int, arg rune) (editor.Position, bool) {
	line := []rune(lines[cur.Line])
	col := cur.Col

	forward := kind == KindFindChar || kind == KindTillChar
	till := kind == KindTillChar || kind == KindTillCharBack

	for n := 0; n < count; n++ {
		found := -1
		if forward {
			for i := col + 1; i < len(line); i++ {
				if line[i] == arg {
					found = i
					break
				}
			}
		} else {
			for i := col - 1; i >= 0; i-- {
				if line[i] == arg {
					found = i
					break
				}
			}
		}
		if found < 0 {
			return cur, false
		}
		col = found
	}

	if till {
		if forward {
			col--
		} else {
			col++
		}
	}
	return editor.Position{Line: cur.Line, Col: col}, true
}

// paragraphForward implements }. The target is the next blank line, or
// past the last line when none remains.
func paragraphForward(lines []string, cur editor.Position, count int) editor.Position {
	row := cur.Line
	for n := 0; n < count; n++ {
		row++
		for row < len(lines) && lines[row] != "" {
			row++
		}
		if row >= len(lines) {
			last := len(lines) - 1
			col := len([]rune(lines[last])) - 1
			if col < 0 {
				col = 0
			}
			return editor.Position{Line: last, Col: col}
		}
	}
	return editor.Position{Line: row, Col: 0}
}

// paragraphBackward implements {.
func paragraphBackward(lines []string, cur editor.Position, count int) editor.Position {
	row := cur.Line
	for n := 0; n < count; n++ {
		row--
		for row >= 0 && lines[row] != "" {
			row--
		}
		if row < 0 {
			return editor.Position{Line: 0, Col: 0}
		}
	}
	return editor.Position{Line: row, Col: 0}
}

// sentenceEnders are the characters that can close a sentence, possibly
// followed by closing quotes or brackets.
const sentenceEnders = ".!?"

// sentenceTrailers may sit between a sentence ender and its whitespace.
const sentenceTrailers = ")]\"'"

// sentenceForward implements ). It scans for an ender followed by
// whitespace or end of line, then lands on the next non-blank character.
func sentenceForward(lines []string, cur editor.Position, count int) editor.Position {
	pos := cur
	for n := 0; n < count; n++ {
		next, ok := scanSentenceForward(lines, pos)
		if !ok {
			return next
		}
		pos = next
	}
	return pos
}

func scanSentenceForward(lines []string, cur editor.Position) (editor.Position, bool) {
	pos := cur
	for {
		next, ok := advance(lines, pos)
		if !ok {
			// End of buffer.
			return pos, false
		}
		pos = next

		if isEmptyLineAt(lines, pos) {
			// A blank line is a sentence boundary.
			return pos, true
		}

		line := []rune(lines[pos.Line])
		if pos.Col >= len(line) {
			continue
		}
		if !strings.ContainsRune(sentenceEnders, line[pos.Col]) {
			continue
		}

		// Swallow trailing quotes/brackets after the ender.
		end := pos
		for {
			peek, ok := advance(lines, end)
			if !ok || peek.Line != end.Line {
				end = peek
				break
			}
			if peek.Col < len(line) && strings.ContainsRune(sentenceTrailers, line[peek.Col]) {
				end = peek
				continue
			}
			end = peek
			break
		}

		// The ender must be followed by whitespace or end of line.
		if end.Line == pos.Line && end.Col < len(line) && line[end.Col] != ' ' && line[end.Col] != '\t' {
			continue
		}

		// Land on the next non-blank character.
		landing := end
		for {
			if isEmptyLineAt(lines, landing) {
				return landing, true
			}
			c := classAt(lines, landing, true)
			if c > 0 {
				return landing, true
			}
			next, ok := advance(lines, landing)
			if !ok {
				return landing, true
			}
			landing = next
		}
	}
}

// sentenceBackward implements (. It moves to the start of the current
// sentence, or the previous one when already at a start.
func sentenceBackward(lines []string, cur editor.Position, count int) editor.Position {
	pos := cur
	for n := 0; n < count; n++ {
		pos = scanSentenceBackward(lines, pos)
	}
	return pos
}

func scanSentenceBackward(lines []string, cur editor.Position) editor.Position {
	// Step back off the current position, then skip whitespace.
	pos, ok := retreat(lines, cur)
	if !ok {
		return editor.Position{}
	}
	for {
		if isEmptyLineAt(lines, pos) {
			break
		}
		if classAt(lines, pos, true) > 0 {
			break
		}
		prev, ok := retreat(lines, pos)
		if !ok {
			return editor.Position{}
		}
		pos = prev
	}

	// Walk back until just after a sentence ender or the buffer start.
	for {
		prev, ok := retreat(lines, pos)
		if !ok {
			return pos
		}
		if isEmptyLineAt(lines, prev) {
			return pos
		}
		line := []rune(lines[prev.Line])
		if prev.Col < len(line) && strings.ContainsRune(sentenceEnders, line[prev.Col]) {
			// Confirm a sentence start: skip forward over whitespace from
			// the ender to the first non-blank, which is where we stand.
			return pos
		}
		if prev.Col < len(line) && (line[prev.Col] == ' ' || line[prev.Col] == '\t') {
			ender, ok2 := retreat(lines, prev)
			if ok2 && !isEmptyLineAt(lines, ender) {
				el := []rune(lines[ender.Line])
				if ender.Col < len(el) && strings.ContainsRune(sentenceEnders+sentenceTrailers, el[ender.Col]) {
					return pos
				}
			}
		}
		pos = prev
	}
}

// pairs maps bracket characters for %.
var pairs = map[rune]rune{
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
}

// matchPair implements %: find the first bracket at or after the cursor
// on the current line, then jump to its match, tracking nesting across
// lines.
func matchPair(lines []string, cur editor.Position) (editor.Position, bool) {
	line := []rune(lines[cur.Line])
	start := cur
	var open rune
	found := false
	for i := cur.Col; i < len(line); i++ {
		if _, ok := pairs[line[i]]; ok {
			open = line[i]
			start = editor.Position{Line: cur.Line, Col: i}
			found = true
			break
		}
	}
	if !found {
		return cur, false
	}

	match := pairs[open]
	forward := open == '(' || open == '[' || open == '{'
	depth := 0
	pos := start
	for {
		line := []rune(lines[pos.Line])
		if pos.Col < len(line) {
			switch line[pos.Col] {
			case open:
				depth++
			case match:
				depth--
				if depth == 0 {
					return pos, true
				}
			}
		}
		var ok bool
		if forward {
			pos, ok = advance(lines, pos)
		} else {
			pos, ok = retreat(lines, pos)
		}
		if !ok {
			return cur, false
		}
	}
}
