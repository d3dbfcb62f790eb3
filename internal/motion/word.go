package motion

import (
	"unicode"

	"github.com/dshills/vimkata/internal/editor"
)

// charClass buckets characters the way Vim's word motions do: whitespace,
// word characters, and other punctuation. WORD motions collapse the last
// two into one class.
func charClass(r rune, bigWord bool) int {
	switch {
	case r == ' ' || r == '\t':
		return 0
	case bigWord:
		return 1
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return 1
	default:
		return 2
	}
}

// classAt returns the class of the character at pos, or -1 past the end
// of the line.
func classAt(lines []string, pos editor.Position, bigWord bool) int {
	line := []rune(lines[pos.Line])
	if pos.Col >= len(line) {
		return -1
	}
	return charClass(line[pos.Col], bigWord)
}

// advance moves one position forward, wrapping to the next line. ok is
// false at the end of the buffer.
func advance(lines []string, pos editor.Position) (editor.Position, bool) {
	line := []rune(lines[pos.Line])
	if pos.Col < len(line)-1 || (pos.Col < len(line) && pos.Line == len(lines)-1) {
		return editor.Position{Line: pos.Line, Col: pos.Col + 1}, true
	}
	if pos.Line >= len(lines)-1 {
		if pos.Col < len(line) {
			return editor.Position{Line: pos.Line, Col: pos.Col + 1}, true
		}
		return pos, false
	}
	return editor.Position{Line: pos.Line + 1, Col: 0}, true
}

// retreat moves one position backward, wrapping to the previous line
// end. ok is false at the start of the buffer.
func retreat(lines []string, pos editor.Position) (editor.Position, bool) {
	if pos.Col > 0 {
		return editor.Position{Line: pos.Line, Col: pos.Col - 1}, true
	}
	if pos.Line == 0 {
		return pos, false
	}
	prev := []rune(lines[pos.Line-1])
	col := len(prev) - 1
	if col < 0 {
		col = 0
	}
	return editor.Position{Line: pos.Line - 1, Col: col}, true
}

// isEmptyLineAt reports whether pos sits on an empty line, which word
// motions treat as a word of its own.
func isEmptyLineAt(lines []string, pos editor.Position) bool {
	return lines[pos.Line] == ""
}

// wordForward implements w and W.
func wordForward(lines []string, cur editor.Position, count int, bigWord bool) editor.Position {
	pos := cur
	for n := 0; n < count; n++ {
		startClass := classAt(lines, pos, bigWord)
		startLine := pos.Line

		// Leave the current run.
		for {
			next, ok := advance(lines, pos)
			if !ok {
				return pos
			}
			pos = next
			if pos.Line != startLine {
				break
			}
			if startClass <= 0 || classAt(lines, pos, bigWord) != startClass {
				break
			}
		}

		// Skip whitespace to the next word start. An empty line stops the
		// motion.
		for {
			if isEmptyLineAt(lines, pos) {
				break
			}
			c := classAt(lines, pos, bigWord)
			if c > 0 {
				break
			}
			next, ok := advance(lines, pos)
			if !ok {
				return pos
			}
			pos = next
		}
	}
	return pos
}

// wordBackward implements b and B.
func wordBackward(lines []string, cur editor.Position, count int, bigWord bool) editor.Position {
	pos := cur
	for n := 0; n < count; n++ {
		prev, ok := retreat(lines, pos)
		if !ok {
			return pos
		}
		pos = prev

		// Skip whitespace backwards. An empty line is a stop.
		for {
			if isEmptyLineAt(lines, pos) {
				break
			}
			if classAt(lines, pos, bigWord) > 0 {
				break
			}
			prev, ok := retreat(lines, pos)
			if !ok {
				return pos
			}
			pos = prev
		}
		if isEmptyLineAt(lines, pos) {
			continue
		}

		// Walk back to the start of the run.
		cls := classAt(lines, pos, bigWord)
		for pos.Col > 0 {
			prev := editor.Position{Line: pos.Line, Col: pos.Col - 1}
			if classAt(lines, prev, bigWord) != cls {
				break
			}
			pos = prev
		}
	}
	return pos
}

// wordEnd implements e and E.
func wordEnd(lines []string, cur editor.Position, count int, bigWord bool) editor.Position {
	pos := cur
	for n := 0; n < count; n++ {
		next, ok := advance(lines, pos)
		if !ok {
			return pos
		}
		pos = next

		// Skip whitespace and line boundaries to the next word.
		for classAt(lines, pos, bigWord) <= 0 {
			next, ok := advance(lines, pos)
			if !ok {
				return pos
			}
			pos = next
		}

		// Walk to the end of the run.
		cls := classAt(lines, pos, bigWord)
		for {
			line := []rune(lines[pos.Line])
			if pos.Col >= len(line)-1 {
				break
			}
			next := editor.Position{Line: pos.Line, Col: pos.Col + 1}
			if classAt(lines, next, bigWord) != cls {
				break
			}
			pos = next
		}
	}
	return pos
}
