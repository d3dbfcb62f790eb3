// Package textobject resolves Vim text objects (iw, aw, i", a(, ip, is,
// it, ...) into buffer ranges.
package textobject

import (
	"strings"

	"github.com/dshills/vimkata/internal/editor"
)

// Range is the resolved span of a text object. Start and End are both
// inclusive. Linewise objects (paragraphs) cover whole lines.
type Range struct {
	Start    editor.Position
	End      editor.Position
	Linewise bool

	// Empty marks an inner object with no content, such as i( on "()",
	// where change must insert between the delimiters without deleting.
	Empty bool
}

// Resolve computes the range for a text object. around selects the a
// variant; false selects i. The second result is false when no object
// surrounds the cursor.
func Resolve(lines []string, cur editor.Position, object rune, around bool) (Range, bool) {
	switch object {
	case 'w':
		return wordObject(lines, cur, around, false)
	case 'W':
		return wordObject(lines, cur, around, true)
	case '"', '\'', '`':
		return quoteObject(lines, cur, object, around)
	case '(', ')', 'b':
		return bracketObject(lines, cur, '(', ')', around)
	case '{', '}', 'B':
		return bracketObject(lines, cur, '{', '}', around)
	case '[', ']':
		return bracketObject(lines, cur, '[', ']', around)
	case '<', '>':
		return bracketObject(lines, cur, '<', '>', around)
	case 'p':
		return paragraphObject(lines, cur, around)
	case 's':
		return sentenceObject(lines, cur, around)
	case 't':
		return tagObject(lines, cur, around)
	default:
		return Range{}, false
	}
}

// IsObjectKey reports whether key names a text object.
func IsObjectKey(key rune) bool {
	switch key {
	case 'w', 'W', '"', '\'', '`', '(', ')', 'b', '{', '}', 'B', '[', ']', '<', '>', 'p', 's', 't':
		return true
	default:
		return false
	}
}

// charClass buckets characters for word objects: whitespace, word
// characters, punctuation. WORD objects collapse the last two.
func charClass(r rune, bigWord bool) int {
	switch {
	case r == ' ' || r == '\t':
		return 0
	case bigWord:
		return 1
	case r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9'):
		return 1
	default:
		return 2
	}
}

// wordObject resolves iw/aw/iW/aW on the current line. aw extends over
// one adjacent whitespace run, preferring the trailing one.
func wordObject(lines []string, cur editor.Position, around, bigWord bool) (Range, bool) {
	line := []rune(lines[cur.Line])
	if len(line) == 0 {
		return Range{Start: cur, End: cur}, true
	}
	col := cur.Col
	if col >= len(line) {
		col = len(line) - 1
	}

	cls := charClass(line[col], bigWord)
	start, end := col, col
	for start > 0 && charClass(line[start-1], bigWord) == cls {
		start--
	}
	for end < len(line)-1 && charClass(line[end+1], bigWord) == cls {
		end++
	}

	if around {
		extended := false
		// Trailing whitespace first.
		for end < len(line)-1 && charClass(line[end+1], bigWord) == 0 {
			end++
			extended = true
		}
		if !extended && cls != 0 {
			for start > 0 && charClass(line[start-1], bigWord) == 0 {
				start--
			}
		}
	}

	return Range{
		Start: editor.Position{Line: cur.Line, Col: start},
		End:   editor.Position{Line: cur.Line, Col: end},
	}, true
}

// quoteObject resolves i"/a" and friends on the current line. The pair
// is the nearest one enclosing or following the cursor, scanning quote
// pairs left to right the way Vim does.
func quoteObject(lines []string, cur editor.Position, quote rune, around bool) (Range, bool) {
	line := []rune(lines[cur.Line])

	// Collect quote positions, pairing them in order.
	var positions []int
	for i, r := range line {
		if r == quote {
			positions = append(positions, i)
		}
	}
	if len(positions) < 2 {
		return Range{}, false
	}

	open, close := -1, -1
	for i := 0; i+1 < len(positions); i += 2 {
		if cur.Col <= positions[i+1] {
			open, close = positions[i], positions[i+1]
			break
		}
	}
	if open < 0 {
		return Range{}, false
	}

	if around {
		// a" swallows trailing whitespace after the closing quote.
		end := close
		for end < len(line)-1 && (line[end+1] == ' ' || line[end+1] == '\t') {
			end++
		}
		return Range{
			Start: editor.Position{Line: cur.Line, Col: open},
			End:   editor.Position{Line: cur.Line, Col: end},
		}, true
	}

	if close == open+1 {
		return Range{
			Start: editor.Position{Line: cur.Line, Col: open + 1},
			End:   editor.Position{Line: cur.Line, Col: open},
			Empty: true,
		}, true
	}
	return Range{
		Start: editor.Position{Line: cur.Line, Col: open + 1},
		End:   editor.Position{Line: cur.Line, Col: close - 1},
	}, true
}

// bracketObject resolves i(/a(/i{/... with a depth-tracked scan across
// lines for the innermost enclosing pair.
func bracketObject(lines []string, cur editor.Position, open, close rune, around bool) (Range, bool) {
	openPos, ok := scanBackward(lines, cur, open, close)
	if !ok {
		return Range{}, false
	}
	closePos, ok := scanForward(lines, cur, open, close)
	if !ok {
		return Range{}, false
	}

	if around {
		return Range{Start: openPos, End: closePos}, true
	}

	inner := Range{Start: nextPos(lines, openPos), End: prevPos(lines, closePos)}
	if openPos.Line == closePos.Line && closePos.Col == openPos.Col+1 {
		inner.Start = editor.Position{Line: openPos.Line, Col: openPos.Col + 1}
		inner.End = openPos
		inner.Empty = true
	}
	return inner, true
}

// scanBackward finds the unmatched open bracket before (or at) the
// cursor.
func scanBackward(lines []string, cur editor.Position, open, close rune) (editor.Position, bool) {
	depth := 0
	pos := cur
	line := []rune(lines[pos.Line])
	if pos.Col < len(line) && line[pos.Col] == open {
		return pos, true
	}
	for {
		line := []rune(lines[pos.Line])
		if pos.Col < len(line) {
			switch line[pos.Col] {
			case close:
				if pos != cur {
					depth++
				}
			case open:
				if depth == 0 {
					return pos, true
				}
				depth--
			}
		}
		var ok bool
		pos, ok = prevBufferPos(lines, pos)
		if !ok {
			return editor.Position{}, false
		}
	}
}

// scanForward finds the unmatched close bracket at or after the cursor.
func scanForward(lines []string, cur editor.Position, open, close rune) (editor.Position, bool) {
	depth := 0
	pos := cur
	line := []rune(lines[pos.Line])
	if pos.Col < len(line) && line[pos.Col] == close {
		return pos, true
	}
	for {
		line := []rune(lines[pos.Line])
		if pos.Col < len(line) {
			switch line[pos.Col] {
			case open:
				if pos != cur {
					depth++
				}
			case close:
				if depth == 0 {
					return pos, true
				}
				depth--
			}
		}
		var ok bool
		pos, ok = nextBufferPos(lines, pos)
		if !ok {
			return editor.Position{}, false
		}
	}
}

// nextBufferPos advances one position, wrapping lines.
func nextBufferPos(lines []string, pos editor.Position) (editor.Position, bool) {
	line := []rune(lines[pos.Line])
	if pos.Col < len(line)-1 {
		return editor.Position{Line: pos.Line, Col: pos.Col + 1}, true
	}
	if pos.Line >= len(lines)-1 {
		return pos, false
	}
	return editor.Position{Line: pos.Line + 1, Col: 0}, true
}

// prevBufferPos retreats one position, wrapping lines.
func prevBufferPos(lines []string, pos editor.Position) (editor.Position, bool) {
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

// nextPos is nextBufferPos ignoring the end-of-buffer case; the caller
// guarantees a following position exists.
func nextPos(lines []string, pos editor.Position) editor.Position {
	next, _ := nextBufferPos(lines, pos)
	return next
}

// prevPos is prevBufferPos ignoring the start-of-buffer case.
func prevPos(lines []string, pos editor.Position) editor.Position {
	prev, _ := prevBufferPos(lines, pos)
	return prev
}

// paragraphObject resolves ip/ap: contiguous non-blank lines, with ap
// swallowing trailing blank lines. Paragraph objects are linewise.
func paragraphObject(lines []string, cur editor.Position, around bool) (Range, bool) {
	start := cur.Line
	end := cur.Line

	if lines[cur.Line] == "" {
		// On a blank run the object is the blank run itself.
		for start > 0 && lines[start-1] == "" {
			start--
		}
		for end < len(lines)-1 && lines[end+1] == "" {
			end++
		}
		if around {
			for end < len(lines)-1 && lines[end+1] != "" {
				end++
			}
		}
	} else {
		for start > 0 && lines[start-1] != "" {
			start--
		}
		for end < len(lines)-1 && lines[end+1] != "" {
			end++
		}
		if around {
			for end < len(lines)-1 && lines[end+1] == "" {
				end++
			}
		}
	}

	return Range{
		Start:    editor.Position{Line: start, Col: 0},
		End:      editor.Position{Line: end, Col: 0},
		Linewise: true,
	}, true
}

// sentenceObject resolves is/as on the current line region. as includes
// trailing whitespace up to the next sentence; is trims it.
func sentenceObject(lines []string, cur editor.Position, around bool) (Range, bool) {
	line := []rune(lines[cur.Line])
	if len(line) == 0 {
		return Range{Start: cur, End: cur}, true
	}
	col := cur.Col
	if col >= len(line) {
		col = len(line) - 1
	}

	isEnder := func(r rune) bool { return strings.ContainsRune(".!?", r) }

	// Find the start: just past the previous ender + whitespace.
	start := 0
	for i := col - 1; i >= 0; i-- {
		if isEnder(line[i]) {
			start = i + 1
			for start < len(line) && line[start] == ' ' {
				start++
			}
			break
		}
	}

	// Find the end: the next ender.
	end := len(line) - 1
	for i := col; i < len(line); i++ {
		if isEnder(line[i]) {
			end = i
			break
		}
	}

	if around {
		for end < len(line)-1 && line[end+1] == ' ' {
			end++
		}
	}

	if start > end {
		start = end
	}
	return Range{
		Start: editor.Position{Line: cur.Line, Col: start},
		End:   editor.Position{Line: cur.Line, Col: end},
	}, true
}
