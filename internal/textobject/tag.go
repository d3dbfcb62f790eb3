package textobject

import (
	"regexp"

	"github.com/dshills/vimkata/internal/editor"
)

// tagPair is a matched <tag>...</tag> pair in flattened buffer offsets.
type tagPair struct {
	name       string
	openStart  int
	openEnd    int // offset of the '>' of the opening tag
	closeStart int // offset of the '<' of the closing tag
	closeEnd   int
}

var tagRe = regexp.MustCompile(`<(/?)([A-Za-z][A-Za-z0-9-]*)[^<>]*?(/?)>`)

// tagObject resolves it/at: the innermost <tag>...</tag> pair enclosing
// the cursor, matched with a name stack over the whole buffer treated as
// flat text. For it, when the pair's content is exactly one nested child
// pair, the child's inner content is preferred.
func tagObject(lines []string, cur editor.Position, around bool) (Range, bool) {
	flat, offsets := flatten(lines)
	curOffset := offsets[cur.Line] + cur.Col

	pairs := matchTagPairs(flat)
	if len(pairs) == 0 {
		return Range{}, false
	}

	// Innermost pair whose full extent contains the cursor.
	best := -1
	for i, p := range pairs {
		if curOffset >= p.openStart && curOffset <= p.closeEnd {
			if best < 0 || p.openStart >= pairs[best].openStart {
				best = i
			}
		}
	}
	if best < 0 {
		return Range{}, false
	}
	pair := pairs[best]

	if around {
		return Range{
			Start: offsetToPos(lines, offsets, pair.openStart),
			End:   offsetToPos(lines, offsets, pair.closeEnd),
		}, true
	}

	// Descend while the content is exactly one nested pair.
	for {
		descended := false
		for _, child := range pairs {
			if child.openStart == pair.openEnd+1 && child.closeEnd == pair.closeStart-1 {
				pair = child
				descended = true
				break
			}
		}
		if !descended {
			break
		}
	}

	innerStart := pair.openEnd + 1
	innerEnd := pair.closeStart - 1
	if innerStart > innerEnd {
		return Range{
			Start: offsetToPos(lines, offsets, innerStart),
			End:   offsetToPos(lines, offsets, pair.openEnd),
			Empty: true,
		}, true
	}
	return Range{
		Start: offsetToPos(lines, offsets, innerStart),
		End:   offsetToPos(lines, offsets, innerEnd),
	}, true
}

// flatten joins the buffer with newlines and returns each line's start
// offset.
func flatten(lines []string) (string, []int) {
	offsets := make([]int, len(lines))
	total := 0
	for i, line := range lines {
		offsets[i] = total
		total += len(line) + 1
	}
	flat := ""
	for i, line := range lines {
		if i > 0 {
			flat += "\n"
		}
		flat += line
	}
	return flat, offsets
}

// offsetToPos converts a flat offset back to a line/column position.
func offsetToPos(lines []string, offsets []int, offset int) editor.Position {
	for i := len(lines) - 1; i >= 0; i-- {
		if offset >= offsets[i] {
			return editor.Position{Line: i, Col: offset - offsets[i]}
		}
	}
	return editor.Position{}
}

// matchTagPairs pairs opening and closing tags with a name stack.
func matchTagPairs(flat string) []tagPair {
	var pairs []tagPair
	type open struct {
		name  string
		start int
		end   int
	}
	var stack []open

	for _, m := range tagRe.FindAllStringSubmatchIndex(flat, -1) {
		closing := flat[m[2]:m[3]] == "/"
		name := flat[m[4]:m[5]]
		selfClosing := m[6] >= 0 && flat[m[6]:m[7]] == "/"
		if selfClosing {
			continue
		}
		if !closing {
			stack = append(stack, open{name: name, start: m[0], end: m[1] - 1})
			continue
		}
		// Pop to the matching name, tolerating unbalanced markup.
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.name == name {
				pairs = append(pairs, tagPair{
					name:       name,
					openStart:  top.start,
					openEnd:    top.end,
					closeStart: m[0],
					closeEnd:   m[1] - 1,
				})
				break
			}
		}
	}
	return pairs
}
