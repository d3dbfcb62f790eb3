package engine

import (
	"strings"

	"github.com/dshills/vimkata/internal/editor"
	"github.com/dshills/vimkata/internal/motion"
	"github.com/dshills/vimkata/internal/textobject"
)

// applyOperatorMotion resolves a motion under a pending operator and
// applies the operator over the resulting range. arg carries the f/F/t/T
// target character.
func (e *Engine) applyOperatorMotion(st *editor.State, spec motion.Spec, arg rune) {
	p := &st.Pending
	op := p.Operator
	hasCount := st.HasCount()
	count := st.Count()

	// cw and cW act like ce/cE when the cursor sits on a word.
	if op == editor.OpChange && cursorOnNonBlank(st) {
		switch spec.Kind {
		case motion.KindWordForward:
			spec, _ = motion.Lookup('e')
		case motion.KindWORDForward:
			spec, _ = motion.Lookup('E')
		}
	}

	target, ok := motion.Target(st.Lines, st.Cursor, spec, count, hasCount, arg)
	if !ok {
		abortPending(st)
		return
	}

	if spec.Linewise {
		start, end := st.Cursor, target
		if end.Line < start.Line {
			start, end = end, start
		}
		e.applyOperator(st, start, end, true)
		return
	}

	start, end := st.Cursor, target
	inclusive := spec.Inclusive

	if start == end {
		// dl at the last character still deletes it.
		if spec.Kind == motion.KindRight && len([]rune(st.CurrentLine())) > 0 {
			inclusive = true
		} else {
			abortPending(st)
			return
		}
	}

	if posBefore(end, start) {
		start, end = end, start
		if !inclusive {
			end = prevBufferPos(st.Lines, end)
		}
	} else {
		// A word motion that crosses onto a new line stops the operator
		// at the end of the current line; the newline survives.
		if (spec.Kind == motion.KindWordForward || spec.Kind == motion.KindWORDForward) &&
			end.Line > start.Line && end.Col <= motion.FirstNonBlank(st.Line(end.Line)) {
			last := len([]rune(st.Line(start.Line))) - 1
			if last < start.Col {
				last = start.Col
			}
			end = editor.Position{Line: start.Line, Col: last}
			inclusive = true
		}
		if !inclusive {
			end = prevBufferPos(st.Lines, end)
		}
	}

	if posBefore(end, start) {
		abortPending(st)
		return
	}
	e.applyOperator(st, start, end, false)
}

// operatorLines applies the pending operator to whole lines (dd, yy,
// 3>>, gUU).
func (e *Engine) operatorLines(st *editor.State) {
	count := st.Count()
	start := editor.Position{Line: st.Cursor.Line}
	end := editor.Position{Line: st.Cursor.Line + count - 1}
	if end.Line >= st.LineCount() {
		end.Line = st.LineCount() - 1
	}
	e.applyOperator(st, start, end, true)
}

// resolveTextObject applies the pending operator to a text object.
func (e *Engine) resolveTextObject(st *editor.State, object rune) {
	p := &st.Pending
	around := p.Modifier == editor.ModifierAround
	p.Modifier = editor.ModifierNone
	st.Count()

	rng, ok := textobject.Resolve(st.Lines, st.Cursor, object, around)
	if !ok {
		abortPending(st)
		return
	}

	if rng.Empty {
		// An empty inner object: change enters insert between the
		// delimiters, everything else is a no-op.
		op := p.Operator
		p.Reset()
		if op == editor.OpChange {
			st.PushUndo()
			st.Mode = editor.ModeInsert
			st.Cursor = rng.Start
			st.ClampCursor()
		} else {
			st.AbortChangeLog()
		}
		return
	}

	e.applyOperator(st, rng.Start, rng.End, rng.Linewise)
}

// applyOperator runs the pending operator over an inclusive range and
// clears the pending state. Linewise ranges are identified by line only.
func (e *Engine) applyOperator(st *editor.State, start, end editor.Position, linewise bool) {
	op := st.Pending.Operator
	reg := takeRegister(st)
	st.Pending.Reset()
	st.CountBuffer = ""

	if linewise {
		start.Col = 0
		end.Col = maxInt(len([]rune(st.Line(end.Line)))-1, 0)
	}

	switch op {
	case editor.OpYank:
		st.Registers.SetYank(reg, extractRange(st.Lines, start, end, linewise), linewise)
		st.AbortChangeLog()
		if posBefore(start, st.Cursor) {
			st.Cursor = start
		}
		st.ClampCursor()

	case editor.OpDelete:
		st.PushUndo()
		st.Registers.SetDelete(reg, extractRange(st.Lines, start, end, linewise), linewise)
		if linewise {
			deleteLinewise(st, start.Line, end.Line)
		} else {
			deleteCharwise(st, start, end)
		}
		st.NoteChange()

	case editor.OpChange:
		st.PushUndo()
		st.Registers.SetDelete(reg, extractRange(st.Lines, start, end, linewise), linewise)
		if linewise {
			indent := ""
			if st.Options.AutoIndent {
				indent = leadingWhitespace(st.Line(start.Line))
			}
			rest := append([]string(nil), st.Lines[end.Line+1:]...)
			st.Lines = append(append(st.Lines[:start.Line], indent), rest...)
			st.Cursor = editor.Position{Line: start.Line, Col: len([]rune(indent))}
		} else {
			deleteCharwise(st, start, end)
			st.Cursor = start
		}
		st.Mode = editor.ModeInsert
		st.ClampCursor()
		st.NoteChange()

	case editor.OpIndent, editor.OpOutdent:
		st.PushUndo()
		shiftLines(st, start.Line, end.Line, op == editor.OpIndent)
		st.Cursor = editor.Position{Line: start.Line, Col: motion.FirstNonBlank(st.Line(start.Line))}
		st.ClampCursor()
		st.NoteChange()

	case editor.OpUpper, editor.OpLower, editor.OpToggleCase:
		st.PushUndo()
		transformRange(st, start, end, linewise, op)
		st.Cursor = start
		st.ClampCursor()
		st.NoteChange()

	case editor.OpReflow:
		st.PushUndo()
		reflowLines(st, start.Line, end.Line)
		st.Cursor = editor.Position{Line: start.Line, Col: 0}
		st.ClampCursor()
		st.NoteChange()

	case editor.OpFormat:
		// Reindenting is host-specific; = only moves the cursor here.
		st.AbortChangeLog()
		st.Cursor = editor.Position{Line: start.Line, Col: motion.FirstNonBlank(st.Line(start.Line))}
		st.ClampCursor()
	}
}

func cursorOnNonBlank(st *editor.State) bool {
	line := []rune(st.CurrentLine())
	if st.Cursor.Col >= len(line) {
		return false
	}
	r := line[st.Cursor.Col]
	return r != ' ' && r != '\t'
}

func posBefore(a, b editor.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Col < b.Col
}

// prevBufferPos steps one character backward, crossing line boundaries.
func prevBufferPos(lines []string, pos editor.Position) editor.Position {
	if pos.Col > 0 {
		return editor.Position{Line: pos.Line, Col: pos.Col - 1}
	}
	if pos.Line > 0 {
		col := len([]rune(lines[pos.Line-1])) - 1
		if col < 0 {
			col = 0
		}
		return editor.Position{Line: pos.Line - 1, Col: col}
	}
	return pos
}

// extractRange returns the text of an inclusive range. Linewise text
// carries a trailing newline.
func extractRange(lines []string, start, end editor.Position, linewise bool) string {
	if linewise {
		return strings.Join(lines[start.Line:end.Line+1], "\n") + "\n"
	}
	if start.Line == end.Line {
		line := []rune(lines[start.Line])
		from, to := clampSpan(start.Col, end.Col+1, len(line))
		return string(line[from:to])
	}
	var out strings.Builder
	first := []rune(lines[start.Line])
	from, _ := clampSpan(start.Col, start.Col, len(first))
	out.WriteString(string(first[from:]))
	for i := start.Line + 1; i < end.Line; i++ {
		out.WriteString("\n")
		out.WriteString(lines[i])
	}
	last := []rune(lines[end.Line])
	_, to := clampSpan(0, end.Col+1, len(last))
	out.WriteString("\n")
	out.WriteString(string(last[:to]))
	return out.String()
}

func clampSpan(from, to, n int) (int, int) {
	if from < 0 {
		from = 0
	}
	if from > n {
		from = n
	}
	if to < from {
		to = from
	}
	if to > n {
		to = n
	}
	return from, to
}

// deleteCharwise removes an inclusive character range, joining the
// boundary lines when the range spans lines.
func deleteCharwise(st *editor.State, start, end editor.Position) {
	first := []rune(st.Line(start.Line))
	last := []rune(st.Line(end.Line))
	headEnd, _ := clampSpan(start.Col, start.Col, len(first))
	_, tailStart := clampSpan(0, end.Col+1, len(last))
	st.Lines[start.Line] = string(first[:headEnd]) + string(last[tailStart:])
	if end.Line > start.Line {
		rest := append([]string(nil), st.Lines[end.Line+1:]...)
		st.Lines = append(st.Lines[:start.Line+1], rest...)
	}
	st.Cursor = start
	st.ClampCursor()
}

// deleteLinewise removes whole lines.
func deleteLinewise(st *editor.State, startLine, endLine int) {
	rest := append([]string(nil), st.Lines[endLine+1:]...)
	st.Lines = append(st.Lines[:startLine], rest...)
	if len(st.Lines) == 0 {
		st.Lines = []string{""}
	}
	line := clampLineIndex(startLine, st)
	st.Cursor = editor.Position{Line: line, Col: motion.FirstNonBlank(st.Line(line))}
	st.ClampCursor()
}

// shiftLines indents or dedents whole lines by one shiftwidth.
func shiftLines(st *editor.State, startLine, endLine int, indent bool) {
	unit := st.Options.ShiftWidth
	if unit <= 0 {
		unit = 2
	}
	pad := strings.Repeat(" ", unit)
	for i := startLine; i <= endLine && i < st.LineCount(); i++ {
		line := st.Lines[i]
		if indent {
			if line != "" {
				st.Lines[i] = pad + line
			}
			continue
		}
		for n := 0; n < unit && line != ""; n++ {
			if line[0] == '\t' {
				line = line[1:]
				break
			}
			if line[0] != ' ' {
				break
			}
			line = line[1:]
		}
		st.Lines[i] = line
	}
}

// transformRange maps a case operator over a range.
func transformRange(st *editor.State, start, end editor.Position, linewise bool, op editor.Operator) {
	conv := func(r rune) rune {
		switch op {
		case editor.OpUpper:
			return []rune(strings.ToUpper(string(r)))[0]
		case editor.OpLower:
			return []rune(strings.ToLower(string(r)))[0]
		default:
			return swapCase(r)
		}
	}
	for i := start.Line; i <= end.Line && i < st.LineCount(); i++ {
		line := []rune(st.Lines[i])
		from, to := 0, len(line)
		if !linewise {
			if i == start.Line {
				from = start.Col
			}
			if i == end.Line {
				to = end.Col + 1
			}
		}
		from, to = clampSpan(from, to, len(line))
		for j := from; j < to; j++ {
			line[j] = conv(line[j])
		}
		st.Lines[i] = string(line)
	}
}

// reflowLines rewraps a line range at the text width, the gq behavior.
func reflowLines(st *editor.State, startLine, endLine int) {
	width := st.Options.TextWidth
	if width <= 0 {
		width = 79
	}
	if endLine >= st.LineCount() {
		endLine = st.LineCount() - 1
	}
	words := strings.Fields(strings.Join(st.Lines[startLine:endLine+1], " "))

	var wrapped []string
	var cur strings.Builder
	for _, w := range words {
		if cur.Len() == 0 {
			cur.WriteString(w)
			continue
		}
		if cur.Len()+1+len(w) > width {
			wrapped = append(wrapped, cur.String())
			cur.Reset()
			cur.WriteString(w)
			continue
		}
		cur.WriteString(" ")
		cur.WriteString(w)
	}
	if cur.Len() > 0 {
		wrapped = append(wrapped, cur.String())
	}
	if len(wrapped) == 0 {
		wrapped = []string{""}
	}

	rest := append([]string(nil), st.Lines[endLine+1:]...)
	st.Lines = append(append(st.Lines[:startLine], wrapped...), rest...)
}
