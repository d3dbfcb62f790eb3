package engine

import (
	"strconv"
	"strings"

	"github.com/dshills/vimkata/internal/editor"
	"github.com/dshills/vimkata/internal/keys"
	"github.com/dshills/vimkata/internal/motion"
	"github.com/dshills/vimkata/internal/register"
	"github.com/dshills/vimkata/internal/textobject"
)

// handleVisual processes tokens in the visual modes.
func (e *Engine) handleVisual(st *editor.State, tok keys.Token, depth int) {
	p := &st.Pending

	if p.Await != editor.AwaitNone {
		e.handleVisualAwait(st, tok)
		return
	}

	if tok.IsCommandLine() {
		start, end := selectionSpan(st)
		st.SetMark('<', start)
		st.SetMark('>', end)
		st.Mode = editor.ModeNormal
		e.runExLine(st, tok.Line(), depth)
		return
	}
	if tok.IsSearchLine() {
		e.runSearchLine(st, tok)
		return
	}
	if tok == keys.TokenEscape {
		st.Mode = editor.ModeNormal
		st.BlockRagged = false
		abortPending(st)
		st.ClampCursor()
		return
	}
	if alias, ok := specialAlias(tok); ok {
		tok = alias
	}
	if key := tok.CtrlKey(); key != 0 {
		if key == 'v' {
			if st.Mode == editor.ModeVisualBlock {
				st.Mode = editor.ModeNormal
			} else {
				st.Mode = editor.ModeVisualBlock
			}
			st.BlockRagged = false
		}
		return
	}

	r := tok.Rune()
	if r == 0 {
		return
	}

	if r >= '0' && r <= '9' && !(r == '0' && st.CountBuffer == "") {
		st.CountBuffer += string(r)
		return
	}

	if p.GPrefix {
		p.GPrefix = false
		e.handleVisualG(st, r)
		return
	}

	if motion.IsFind(r) {
		p.Await = editor.AwaitFindChar
		p.FindKey = r
		return
	}
	if spec, ok := motion.Lookup(r); ok {
		if st.Mode == editor.ModeVisualBlock {
			// $ stretches the block to the end of every selected line
			// until the selection is resized again.
			st.BlockRagged = r == '$'
		}
		hasCount := st.HasCount()
		count := st.Count()
		if pos, found := motion.Target(st.Lines, st.Cursor, spec, count, hasCount, 0); found {
			st.Cursor = pos
			st.ClampCursor()
		}
		return
	}

	switch r {
	case 'o':
		st.VisualStart, st.Cursor = st.Cursor, st.VisualStart
		st.ClampCursor()

	case 'v':
		st.BlockRagged = false
		if st.Mode == editor.ModeVisual {
			st.Mode = editor.ModeNormal
		} else {
			st.Mode = editor.ModeVisual
		}

	case 'V':
		st.BlockRagged = false
		if st.Mode == editor.ModeVisualLine {
			st.Mode = editor.ModeNormal
		} else {
			st.Mode = editor.ModeVisualLine
		}

	case 'd', 'x':
		e.visualOperate(st, editor.OpDelete)

	case 'c', 's':
		e.visualOperate(st, editor.OpChange)

	case 'y':
		e.visualOperate(st, editor.OpYank)

	case '>':
		e.visualOperate(st, editor.OpIndent)

	case '<':
		e.visualOperate(st, editor.OpOutdent)

	case 'u':
		e.visualOperate(st, editor.OpLower)

	case 'U':
		e.visualOperate(st, editor.OpUpper)

	case '~':
		e.visualOperate(st, editor.OpToggleCase)

	case 'J':
		e.visualJoin(st)

	case 'p', 'P':
		e.visualPaste(st)

	case 'r':
		p.Await = editor.AwaitReplaceChar

	case 'i':
		p.Modifier = editor.ModifierInner
		p.Await = editor.AwaitTextObject

	case 'a':
		p.Modifier = editor.ModifierAround
		p.Await = editor.AwaitTextObject

	case 'I', 'A':
		if st.Mode == editor.ModeVisualBlock {
			e.blockEnterInsert(st, r == 'A')
			return
		}
		e.log.Debug("unhandled visual key %q", string(r))

	case 'g':
		p.GPrefix = true

	case '"':
		p.Await = editor.AwaitRegister

	case 'n':
		e.repeatSearch(st, false)

	case 'N':
		e.repeatSearch(st, true)

	case ';':
		e.repeatFind(st, false)

	case ',':
		e.repeatFind(st, true)

	default:
		e.log.Debug("unhandled visual key %q", string(r))
	}
}

func (e *Engine) handleVisualG(st *editor.State, r rune) {
	switch r {
	case 'U':
		e.visualOperate(st, editor.OpUpper)
	case 'u':
		e.visualOperate(st, editor.OpLower)
	case '~':
		e.visualOperate(st, editor.OpToggleCase)
	case 'q':
		e.visualOperate(st, editor.OpReflow)
	case 'J':
		e.visualJoin(st)
	default:
		if spec, ok := motion.LookupG(r); ok {
			hasCount := st.HasCount()
			count := st.Count()
			if pos, found := motion.Target(st.Lines, st.Cursor, spec, count, hasCount, 0); found {
				st.Cursor = pos
				st.ClampCursor()
			}
		}
	}
}

func (e *Engine) handleVisualAwait(st *editor.State, tok keys.Token) {
	p := &st.Pending
	await := p.Await
	p.Await = editor.AwaitNone

	if tok == keys.TokenEscape {
		p.Reset()
		st.CountBuffer = ""
		return
	}
	r := tok.Rune()
	if r == 0 {
		p.Reset()
		return
	}

	switch await {
	case editor.AwaitFindChar:
		key := p.FindKey
		p.FindKey = 0
		st.LastFindKey, st.LastFindChar = key, r
		spec, _ := motion.Lookup(key)
		count := st.Count()
		if pos, found := motion.Target(st.Lines, st.Cursor, spec, count, false, r); found {
			st.Cursor = pos
			st.ClampCursor()
		}

	case editor.AwaitRegister:
		if register.IsValid(r) {
			p.Register = r
		}

	case editor.AwaitReplaceChar:
		e.visualReplace(st, r)

	case editor.AwaitTextObject:
		around := p.Modifier == editor.ModifierAround
		p.Modifier = editor.ModifierNone
		rng, ok := textobject.Resolve(st.Lines, st.Cursor, r, around)
		if !ok || rng.Empty {
			return
		}
		st.VisualStart = rng.Start
		st.Cursor = rng.End
		if rng.Linewise && st.Mode == editor.ModeVisual {
			st.Mode = editor.ModeVisualLine
		}
		st.ClampCursor()
	}
}

// selectionSpan returns the ordered corners of the selection.
func selectionSpan(st *editor.State) (editor.Position, editor.Position) {
	start, end := st.VisualStart, st.Cursor
	if posBefore(end, start) {
		start, end = end, start
	}
	return start, end
}

// blockBounds returns the rectangle of a block selection.
func blockBounds(st *editor.State) (top, bottom, left, right int) {
	top, bottom = st.VisualStart.Line, st.Cursor.Line
	if bottom < top {
		top, bottom = bottom, top
	}
	left, right = st.VisualStart.Col, st.Cursor.Col
	if right < left {
		left, right = right, left
	}
	return top, bottom, left, right
}

// blockSpan clamps the block's column span to one line, stretching it
// to the line's end when the block is ragged.
func blockSpan(line []rune, left, right int, ragged bool) (from, to int) {
	from, to = clampSpan(left, right+1, len(line))
	if ragged {
		to = len(line)
	}
	return from, to
}

// blockEnterInsert starts a block-visual I or A insert. The cursor
// moves to the block's top line; the text typed there is replicated
// onto the remaining lines when insert mode ends.
func (e *Engine) blockEnterInsert(st *editor.State, appendSide bool) {
	top, bottom, left, right := blockBounds(st)
	ragged := st.BlockRagged
	st.BlockRagged = false
	st.CountBuffer = ""
	st.Pending.Reset()
	st.PushUndo()
	st.Mode = editor.ModeInsert

	col := left
	if appendSide {
		col = right + 1
	}
	line := []rune(st.Line(top))
	switch {
	case ragged && appendSide:
		col = len(line)
	case col > len(line) && appendSide:
		st.Lines[top] = string(line) + strings.Repeat(" ", col-len(line))
	case col > len(line):
		col = len(line)
	}
	st.Cursor = editor.Position{Line: top, Col: col}
	st.BlockInsert = &editor.BlockInsert{
		Top:      top,
		Bottom:   bottom,
		StartCol: col,
		Append:   appendSide,
		Ragged:   ragged && appendSide,
	}
	st.InsertRepeat = 1
	st.InsertEntry = 0
	st.InsertLog = st.InsertLog[:0]
	st.ClampCursor()
}

// replicateBlockInsert copies the text typed on the block's top line
// onto the remaining selected lines. Typing past the top line (with
// Enter) cancels the replication, as does an empty insert.
func (e *Engine) replicateBlockInsert(st *editor.State, bi *editor.BlockInsert) {
	if st.Cursor.Line != bi.Top {
		return
	}
	top := []rune(st.Line(bi.Top))
	end := st.Cursor.Col
	if end > len(top) {
		end = len(top)
	}
	if bi.StartCol >= end {
		return
	}
	text := string(top[bi.StartCol:end])
	for i := bi.Top + 1; i <= bi.Bottom && i < st.LineCount(); i++ {
		line := []rune(st.Line(i))
		col := bi.StartCol
		switch {
		case bi.Ragged:
			col = len(line)
		case col > len(line) && bi.Append:
			line = append(line, []rune(strings.Repeat(" ", col-len(line)))...)
		case col > len(line):
			// I skips lines the block does not reach.
			continue
		}
		st.Lines[i] = string(line[:col]) + text + string(line[col:])
	}
}

// visualOperate applies an operator to the selection and leaves visual
// mode.
func (e *Engine) visualOperate(st *editor.State, op editor.Operator) {
	st.CountBuffer = ""
	if st.Mode == editor.ModeVisualBlock {
		e.blockOperate(st, op)
		return
	}
	linewise := st.Mode == editor.ModeVisualLine
	start, end := selectionSpan(st)
	st.Mode = editor.ModeNormal
	st.Pending.Operator = op
	e.applyOperator(st, start, end, linewise)
}

// blockOperate applies an operator to a rectangular selection. A
// ragged ($-stretched) block runs to the end of each line.
func (e *Engine) blockOperate(st *editor.State, op editor.Operator) {
	top, bottom, left, right := blockBounds(st)
	ragged := st.BlockRagged
	st.BlockRagged = false
	st.Mode = editor.ModeNormal
	reg := takeRegister(st)
	st.Pending.Reset()

	switch op {
	case editor.OpYank, editor.OpDelete, editor.OpChange:
		var parts []string
		for i := top; i <= bottom; i++ {
			line := []rune(st.Line(i))
			from, to := blockSpan(line, left, right, ragged)
			parts = append(parts, string(line[from:to]))
		}
		text := strings.Join(parts, "\n")
		if op == editor.OpYank {
			st.Registers.SetYank(reg, text, false)
			st.Cursor = editor.Position{Line: top, Col: left}
			st.ClampCursor()
			return
		}
		st.PushUndo()
		st.Registers.SetDelete(reg, text, false)
		for i := top; i <= bottom; i++ {
			line := []rune(st.Line(i))
			from, to := blockSpan(line, left, right, ragged)
			st.Lines[i] = string(line[:from]) + string(line[to:])
		}
		st.Cursor = editor.Position{Line: top, Col: left}
		if op == editor.OpChange {
			st.Mode = editor.ModeInsert
		}
		st.ClampCursor()
		st.NoteChange()

	case editor.OpIndent, editor.OpOutdent:
		st.PushUndo()
		shiftLines(st, top, bottom, op == editor.OpIndent)
		st.Cursor = editor.Position{Line: top, Col: motion.FirstNonBlank(st.Line(top))}
		st.ClampCursor()
		st.NoteChange()

	case editor.OpUpper, editor.OpLower, editor.OpToggleCase:
		st.PushUndo()
		for i := top; i <= bottom; i++ {
			line := []rune(st.Line(i))
			from, to := blockSpan(line, left, right, ragged)
			for j := from; j < to; j++ {
				switch op {
				case editor.OpUpper:
					line[j] = []rune(strings.ToUpper(string(line[j])))[0]
				case editor.OpLower:
					line[j] = []rune(strings.ToLower(string(line[j])))[0]
				default:
					line[j] = swapCase(line[j])
				}
			}
			st.Lines[i] = string(line)
		}
		st.Cursor = editor.Position{Line: top, Col: left}
		st.ClampCursor()
		st.NoteChange()
	}
}

// visualJoin joins the selected lines.
func (e *Engine) visualJoin(st *editor.State) {
	start, end := selectionSpan(st)
	st.Mode = editor.ModeNormal
	st.Pending.Reset()
	span := end.Line - start.Line + 1
	st.Cursor = editor.Position{Line: start.Line, Col: 0}
	st.CountBuffer = strconv.Itoa(span)
	e.joinLines(st, true)
}

// visualPaste replaces the selection with register content.
func (e *Engine) visualPaste(st *editor.State) {
	reg := takeRegister(st)
	c, ok := st.Registers.Get(reg)
	if !ok || c.Text == "" {
		st.Mode = editor.ModeNormal
		st.Pending.Reset()
		return
	}

	linewise := st.Mode == editor.ModeVisualLine
	start, end := selectionSpan(st)
	st.Mode = editor.ModeNormal
	st.Pending.Operator = editor.OpDelete
	e.applyOperator(st, start, end, linewise)

	if c.Linewise {
		text := strings.TrimSuffix(c.Text, "\n")
		block := strings.Split(text, "\n")
		at := start.Line
		if !linewise {
			// A linewise paste over a charwise selection opens a line
			// below the cut point.
			at = start.Line + 1
			if at > st.LineCount() {
				at = st.LineCount()
			}
		}
		tail := append([]string(nil), st.Lines[at:]...)
		st.Lines = append(append(st.Lines[:at], block...), tail...)
		st.Cursor = editor.Position{Line: at, Col: motion.FirstNonBlank(block[0])}
		st.ClampCursor()
		return
	}

	if linewise {
		at := start.Line
		tail := append([]string(nil), st.Lines[at:]...)
		st.Lines = append(append(st.Lines[:at], strings.Split(c.Text, "\n")...), tail...)
		st.Cursor = editor.Position{Line: at, Col: 0}
		st.ClampCursor()
		return
	}

	line := []rune(st.CurrentLine())
	col := st.Cursor.Col
	if col > len(line) {
		col = len(line)
	}
	st.Lines[st.Cursor.Line] = string(line[:col]) + c.Text + string(line[col:])
	st.Cursor.Col = col + maxInt(len([]rune(c.Text))-1, 0)
	st.ClampCursor()
}

// visualReplace overwrites every selected character with one rune.
func (e *Engine) visualReplace(st *editor.State, r rune) {
	linewise := st.Mode == editor.ModeVisualLine
	block := st.Mode == editor.ModeVisualBlock
	st.Mode = editor.ModeNormal
	st.Pending.Reset()
	st.PushUndo()

	if block {
		top, bottom, left, right := blockBounds(st)
		ragged := st.BlockRagged
		st.BlockRagged = false
		for i := top; i <= bottom; i++ {
			line := []rune(st.Line(i))
			from, to := blockSpan(line, left, right, ragged)
			for j := from; j < to; j++ {
				line[j] = r
			}
			st.Lines[i] = string(line)
		}
		st.Cursor = editor.Position{Line: top, Col: left}
		st.ClampCursor()
		st.NoteChange()
		return
	}

	start, end := selectionSpan(st)
	for i := start.Line; i <= end.Line; i++ {
		line := []rune(st.Line(i))
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
			line[j] = r
		}
		st.Lines[i] = string(line)
	}
	st.Cursor = start
	st.ClampCursor()
	st.NoteChange()
}
