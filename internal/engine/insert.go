package engine

import (
	"github.com/dshills/vimkata/internal/editor"
	"github.com/dshills/vimkata/internal/keys"
)

// handleInsert processes insert and replace mode tokens.
func (e *Engine) handleInsert(st *editor.State, tok keys.Token) {
	if tok != keys.TokenEscape {
		st.InsertLog = append(st.InsertLog, tok)
	}
	switch tok {
	case keys.TokenEscape:
		e.finishInsert(st)
		return

	case keys.TokenEnter:
		line := []rune(st.CurrentLine())
		col := st.Cursor.Col
		if col > len(line) {
			col = len(line)
		}
		head := string(line[:col])
		tail := string(line[col:])
		indent := ""
		if st.Options.AutoIndent {
			indent = leadingWhitespace(head)
		}
		rest := append([]string(nil), st.Lines[st.Cursor.Line+1:]...)
		st.Lines = append(append(st.Lines[:st.Cursor.Line], head, indent+tail), rest...)
		st.Cursor = editor.Position{Line: st.Cursor.Line + 1, Col: len([]rune(indent))}
		return

	case keys.TokenBackspace:
		line := []rune(st.CurrentLine())
		col := st.Cursor.Col
		if col > 0 {
			st.Lines[st.Cursor.Line] = string(line[:col-1]) + string(line[col:])
			st.Cursor.Col--
			return
		}
		if st.Cursor.Line > 0 {
			prev := []rune(st.Line(st.Cursor.Line - 1))
			st.Lines[st.Cursor.Line-1] = string(prev) + string(line)
			rest := append([]string(nil), st.Lines[st.Cursor.Line+1:]...)
			st.Lines = append(st.Lines[:st.Cursor.Line], rest...)
			st.Cursor = editor.Position{Line: st.Cursor.Line - 1, Col: len(prev)}
		}
		return

	case keys.TokenTab:
		e.insertText(st, "\t")
		return

	case keys.TokenDelete:
		line := []rune(st.CurrentLine())
		if st.Cursor.Col < len(line) {
			st.Lines[st.Cursor.Line] = string(line[:st.Cursor.Col]) + string(line[st.Cursor.Col+1:])
		}
		return

	case keys.TokenLeft:
		if st.Cursor.Col > 0 {
			st.Cursor.Col--
		}
		return

	case keys.TokenRight:
		if st.Cursor.Col < len([]rune(st.CurrentLine())) {
			st.Cursor.Col++
		}
		return

	case keys.TokenUp:
		if st.Cursor.Line > 0 {
			st.Cursor.Line--
			if n := len([]rune(st.CurrentLine())); st.Cursor.Col > n {
				st.Cursor.Col = n
			}
		}
		return

	case keys.TokenDown:
		if st.Cursor.Line < st.LineCount()-1 {
			st.Cursor.Line++
			if n := len([]rune(st.CurrentLine())); st.Cursor.Col > n {
				st.Cursor.Col = n
			}
		}
		return
	}

	if tok.IsSpecial() {
		return
	}
	r := tok.Rune()
	if r == 0 {
		return
	}
	if st.Mode == editor.ModeReplace {
		line := []rune(st.CurrentLine())
		if st.Cursor.Col < len(line) {
			line[st.Cursor.Col] = r
			st.Lines[st.Cursor.Line] = string(line)
			st.Cursor.Col++
			return
		}
	}
	e.insertText(st, string(r))
}

// finishInsert leaves insert mode, first replaying the session's typed
// text for a counted entry (3ix, 2o) or replicating it for a block
// I/A insert.
func (e *Engine) finishInsert(st *editor.State) {
	typed := append([]keys.Token(nil), st.InsertLog...)
	repeat := st.InsertRepeat
	entry := st.InsertEntry
	block := st.BlockInsert
	st.InsertRepeat = 0
	st.InsertEntry = 0
	st.InsertLog = st.InsertLog[:0]
	st.BlockInsert = nil

	switch {
	case block != nil:
		e.replicateBlockInsert(st, block)
	case repeat > 1 && len(typed) > 0:
		for i := 1; i < repeat; i++ {
			if entry == 'o' || entry == 'O' {
				e.openLine(st, st.Cursor.Line+1)
			}
			for _, tok := range typed {
				e.handleInsert(st, tok)
			}
		}
	}
	st.InsertLog = st.InsertLog[:0]

	st.Mode = editor.ModeNormal
	if st.Cursor.Col > 0 {
		st.Cursor.Col--
	}
	st.ClampCursor()
	st.NoteChange()
}

// insertText inserts text at the cursor and advances past it.
func (e *Engine) insertText(st *editor.State, text string) {
	line := []rune(st.CurrentLine())
	col := st.Cursor.Col
	if col > len(line) {
		col = len(line)
	}
	st.Lines[st.Cursor.Line] = string(line[:col]) + text + string(line[col:])
	st.Cursor.Col = col + len([]rune(text))
}
