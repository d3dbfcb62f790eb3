package engine

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/dshills/vimkata/internal/editor"
	"github.com/dshills/vimkata/internal/keys"
	"github.com/dshills/vimkata/internal/motion"
	"github.com/dshills/vimkata/internal/register"
	"github.com/dshills/vimkata/internal/search"
)

func (e *Engine) handleNormal(st *editor.State, tok keys.Token, depth int) {
	p := &st.Pending

	if p.Await != editor.AwaitNone {
		e.handleAwait(st, tok, depth)
		return
	}

	if tok.IsCommandLine() {
		e.runExLine(st, tok.Line(), depth)
		return
	}
	if tok.IsSearchLine() {
		e.runSearchLine(st, tok)
		return
	}
	if tok == keys.TokenEscape {
		abortPending(st)
		return
	}
	if alias, ok := specialAlias(tok); ok {
		tok = alias
	}
	if key := tok.CtrlKey(); key != 0 {
		e.handleNormalCtrl(st, key)
		return
	}

	r := tok.Rune()
	if r == 0 {
		e.log.Debug("unhandled key %q", string(tok))
		return
	}

	// Count digits accumulate; a leading 0 is the line-start motion.
	if r >= '0' && r <= '9' && !(r == '0' && !digitsPending(st)) {
		if p.Operator != editor.OpNone {
			p.Count += string(r)
		} else {
			st.CountBuffer += string(r)
		}
		return
	}

	if p.GPrefix {
		p.GPrefix = false
		e.handleGKey(st, r)
		return
	}

	if p.Operator != editor.OpNone {
		e.handleOperatorKey(st, r)
		return
	}

	e.handleNormalKey(st, tok, r, depth)
}

func digitsPending(st *editor.State) bool {
	return st.CountBuffer != "" || st.Pending.Count != ""
}

// specialAlias maps arrow keys and <Del> onto the normal-mode commands
// they stand for.
func specialAlias(tok keys.Token) (keys.Token, bool) {
	switch tok {
	case keys.TokenLeft:
		return "h", true
	case keys.TokenDown:
		return "j", true
	case keys.TokenUp:
		return "k", true
	case keys.TokenRight:
		return "l", true
	case keys.TokenDelete:
		return "x", true
	}
	return "", false
}

func (e *Engine) handleNormalCtrl(st *editor.State, key rune) {
	switch key {
	case 'r':
		count := st.Count()
		for i := 0; i < count; i++ {
			if !st.Redo() {
				break
			}
		}
	case 'v':
		st.Count()
		st.Mode = editor.ModeVisualBlock
		st.VisualStart = st.Cursor
		st.BlockRagged = false
	default:
		e.log.Debug("unhandled control key <C-%c>", key)
	}
}

func (e *Engine) handleNormalKey(st *editor.State, tok keys.Token, r rune, depth int) {
	p := &st.Pending

	if op, ok := operatorFor(r); ok {
		if op.ChangesText() {
			beginChange(st, tok)
		}
		p.Operator = op
		return
	}

	if motion.IsFind(r) {
		p.Await = editor.AwaitFindChar
		p.FindKey = r
		return
	}
	if spec, ok := motion.Lookup(r); ok {
		hasCount := st.HasCount()
		count := st.Count()
		if pos, found := motion.Target(st.Lines, st.Cursor, spec, count, hasCount, 0); found {
			st.Cursor = pos
			st.ClampCursor()
		}
		return
	}

	switch r {
	case 'g':
		p.GPrefix = true

	case '"':
		p.Await = editor.AwaitRegister

	case 'x':
		beginChange(st, tok)
		e.deleteCharsForward(st)

	case 'X':
		beginChange(st, tok)
		e.deleteCharsBackward(st)

	case 'D':
		beginChange(st, tok)
		st.Count()
		e.operateToLineEnd(st, editor.OpDelete)

	case 'C':
		beginChange(st, tok)
		st.Count()
		e.operateToLineEnd(st, editor.OpChange)

	case 'S':
		beginChange(st, tok)
		p.Operator = editor.OpChange
		e.operatorLines(st)

	case 's':
		beginChange(st, tok)
		e.substituteChars(st)

	case 'J':
		beginChange(st, tok)
		e.joinLines(st, true)

	case 'p':
		beginChange(st, tok)
		e.paste(st, true)

	case 'P':
		beginChange(st, tok)
		e.paste(st, false)

	case 'u':
		count := st.Count()
		for i := 0; i < count; i++ {
			if !st.Undo() {
				break
			}
		}

	case 'r':
		beginChange(st, tok)
		p.Await = editor.AwaitReplaceChar

	case '~':
		beginChange(st, tok)
		e.toggleCaseForward(st)

	case '.':
		e.repeatLastChange(st, depth)

	case 'q':
		p.Await = editor.AwaitRecordRegister

	case '@':
		p.Await = editor.AwaitPlayRegister

	case 'v':
		st.Count()
		st.Mode = editor.ModeVisual
		st.VisualStart = st.Cursor

	case 'V':
		st.Count()
		st.Mode = editor.ModeVisualLine
		st.VisualStart = st.Cursor

	case 'm':
		p.Await = editor.AwaitMarkSet

	case '\'', '`':
		p.Await = editor.AwaitMarkGoto
		p.FindKey = r

	case 'n':
		e.repeatSearch(st, false)

	case 'N':
		e.repeatSearch(st, true)

	case '*':
		e.searchWord(st, false)

	case '#':
		e.searchWord(st, true)

	case ';':
		e.repeatFind(st, false)

	case ',':
		e.repeatFind(st, true)

	case ':', '/', '?':
		// Complete lines arrive as single tokens; a bare prompt character
		// comes from hosts that feed keys one at a time.
		st.Count()
		st.Mode = editor.ModeCommandLine
		st.CommandLine = string(r)

	case 'i', 'a', 'I', 'A', 'o', 'O', 'R':
		beginChange(st, tok)
		e.enterInsert(st, r, st.Count())

	default:
		st.Count()
		e.log.Debug("unhandled normal key %q", string(r))
	}
}

// operatorFor maps a single key to its operator.
func operatorFor(r rune) (editor.Operator, bool) {
	switch r {
	case 'd':
		return editor.OpDelete, true
	case 'c':
		return editor.OpChange, true
	case 'y':
		return editor.OpYank, true
	case '>':
		return editor.OpIndent, true
	case '<':
		return editor.OpOutdent, true
	case '=':
		return editor.OpFormat, true
	default:
		return editor.OpNone, false
	}
}

// handleGKey handles the second key of a g-prefixed command.
func (e *Engine) handleGKey(st *editor.State, r rune) {
	p := &st.Pending

	// gU, gu, g~, gq are operators of their own.
	var op editor.Operator
	switch r {
	case 'U':
		op = editor.OpUpper
	case 'u':
		op = editor.OpLower
	case '~':
		op = editor.OpToggleCase
	case 'q':
		op = editor.OpReflow
	}
	if op != editor.OpNone {
		if p.Operator != editor.OpNone {
			abortPending(st)
			return
		}
		beginChange(st, keys.Token("g"+string(r)))
		p.Operator = op
		return
	}

	if r == 'J' && p.Operator == editor.OpNone {
		beginChange(st, "gJ")
		e.joinLines(st, false)
		return
	}

	if spec, ok := motion.LookupG(r); ok {
		if p.Operator != editor.OpNone {
			e.applyOperatorMotion(st, spec, 0)
			return
		}
		hasCount := st.HasCount()
		count := st.Count()
		if pos, found := motion.Target(st.Lines, st.Cursor, spec, count, hasCount, 0); found {
			st.Cursor = pos
			st.ClampCursor()
		}
		return
	}

	abortPending(st)
	e.log.Debug("unhandled g key %q", string(r))
}

// handleOperatorKey handles the key after a pending operator.
func (e *Engine) handleOperatorKey(st *editor.State, r rune) {
	p := &st.Pending

	// The doubled operator works on whole lines.
	if r == p.Operator.Key() {
		e.operatorLines(st)
		return
	}

	switch r {
	case 'g':
		p.GPrefix = true
		return
	case 'i':
		p.Modifier = editor.ModifierInner
		p.Await = editor.AwaitTextObject
		return
	case 'a':
		p.Modifier = editor.ModifierAround
		p.Await = editor.AwaitTextObject
		return
	case '"':
		p.Await = editor.AwaitRegister
		return
	case '\'', '`':
		p.Await = editor.AwaitMarkGoto
		p.FindKey = r
		return
	}

	if motion.IsFind(r) {
		p.Await = editor.AwaitFindChar
		p.FindKey = r
		return
	}
	if spec, ok := motion.Lookup(r); ok {
		e.applyOperatorMotion(st, spec, 0)
		return
	}

	abortPending(st)
}

// handleAwait resolves a single-character argument.
func (e *Engine) handleAwait(st *editor.State, tok keys.Token, depth int) {
	p := &st.Pending
	await := p.Await
	p.Await = editor.AwaitNone

	if tok == keys.TokenEscape {
		abortPending(st)
		return
	}
	r := tok.Rune()
	if r == 0 && await != editor.AwaitReplaceChar {
		abortPending(st)
		return
	}

	switch await {
	case editor.AwaitFindChar:
		key := p.FindKey
		p.FindKey = 0
		st.LastFindKey, st.LastFindChar = key, r
		spec, _ := motion.Lookup(key)
		if p.Operator != editor.OpNone {
			e.applyOperatorMotion(st, spec, r)
			return
		}
		count := st.Count()
		if pos, found := motion.Target(st.Lines, st.Cursor, spec, count, false, r); found {
			st.Cursor = pos
			st.ClampCursor()
		}

	case editor.AwaitRegister:
		if register.IsValid(r) {
			p.Register = r
		} else {
			abortPending(st)
		}

	case editor.AwaitMarkSet:
		if unicode.IsLetter(r) {
			st.SetMark(r, st.Cursor)
		}

	case editor.AwaitMarkGoto:
		e.gotoMark(st, r)

	case editor.AwaitReplaceChar:
		e.replaceChars(st, tok)

	case editor.AwaitRecordRegister:
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			st.RecordRegister = r
			st.MacroBuffer = nil
		}

	case editor.AwaitPlayRegister:
		e.playMacro(st, r, depth)

	case editor.AwaitTextObject:
		e.resolveTextObject(st, r)
	}
}

func (e *Engine) gotoMark(st *editor.State, name rune) {
	p := &st.Pending
	key := p.FindKey
	p.FindKey = 0

	pos, ok := st.Mark(name)
	if !ok {
		abortPending(st)
		return
	}
	pos.Line = clampLineIndex(pos.Line, st)

	if p.Operator != editor.OpNone {
		if key == '\'' {
			start, end := st.Cursor, pos
			if end.Line < start.Line {
				start, end = end, start
			}
			e.applyOperator(st, start, end, true)
			return
		}
		start, end := st.Cursor, pos
		if posBefore(end, start) {
			start, end = end, start
		}
		end = prevBufferPos(st.Lines, end)
		if posBefore(end, start) {
			abortPending(st)
			return
		}
		e.applyOperator(st, start, end, false)
		return
	}

	st.Count()
	if key == '\'' {
		st.Cursor = editor.Position{Line: pos.Line, Col: motion.FirstNonBlank(st.Line(pos.Line))}
	} else {
		st.Cursor = pos
	}
	st.ClampCursor()
}

func clampLineIndex(line int, st *editor.State) int {
	if line < 0 {
		return 0
	}
	if line >= st.LineCount() {
		return st.LineCount() - 1
	}
	return line
}

// deleteCharsForward implements x.
func (e *Engine) deleteCharsForward(st *editor.State) {
	count := st.Count()
	reg := takeRegister(st)
	line := []rune(st.CurrentLine())
	col := st.Cursor.Col
	if col >= len(line) {
		abortPending(st)
		return
	}
	end := col + count
	if end > len(line) {
		end = len(line)
	}
	st.PushUndo()
	st.Registers.SetDelete(reg, string(line[col:end]), false)
	st.Lines[st.Cursor.Line] = string(line[:col]) + string(line[end:])
	st.ClampCursor()
	st.NoteChange()
}

// deleteCharsBackward implements X.
func (e *Engine) deleteCharsBackward(st *editor.State) {
	count := st.Count()
	reg := takeRegister(st)
	line := []rune(st.CurrentLine())
	col := st.Cursor.Col
	if col == 0 {
		abortPending(st)
		return
	}
	start := col - count
	if start < 0 {
		start = 0
	}
	st.PushUndo()
	st.Registers.SetDelete(reg, string(line[start:col]), false)
	st.Lines[st.Cursor.Line] = string(line[:start]) + string(line[col:])
	st.Cursor.Col = start
	st.ClampCursor()
	st.NoteChange()
}

// operateToLineEnd implements D and C via the $ motion.
func (e *Engine) operateToLineEnd(st *editor.State, op editor.Operator) {
	line := []rune(st.CurrentLine())
	if len(line) == 0 {
		if op == editor.OpChange {
			st.Pending.Reset()
			st.PushUndo()
			st.Mode = editor.ModeInsert
			return
		}
		abortPending(st)
		return
	}
	st.Pending.Operator = op
	end := editor.Position{Line: st.Cursor.Line, Col: len(line) - 1}
	e.applyOperator(st, st.Cursor, end, false)
}

// substituteChars implements s: delete count characters and insert.
func (e *Engine) substituteChars(st *editor.State) {
	count := st.Count()
	reg := takeRegister(st)
	line := []rune(st.CurrentLine())
	col := st.Cursor.Col
	end := col + count
	if end > len(line) {
		end = len(line)
	}
	st.PushUndo()
	if col < len(line) {
		st.Registers.SetDelete(reg, string(line[col:end]), false)
		st.Lines[st.Cursor.Line] = string(line[:col]) + string(line[end:])
	}
	st.Mode = editor.ModeInsert
	st.ClampCursor()
	st.NoteChange()
}

// joinLines implements J and gJ.
func (e *Engine) joinLines(st *editor.State, withSpace bool) {
	count := st.Count()
	if count < 2 {
		count = 2
	}
	if st.Cursor.Line+1 >= st.LineCount() {
		abortPending(st)
		return
	}
	st.PushUndo()
	for i := 1; i < count; i++ {
		if st.Cursor.Line+1 >= st.LineCount() {
			break
		}
		line := st.CurrentLine()
		next := st.Line(st.Cursor.Line + 1)
		joinCol := len([]rune(line))
		if withSpace {
			next = strings.TrimLeft(next, " \t")
			sep := " "
			if line == "" || strings.HasSuffix(line, " ") || next == "" {
				sep = ""
			}
			st.Lines[st.Cursor.Line] = line + sep + next
		} else {
			st.Lines[st.Cursor.Line] = line + next
		}
		rest := append([]string(nil), st.Lines[st.Cursor.Line+2:]...)
		st.Lines = append(st.Lines[:st.Cursor.Line+1], rest...)
		st.Cursor.Col = joinCol
	}
	st.ClampCursor()
	st.NoteChange()
}

// paste implements p and P.
func (e *Engine) paste(st *editor.State, after bool) {
	count := st.Count()
	reg := takeRegister(st)
	c, ok := st.Registers.Get(reg)
	if !ok || c.Text == "" {
		abortPending(st)
		return
	}
	st.PushUndo()

	if c.Linewise {
		text := strings.TrimSuffix(c.Text, "\n")
		var block []string
		for i := 0; i < count; i++ {
			block = append(block, strings.Split(text, "\n")...)
		}
		at := st.Cursor.Line
		if after {
			at++
		}
		tail := append([]string(nil), st.Lines[at:]...)
		st.Lines = append(append(st.Lines[:at], block...), tail...)
		st.Cursor = editor.Position{Line: at, Col: motion.FirstNonBlank(block[0])}
		st.ClampCursor()
		st.NoteChange()
		return
	}

	text := strings.Repeat(c.Text, count)
	line := []rune(st.CurrentLine())
	col := st.Cursor.Col
	if after && len(line) > 0 {
		col++
	}
	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		st.Lines[st.Cursor.Line] = string(line[:col]) + text + string(line[col:])
		st.Cursor.Col = col + len([]rune(text)) - 1
	} else {
		head := string(line[:col])
		tailText := string(line[col:])
		newLines := make([]string, 0, len(parts))
		newLines = append(newLines, head+parts[0])
		newLines = append(newLines, parts[1:len(parts)-1]...)
		last := parts[len(parts)-1]
		newLines = append(newLines, last+tailText)
		rest := append([]string(nil), st.Lines[st.Cursor.Line+1:]...)
		st.Lines = append(append(st.Lines[:st.Cursor.Line], newLines...), rest...)
		st.Cursor = editor.Position{
			Line: st.Cursor.Line + len(parts) - 1,
			Col:  maxInt(len([]rune(last))-1, 0),
		}
	}
	st.ClampCursor()
	st.NoteChange()
}

// replaceChars implements r{char}.
func (e *Engine) replaceChars(st *editor.State, tok keys.Token) {
	count := st.Count()
	r := tok.Rune()
	line := []rune(st.CurrentLine())
	col := st.Cursor.Col

	if tok == keys.TokenEnter {
		// r<CR> splits the line, consuming the replaced character.
		if col >= len(line) {
			abortPending(st)
			return
		}
		st.PushUndo()
		head := string(line[:col])
		tail := string(line[col+1:])
		rest := append([]string(nil), st.Lines[st.Cursor.Line+1:]...)
		st.Lines = append(append(st.Lines[:st.Cursor.Line], head, tail), rest...)
		st.Cursor = editor.Position{Line: st.Cursor.Line + 1, Col: 0}
		st.NoteChange()
		return
	}

	if r == 0 || col+count > len(line) {
		abortPending(st)
		return
	}
	st.PushUndo()
	for i := 0; i < count; i++ {
		line[col+i] = r
	}
	st.Lines[st.Cursor.Line] = string(line)
	st.Cursor.Col = col + count - 1
	st.ClampCursor()
	st.NoteChange()
}

// toggleCaseForward implements ~.
func (e *Engine) toggleCaseForward(st *editor.State) {
	count := st.Count()
	line := []rune(st.CurrentLine())
	col := st.Cursor.Col
	if col >= len(line) {
		abortPending(st)
		return
	}
	end := col + count
	if end > len(line) {
		end = len(line)
	}
	st.PushUndo()
	for i := col; i < end; i++ {
		line[i] = swapCase(line[i])
	}
	st.Lines[st.Cursor.Line] = string(line)
	st.Cursor.Col = end
	st.ClampCursor()
	st.NoteChange()
}

func swapCase(r rune) rune {
	switch {
	case unicode.IsUpper(r):
		return unicode.ToLower(r)
	case unicode.IsLower(r):
		return unicode.ToUpper(r)
	default:
		return r
	}
}

// repeatLastChange implements the dot command.
func (e *Engine) repeatLastChange(st *editor.State, depth int) {
	hasCount := st.HasCount()
	count := st.Count()
	if len(st.LastChange) == 0 {
		return
	}
	replay := append([]keys.Token(nil), st.LastChange...)
	if hasCount {
		// A count on '.' overrides the recorded one.
		for len(replay) > 0 {
			if r := replay[0].Rune(); r < '0' || r > '9' {
				break
			}
			replay = replay[1:]
		}
		var digits []keys.Token
		for _, d := range strconv.Itoa(count) {
			digits = append(digits, keys.Token(string(d)))
		}
		replay = append(digits, replay...)
	}
	for _, tok := range replay {
		e.dispatch(st, tok, depth+1)
	}
}

// repeatSearch implements n and N.
func (e *Engine) repeatSearch(st *editor.State, reverse bool) {
	count := st.Count()
	if st.Search.Pattern == "" {
		return
	}
	backward := st.Search.Backward
	if reverse {
		backward = !backward
	}
	for i := 0; i < count; i++ {
		m, ok := search.Find(st.Lines, st.Search.Pattern, st.Cursor, backward, st.Options)
		if !ok {
			return
		}
		st.Cursor = editor.Position(m)
	}
	st.ClampCursor()
}

// searchWord implements * and #.
func (e *Engine) searchWord(st *editor.State, backward bool) {
	st.Count()
	pattern := search.WordPattern(st.Lines, st.Cursor)
	if pattern == "" {
		return
	}
	st.Search = editor.SearchState{Pattern: pattern, Backward: backward}
	if m, ok := search.Find(st.Lines, pattern, st.Cursor, backward, st.Options); ok {
		st.Cursor = editor.Position(m)
		st.ClampCursor()
	}
}

// repeatFind implements ; and ,.
func (e *Engine) repeatFind(st *editor.State, reverse bool) {
	count := st.Count()
	if st.LastFindKey == 0 {
		return
	}
	key := st.LastFindKey
	if reverse {
		key = reverseFindKey(key)
	}
	spec, ok := motion.Lookup(key)
	if !ok {
		return
	}
	if pos, found := motion.Target(st.Lines, st.Cursor, spec, count, false, st.LastFindChar); found {
		st.Cursor = pos
		st.ClampCursor()
	}
}

func reverseFindKey(key rune) rune {
	switch key {
	case 'f':
		return 'F'
	case 'F':
		return 'f'
	case 't':
		return 'T'
	case 'T':
		return 't'
	default:
		return key
	}
}

// runSearchLine executes a complete '/' or '?' line. With an operator
// pending the search acts as an exclusive motion.
func (e *Engine) runSearchLine(st *editor.State, tok keys.Token) {
	pattern := tok.Line()
	backward := strings.HasPrefix(string(tok), "?")
	if pattern == "" {
		pattern = st.Search.Pattern
		if pattern == "" {
			abortPending(st)
			return
		}
	}
	st.Search = editor.SearchState{Pattern: pattern, Backward: backward}

	m, ok := search.Find(st.Lines, pattern, st.Cursor, backward, st.Options)
	if !ok {
		abortPending(st)
		return
	}
	target := editor.Position(m)

	if st.Pending.Operator != editor.OpNone {
		start, end := st.Cursor, target
		if posBefore(end, start) {
			start, end = end, start
		}
		end = prevBufferPos(st.Lines, end)
		if posBefore(end, start) {
			abortPending(st)
			return
		}
		e.applyOperator(st, start, end, false)
		return
	}

	st.Count()
	st.Cursor = target
	st.ClampCursor()
}

// enterInsert handles the insert-entry commands. The count is replayed
// when insert mode ends: [count]i repeats the typed text, [count]o
// opens that many lines.
func (e *Engine) enterInsert(st *editor.State, r rune, count int) {
	st.PushUndo()
	st.InsertRepeat = count
	st.InsertEntry = r
	st.InsertLog = st.InsertLog[:0]
	switch r {
	case 'i':
		st.Mode = editor.ModeInsert
	case 'a':
		st.Mode = editor.ModeInsert
		if len([]rune(st.CurrentLine())) > 0 {
			st.Cursor.Col++
		}
	case 'I':
		st.Mode = editor.ModeInsert
		st.Cursor.Col = motion.FirstNonBlank(st.CurrentLine())
	case 'A':
		st.Mode = editor.ModeInsert
		st.Cursor.Col = len([]rune(st.CurrentLine()))
	case 'o':
		st.Mode = editor.ModeInsert
		e.openLine(st, st.Cursor.Line+1)
	case 'O':
		st.Mode = editor.ModeInsert
		e.openLine(st, st.Cursor.Line)
	case 'R':
		st.Mode = editor.ModeReplace
	}
	st.ClampCursor()
}

// openLine inserts an empty (auto-indented) line at the given index and
// places the cursor on it.
func (e *Engine) openLine(st *editor.State, at int) {
	indent := ""
	if st.Options.AutoIndent {
		indent = leadingWhitespace(st.CurrentLine())
	}
	tail := append([]string(nil), st.Lines[at:]...)
	st.Lines = append(append(st.Lines[:at], indent), tail...)
	st.Cursor = editor.Position{Line: at, Col: len([]rune(indent))}
}

func leadingWhitespace(line string) string {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return line[:i]
		}
	}
	return line
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
