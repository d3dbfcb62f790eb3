package engine

import (
	"strings"

	"github.com/dshills/vimkata/internal/editor"
	"github.com/dshills/vimkata/internal/keys"
)

// recordToken feeds macro recording. It returns true when the token was
// the q that stops recording, which is consumed rather than executed.
func (e *Engine) recordToken(st *editor.State, tok keys.Token) bool {
	if st.RecordRegister == 0 {
		return false
	}
	if tok == "q" && st.Mode == editor.ModeNormal && !st.Pending.Active() {
		var buf strings.Builder
		for _, t := range st.MacroBuffer {
			buf.WriteString(string(t))
		}
		st.Registers.Set(st.RecordRegister, buf.String(), false)
		st.RecordRegister = 0
		st.MacroBuffer = nil
		return true
	}
	st.MacroBuffer = append(st.MacroBuffer, tok)
	return false
}

// playMacro replays a register's keystrokes, the @ command. A missing or
// empty register is a no-op.
func (e *Engine) playMacro(st *editor.State, name rune, depth int) {
	count := st.Count()
	if name == '@' {
		name = st.LastMacro
	}
	if name == 0 {
		return
	}
	st.LastMacro = name

	c, ok := st.Registers.Get(name)
	if !ok || c.Text == "" {
		e.log.Debug("macro register %q empty", string(name))
		return
	}
	toks := keys.Tokenize(c.Text)
	for i := 0; i < count; i++ {
		for _, tok := range toks {
			e.dispatch(st, tok, depth+1)
		}
	}
}
