package engine

import (
	"strings"

	"github.com/dshills/vimkata/internal/editor"
	"github.com/dshills/vimkata/internal/keys"
)

// handleCommandLine accumulates a ':', '/', or '?' line typed one key at
// a time. The tokenizer delivers complete lines as single tokens in
// normal mode, so this mode is only entered by hosts that stream
// characters individually.
func (e *Engine) handleCommandLine(st *editor.State, tok keys.Token, depth int) {
	switch tok {
	case keys.TokenEscape:
		st.CommandLine = ""
		st.Mode = editor.ModeNormal
		return

	case keys.TokenEnter:
		line := st.CommandLine
		st.CommandLine = ""
		st.Mode = editor.ModeNormal
		if line == "" {
			return
		}
		body := line[1:]
		switch line[0] {
		case ':':
			e.runExLine(st, body, depth)
		case '/', '?':
			e.runSearchLine(st, keys.Token(line+string(keys.TokenEnter)))
		}
		return

	case keys.TokenBackspace:
		rs := []rune(st.CommandLine)
		if len(rs) > 0 {
			st.CommandLine = string(rs[:len(rs)-1])
		}
		if st.CommandLine == "" {
			st.Mode = editor.ModeNormal
		}
		return
	}

	if r := tok.Rune(); r != 0 {
		st.CommandLine += string(r)
		return
	}
	// Bracketed chords are kept verbatim so :normal bodies survive.
	if tok.IsSpecial() && !strings.HasPrefix(string(tok), "<C-") {
		return
	}
	st.CommandLine += string(tok)
}
