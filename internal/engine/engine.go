// Package engine is the mode dispatcher: it consumes keystroke tokens
// one at a time and advances the editor state through normal, insert,
// replace, visual, and command-line mode semantics.
package engine

import (
	"github.com/dshills/vimkata/internal/editor"
	"github.com/dshills/vimkata/internal/excmd"
	"github.com/dshills/vimkata/internal/keys"
	"github.com/dshills/vimkata/internal/log"
)

// Config configures an Engine.
type Config struct {
	// Log receives diagnostics. Nil discards them.
	Log *log.Logger

	// Shell executes :r !cmd commands. Nil makes those commands no-ops.
	Shell excmd.ShellRunner
}

// Engine executes keystrokes against editor states. It holds no mutable
// state of its own, so one Engine can replay many attempts concurrently.
type Engine struct {
	log   *log.Logger
	shell excmd.ShellRunner
}

// New creates an engine.
func New(cfg Config) *Engine {
	lg := cfg.Log
	if lg == nil {
		lg = log.Discard()
	}
	return &Engine{log: lg, shell: cfg.Shell}
}

// maxDepth caps recursion through macros, dot-repeat, and :normal.
const maxDepth = 100

// Execute runs a single token and returns the resulting state. The
// input state is never mutated.
func (e *Engine) Execute(st *editor.State, tok keys.Token) *editor.State {
	out := st.Clone()
	e.dispatch(out, tok, 0)
	return out
}

// ExecuteAll streams raw keystrokes through the engine. An incomplete
// trailing token (an open bracket chord or an unterminated command
// line) is buffered in PendingInput and completed by a later call.
func (e *Engine) ExecuteAll(st *editor.State, raw string) *editor.State {
	out := st.Clone()
	rest := out.PendingInput + raw
	out.PendingInput = ""
	for rest != "" {
		tok, remaining, ok := keys.Next(rest, out.Mode.Class())
		if !ok {
			out.PendingInput = rest
			break
		}
		rest = remaining
		e.dispatch(out, tok, 0)
	}
	return out
}

// dispatch routes one token by mode, mutating st in place. depth guards
// recursive replay.
func (e *Engine) dispatch(st *editor.State, tok keys.Token, depth int) {
	if depth > maxDepth {
		e.log.Warn("keystroke recursion limit reached")
		return
	}

	// Macro recording captures raw tokens; the terminating q is the one
	// token recording swallows.
	if depth == 0 && e.recordToken(st, tok) {
		return
	}
	st.LogToken(tok)

	switch st.Mode {
	case editor.ModeNormal:
		e.handleNormal(st, tok, depth)
	case editor.ModeInsert, editor.ModeReplace:
		e.handleInsert(st, tok)
	case editor.ModeVisual, editor.ModeVisualLine, editor.ModeVisualBlock:
		e.handleVisual(st, tok, depth)
	case editor.ModeCommandLine:
		e.handleCommandLine(st, tok, depth)
	}

	// A change is complete once the machine is back in plain normal
	// mode.
	if st.Logging() && st.Mode == editor.ModeNormal && !st.Pending.Active() {
		st.EndChangeLog()
	}
}

// beginChange starts dot-repeat capture for a change command. The
// pending count is replayed as part of the change so 3x repeats as 3x.
func beginChange(st *editor.State, tok keys.Token) {
	st.BeginChangeLog()
	for _, d := range st.CountBuffer {
		st.LogToken(keys.Token(string(d)))
	}
	st.LogToken(tok)
}

// abortPending clears all pending command state.
func abortPending(st *editor.State) {
	st.AbortChangeLog()
	st.Pending.Reset()
	st.CountBuffer = ""
}

// takeRegister consumes the register selected with " for the current
// command, returning 0 when none was chosen.
func takeRegister(st *editor.State) rune {
	r := st.Pending.Register
	st.Pending.Register = 0
	return r
}

// runExLine executes a ':' command line body.
func (e *Engine) runExLine(st *editor.State, line string, depth int) {
	st.PushUndo()
	env := excmd.Env{
		Host:  hostAdapter{eng: e, depth: depth},
		Shell: e.shell,
		Log:   e.log,
	}
	if excmd.Execute(st, line, env) {
		st.NoteChange()
	} else {
		st.DropUndo()
	}
}

// hostAdapter lets :normal re-enter the dispatcher.
type hostAdapter struct {
	eng   *Engine
	depth int
}

func (h hostAdapter) RunKeys(st *editor.State, raw string) *editor.State {
	out := st.Clone()
	for _, tok := range keys.Tokenize(raw) {
		h.eng.dispatch(out, tok, h.depth+1)
	}
	return out
}
