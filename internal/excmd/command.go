// Package excmd interprets Vim ex commands: ranges, substitute with
// Vim-pattern translation, global commands, move/copy, sort, put,
// normal, and shell reads.
package excmd

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dshills/vimkata/internal/editor"
	"github.com/dshills/vimkata/internal/log"
	"github.com/dshills/vimkata/internal/motion"
)

// Host re-dispatches keystrokes for :normal. The engine implements it;
// injecting it here keeps this package free of a dependency cycle.
type Host interface {
	// RunKeys tokenizes raw and executes each token against the state,
	// returning the resulting state.
	RunKeys(st *editor.State, raw string) *editor.State
}

// ShellRunner executes a shell command for :r !cmd. It is an optional
// capability; without one the command is logged and skipped.
type ShellRunner func(command string) (string, error)

// Env bundles the capabilities an ex command may need.
type Env struct {
	Host  Host
	Shell ShellRunner
	Log   *log.Logger
}

// Execute runs one ex-command line (without the leading ':') against the
// state, mutating it in place. Failures are absorbed: an unparsable or
// unsupported command leaves the buffer and mode untouched. It reports
// whether the buffer changed.
func Execute(st *editor.State, line string, env Env) bool {
	rng, rest, err := parseRange(line, st)
	if err != nil {
		return false
	}
	rest = strings.TrimLeft(rest, " ")

	// A bare address jumps to it.
	if rest == "" {
		if line != "" {
			st.Cursor.Line = rng.end
			st.Cursor.Col = motion.FirstNonBlank(st.Line(rng.end))
			st.ClampCursor()
		}
		return false
	}

	name, args := splitCommand(rest)

	switch name {
	case "s", "su", "sub", "substitute":
		return runSubstitute(st, rng, args)

	case "g", "global":
		if strings.HasPrefix(args, "!") {
			return runGlobal(st, wholeBufferIfDefault(rng, line, st), args[1:], true)
		}
		return runGlobal(st, wholeBufferIfDefault(rng, line, st), args, false)

	case "v", "vglobal":
		return runGlobal(st, wholeBufferIfDefault(rng, line, st), args, true)

	case "d", "de", "del", "delete":
		return runDelete(st, rng)

	case "m", "mo", "move":
		return runMove(st, rng, args)

	case "co", "copy", "t":
		return runCopy(st, rng, args)

	case "sor", "sort":
		return runSort(st, wholeBufferIfDefault(rng, line, st), args)

	case "norm", "normal":
		return runNormal(st, rng, args, env)

	case "pu", "put":
		return runPut(st, rng, rest, env)

	case "r", "re", "read":
		return runRead(st, rng, args, env)

	case "w", "wq", "x", "q", "q!", "wq!":
		// Writes and quits are host concerns; the engine's buffer is
		// unaffected.
		return false

	default:
		if env.Log != nil {
			env.Log.Debug("unsupported ex command %q", name)
		}
		return false
	}
}

// splitCommand separates the command name from its argument text. The
// name is the leading run of letters; everything after (including a
// pattern delimiter butting against the name, as in "s/a/b/") is the
// argument.
func splitCommand(rest string) (string, string) {
	i := 0
	for i < len(rest) && rest[i] >= 'a' && rest[i] <= 'z' {
		i++
	}
	name := rest[:i]
	args := rest[i:]
	if strings.HasPrefix(args, " ") {
		args = args[1:]
	}
	return name, args
}

// wholeBufferIfDefault widens a defaulted (current-line) range to the
// whole buffer for commands like :g and :sort that operate buffer-wide
// unless an explicit range was given.
func wholeBufferIfDefault(rng lineRange, line string, st *editor.State) lineRange {
	if hasExplicitRange(line) {
		return rng
	}
	return lineRange{start: 0, end: st.LineCount() - 1}
}

func hasExplicitRange(line string) bool {
	if line == "" {
		return false
	}
	switch line[0] {
	case '%', '.', '$', '\'', '+', '-':
		return true
	}
	return line[0] >= '0' && line[0] <= '9'
}

func runDelete(st *editor.State, rng lineRange) bool {
	text := strings.Join(st.Lines[rng.start:rng.end+1], "\n") + "\n"
	st.Registers.SetDelete(0, text, true)
	rest := append([]string(nil), st.Lines[rng.end+1:]...)
	st.Lines = append(st.Lines[:rng.start], rest...)
	if len(st.Lines) == 0 {
		st.Lines = []string{""}
	}
	st.Cursor.Line = rng.start
	st.Cursor.Col = 0
	st.ClampCursor()
	return true
}

func runMove(st *editor.State, rng lineRange, args string) bool {
	dest, err := parseTargetAddress(strings.TrimSpace(args), st)
	if err != nil {
		return false
	}
	moved := append([]string(nil), st.Lines[rng.start:rng.end+1]...)
	rest := append([]string(nil), st.Lines[rng.end+1:]...)
	remaining := append(st.Lines[:rng.start], rest...)

	// Re-aim the destination after the removal.
	n := len(moved)
	if dest >= rng.start {
		dest -= n
		if dest < rng.start-1 {
			dest = rng.start - 1
		}
	}
	at := dest + 1
	if at < 0 {
		at = 0
	}
	if at > len(remaining) {
		at = len(remaining)
	}
	tail := append([]string(nil), remaining[at:]...)
	st.Lines = append(append(remaining[:at], moved...), tail...)
	st.Cursor.Line = at + n - 1
	st.Cursor.Col = 0
	st.ClampCursor()
	return true
}

func runCopy(st *editor.State, rng lineRange, args string) bool {
	dest, err := parseTargetAddress(strings.TrimSpace(args), st)
	if err != nil {
		return false
	}
	copied := append([]string(nil), st.Lines[rng.start:rng.end+1]...)
	at := dest + 1
	if at < 0 {
		at = 0
	}
	if at > len(st.Lines) {
		at = len(st.Lines)
	}
	tail := append([]string(nil), st.Lines[at:]...)
	st.Lines = append(append(st.Lines[:at], copied...), tail...)
	st.Cursor.Line = at + len(copied) - 1
	st.Cursor.Col = 0
	st.ClampCursor()
	return true
}

func runSort(st *editor.State, rng lineRange, args string) bool {
	unique := strings.Contains(args, "u")
	section := append([]string(nil), st.Lines[rng.start:rng.end+1]...)
	sort.Strings(section)
	if unique {
		deduped := section[:0]
		for i, line := range section {
			if i == 0 || line != section[i-1] {
				deduped = append(deduped, line)
			}
		}
		section = deduped
	}
	rest := append([]string(nil), st.Lines[rng.end+1:]...)
	st.Lines = append(append(st.Lines[:rng.start], section...), rest...)
	return true
}

// ctrlRExpr matches the inline expression-register syntax :normal
// supports, <C-R>=expr<CR>.
var ctrlRExpr = regexp.MustCompile(`<C-[Rr]>=(.*?)<CR>`)

// runNormal re-dispatches keystrokes on every line of the range. args
// already has the command name split off, so any abbreviation of
// :normal (with or without '!') leaves exactly the keys behind.
func runNormal(st *editor.State, rng lineRange, args string, env Env) bool {
	if env.Host == nil {
		if env.Log != nil {
			env.Log.Warn("no host for :normal")
		}
		return false
	}
	cmd := args
	if strings.HasPrefix(cmd, "!") {
		cmd = strings.TrimPrefix(cmd[1:], " ")
	}
	if cmd == "" {
		return false
	}

	before := strings.Join(st.Lines, "\n")
	// Apply bottom-up so line insertions and deletions don't shift the
	// not-yet-visited lines.
	for line := rng.end; line >= rng.start; line-- {
		if line >= st.LineCount() {
			continue
		}
		st.Cursor = editor.Position{Line: line}
		st.ClampCursor()

		keysArg := cmd
		// Expand the inline expression register before dispatch.
		keysArg = ctrlRExpr.ReplaceAllStringFunc(keysArg, func(m string) string {
			sub := ctrlRExpr.FindStringSubmatch(m)
			val, err := EvalExpression(sub[1], st)
			if err != nil {
				return ""
			}
			return val
		})

		next := env.Host.RunKeys(st, keysArg)
		*st = *next
		// A normal command that leaves insert mode pending is closed out
		// the way Vim closes :normal.
		if st.Mode != editor.ModeNormal {
			next = env.Host.RunKeys(st, "<Esc>")
			*st = *next
		}
	}
	return strings.Join(st.Lines, "\n") != before
}

func runPut(st *editor.State, rng lineRange, rest string, env Env) bool {
	args := strings.TrimPrefix(rest, "pu")
	args = strings.TrimPrefix(args, "t")
	above := strings.HasPrefix(args, "!")
	args = strings.TrimLeft(args, "! ")

	var text string
	switch {
	case strings.HasPrefix(args, "="):
		val, err := EvalExpression(strings.TrimPrefix(args, "="), st)
		if err != nil {
			return false
		}
		text = val
	case args != "" && len(args) == 1:
		reg, ok := st.Registers.Get(rune(args[0]))
		if !ok {
			return false
		}
		text = strings.TrimSuffix(reg.Text, "\n")
	default:
		reg, ok := st.Registers.Get(0)
		if !ok {
			return false
		}
		text = strings.TrimSuffix(reg.Text, "\n")
	}

	lines := strings.Split(text, "\n")
	at := rng.end + 1
	if above {
		at = rng.end
	}
	if at > len(st.Lines) {
		at = len(st.Lines)
	}
	tail := append([]string(nil), st.Lines[at:]...)
	st.Lines = append(append(st.Lines[:at], lines...), tail...)
	st.Cursor.Line = at + len(lines) - 1
	st.Cursor.Col = 0
	st.ClampCursor()
	return true
}

// runRead implements :r !cmd through the injected shell capability.
// Reading files is a host concern the engine does not perform.
func runRead(st *editor.State, rng lineRange, args string, env Env) bool {
	args = strings.TrimSpace(args)
	if !strings.HasPrefix(args, "!") {
		return false
	}
	if env.Shell == nil {
		if env.Log != nil {
			env.Log.Warn("no shell runner for %q", args)
		}
		return false
	}
	out, err := env.Shell(strings.TrimSpace(args[1:]))
	if err != nil {
		if env.Log != nil {
			env.Log.Warn("shell command failed: %v", err)
		}
		return false
	}
	out = strings.TrimSuffix(out, "\n")
	lines := strings.Split(out, "\n")
	at := rng.end + 1
	tail := append([]string(nil), st.Lines[at:]...)
	st.Lines = append(append(st.Lines[:at], lines...), tail...)
	st.Cursor.Line = at + len(lines) - 1
	st.Cursor.Col = 0
	st.ClampCursor()
	return true
}
