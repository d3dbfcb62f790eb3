package editor

import (
	"strings"

	"github.com/dshills/vimkata/internal/keys"
	"github.com/dshills/vimkata/internal/register"
)

// Position is a 0-indexed buffer location.
type Position struct {
	Line int
	Col  int
}

// SearchState remembers the last search for n/N repeats.
type SearchState struct {
	// Pattern is the last search pattern.
	Pattern string

	// Backward records the direction the search was issued in.
	Backward bool
}

// BlockInsert describes an insert session opened from a block-visual
// selection with I or A. The text typed on the top line is replicated
// onto the remaining lines when insert mode ends.
type BlockInsert struct {
	// Top and Bottom are the selected line span.
	Top, Bottom int

	// StartCol is the column the insert began at on the top line.
	StartCol int

	// Append distinguishes A (insert after the block) from I.
	Append bool

	// Ragged replicates at each line's own end rather than a fixed
	// column.
	Ragged bool
}

// State is the complete editor state. Every engine operation consumes a
// state and produces a new one.
type State struct {
	// Lines is the buffer. It always holds at least one line, which may
	// be empty.
	Lines []string

	// Cursor is the current position. In normal and visual mode Col is
	// clamped to the last character; in insert mode it may sit one past
	// the end of the line.
	Cursor Position

	// Mode is the active editing mode.
	Mode Mode

	// Pending is the operator/argument state machine.
	Pending Pending

	// CountBuffer accumulates a leading count's digits.
	CountBuffer string

	// Registers is the register file.
	Registers register.File

	// UndoStack and RedoStack hold buffer snapshots.
	UndoStack []Snapshot
	RedoStack []Snapshot

	// Marks maps mark names to positions. The implicit '.' mark tracks
	// the last change.
	Marks map[rune]Position

	// VisualStart anchors the active visual selection.
	VisualStart Position

	// Search remembers the last search.
	Search SearchState

	// LastChange is the token sequence of the last buffer-mutating
	// command, replayed by dot-repeat.
	LastChange []keys.Token

	// changeLog accumulates the tokens of the change in progress.
	changeLog []keys.Token

	// logging reports whether changeLog is being captured.
	logging bool

	// LastFindKey and LastFindChar remember the last f/F/t/T motion for
	// the ; and , repeats.
	LastFindKey  rune
	LastFindChar rune

	// RecordRegister is the macro register being recorded to, or 0.
	RecordRegister rune

	// MacroBuffer accumulates recorded tokens.
	MacroBuffer []keys.Token

	// LastMacro is the register last played with @, for @@.
	LastMacro rune

	// InsertRepeat carries a count into the current insert session; the
	// typed text is replayed InsertRepeat-1 extra times when insert mode
	// ends.
	InsertRepeat int

	// InsertEntry is the key that opened the current insert session
	// ('i', 'a', 'o', ...).
	InsertEntry rune

	// InsertLog accumulates the tokens typed in the current insert
	// session, for the repeat replay.
	InsertLog []keys.Token

	// BlockInsert tracks a block-visual I/A insert in progress, or nil.
	BlockInsert *BlockInsert

	// BlockRagged marks a block-visual selection stretched to each
	// line's end with $.
	BlockRagged bool

	// CommandLine is the text of the active ':', '/', or '?' entry,
	// including its prompt character.
	CommandLine string

	// PendingInput buffers an incomplete trailing token from streaming
	// input sources.
	PendingInput string

	// Options holds the session settings.
	Options Options
}

// New creates the initial state for a buffer. A trailing newline does not
// produce a final empty line, matching how Vim loads a file.
func New(text string, opts *Options) *State {
	options := DefaultOptions()
	if opts != nil {
		options = *opts
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	return &State{
		Lines:   lines,
		Marks:   make(map[rune]Position),
		Options: options,
	}
}

// Clone returns an independent deep copy of the state.
func (s *State) Clone() *State {
	out := *s
	out.Lines = append([]string(nil), s.Lines...)
	out.Registers = s.Registers.Clone()
	out.UndoStack = append([]Snapshot(nil), s.UndoStack...)
	out.RedoStack = append([]Snapshot(nil), s.RedoStack...)
	out.Marks = make(map[rune]Position, len(s.Marks))
	for name, pos := range s.Marks {
		out.Marks[name] = pos
	}
	out.LastChange = append([]keys.Token(nil), s.LastChange...)
	out.changeLog = append([]keys.Token(nil), s.changeLog...)
	out.InsertLog = append([]keys.Token(nil), s.InsertLog...)
	if s.BlockInsert != nil {
		bi := *s.BlockInsert
		out.BlockInsert = &bi
	}
	out.MacroBuffer = append([]keys.Token(nil), s.MacroBuffer...)
	return &out
}

// Text returns the buffer contents with a trailing newline, the form the
// parity comparison uses.
func (s *State) Text() string {
	return strings.Join(s.Lines, "\n") + "\n"
}

// Line returns line i, or the empty string when i is out of range.
func (s *State) Line(i int) string {
	if i < 0 || i >= len(s.Lines) {
		return ""
	}
	return s.Lines[i]
}

// CurrentLine returns the line under the cursor.
func (s *State) CurrentLine() string {
	return s.Line(s.Cursor.Line)
}

// LineCount returns the number of buffer lines.
func (s *State) LineCount() int {
	return len(s.Lines)
}

// ClampCursor clamps the cursor to the buffer, honoring insert mode's
// one-past-the-end column.
func (s *State) ClampCursor() {
	if len(s.Lines) == 0 {
		s.Lines = []string{""}
	}
	if s.Cursor.Line < 0 {
		s.Cursor.Line = 0
	}
	if s.Cursor.Line >= len(s.Lines) {
		s.Cursor.Line = len(s.Lines) - 1
	}
	line := []rune(s.Lines[s.Cursor.Line])
	max := len(line) - 1
	if s.Mode == ModeInsert || s.Mode == ModeReplace {
		max = len(line)
	}
	if max < 0 {
		max = 0
	}
	if s.Cursor.Col > max {
		s.Cursor.Col = max
	}
	if s.Cursor.Col < 0 {
		s.Cursor.Col = 0
	}
}

// Count returns the pending count (the leading count multiplied by the
// post-operator count) and clears both buffers. A missing count is 1.
func (s *State) Count() int {
	lead := parseCount(s.CountBuffer)
	post := parseCount(s.Pending.Count)
	s.CountBuffer = ""
	s.Pending.Count = ""
	return lead * post
}

// HasCount reports whether an explicit count was typed.
func (s *State) HasCount() bool {
	return s.CountBuffer != "" || s.Pending.Count != ""
}

func parseCount(digits string) int {
	if digits == "" {
		return 1
	}
	n := 0
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 1
		}
		n = n*10 + int(r-'0')
		if n > 1_000_000 {
			return 1_000_000
		}
	}
	if n <= 0 {
		return 1
	}
	return n
}

// SetMark records a mark at the given position.
func (s *State) SetMark(name rune, pos Position) {
	if s.Marks == nil {
		s.Marks = make(map[rune]Position)
	}
	s.Marks[name] = pos
}

// Mark looks up a mark.
func (s *State) Mark(name rune) (Position, bool) {
	pos, ok := s.Marks[name]
	return pos, ok
}

// NoteChange records the last-change mark.
func (s *State) NoteChange() {
	s.SetMark('.', s.Cursor)
}

// BeginChangeLog starts capturing tokens for dot-repeat.
func (s *State) BeginChangeLog() {
	s.changeLog = s.changeLog[:0]
	s.logging = true
}

// LogToken appends a token to the change in progress.
func (s *State) LogToken(tok keys.Token) {
	if s.logging {
		s.changeLog = append(s.changeLog, tok)
	}
}

// EndChangeLog finalizes the change log into LastChange.
func (s *State) EndChangeLog() {
	if !s.logging {
		return
	}
	s.logging = false
	if len(s.changeLog) > 0 {
		s.LastChange = append([]keys.Token(nil), s.changeLog...)
	}
	s.changeLog = s.changeLog[:0]
}

// AbortChangeLog discards the change in progress.
func (s *State) AbortChangeLog() {
	s.logging = false
	s.changeLog = s.changeLog[:0]
}

// Logging reports whether a change is being captured.
func (s *State) Logging() bool {
	return s.logging
}
