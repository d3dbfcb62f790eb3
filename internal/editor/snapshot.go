package editor

// Snapshot captures the buffer and cursor before a mutating command.
type Snapshot struct {
	Lines  []string
	Cursor Position
}

// PushUndo records the current buffer on the undo stack and clears the
// redo stack. Every mutating command calls this exactly once, before its
// first edit.
func (s *State) PushUndo() {
	snap := Snapshot{
		Lines:  append([]string(nil), s.Lines...),
		Cursor: s.Cursor,
	}
	s.UndoStack = append(s.UndoStack, snap)
	s.RedoStack = nil
}

// Undo restores the most recent snapshot, moving the current buffer onto
// the redo stack. It reports whether anything was undone.
func (s *State) Undo() bool {
	if len(s.UndoStack) == 0 {
		return false
	}
	top := s.UndoStack[len(s.UndoStack)-1]
	s.UndoStack = s.UndoStack[:len(s.UndoStack)-1]
	s.RedoStack = append(s.RedoStack, Snapshot{
		Lines:  append([]string(nil), s.Lines...),
		Cursor: s.Cursor,
	})
	s.Lines = append([]string(nil), top.Lines...)
	s.Cursor = top.Cursor
	s.ClampCursor()
	return true
}

// Redo reverses the most recent undo. It reports whether anything was
// redone.
func (s *State) Redo() bool {
	if len(s.RedoStack) == 0 {
		return false
	}
	top := s.RedoStack[len(s.RedoStack)-1]
	s.RedoStack = s.RedoStack[:len(s.RedoStack)-1]
	s.UndoStack = append(s.UndoStack, Snapshot{
		Lines:  append([]string(nil), s.Lines...),
		Cursor: s.Cursor,
	})
	s.Lines = append([]string(nil), top.Lines...)
	s.Cursor = top.Cursor
	s.ClampCursor()
	return true
}

// DropUndo removes the most recent snapshot without restoring it. Used
// when a command saved a snapshot but turned out not to change anything.
func (s *State) DropUndo() {
	if len(s.UndoStack) > 0 {
		s.UndoStack = s.UndoStack[:len(s.UndoStack)-1]
	}
}
