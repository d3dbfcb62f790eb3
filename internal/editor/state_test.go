package editor

import (
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantLines []string
	}{
		{"empty", "", []string{""}},
		{"single line", "hello", []string{"hello"}},
		{"trailing newline", "foo\nbar\n", []string{"foo", "bar"}},
		{"no trailing newline", "foo\nbar", []string{"foo", "bar"}},
		{"crlf", "foo\r\nbar\r\n", []string{"foo", "bar"}},
		{"blank middle line", "a\n\nb", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.text, nil)
			if len(s.Lines) != len(tt.wantLines) {
				t.Fatalf("got %d lines %q, want %d", len(s.Lines), s.Lines, len(tt.wantLines))
			}
			for i, want := range tt.wantLines {
				if s.Lines[i] != want {
					t.Errorf("line %d = %q, want %q", i, s.Lines[i], want)
				}
			}
			if s.Mode != ModeNormal {
				t.Errorf("mode = %v, want normal", s.Mode)
			}
		})
	}
}

func TestCloneIndependence(t *testing.T) {
	s := New("one\ntwo", nil)
	s.SetMark('a', Position{Line: 1, Col: 0})
	s.Registers.SetYank(0, "text", false)

	c := s.Clone()
	c.Lines[0] = "changed"
	c.SetMark('a', Position{Line: 0, Col: 0})
	c.Registers.SetYank(0, "other", false)

	if s.Lines[0] != "one" {
		t.Errorf("original line mutated: %q", s.Lines[0])
	}
	if pos, _ := s.Mark('a'); pos.Line != 1 {
		t.Errorf("original mark mutated: %+v", pos)
	}
	if reg, _ := s.Registers.Get('"'); reg.Text != "text" {
		t.Errorf("original register mutated: %q", reg.Text)
	}
}

func TestClampCursor(t *testing.T) {
	s := New("abc\nde", nil)

	s.Cursor = Position{Line: 5, Col: 10}
	s.ClampCursor()
	if s.Cursor.Line != 1 || s.Cursor.Col != 1 {
		t.Errorf("clamped to %+v, want {1 1}", s.Cursor)
	}

	// Insert mode may sit one past the end.
	s.Mode = ModeInsert
	s.Cursor = Position{Line: 0, Col: 10}
	s.ClampCursor()
	if s.Cursor.Col != 3 {
		t.Errorf("insert clamp col = %d, want 3", s.Cursor.Col)
	}
}

func TestCountComposition(t *testing.T) {
	s := New("x", nil)
	s.CountBuffer = "2"
	s.Pending.Count = "3"
	if got := s.Count(); got != 6 {
		t.Errorf("count = %d, want 6", got)
	}
	// Counts are consumed.
	if got := s.Count(); got != 1 {
		t.Errorf("count after consume = %d, want 1", got)
	}
}

func TestUndoRedo(t *testing.T) {
	s := New("hello", nil)
	s.PushUndo()
	s.Lines[0] = "world"
	s.Cursor.Col = 2

	if !s.Undo() {
		t.Fatal("undo failed")
	}
	if s.Lines[0] != "hello" {
		t.Errorf("after undo line = %q, want hello", s.Lines[0])
	}

	if !s.Redo() {
		t.Fatal("redo failed")
	}
	if s.Lines[0] != "world" {
		t.Errorf("after redo line = %q, want world", s.Lines[0])
	}

	if s.Redo() {
		t.Error("redo on empty stack should report false")
	}
}

func TestUndoSnapshotIsIndependent(t *testing.T) {
	s := New("a", nil)
	s.PushUndo()
	s.Lines[0] = "b"
	s.PushUndo()
	s.Lines[0] = "c"

	s.Undo()
	s.Undo()
	if s.Lines[0] != "a" {
		t.Errorf("after two undos line = %q, want a", s.Lines[0])
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "\n"},
		{"plain", "abc", "abc\n"},
		{"already terminated", "abc\n", "abc\n"},
		{"extra newlines", "abc\n\n\n", "abc\n"},
		{"crlf", "a\r\nb", "a\nb\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestChangeLog(t *testing.T) {
	s := New("x", nil)
	s.BeginChangeLog()
	s.LogToken("c")
	s.LogToken("w")
	s.LogToken("<Esc>")
	s.EndChangeLog()

	if len(s.LastChange) != 3 || s.LastChange[0] != "c" {
		t.Errorf("LastChange = %v", s.LastChange)
	}

	// Aborting must not clobber the finalized change.
	s.BeginChangeLog()
	s.LogToken("x")
	s.AbortChangeLog()
	if len(s.LastChange) != 3 {
		t.Errorf("LastChange after abort = %v", s.LastChange)
	}
}
