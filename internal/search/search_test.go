package search

import (
	"strings"
	"testing"

	"github.com/dshills/vimkata/internal/editor"
)

func buf(text string) []string {
	return strings.Split(text, "\n")
}

func TestFindForward(t *testing.T) {
	lines := buf("foo bar\nbaz foo\nfoo")
	opts := editor.DefaultOptions()

	tests := []struct {
		name   string
		from   editor.Position
		want   Match
		wantOK bool
	}{
		{"from start", editor.Position{}, Match{Line: 1, Col: 4}, true},
		{"from middle", editor.Position{Line: 1, Col: 0}, Match{Line: 1, Col: 4}, true},
		{"wraps", editor.Position{Line: 2, Col: 0}, Match{Line: 0, Col: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Find(lines, "foo", tt.from, false, opts)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFindBackward(t *testing.T) {
	lines := buf("foo bar\nbaz foo\nfoo")
	opts := editor.DefaultOptions()

	got, ok := Find(lines, "foo", editor.Position{Line: 1, Col: 4}, true, opts)
	if !ok || got != (Match{Line: 0, Col: 0}) {
		t.Errorf("backward = %+v ok=%v, want {0 0}", got, ok)
	}

	// Wraps to the last match.
	got, ok = Find(lines, "foo", editor.Position{}, true, opts)
	if !ok || got != (Match{Line: 2, Col: 0}) {
		t.Errorf("backward wrap = %+v ok=%v, want {2 0}", got, ok)
	}
}

func TestFindNoWrap(t *testing.T) {
	lines := buf("foo\nbar")
	opts := editor.DefaultOptions()
	opts.WrapScan = false

	if _, ok := Find(lines, "foo", editor.Position{Line: 1}, false, opts); ok {
		t.Error("expected no match without wrapscan")
	}
}

func TestFindNoMatch(t *testing.T) {
	lines := buf("foo")
	if _, ok := Find(lines, "zzz", editor.Position{}, false, editor.DefaultOptions()); ok {
		t.Error("expected no match")
	}
}

func TestCaseOptions(t *testing.T) {
	lines := buf("Foo foo")

	opts := editor.DefaultOptions()
	opts.IgnoreCase = true
	got, ok := Find(lines, "FOO", editor.Position{Line: 0, Col: 6}, false, opts)
	if !ok || got.Col != 0 {
		t.Errorf("ignorecase: got %+v ok=%v", got, ok)
	}

	// Smartcase: uppercase in pattern forces exact matching.
	opts.SmartCase = true
	got, ok = Find(lines, "Foo", editor.Position{Line: 0, Col: 6}, false, opts)
	if !ok || got.Col != 0 {
		t.Errorf("smartcase exact: got %+v ok=%v", got, ok)
	}
	if _, ok := Find(lines, "FOO", editor.Position{}, false, opts); ok {
		t.Error("smartcase should reject FOO")
	}
}

func TestInvalidPatternFallsBackToLiteral(t *testing.T) {
	lines := buf("price (USD)\nother")
	got, ok := Find(lines, "(USD", editor.Position{Line: 1}, false, editor.DefaultOptions())
	if !ok || got != (Match{Line: 0, Col: 6}) {
		t.Errorf("literal fallback: got %+v ok=%v, want {0 6}", got, ok)
	}
}

func TestWordPattern(t *testing.T) {
	tests := []struct {
		name string
		text string
		cur  editor.Position
		want string
	}{
		{"on word", "hello world", editor.Position{Col: 1}, `\bhello\b`},
		{"seeks forward", "   word", editor.Position{}, `\bword\b`},
		{"mid word expands", "say hello", editor.Position{Col: 6}, `\bhello\b`},
		{"no word", "...", editor.Position{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordPattern(buf(tt.text), tt.cur); got != tt.want {
				t.Errorf("WordPattern = %q, want %q", got, tt.want)
			}
		})
	}
}
