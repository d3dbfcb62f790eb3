package motion

import (
	"strings"
	"testing"

	"github.com/dshills/vimkata/internal/editor"
)

func buf(text string) []string {
	return strings.Split(text, "\n")
}

func target(t *testing.T, lines []string, cur editor.Position, key rune, count int, arg rune) editor.Position {
	t.Helper()
	spec, ok := Lookup(key)
	if !ok {
		t.Fatalf("no motion for %q", key)
	}
	pos, _ := Target(lines, cur, spec, count, count > 1, arg)
	return pos
}

func TestWordForward(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		cur   editor.Position
		count int
		want  editor.Position
	}{
		{"simple", "hello world", editor.Position{}, 1, editor.Position{Col: 6}},
		{"from middle", "hello world", editor.Position{Col: 2}, 1, editor.Position{Col: 6}},
		{"punctuation is a word", "foo.bar", editor.Position{}, 1, editor.Position{Col: 3}},
		{"count", "a b c d", editor.Position{}, 3, editor.Position{Col: 6}},
		{"across lines", "one\ntwo", editor.Position{}, 1, editor.Position{Line: 1}},
		{"empty line stops", "one\n\ntwo", editor.Position{}, 1, editor.Position{Line: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := target(t, buf(tt.text), tt.cur, 'w', tt.count, 0)
			if got != tt.want {
				t.Errorf("w from %+v = %+v, want %+v", tt.cur, got, tt.want)
			}
		})
	}
}

func TestWORDForward(t *testing.T) {
	// W treats foo.bar as one word.
	got := target(t, buf("foo.bar baz"), editor.Position{}, 'W', 1, 0)
	if got != (editor.Position{Col: 8}) {
		t.Errorf("W = %+v, want {0 8}", got)
	}
}

func TestWordBackward(t *testing.T) {
	tests := []struct {
		name string
		text string
		cur  editor.Position
		want editor.Position
	}{
		{"simple", "hello world", editor.Position{Col: 6}, editor.Position{}},
		{"from middle of word", "hello world", editor.Position{Col: 8}, editor.Position{Col: 6}},
		{"across lines", "one\ntwo", editor.Position{Line: 1}, editor.Position{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := target(t, buf(tt.text), tt.cur, 'b', 1, 0)
			if got != tt.want {
				t.Errorf("b from %+v = %+v, want %+v", tt.cur, got, tt.want)
			}
		})
	}
}

func TestWordEnd(t *testing.T) {
	tests := []struct {
		name string
		text string
		cur  editor.Position
		want editor.Position
	}{
		{"simple", "hello world", editor.Position{}, editor.Position{Col: 4}},
		{"already at end", "hello world", editor.Position{Col: 4}, editor.Position{Col: 10}},
		{"punctuation", "foo.bar", editor.Position{}, editor.Position{Col: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := target(t, buf(tt.text), tt.cur, 'e', 1, 0)
			if got != tt.want {
				t.Errorf("e from %+v = %+v, want %+v", tt.cur, got, tt.want)
			}
		})
	}
}

func TestLineMotions(t *testing.T) {
	lines := buf("  hello")

	if got := target(t, lines, editor.Position{Col: 4}, '0', 1, 0); got.Col != 0 {
		t.Errorf("0 = %+v", got)
	}
	if got := target(t, lines, editor.Position{Col: 4}, '^', 1, 0); got.Col != 2 {
		t.Errorf("^ = %+v", got)
	}
	if got := target(t, lines, editor.Position{}, '$', 1, 0); got.Col != 6 {
		t.Errorf("$ = %+v", got)
	}
	if got := target(t, lines, editor.Position{}, '|', 4, 0); got.Col != 3 {
		t.Errorf("4| = %+v", got)
	}
}

func TestDocumentMotions(t *testing.T) {
	lines := buf("one\ntwo\nthree\nfour\nfive")

	spec, _ := Lookup('G')
	if got, _ := Target(lines, editor.Position{}, spec, 1, false, 0); got.Line != 4 {
		t.Errorf("G = %+v, want line 4", got)
	}
	if got, _ := Target(lines, editor.Position{}, spec, 3, true, 0); got.Line != 2 {
		t.Errorf("3G = %+v, want line 2", got)
	}

	gg, _ := LookupG('g')
	if got, _ := Target(lines, editor.Position{Line: 4}, gg, 1, false, 0); got.Line != 0 {
		t.Errorf("gg = %+v, want line 0", got)
	}

	if got := target(t, lines, editor.Position{}, 'L', 1, 0); got.Line != 4 {
		t.Errorf("L = %+v, want line 4", got)
	}
	if got := target(t, lines, editor.Position{Line: 4}, 'H', 1, 0); got.Line != 0 {
		t.Errorf("H = %+v, want line 0", got)
	}
	if got := target(t, lines, editor.Position{}, 'M', 1, 0); got.Line != 2 {
		t.Errorf("M = %+v, want line 2", got)
	}
}

func TestFindChar(t *testing.T) {
	lines := buf("hello world")

	tests := []struct {
		name   string
		key    rune
		cur    editor.Position
		count  int
		arg    rune
		want   editor.Position
		wantOK bool
	}{
		{"f", 'f', editor.Position{}, 1, 'o', editor.Position{Col: 4}, true},
		{"2f", 'f', editor.Position{}, 2, 'o', editor.Position{Col: 7}, true},
		{"t", 't', editor.Position{}, 1, 'o', editor.Position{Col: 3}, true},
		{"F", 'F', editor.Position{Col: 10}, 1, 'o', editor.Position{Col: 7}, true},
		{"T", 'T', editor.Position{Col: 10}, 1, 'o', editor.Position{Col: 8}, true},
		{"missing char", 'f', editor.Position{}, 1, 'z', editor.Position{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, _ := Lookup(tt.key)
			got, ok := Target(lines, tt.cur, spec, tt.count, false, tt.arg)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParagraphMotions(t *testing.T) {
	lines := buf("one\ntwo\n\nthree\n\nfour")

	if got := target(t, lines, editor.Position{}, '}', 1, 0); got.Line != 2 {
		t.Errorf("} = %+v, want line 2", got)
	}
	if got := target(t, lines, editor.Position{}, '}', 2, 0); got.Line != 4 {
		t.Errorf("2} = %+v, want line 4", got)
	}
	if got := target(t, lines, editor.Position{Line: 5}, '{', 1, 0); got.Line != 4 {
		t.Errorf("{ = %+v, want line 4", got)
	}
	if got := target(t, lines, editor.Position{Line: 1}, '{', 1, 0); got.Line != 0 {
		t.Errorf("{ from line 1 = %+v, want line 0", got)
	}
}

func TestSentenceForward(t *testing.T) {
	lines := buf("One. Two. Three.")
	if got := target(t, lines, editor.Position{}, ')', 1, 0); got.Col != 5 {
		t.Errorf(") = %+v, want col 5", got)
	}
	if got := target(t, lines, editor.Position{}, ')', 2, 0); got.Col != 10 {
		t.Errorf("2) = %+v, want col 10", got)
	}
}

func TestSentenceBackward(t *testing.T) {
	lines := buf("One. Two. Three.")
	if got := target(t, lines, editor.Position{Col: 12}, '(', 1, 0); got.Col != 10 {
		t.Errorf("( = %+v, want col 10", got)
	}
	if got := target(t, lines, editor.Position{Col: 10}, '(', 1, 0); got.Col != 5 {
		t.Errorf("( from sentence start = %+v, want col 5", got)
	}
}

func TestMatchPair(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cur    editor.Position
		want   editor.Position
		wantOK bool
	}{
		{"open to close", "(abc)", editor.Position{}, editor.Position{Col: 4}, true},
		{"close to open", "(abc)", editor.Position{Col: 4}, editor.Position{}, true},
		{"nested", "(a(b)c)", editor.Position{}, editor.Position{Col: 6}, true},
		{"seek forward on line", "ab(cd)", editor.Position{}, editor.Position{Col: 5}, true},
		{"multiline", "{\n}", editor.Position{}, editor.Position{Line: 1}, true},
		{"no bracket", "abc", editor.Position{}, editor.Position{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, _ := Lookup('%')
			got, ok := Target(buf(tt.text), tt.cur, spec, 1, false, 0)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("%% = %+v, want %+v", got, tt.want)
			}
		})
	}
}
