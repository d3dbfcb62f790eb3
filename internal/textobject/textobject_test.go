package textobject

import (
	"strings"
	"testing"

	"github.com/dshills/vimkata/internal/editor"
)

func buf(text string) []string {
	return strings.Split(text, "\n")
}

func TestWordObject(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cur    editor.Position
		object rune
		around bool
		want   Range
	}{
		{
			"iw middle", "hello world", editor.Position{Col: 2}, 'w', false,
			Range{Start: editor.Position{}, End: editor.Position{Col: 4}},
		},
		{
			"iw second word", "hello world", editor.Position{Col: 8}, 'w', false,
			Range{Start: editor.Position{Col: 6}, End: editor.Position{Col: 10}},
		},
		{
			"aw takes trailing space", "hello world", editor.Position{Col: 2}, 'w', true,
			Range{Start: editor.Position{}, End: editor.Position{Col: 5}},
		},
		{
			"aw leading space fallback", "hello world", editor.Position{Col: 8}, 'w', true,
			Range{Start: editor.Position{Col: 5}, End: editor.Position{Col: 10}},
		},
		{
			"iw punctuation run", "foo.bar", editor.Position{Col: 3}, 'w', false,
			Range{Start: editor.Position{Col: 3}, End: editor.Position{Col: 3}},
		},
		{
			"iW spans punctuation", "foo.bar baz", editor.Position{Col: 3}, 'W', false,
			Range{Start: editor.Position{}, End: editor.Position{Col: 6}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(buf(tt.text), tt.cur, tt.object, tt.around)
			if !ok {
				t.Fatal("resolve failed")
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestQuoteObject(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cur    editor.Position
		around bool
		want   Range
		wantOK bool
	}{
		{
			`i" inside`, `say "hello" now`, editor.Position{Col: 6}, false,
			Range{Start: editor.Position{Col: 5}, End: editor.Position{Col: 9}}, true,
		},
		{
			`i" before pair`, `say "hello" now`, editor.Position{Col: 0}, false,
			Range{Start: editor.Position{Col: 5}, End: editor.Position{Col: 9}}, true,
		},
		{
			`a" trailing space`, `say "hello" now`, editor.Position{Col: 6}, true,
			Range{Start: editor.Position{Col: 4}, End: editor.Position{Col: 11}}, true,
		},
		{
			`i" empty`, `a "" b`, editor.Position{Col: 2}, false,
			Range{Start: editor.Position{Col: 3}, End: editor.Position{Col: 2}, Empty: true}, true,
		},
		{
			`no pair`, `plain text`, editor.Position{}, false, Range{}, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(buf(tt.text), tt.cur, '"', tt.around)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBracketObject(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cur    editor.Position
		object rune
		around bool
		want   Range
		wantOK bool
	}{
		{
			"i( inside", "(hello)", editor.Position{Col: 3}, '(', false,
			Range{Start: editor.Position{Col: 1}, End: editor.Position{Col: 5}}, true,
		},
		{
			"i( on open", "(hello)", editor.Position{}, '(', false,
			Range{Start: editor.Position{Col: 1}, End: editor.Position{Col: 5}}, true,
		},
		{
			"a( around", "(hello)", editor.Position{Col: 3}, '(', true,
			Range{Start: editor.Position{}, End: editor.Position{Col: 6}}, true,
		},
		{
			"i( empty", "()", editor.Position{}, '(', false,
			Range{Start: editor.Position{Col: 1}, End: editor.Position{Col: 0}, Empty: true}, true,
		},
		{
			"i{ nested picks inner", "{a{b}c}", editor.Position{Col: 3}, '{', false,
			Range{Start: editor.Position{Col: 3}, End: editor.Position{Col: 3}}, true,
		},
		{
			"no pair", "plain", editor.Position{}, '(', false, Range{}, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(buf(tt.text), tt.cur, tt.object, tt.around)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBracketObjectMultiline(t *testing.T) {
	lines := buf("func f() {\n\treturn\n}")
	got, ok := Resolve(lines, editor.Position{Line: 1, Col: 1}, '{', false)
	if !ok {
		t.Fatal("resolve failed")
	}
	want := Range{
		Start: editor.Position{Line: 1, Col: 0},
		End:   editor.Position{Line: 1, Col: 6},
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParagraphObject(t *testing.T) {
	lines := buf("one\ntwo\n\nthree\nfour\n\n\nfive")

	got, ok := Resolve(lines, editor.Position{Line: 3}, 'p', false)
	if !ok {
		t.Fatal("resolve failed")
	}
	if !got.Linewise || got.Start.Line != 3 || got.End.Line != 4 {
		t.Errorf("ip = %+v, want linewise lines 3-4", got)
	}

	got, ok = Resolve(lines, editor.Position{Line: 3}, 'p', true)
	if !ok {
		t.Fatal("resolve failed")
	}
	if got.Start.Line != 3 || got.End.Line != 6 {
		t.Errorf("ap = %+v, want lines 3-6", got)
	}
}

func TestSentenceObject(t *testing.T) {
	lines := buf("One two. Three four. Five.")

	got, ok := Resolve(lines, editor.Position{Col: 11}, 's', false)
	if !ok {
		t.Fatal("resolve failed")
	}
	if got.Start.Col != 9 || got.End.Col != 19 {
		t.Errorf("is = %+v, want cols 9-19", got)
	}

	got, ok = Resolve(lines, editor.Position{Col: 11}, 's', true)
	if !ok {
		t.Fatal("resolve failed")
	}
	if got.Start.Col != 9 || got.End.Col != 20 {
		t.Errorf("as = %+v, want cols 9-20", got)
	}
}

func TestTagObject(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cur    editor.Position
		around bool
		want   Range
		wantOK bool
	}{
		{
			"it simple", "<b>bold</b>", editor.Position{Col: 4}, false,
			Range{Start: editor.Position{Col: 3}, End: editor.Position{Col: 6}}, true,
		},
		{
			"at simple", "<b>bold</b>", editor.Position{Col: 4}, true,
			Range{Start: editor.Position{}, End: editor.Position{Col: 10}}, true,
		},
		{
			"it innermost of nested", "<a><b>x</b></a>", editor.Position{Col: 6}, false,
			Range{Start: editor.Position{Col: 6}, End: editor.Position{Col: 6}}, true,
		},
		{
			"it descends into lone child", "<a><b>x</b></a>", editor.Position{Col: 1}, false,
			Range{Start: editor.Position{Col: 6}, End: editor.Position{Col: 6}}, true,
		},
		{
			"no tag", "plain text", editor.Position{}, false, Range{}, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(buf(tt.text), tt.cur, 't', tt.around)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTagObjectMultiline(t *testing.T) {
	lines := buf("<div>\nhello\n</div>")
	got, ok := Resolve(lines, editor.Position{Line: 1, Col: 2}, 't', true)
	if !ok {
		t.Fatal("resolve failed")
	}
	if got.Start != (editor.Position{}) || got.End != (editor.Position{Line: 2, Col: 5}) {
		t.Errorf("at = %+v", got)
	}
}
