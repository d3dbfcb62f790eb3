package keys

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{"empty", "", nil},
		{"single chars", "dw", []Token{"d", "w"}},
		{"escape", "i hi<Esc>", []Token{"i", " ", "h", "i", "<Esc>"}},
		{"control chord", "<C-a>x", []Token{"<C-a>", "x"}},
		{"arrows", "<Up><Down>", []Token{"<Up>", "<Down>"}},
		{"ex command", ":wq<CR>", []Token{":wq<CR>"}},
		{"search", "/foo<CR>n", []Token{"/foo<CR>", "n"}},
		{"backward search", "?bar<CR>", []Token{"?bar<CR>"}},
		{"substitute", ":%s/a/b/g<CR>dd", []Token{":%s/a/b/g<CR>", "d", "d"}},
		{"mixed", "3x:sort<CR>", []Token{"3", "x", ":sort<CR>"}},
		{"unterminated bracket kept raw", "d<C-", []Token{"d", "<C-"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		class    ModeClass
		wantTok  Token
		wantRest string
		wantOK   bool
	}{
		{"empty", "", ClassNormal, "", "", false},
		{"char", "x", ClassNormal, "x", "", true},
		{"bracket", "<Esc>i", ClassNormal, "<Esc>", "i", true},
		{"incomplete bracket", "<Es", ClassNormal, "", "<Es", false},
		{"command line", ":d<CR>x", ClassNormal, ":d<CR>", "x", true},
		{"incomplete command line", ":d", ClassNormal, "", ":d", false},
		{"colon in insert mode", ":x", ClassInsert, ":", "x", true},
		{"slash in insert mode", "/x", ClassInsert, "/", "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, rest, ok := Next(tt.input, tt.class)
			if ok != tt.wantOK {
				t.Fatalf("Next(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if tok != tt.wantTok {
				t.Errorf("Next(%q) token = %q, want %q", tt.input, tok, tt.wantTok)
			}
			if rest != tt.wantRest {
				t.Errorf("Next(%q) rest = %q, want %q", tt.input, rest, tt.wantRest)
			}
		})
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"plain", "ciw", 3},
		{"escape is one", "ihello<Esc>", 7},
		{"ex command", ":wq<CR>", 4},
		{"substitute", ":%s/a/b/<CR>", 10},
		{"chord in command body", ":normal @=<C-r>a<CR>", 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.input); got != tt.want {
				t.Errorf("Count(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenHelpers(t *testing.T) {
	if !Token("<Esc>").IsSpecial() {
		t.Error("<Esc> should be special")
	}
	if Token("x").IsSpecial() {
		t.Error("x should not be special")
	}
	if got := Token("<C-r>").CtrlKey(); got != 'r' {
		t.Errorf("CtrlKey = %q, want 'r'", got)
	}
	if got := Token("<Esc>").CtrlKey(); got != 0 {
		t.Errorf("CtrlKey on <Esc> = %q, want 0", got)
	}
	if !Token(":%s/a/b/<CR>").IsCommandLine() {
		t.Errorf("%s", ":%s/a/b/<CR> should be a command line")
	}
	if got := Token(":sort u<CR>").Line(); got != "sort u" {
		t.Errorf("Line = %q, want %q", got, "sort u")
	}
	if got := Token("/pat<CR>").Line(); got != "pat" {
		t.Errorf("Line = %q, want %q", got, "pat")
	}
	if got := Token("x").Rune(); got != 'x' {
		t.Errorf("Rune = %q, want 'x'", got)
	}
}
