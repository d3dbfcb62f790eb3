package golf

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/dshills/vimkata/internal/editor"
)

func TestPlaySolved(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		target    string
		keystroke string
		score     int
	}{
		{"delete word", "hello world", "world", "dw", 2},
		{"change word", "hello world", "X world", "cwX<Esc>", 4},
		{"delete line", "a\nb", "b", "dd", 2},
		{"substitute", "foo foo", "bar bar", ":s/foo/bar/g<CR>", 13},
		{"dot repeat", "hello world", "X X", "cwX<Esc>w.", 6},
	}
	p := NewPlayer(nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := NewChallenge(tt.name, tt.start, tt.target)
			at := p.Play(ch, tt.keystroke)
			if !at.Solved {
				t.Fatalf("not solved: output %q, diff %s", at.Output, at.Diff)
			}
			if at.Score != tt.score {
				t.Errorf("score = %d, want %d", at.Score, tt.score)
			}
			if at.Diff != "" {
				t.Errorf("solved attempt has diff %q", at.Diff)
			}
			if at.Challenge != ch.ID {
				t.Error("attempt not linked to challenge")
			}
		})
	}
}

func TestPlayUnsolved(t *testing.T) {
	p := NewPlayer(nil, nil)
	ch := NewChallenge("miss", "hello", "world")
	at := p.Play(ch, "x")

	if at.Solved {
		t.Fatal("attempt should not be solved")
	}
	if at.Output != "ello\n" {
		t.Errorf("output = %q", at.Output)
	}
	if at.Diff == "" {
		t.Error("unsolved attempt should carry a diff")
	}
	if !strings.Contains(at.Diff, "+[") || !strings.Contains(at.Diff, "-[") {
		t.Errorf("diff %q should mark both missing and extra text", at.Diff)
	}
}

func TestPlayNormalizesTrailingNewline(t *testing.T) {
	p := NewPlayer(nil, nil)
	ch := NewChallenge("newline", "hello", "ello\n")
	if at := p.Play(ch, "x"); !at.Solved {
		t.Errorf("trailing newline in target should not matter: %q", at.Output)
	}
}

func TestUnderPar(t *testing.T) {
	ch := NewChallenge("par", "hello world", "world")
	ch.Par = 2
	p := NewPlayer(nil, nil)

	if at := p.Play(ch, "dw"); !at.UnderPar(ch) {
		t.Errorf("score %d should be under par %d", at.Score, ch.Par)
	}
	if at := p.Play(ch, "xxxxxx"); at.UnderPar(ch) {
		t.Errorf("score %d should not be under par %d", at.Score, ch.Par)
	}

	ch.Par = 0
	if at := p.Play(ch, "dw"); at.UnderPar(ch) {
		t.Error("a challenge without a par is never under par")
	}
}

func TestAttemptIDsAreUnique(t *testing.T) {
	p := NewPlayer(nil, nil)
	ch := NewChallenge("ids", "hello", "ello")
	a := p.Play(ch, "x")
	b := p.Play(ch, "x")
	if a.ID == uuid.Nil || a.ID == b.ID {
		t.Errorf("attempt ids %v and %v should be distinct and non-nil", a.ID, b.ID)
	}
}

func TestPlayRespectsOptions(t *testing.T) {
	opts := editor.DefaultOptions()
	opts.IgnoreCase = true
	p := NewPlayer(nil, &opts)
	ch := NewChallenge("case", "Hello", "xello")
	if at := p.Play(ch, "/hello<CR>rx"); !at.Solved {
		t.Errorf("ignorecase search should land on the match: %q", at.Output)
	}
}
