// Package golf scores keystroke sequences against vim-golf challenges.
//
// A challenge pairs a starting buffer with a target buffer. An attempt
// replays a keystroke sequence through the engine and is solved when the
// resulting buffer matches the target exactly. The score is the number
// of keystrokes, counted the way vim-golf counts them: a chord is one
// stroke and a command line costs the colon, its characters, and the
// return.
package golf

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dshills/vimkata/internal/editor"
	"github.com/dshills/vimkata/internal/engine"
	"github.com/dshills/vimkata/internal/keys"
)

// Challenge is a vim-golf exercise.
type Challenge struct {
	// ID identifies the challenge across attempts.
	ID uuid.UUID

	// Name is a short human-readable title.
	Name string

	// Start is the initial buffer text.
	Start string

	// Target is the buffer text an attempt must produce.
	Target string

	// Par is the reference score to beat. Zero means unknown.
	Par int
}

// NewChallenge builds a challenge with a fresh id.
func NewChallenge(name, start, target string) Challenge {
	return Challenge{
		ID:     uuid.New(),
		Name:   name,
		Start:  start,
		Target: target,
	}
}

// Attempt is the outcome of replaying one keystroke sequence against a
// challenge.
type Attempt struct {
	ID        uuid.UUID
	Challenge uuid.UUID

	// Keys is the raw keystroke sequence that was replayed.
	Keys string

	// Score is the vim-golf keystroke count of Keys.
	Score int

	// Solved reports whether the output matched the target.
	Solved bool

	// Output is the normalized buffer text the keys produced.
	Output string

	// Diff describes how Output differs from the target. Empty when
	// solved.
	Diff string
}

// UnderPar reports whether the attempt solved the challenge within its
// par score. A challenge without a par is never under par.
func (a Attempt) UnderPar(ch Challenge) bool {
	return a.Solved && ch.Par > 0 && a.Score <= ch.Par
}

// Player replays attempts through a shared engine.
type Player struct {
	eng  *engine.Engine
	opts *editor.Options
}

// NewPlayer creates a player. A nil engine gets a default one; opts may
// be nil for default editor options.
func NewPlayer(eng *engine.Engine, opts *editor.Options) *Player {
	if eng == nil {
		eng = engine.New(engine.Config{})
	}
	return &Player{eng: eng, opts: opts}
}

// Play replays keystrokes against the challenge's starting buffer and
// scores the result. The challenge is never mutated, so attempts can
// run concurrently.
func (p *Player) Play(ch Challenge, keystrokes string) Attempt {
	st := p.eng.ExecuteAll(editor.New(ch.Start, p.opts), keystrokes)

	got := st.Text()
	want := editor.NormalizeText(ch.Target)

	at := Attempt{
		ID:        uuid.New(),
		Challenge: ch.ID,
		Keys:      keystrokes,
		Score:     keys.Count(keystrokes),
		Solved:    got == want,
		Output:    got,
	}
	if !at.Solved {
		at.Diff = renderDiff(want, got)
	}
	return at
}

// renderDiff produces a compact inline diff from target to output:
// -[text] is missing from the output, +[text] is extra.
func renderDiff(want, got string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(want, got, false))

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString("-[")
			b.WriteString(d.Text)
			b.WriteString("]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("+[")
			b.WriteString(d.Text)
			b.WriteString("]")
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
