// Package motion computes cursor targets and operator ranges for Vim
// motions: words, lines, find/till, paragraphs, sentences, match pairs,
// and document positions.
package motion

import (
	"github.com/dshills/vimkata/internal/editor"
)

// Kind identifies a motion.
type Kind uint8

const (
	KindLeft Kind = iota
	KindRight
	KindUp
	KindDown
	KindWordForward
	KindWordBackward
	KindWordEnd
	KindWORDForward
	KindWORDBackward
	KindWORDEnd
	KindLineStart
	KindFirstNonBlank
	KindLineEnd
	KindColumn
	KindDocumentStart
	KindDocumentEnd
	KindScreenTop
	KindScreenMiddle
	KindScreenBottom
	KindFindChar
	KindFindCharBack
	KindTillChar
	KindTillCharBack
	KindParagraphForward
	KindParagraphBackward
	KindSentenceForward
	KindSentenceBackward
	KindMatchPair
)

// Spec describes how a motion behaves when composed with an operator.
type Spec struct {
	// Kind identifies the motion.
	Kind Kind

	// Inclusive motions include the character they land on in an
	// operator's range; exclusive motions do not.
	Inclusive bool

	// Linewise motions make the composed operation act on whole lines.
	Linewise bool
}

// specs maps single-key motions to their behavior.
var specs = map[rune]Spec{
	'h': {Kind: KindLeft},
	'l': {Kind: KindRight},
	' ': {Kind: KindRight},
	'k': {Kind: KindUp, Linewise: true},
	'j': {Kind: KindDown, Linewise: true},
	'w': {Kind: KindWordForward},
	'b': {Kind: KindWordBackward},
	'e': {Kind: KindWordEnd, Inclusive: true},
	'W': {Kind: KindWORDForward},
	'B': {Kind: KindWORDBackward},
	'E': {Kind: KindWORDEnd, Inclusive: true},
	'0': {Kind: KindLineStart},
	'^': {Kind: KindFirstNonBlank},
	'$': {Kind: KindLineEnd, Inclusive: true},
	'|': {Kind: KindColumn},
	'G': {Kind: KindDocumentEnd, Linewise: true},
	'H': {Kind: KindScreenTop, Linewise: true},
	'M': {Kind: KindScreenMiddle, Linewise: true},
	'L': {Kind: KindScreenBottom, Linewise: true},
	'f': {Kind: KindFindChar, Inclusive: true},
	'F': {Kind: KindFindCharBack},
	't': {Kind: KindTillChar, Inclusive: true},
	'T': {Kind: KindTillCharBack},
	'}': {Kind: KindParagraphForward},
	'{': {Kind: KindParagraphBackward},
	')': {Kind: KindSentenceForward},
	'(': {Kind: KindSentenceBackward},
	'%': {Kind: KindMatchPair, Inclusive: true},
}

// gSpecs maps g-prefixed motions.
var gSpecs = map[rune]Spec{
	'g': {Kind: KindDocumentStart, Linewise: true},
	'_': {Kind: KindLineEnd, Inclusive: true},
}

// Lookup returns the spec for a single-key motion.
func Lookup(key rune) (Spec, bool) {
	s, ok := specs[key]
	return s, ok
}

// LookupG returns the spec for a g-prefixed motion.
func LookupG(key rune) (Spec, bool) {
	s, ok := gSpecs[key]
	return s, ok
}

// IsFind reports whether the key starts a character-argument motion.
func IsFind(key rune) bool {
	return key == 'f' || key == 'F' || key == 't' || key == 'T'
}

// Target computes where the motion lands. count has already been
// resolved (1 when absent), hasCount tells G-style motions whether an
// explicit line number was given, and arg carries the f/F/t/T character.
// The second result is false when the motion cannot move (such as f on a
// character that does not occur), in which case a composed operator must
// become a no-op.
func Target(lines []string, cur editor.Position, spec Spec, count int, hasCount bool, arg rune) (editor.Position, bool) {
	switch spec.Kind {
	case KindLeft:
		col := cur.Col - count
		if col < 0 {
			col = 0
		}
		return editor.Position{Line: cur.Line, Col: col}, true

	case KindRight:
		line := []rune(lines[cur.Line])
		col := cur.Col + count
		if col > len(line)-1 {
			col = len(line) - 1
		}
		if col < 0 {
			col = 0
		}
		return editor.Position{Line: cur.Line, Col: col}, true

	case KindUp:
		row := cur.Line - count
		if row < 0 {
			row = 0
		}
		return editor.Position{Line: row, Col: cur.Col}, true

	case KindDown:
		row := cur.Line + count
		if row > len(lines)-1 {
			row = len(lines) - 1
		}
		return editor.Position{Line: row, Col: cur.Col}, true

	case KindWordForward:
		return wordForward(lines, cur, count, false), true

	case KindWORDForward:
		return wordForward(lines, cur, count, true), true

	case KindWordBackward:
		return wordBackward(lines, cur, count, false), true

	case KindWORDBackward:
		return wordBackward(lines, cur, count, true), true

	case KindWordEnd:
		return wordEnd(lines, cur, count, false), true

	case KindWORDEnd:
		return wordEnd(lines, cur, count, true), true

	case KindLineStart:
		return editor.Position{Line: cur.Line, Col: 0}, true

	case KindFirstNonBlank:
		return editor.Position{Line: cur.Line, Col: FirstNonBlank(lines[cur.Line])}, true

	case KindLineEnd:
		line := []rune(lines[cur.Line])
		col := len(line) - 1
		if col < 0 {
			col = 0
		}
		return editor.Position{Line: cur.Line, Col: col}, true

	case KindColumn:
		line := []rune(lines[cur.Line])
		col := count - 1
		if col > len(line)-1 {
			col = len(line) - 1
		}
		if col < 0 {
			col = 0
		}
		return editor.Position{Line: cur.Line, Col: col}, true

	case KindDocumentStart:
		row := 0
		if hasCount {
			row = clampLine(count-1, lines)
		}
		return editor.Position{Line: row, Col: FirstNonBlank(lines[row])}, true

	case KindDocumentEnd:
		row := len(lines) - 1
		if hasCount {
			row = clampLine(count-1, lines)
		}
		return editor.Position{Line: row, Col: FirstNonBlank(lines[row])}, true

	case KindScreenTop:
		return editor.Position{Line: 0, Col: FirstNonBlank(lines[0])}, true

	case KindScreenMiddle:
		row := (len(lines) - 1) / 2
		return editor.Position{Line: row, Col: FirstNonBlank(lines[row])}, true

	case KindScreenBottom:
		row := len(lines) - 1
		return editor.Position{Line: row, Col: FirstNonBlank(lines[row])}, true

	case KindFindChar, KindFindCharBack, KindTillChar, KindTillCharBack:
		return findChar(lines, cur, spec.Kind, count, arg)

	case KindParagraphForward:
		return paragraphForward(lines, cur, count), true

	case KindParagraphBackward:
		return paragraphBackward(lines, cur, count), true

	case KindSentenceForward:
		return sentenceForward(lines, cur, count), true

	case KindSentenceBackward:
		return sentenceBackward(lines, cur, count), true

	case KindMatchPair:
		return matchPair(lines, cur)

	default:
		return cur, false
	}
}

// FirstNonBlank returns the column of the first non-whitespace character,
// or 0 for a blank line.
func FirstNonBlank(line string) int {
	for i, r := range []rune(line) {
		if r != ' ' && r != '\t' {
			return i
		}
	}
	return 0
}

func clampLine(row int, lines []string) int {
	if row < 0 {
		return 0
	}
	if row > len(lines)-1 {
		return len(lines) - 1
	}
	return row
}
