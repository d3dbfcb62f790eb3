// Package register implements Vim's register file: the unnamed register,
// the yank register 0, the rotating delete ring 1-9, the small-delete
// register -, the black hole _, and named registers a-z with A-Z append.
package register

import (
	"strings"
	"unicode"
)

// Content is the stored text of one register together with its wise.
type Content struct {
	// Text is the register's text.
	Text string

	// Linewise indicates line-oriented content (yy, dd).
	Linewise bool

	// FromDelete indicates the content came from a delete rather than a
	// yank.
	FromDelete bool
}

// Special register names.
const (
	Unnamed     = '"'
	LastYank    = '0'
	SmallDelete = '-'
	BlackHole   = '_'
)

// File holds all registers. The zero value is ready to use. File is a
// value type: Clone produces an independent copy so editor snapshots
// never alias register storage.
type File struct {
	regs map[rune]Content
}

// Clone returns an independent copy of the register file.
func (f File) Clone() File {
	if f.regs == nil {
		return File{}
	}
	regs := make(map[rune]Content, len(f.regs))
	for name, c := range f.regs {
		regs[name] = c
	}
	return File{regs: regs}
}

// Get returns the content of a register. Uppercase names read their
// lowercase counterpart. The second result reports whether the register
// holds anything.
func (f File) Get(name rune) (Content, bool) {
	if name == 0 {
		name = Unnamed
	}
	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
	}
	c, ok := f.regs[name]
	return c, ok
}

// set stores content, allocating the map on first write.
func (f *File) set(name rune, c Content) {
	if f.regs == nil {
		f.regs = make(map[rune]Content)
	}
	f.regs[name] = c
}

// SetYank records a yank. The text goes to the target register (unnamed
// when name is 0), is mirrored into the unnamed register when a named
// register was chosen, and always also updates register 0.
func (f *File) SetYank(name rune, text string, linewise bool) {
	if name == BlackHole {
		return
	}
	c := Content{Text: text, Linewise: linewise}
	switch {
	case name == 0 || name == Unnamed:
		f.set(Unnamed, c)
	case unicode.IsUpper(name):
		f.appendNamed(unicode.ToLower(name), text, linewise, false)
		f.set(Unnamed, c)
	default:
		f.set(name, c)
		f.set(Unnamed, c)
	}
	f.set(LastYank, c)
}

// SetDelete records a delete. The black hole discards. An explicit
// register receives the text (plus the unnamed mirror). The default path
// rotates the delete ring 9<-8<-...<-1 and writes register 1, except for
// small deletes (less than one line) which go to the - register instead.
func (f *File) SetDelete(name rune, text string, linewise bool) {
	if name == BlackHole {
		return
	}
	c := Content{Text: text, Linewise: linewise, FromDelete: true}
	if name != 0 && name != Unnamed {
		if unicode.IsUpper(name) {
			f.appendNamed(unicode.ToLower(name), text, linewise, true)
		} else {
			f.set(name, c)
		}
		f.set(Unnamed, c)
		return
	}

	if !linewise && !strings.Contains(text, "\n") {
		f.set(SmallDelete, c)
		f.set(Unnamed, c)
		return
	}

	// Rotate the numbered delete ring.
	for i := '9'; i > '1'; i-- {
		if prev, ok := f.regs[i-1]; ok {
			f.set(i, prev)
		} else {
			delete(f.regs, i)
		}
	}
	f.set('1', c)
	f.set(Unnamed, c)
}

// appendNamed appends to a lowercase named register (the A-Z path).
func (f *File) appendNamed(name rune, text string, linewise, fromDelete bool) {
	prev, ok := f.regs[name]
	if !ok {
		f.set(name, Content{Text: text, Linewise: linewise, FromDelete: fromDelete})
		return
	}
	joined := prev.Text
	if prev.Linewise && !strings.HasSuffix(joined, "\n") {
		joined += "\n"
	}
	joined += text
	f.set(name, Content{Text: joined, Linewise: prev.Linewise || linewise, FromDelete: fromDelete})
}

// Set stores text directly, bypassing the unnamed and numbered mirrors.
// Macro recording writes through this path. Uppercase names append.
func (f *File) Set(name rune, text string, linewise bool) {
	if name == BlackHole {
		return
	}
	if unicode.IsUpper(name) {
		f.appendNamed(unicode.ToLower(name), text, linewise, false)
		return
	}
	f.set(name, Content{Text: text, Linewise: linewise})
}

// IsValid reports whether name is a register the engine accepts after '"'.
func IsValid(name rune) bool {
	switch {
	case name == Unnamed, name == SmallDelete, name == BlackHole:
		return true
	case name >= 'a' && name <= 'z':
		return true
	case name >= 'A' && name <= 'Z':
		return true
	case name >= '0' && name <= '9':
		return true
	default:
		return false
	}
}
