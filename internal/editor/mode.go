package editor

import "github.com/dshills/vimkata/internal/keys"

// Mode identifies the active editing mode.
type Mode uint8

const (
	// ModeNormal is command mode.
	ModeNormal Mode = iota

	// ModeInsert inserts typed characters before the cursor.
	ModeInsert

	// ModeReplace overwrites characters under the cursor.
	ModeReplace

	// ModeVisual is character-wise selection.
	ModeVisual

	// ModeVisualLine is line-wise selection.
	ModeVisualLine

	// ModeVisualBlock is rectangular selection.
	ModeVisualBlock

	// ModeCommandLine accumulates a ':', '/', or '?' line.
	ModeCommandLine
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInsert:
		return "insert"
	case ModeReplace:
		return "replace"
	case ModeVisual:
		return "visual"
	case ModeVisualLine:
		return "visual-line"
	case ModeVisualBlock:
		return "visual-block"
	case ModeCommandLine:
		return "command-line"
	default:
		return "unknown"
	}
}

// IsVisual reports whether the mode is any of the visual family.
func (m Mode) IsVisual() bool {
	return m == ModeVisual || m == ModeVisualLine || m == ModeVisualBlock
}

// Class maps the mode onto the tokenizer's mode classes.
func (m Mode) Class() keys.ModeClass {
	switch m {
	case ModeInsert, ModeReplace:
		return keys.ClassInsert
	case ModeCommandLine:
		return keys.ClassCommandLine
	default:
		return keys.ClassNormal
	}
}
