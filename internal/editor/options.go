package editor

// Options are the editor settings consulted by the search and ex-command
// components. They are fixed for the lifetime of a session.
type Options struct {
	// IgnoreCase makes searches case-insensitive.
	IgnoreCase bool `toml:"ignorecase"`

	// SmartCase overrides IgnoreCase when the pattern contains an
	// uppercase letter.
	SmartCase bool `toml:"smartcase"`

	// WrapScan lets searches wrap around the buffer edges.
	WrapScan bool `toml:"wrapscan"`

	// AutoIndent copies the current line's indent when opening lines.
	AutoIndent bool `toml:"autoindent"`

	// HLSearch marks search highlighting as enabled. The engine tracks it
	// for completeness; rendering belongs to the host.
	HLSearch bool `toml:"hlsearch"`

	// Scrolloff is the minimum context lines around the cursor. Carried
	// for hosts that render a viewport.
	Scrolloff int `toml:"scrolloff"`

	// ShiftWidth is the indent unit used by > and <.
	ShiftWidth int `toml:"shiftwidth"`

	// TextWidth is the wrap column used by gq.
	TextWidth int `toml:"textwidth"`
}

// DefaultOptions returns the settings a fresh session starts with.
func DefaultOptions() Options {
	return Options{
		WrapScan:   true,
		Scrolloff:  0,
		ShiftWidth: 2,
		TextWidth:  79,
	}
}
