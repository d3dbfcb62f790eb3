package keys

import "strings"

// Token is a single atomic keystroke: a bracketed special key ("<Esc>"),
// a full command or search line (":%s/a/b/<CR>"), or one character.
type Token string

// Common special tokens.
const (
	TokenEscape    Token = "<Esc>"
	TokenEnter     Token = "<CR>"
	TokenBackspace Token = "<BS>"
	TokenTab       Token = "<Tab>"
	TokenDelete    Token = "<Del>"
	TokenUp        Token = "<Up>"
	TokenDown      Token = "<Down>"
	TokenLeft      Token = "<Left>"
	TokenRight     Token = "<Right>"
)

// IsSpecial reports whether the token is a bracketed special key.
func (t Token) IsSpecial() bool {
	return len(t) > 2 && t[0] == '<' && t[len(t)-1] == '>'
}

// IsCommandLine reports whether the token is a complete ':' command line.
func (t Token) IsCommandLine() bool {
	return len(t) > 0 && t[0] == ':' && strings.HasSuffix(string(t), string(TokenEnter))
}

// IsSearchLine reports whether the token is a complete '/' or '?' search
// line.
func (t Token) IsSearchLine() bool {
	return len(t) > 0 && (t[0] == '/' || t[0] == '?') && strings.HasSuffix(string(t), string(TokenEnter))
}

// Rune returns the token's character when the token is a single plain
// character, and 0 otherwise.
func (t Token) Rune() rune {
	rs := []rune(string(t))
	if len(rs) != 1 {
		return 0
	}
	return rs[0]
}

// CtrlKey returns the letter of a <C-x> token, or 0 when the token is not
// a control chord.
func (t Token) CtrlKey() rune {
	s := string(t)
	if len(s) != 5 || !strings.HasPrefix(s, "<C-") || s[4] != '>' {
		return 0
	}
	return rune(s[3])
}

// Line returns the body of a command or search line token with the
// leading prompt character and trailing <CR> removed.
func (t Token) Line() string {
	s := string(t)
	if len(s) == 0 {
		return ""
	}
	s = strings.TrimSuffix(s, string(TokenEnter))
	return s[1:]
}

// String implements fmt.Stringer.
func (t Token) String() string {
	return string(t)
}
