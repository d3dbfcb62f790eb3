package keys

import "strings"

// ModeClass tells the streaming tokenizer how the next token should be
// interpreted. Command and search lines only begin in normal-like modes;
// in insert or command-line mode ':' and '/' are ordinary characters.
type ModeClass uint8

const (
	// ClassNormal covers normal mode and the visual family.
	ClassNormal ModeClass = iota

	// ClassInsert covers insert and replace mode.
	ClassInsert

	// ClassCommandLine covers active ':' / '/' / '?' entry.
	ClassCommandLine
)

// String returns a human-readable class name.
func (c ModeClass) String() string {
	switch c {
	case ClassNormal:
		return "normal"
	case ClassInsert:
		return "insert"
	case ClassCommandLine:
		return "command-line"
	default:
		return "unknown"
	}
}

// Tokenize splits a complete keystroke string into tokens. Incomplete
// trailing input (an unterminated bracket or command line) is kept as a
// final raw token so that no input is silently dropped; streaming callers
// that need to wait for completion should use Next instead.
func Tokenize(raw string) []Token {
	var tokens []Token
	rest := raw
	for rest != "" {
		tok, remaining, ok := Next(rest, ClassNormal)
		if !ok {
			// Unterminated token at end of input.
			tokens = append(tokens, Token(rest))
			break
		}
		tokens = append(tokens, tok)
		rest = remaining
	}
	return tokens
}

// Next extracts a single token from the front of remaining. It returns
// the token, the rest of the input, and whether a complete token was
// available. ok == false means the caller should wait for more input,
// never that the input is invalid.
func Next(remaining string, class ModeClass) (Token, string, bool) {
	if remaining == "" {
		return "", "", false
	}

	// Bracketed special key: runs to the matching '>'.
	if remaining[0] == '<' {
		end := strings.IndexByte(remaining, '>')
		if end < 0 {
			return "", remaining, false
		}
		return Token(remaining[:end+1]), remaining[end+1:], true
	}

	// Command or search line: runs through its <CR>. Only recognized when
	// the editor is in a normal-like mode; in insert mode ':' is text.
	if class == ClassNormal && (remaining[0] == ':' || remaining[0] == '/' || remaining[0] == '?') {
		end := strings.Index(remaining, string(TokenEnter))
		if end < 0 {
			return "", remaining, false
		}
		end += len(TokenEnter)
		return Token(remaining[:end]), remaining[end:], true
	}

	// Single character.
	rs := []rune(remaining)
	return Token(string(rs[0])), string(rs[1:]), true
}

// Count returns the number of keystroke tokens in raw. This is the
// vim-golf score of a solution: <Esc> counts as one keystroke, and a
// command line counts one per character plus one for its <CR>.
func Count(raw string) int {
	count := 0
	for _, tok := range Tokenize(raw) {
		if tok.IsCommandLine() || tok.IsSearchLine() {
			// Prompt character + body + <CR>. Bracketed chords inside the
			// body (":normal ...<C-r>..." style) count as one keystroke.
			count += 1 + countChars(tok.Line()) + 1
			continue
		}
		count++
	}
	return count
}

// countChars counts keystrokes in a command-line body, treating each
// bracketed chord as a single keystroke.
func countChars(body string) int {
	count := 0
	rest := body
	for rest != "" {
		if rest[0] == '<' {
			if end := strings.IndexByte(rest, '>'); end >= 0 {
				count++
				rest = rest[end+1:]
				continue
			}
		}
		rs := []rune(rest)
		count++
		rest = string(rs[1:])
	}
	return count
}
