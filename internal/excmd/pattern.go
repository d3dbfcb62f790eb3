package excmd

import "strings"

// TranslatePattern converts a Vim pattern to Go regexp syntax.
//
// Default "magic" mode inverts part of ordinary regex escaping: bare
// ( ) { } + ? | are literal characters while their backslashed forms are
// the regex operators, and \< \> are word boundaries. A leading \v (very
// magic) passes the remainder through mostly unchanged.
func TranslatePattern(pattern string) string {
	if strings.HasPrefix(pattern, `\v`) {
		return translateVeryMagic(pattern[2:])
	}
	return translateMagic(pattern)
}

func translateMagic(pattern string) string {
	var out strings.Builder
	rs := []rune(pattern)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r == '\\' && i+1 < len(rs) {
			next := rs[i+1]
			switch next {
			case '(', ')', '+', '?', '|', '{', '}':
				// Backslashed operators become bare regex operators.
				out.WriteRune(next)
			case '<', '>':
				out.WriteString(`\b`)
			case '=':
				out.WriteRune('?')
			case 'n':
				out.WriteString(`\n`)
			default:
				out.WriteRune('\\')
				out.WriteRune(next)
			}
			i++
			continue
		}
		switch r {
		case '(', ')', '+', '?', '{', '}', '|':
			// Bare operators are literal in magic mode.
			out.WriteRune('\\')
			out.WriteRune(r)
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}

func translateVeryMagic(pattern string) string {
	var out strings.Builder
	rs := []rune(pattern)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r == '\\' && i+1 < len(rs) {
			next := rs[i+1]
			switch next {
			case '<', '>':
				out.WriteString(`\b`)
			default:
				out.WriteRune('\\')
				out.WriteRune(next)
			}
			i++
			continue
		}
		switch r {
		case '<', '>':
			out.WriteString(`\b`)
		case '=':
			out.WriteRune('?')
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}
