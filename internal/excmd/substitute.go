package excmd

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dshills/vimkata/internal/editor"
)

// subSpec is a parsed :s command.
type subSpec struct {
	pattern     string
	replacement string
	global      bool
	ignoreCase  bool
}

// maxSubstitutePasses caps fixed-point iteration for multiline global
// substitutions.
const maxSubstitutePasses = 100

// parseSubstitute parses the body after the leading "s". The first
// character chooses the delimiter; a backslash-escaped delimiter inside a
// field is that literal character, not a field separator.
func parseSubstitute(body string) (subSpec, bool) {
	rs := []rune(body)
	if len(rs) == 0 {
		return subSpec{}, false
	}
	delim := rs[0]
	if unicode.IsLetter(delim) || unicode.IsDigit(delim) || delim == ' ' || delim == '\\' {
		return subSpec{}, false
	}

	fields := make([]string, 0, 3)
	var cur strings.Builder
	for i := 1; i < len(rs); i++ {
		r := rs[i]
		if r == '\\' && i+1 < len(rs) && rs[i+1] == delim {
			cur.WriteRune(delim)
			i++
			continue
		}
		if r == delim {
			fields = append(fields, cur.String())
			cur.Reset()
			if len(fields) == 2 {
				// The rest is flags; delimiters inside flags are invalid
				// anyway.
				fields = append(fields, string(rs[i+1:]))
				break
			}
			continue
		}
		cur.WriteRune(r)
	}
	for len(fields) < 3 {
		fields = append(fields, cur.String())
		cur.Reset()
	}

	spec := subSpec{pattern: fields[0], replacement: fields[1]}
	for _, f := range fields[2] {
		switch f {
		case 'g':
			spec.global = true
		case 'i':
			spec.ignoreCase = true
		}
	}
	return spec, true
}

// runSubstitute applies a :s command over a range. A pattern that fails
// to compile even after literal escaping makes the whole command a
// silent no-op. It reports whether anything changed.
func runSubstitute(st *editor.State, rng lineRange, body string) bool {
	spec, ok := parseSubstitute(body)
	if !ok {
		return false
	}
	if spec.pattern == "" {
		spec.pattern = st.Search.Pattern
		if spec.pattern == "" {
			return false
		}
	}

	translated := TranslatePattern(spec.pattern)
	if spec.ignoreCase {
		translated = "(?i)" + translated
	}
	re, err := regexp.Compile(translated)
	if err != nil {
		re, err = regexp.Compile(regexp.QuoteMeta(spec.pattern))
		if err != nil {
			return false
		}
	}

	// A substitute pattern becomes the last search pattern, as n and s//
	// expect.
	st.Search.Pattern = spec.pattern

	if strings.Contains(spec.pattern, `\n`) || strings.Contains(spec.pattern, "\n") {
		return substituteMultiline(st, rng, re, spec)
	}

	changed := false
	lastLine := st.Cursor.Line
	for i := rng.start; i <= rng.end && i < st.LineCount(); i++ {
		line := st.Lines[i]
		replaced, n := replaceLine(st, line, i, re, spec)
		if n > 0 {
			changed = true
			lastLine = i
			if strings.Contains(replaced, "\n") {
				parts := strings.Split(replaced, "\n")
				rest := append([]string(nil), st.Lines[i+1:]...)
				st.Lines = append(st.Lines[:i], append(parts, rest...)...)
				shift := len(parts) - 1
				i += shift
				rng.end += shift
				lastLine += shift
			} else {
				st.Lines[i] = replaced
			}
		}
	}
	if changed {
		st.Cursor.Line = lastLine
		st.Cursor.Col = 0
		st.ClampCursor()
	}
	return changed
}

// replaceLine substitutes within one line, returning the new line and
// the replacement count.
func replaceLine(st *editor.State, line string, lineNo int, re *regexp.Regexp, spec subSpec) (string, int) {
	count := 0
	out := replaceAll(st, line, lineNo, re, spec, &count)
	return out, count
}

func replaceAll(st *editor.State, text string, lineNo int, re *regexp.Regexp, spec subSpec, count *int) string {
	var out strings.Builder
	last := 0
	for _, loc := range re.FindAllSubmatchIndex([]byte(text), -1) {
		if !spec.global && *count > 0 {
			break
		}
		out.WriteString(text[last:loc[0]])
		out.WriteString(expandReplacement(st, text, lineNo, loc, spec.replacement))
		last = loc[1]
		*count++
		// Zero-width match safety.
		if loc[0] == loc[1] && spec.global {
			if last >= len(text) {
				break
			}
			out.WriteByte(text[last])
			last++
		}
	}
	out.WriteString(text[last:])
	return out.String()
}

// substituteMultiline joins the range, substitutes over the joined text,
// and iterates to a fixed point for global substitutions to mirror
// Vim's line-at-a-time processing of overlapping multiline matches.
func substituteMultiline(st *editor.State, rng lineRange, re *regexp.Regexp, spec subSpec) bool {
	joined := strings.Join(st.Lines[rng.start:rng.end+1], "\n")

	passes := 1
	if spec.global {
		passes = maxSubstitutePasses
	}
	changed := false
	for p := 0; p < passes; p++ {
		count := 0
		next := replaceAll(st, joined, rng.start, re, spec, &count)
		if count == 0 || next == joined {
			break
		}
		joined = next
		changed = true
	}
	if !changed {
		return false
	}

	parts := strings.Split(joined, "\n")
	rest := append([]string(nil), st.Lines[rng.end+1:]...)
	st.Lines = append(st.Lines[:rng.start], append(parts, rest...)...)
	if len(st.Lines) == 0 {
		st.Lines = []string{""}
	}
	st.Cursor.Line = rng.start
	st.Cursor.Col = 0
	st.ClampCursor()
	return true
}

// caseMode tracks \U, \L, \u, \l template state.
type caseMode uint8

const (
	caseNone caseMode = iota
	caseUpperAll
	caseLowerAll
	caseUpperOne
	caseLowerOne
)

// expandReplacement expands a substitute replacement template for one
// match: & and \0 for the whole match, multi-digit \N backreferences,
// \U/\L case mode until \E, \u/\l single-character case, \r for a line
// break, and \=expr expression replacement.
func expandReplacement(st *editor.State, text string, lineNo int, loc []int, template string) string {
	group := func(n int) string {
		if 2*n+1 >= len(loc) || loc[2*n] < 0 {
			return ""
		}
		return text[loc[2*n]:loc[2*n+1]]
	}

	if strings.HasPrefix(template, `\=`) {
		eval := st.Clone()
		eval.Cursor.Line = lineNo
		result, err := EvalExpression(strings.TrimPrefix(template, `\=`), eval)
		if err != nil {
			return group(0)
		}
		return result
	}

	var out strings.Builder
	mode := caseNone
	write := func(s string) {
		switch mode {
		case caseUpperAll:
			out.WriteString(strings.ToUpper(s))
		case caseLowerAll:
			out.WriteString(strings.ToLower(s))
		case caseUpperOne, caseLowerOne:
			rs := []rune(s)
			if len(rs) > 0 {
				first := string(rs[0])
				if mode == caseUpperOne {
					out.WriteString(strings.ToUpper(first))
				} else {
					out.WriteString(strings.ToLower(first))
				}
				out.WriteString(string(rs[1:]))
			}
			mode = caseNone
		default:
			out.WriteString(s)
		}
	}

	rs := []rune(template)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r == '&' {
			write(group(0))
			continue
		}
		if r != '\\' || i+1 >= len(rs) {
			write(string(r))
			continue
		}
		i++
		next := rs[i]
		switch {
		case next >= '0' && next <= '9':
			// Multi-digit backreference.
			n := int(next - '0')
			for i+1 < len(rs) && rs[i+1] >= '0' && rs[i+1] <= '9' {
				wider := n*10 + int(rs[i+1]-'0')
				if 2*wider+1 >= len(loc) {
					break
				}
				n = wider
				i++
			}
			write(group(n))
		case next == 'U':
			mode = caseUpperAll
		case next == 'L':
			mode = caseLowerAll
		case next == 'E' || next == 'e':
			mode = caseNone
		case next == 'u':
			mode = caseUpperOne
		case next == 'l':
			mode = caseLowerOne
		case next == 'r':
			out.WriteString("\n")
		case next == 'n':
			out.WriteString("\x00")
		case next == 't':
			write("\t")
		case next == '&':
			write("&")
		case next == '\\':
			write(`\`)
		default:
			write(string(next))
		}
	}
	return out.String()
}
