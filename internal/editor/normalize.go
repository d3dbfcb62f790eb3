package editor

import "strings"

// NormalizeText canonicalizes line endings and the trailing newline so
// two buffers can be compared byte-for-byte: CRLF and CR become LF, and
// non-empty text ends with exactly one newline.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return "\n"
	}
	return strings.TrimRight(text, "\n") + "\n"
}
