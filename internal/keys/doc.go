// Package keys splits raw Vim keystroke notation into atomic tokens.
//
// A token is one of:
//   - a bracketed special key such as <Esc>, <CR>, <C-a>, <Up>
//   - a command or search line beginning with ':', '/', or '?' and
//     running through its terminating <CR>
//   - a single character
//
// Tokenize splits a complete string. Next extracts a single token from a
// possibly-incomplete stream and reports when more input is needed, which
// lets streaming callers feed keystrokes incrementally without ever
// treating a partial token as an error.
package keys
