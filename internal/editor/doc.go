// Package editor defines the editor state aggregate that every engine
// operation transforms: buffer lines, cursor, mode, pending operator,
// registers, marks, undo history, search state, macro capture, and
// options.
//
// State is treated as a value. The engine clones a state, mutates the
// clone, and returns it; callers never observe shared mutation, and undo
// snapshots own independent copies of the buffer. This keeps every
// keystroke application a pure, deterministic function of its inputs,
// which is what allows replayed keystroke sequences to be scored and
// verified after the fact.
package editor
