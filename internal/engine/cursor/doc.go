// Package cursor provides the selection model for the engine.
//
// A Selection is an anchor/head pair of grapheme offsets. The anchor is
// where the selection started and stays fixed while the head follows the
// cursor, so a backward sweep is represented naturally (head < anchor).
// When anchor and head coincide the selection is just a cursor.
//
// Selections are immutable values: every operation returns a new
// Selection rather than mutating in place.
package cursor
