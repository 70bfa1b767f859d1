// Package engine provides the text engine facade.
//
// Engine composes a piece table (storage), an edit history (undo/redo),
// cursor and selection state, and a change notifier into the one API
// the rest of the application touches. Every public offset is a count
// of Unicode grapheme clusters, so a flag emoji or a ZWJ family
// sequence is one position, never several.
//
// Each Engine owns its piece table and history exclusively; multiple
// open documents each get an independent Engine. Mutating operations
// hold the engine lock, refresh the published text snapshot, then
// deliver exactly one synchronous notification with no lock held.
//
// Bounds policy: out-of-range offsets, inverted ranges, and empty
// inputs are silent no-ops. No state changes and no undo step is
// recorded, so history never accumulates null edits.
package engine
