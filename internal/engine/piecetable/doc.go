// Package piecetable implements the text storage for the engine: a
// classic piece table over two backing buffers.
//
// The original buffer holds the text present at construction (or the last
// full replace); the append buffer accumulates every insertion since and
// never shrinks. The document is an ordered list of pieces, each
// referencing a span of one buffer; concatenating the spans in order
// yields the current text. Edits only rewrite the piece list — deleted
// text simply becomes unreferenced, so no edit ever shifts buffer
// contents.
//
// All public positions are grapheme-cluster counts (see the grapheme
// package), so callers can never address the interior of a multi-scalar
// character. Out-of-range offsets and inverted or empty ranges are
// absorbed as silent no-ops: the table prefers doing nothing over
// corrupting state, and callers that need strict validation perform it
// before calling (the engine façade does).
package piecetable
