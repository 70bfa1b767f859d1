package engine

import (
	"testing"

	"pgregory.net/rapid"
)

// TestPropUndoRedoRoundTrip drives a random edit sequence, then checks
// that a full unwind restores the loaded text and a full replay restores
// the final text, repeatedly.
func TestPropUndoRedoRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.StringMatching(`[a-z \n]{0,16}`).Draw(rt, "seed")
		e := New(WithContent(seed))

		steps := rapid.IntRange(1, 20).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(rt, "insert") {
				ins := rapid.StringMatching(`[a-z]{1,6}`).Draw(rt, "ins")
				at := rapid.IntRange(0, e.Len()).Draw(rt, "at")
				e.InsertAt(ins, at)
			} else if n := e.Len(); n > 0 {
				start := rapid.IntRange(0, n-1).Draw(rt, "start")
				end := rapid.IntRange(start+1, n).Draw(rt, "end")
				e.Delete(Range{Start: start, End: end})
			}
		}
		final := e.Text()

		for e.Undo() {
		}
		if got := e.Text(); got != seed {
			rt.Fatalf("full undo: %q, want %q", got, seed)
		}

		for e.Redo() {
		}
		if got := e.Text(); got != final {
			rt.Fatalf("full redo: %q, want %q", got, final)
		}

		// A second unwind must still work after the replay.
		for e.Undo() {
		}
		if got := e.Text(); got != seed {
			rt.Fatalf("second undo pass: %q, want %q", got, seed)
		}
	})
}
