package history

import (
	"testing"
)

func TestRecordInsertPushes(t *testing.T) {
	h := New(0)
	h.RecordInsert("abc", 0)

	if !h.CanUndo() {
		t.Fatal("expected undo available")
	}
	if h.UndoCount() != 1 {
		t.Errorf("UndoCount() = %d, want 1", h.UndoCount())
	}
}

func TestRecordEmptyIsNoOp(t *testing.T) {
	h := New(0)
	h.RecordInsert("", 0)
	h.RecordDelete("", Range{})

	if h.CanUndo() {
		t.Error("empty edits must not be recorded")
	}
}

func TestUndoMovesToRedo(t *testing.T) {
	h := New(0)
	h.RecordInsert("abc", 0)

	cmd, ok := h.Undo()
	if !ok {
		t.Fatal("expected a command")
	}
	ins, ok := cmd.(Insert)
	if !ok {
		t.Fatalf("expected Insert, got %T", cmd)
	}
	if ins.Text != "abc" || ins.Offset != 0 {
		t.Errorf("got %+v", ins)
	}

	if h.CanUndo() {
		t.Error("undo stack should be empty")
	}
	if !h.CanRedo() {
		t.Error("redo stack should hold the command")
	}
}

func TestRedoMovesBack(t *testing.T) {
	h := New(0)
	h.RecordDelete("xy", Range{Start: 2, End: 4})
	h.Undo()

	cmd, ok := h.Redo()
	if !ok {
		t.Fatal("expected a command")
	}
	del, ok := cmd.(Delete)
	if !ok {
		t.Fatalf("expected Delete, got %T", cmd)
	}
	if del.Text != "xy" || del.Range.Start != 2 || del.Range.End != 4 {
		t.Errorf("got %+v", del)
	}

	if !h.CanUndo() || h.CanRedo() {
		t.Error("command should be back on the undo stack")
	}
}

func TestUndoEmptyIsNotAnError(t *testing.T) {
	h := New(0)
	if cmd, ok := h.Undo(); ok || cmd != nil {
		t.Error("undo on empty stack should return nothing to do")
	}
	if cmd, ok := h.Redo(); ok || cmd != nil {
		t.Error("redo on empty stack should return nothing to do")
	}
}

func TestRecordClearsRedo(t *testing.T) {
	h := New(0)
	h.RecordInsert("a", 0)
	h.RecordInsert("b", 1)
	h.Undo()

	if !h.CanRedo() {
		t.Fatal("expected redo available")
	}

	h.RecordInsert("c", 1)
	if h.CanRedo() {
		t.Error("recording a new edit must clear the redo stack")
	}
}

func TestTransactionCollapsesToCompound(t *testing.T) {
	h := New(0)
	h.BeginTransaction("replace")
	h.RecordDelete("old", Range{Start: 0, End: 3})
	h.RecordInsert("new", 0)
	h.EndTransaction()

	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount() = %d, want 1", h.UndoCount())
	}

	cmd, _ := h.Undo()
	comp, ok := cmd.(Compound)
	if !ok {
		t.Fatalf("expected Compound, got %T", cmd)
	}
	if comp.Name != "replace" || len(comp.Commands) != 2 {
		t.Errorf("got %+v", comp)
	}
	if _, ok := comp.Commands[0].(Delete); !ok {
		t.Error("first inner command should be the delete")
	}
	if _, ok := comp.Commands[1].(Insert); !ok {
		t.Error("second inner command should be the insert")
	}
}

func TestEmptyTransactionRecordsNothing(t *testing.T) {
	h := New(0)
	h.BeginTransaction("noop")
	h.EndTransaction()

	if h.CanUndo() {
		t.Error("empty transaction should leave the stacks untouched")
	}
}

func TestNestedTransactionsFlatten(t *testing.T) {
	h := New(0)
	h.BeginTransaction("outer")
	h.RecordInsert("a", 0)
	h.BeginTransaction("inner") // ignored
	h.RecordInsert("b", 1)
	h.EndTransaction() // closes the outer transaction
	if h.InTransaction() {
		t.Fatal("transaction should be closed")
	}

	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount() = %d, want 1", h.UndoCount())
	}
	cmd, _ := h.Undo()
	comp := cmd.(Compound)
	if comp.Name != "outer" || len(comp.Commands) != 2 {
		t.Errorf("got %+v", comp)
	}
}

func TestMaxEntriesDropsOldest(t *testing.T) {
	h := New(3)
	h.RecordInsert("a", 0)
	h.RecordInsert("b", 1)
	h.RecordInsert("c", 2)
	h.RecordInsert("d", 3)

	if h.UndoCount() != 3 {
		t.Fatalf("UndoCount() = %d, want 3", h.UndoCount())
	}

	// The oldest entry ("a") is gone; unwinding yields d, c, b.
	for _, want := range []string{"d", "c", "b"} {
		cmd, ok := h.Undo()
		if !ok {
			t.Fatal("expected a command")
		}
		if got := cmd.(Insert).Text; got != want {
			t.Errorf("popped %q, want %q", got, want)
		}
	}
}

func TestClear(t *testing.T) {
	h := New(0)
	h.RecordInsert("a", 0)
	h.RecordInsert("b", 1)
	h.Undo()
	h.BeginTransaction("pending")

	h.Clear()

	if h.CanUndo() || h.CanRedo() || h.InTransaction() {
		t.Error("Clear should reset all state")
	}
}

func TestPeek(t *testing.T) {
	h := New(0)
	if _, _, ok := h.PeekUndo(); ok {
		t.Error("PeekUndo on empty history")
	}

	h.RecordInsert("\n", 0)
	desc, ts, ok := h.PeekUndo()
	if !ok || desc != "Insert newline" || ts.IsZero() {
		t.Errorf("PeekUndo = %q, %v, %v", desc, ts, ok)
	}
	if h.UndoCount() != 1 {
		t.Error("peek must not pop")
	}

	h.Undo()
	desc, _, ok = h.PeekRedo()
	if !ok || desc != "Insert newline" {
		t.Errorf("PeekRedo = %q, %v", desc, ok)
	}
}

func TestDescriptions(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{Insert{Text: "\t"}, "Insert tab"},
		{Insert{Text: "hi"}, `Insert "hi"`},
		{Insert{Text: "this is a long run of text over twenty"}, "Insert 38 characters"},
		{Delete{Text: "hi"}, `Delete "hi"`},
		{Compound{Name: "replace"}, "replace"},
		{Compound{Commands: []Command{Insert{Text: "x"}, Delete{Text: "y"}}}, "2 operations"},
	}

	for _, tt := range tests {
		if got := tt.cmd.Description(); got != tt.want {
			t.Errorf("Description() = %q, want %q", got, tt.want)
		}
	}
}
