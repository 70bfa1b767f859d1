package history

import (
	"sync"
	"time"
)

// DefaultMaxEntries caps the undo stack when no explicit limit is given.
const DefaultMaxEntries = 1000

// entry wraps a command with metadata.
type entry struct {
	command   Command
	timestamp time.Time
}

// History manages the undo and redo stacks for one document. All methods
// are safe for concurrent use, though the engine drives it from a single
// owner context.
type History struct {
	mu sync.Mutex

	undoStack []*entry
	redoStack []*entry

	// Transaction state
	recording bool
	txnName   string
	txnCmds   []Command

	maxEntries int
}

// New creates a history manager holding at most maxEntries undo steps.
// Non-positive values fall back to DefaultMaxEntries.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// RecordInsert records an insertion of text at the given grapheme offset.
// Empty text records nothing: no-op edits must not pollute the stacks.
func (h *History) RecordInsert(text string, offset int) {
	if text == "" {
		return
	}
	h.push(Insert{Text: text, Offset: offset})
}

// RecordDelete records a deletion of text from the given range. Empty
// text records nothing.
func (h *History) RecordDelete(text string, r Range) {
	if text == "" {
		return
	}
	h.push(Delete{Text: text, Range: r})
}

// push adds a command to the undo stack, or to the pending transaction
// if one is open. Recording anything clears the redo stack.
func (h *History) push(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.recording {
		h.txnCmds = append(h.txnCmds, cmd)
		return
	}

	h.pushLocked(cmd)
}

func (h *History) pushLocked(cmd Command) {
	h.undoStack = append(h.undoStack, &entry{command: cmd, timestamp: time.Now()})
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// BeginTransaction opens a recording window: commands recorded until
// EndTransaction accumulate into one compound command. Nested calls are
// flattened into the outermost transaction.
func (h *History) BeginTransaction(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.recording {
		return
	}

	h.recording = true
	h.txnName = name
	h.txnCmds = nil
}

// EndTransaction flushes the accumulated commands as one compound onto
// the undo stack. A transaction that recorded nothing leaves the stacks
// untouched.
func (h *History) EndTransaction() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.recording {
		return
	}

	h.recording = false

	if len(h.txnCmds) == 0 {
		h.txnCmds = nil
		return
	}

	h.pushLocked(Compound{Name: h.txnName, Commands: h.txnCmds})
	h.txnCmds = nil
}

// InTransaction returns true while a transaction is open.
func (h *History) InTransaction() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.recording
}

// Undo pops the most recent command, moves it to the redo stack, and
// returns it for the caller to apply as an inverse. Returns (nil, false)
// when there is nothing to undo.
func (h *History) Undo() (Command, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return nil, false
	}

	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, e)

	return e.command, true
}

// Redo pops the most recently undone command, moves it back to the undo
// stack, and returns it for the caller to replay. Returns (nil, false)
// when there is nothing to redo.
func (h *History) Redo() (Command, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return nil, false
	}

	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, e)

	return e.command, true
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo steps available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo steps available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear empties both stacks and abandons any open transaction. Called on
// full document load/replace, where prior history is meaningless.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.recording = false
	h.txnCmds = nil
}

// PeekUndo returns the description and timestamp of the next undo step
// without removing it.
func (h *History) PeekUndo() (string, time.Time, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return "", time.Time{}, false
	}
	e := h.undoStack[len(h.undoStack)-1]
	return e.command.Description(), e.timestamp, true
}

// PeekRedo returns the description and timestamp of the next redo step
// without removing it.
func (h *History) PeekRedo() (string, time.Time, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return "", time.Time{}, false
	}
	e := h.redoStack[len(h.redoStack)-1]
	return e.command.Description(), e.timestamp, true
}
