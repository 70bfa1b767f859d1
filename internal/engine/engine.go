package engine

import (
	"fmt"
	"io"
	"sync"

	"github.com/loomtext/loom/internal/engine/cursor"
	"github.com/loomtext/loom/internal/engine/grapheme"
	"github.com/loomtext/loom/internal/engine/history"
	"github.com/loomtext/loom/internal/engine/piecetable"
	"github.com/loomtext/loom/internal/notify"
)

// Re-export commonly used types for convenience.
type (
	// Range is a half-open grapheme range in the document.
	Range = piecetable.Range

	// Selection is an anchor/head selection in grapheme offsets.
	Selection = cursor.Selection

	// Event describes one document change.
	Event = notify.Event

	// Observer is a change notification callback.
	Observer = notify.Observer

	// Subscription is an active observer registration.
	Subscription = notify.Subscription
)

// Engine is the main facade for the text engine.
// It combines the piece table, undo/redo history, cursor and selection
// tracking, and change notification into a unified, thread-safe API.
//
// All offsets in the public API are grapheme-cluster counts.
type Engine struct {
	mu sync.RWMutex

	// Core components
	table    *piecetable.Table
	history  *history.History
	notifier *notify.Notifier

	// Derived state, kept in lockstep with the table
	text      string
	cursorPos int
	sel       *cursor.Selection
	line      int
	column    int

	savedText  string
	lineEnding LineEnding

	// Configuration
	tabWidth       int
	maxUndoEntries int
	lineEndingSet  bool

	// Initialization
	initContent string
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		tabWidth:       DefaultTabWidth,
		maxUndoEntries: DefaultMaxUndoEntries,
		lineEnding:     LineEndingLF,
		line:           1,
		column:         1,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.table = piecetable.New(e.initContent)
	e.history = history.New(e.maxUndoEntries)
	e.notifier = notify.New()

	e.text = e.initContent
	e.savedText = e.initContent
	if e.initContent != "" && !e.lineEndingSet {
		e.lineEnding = detectLineEnding(e.initContent)
	}

	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("engine: read content: %w", err)
	}
	return New(append(opts, WithContent(string(data)))...), nil
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full document content.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text
}

// Len returns the document length in grapheme clusters.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.table.Len()
}

// IsEmpty returns true if the document is empty.
func (e *Engine) IsEmpty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.table.IsEmpty()
}

// Substring returns the text in the given grapheme range. Invalid or
// out-of-bounds ranges return the empty string.
func (e *Engine) Substring(r Range) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.table.Substring(r)
}

// IsModified reports whether the document differs from its last saved
// state.
func (e *Engine) IsModified() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text != e.savedText
}

// MarkSaved records the current content as the saved baseline.
func (e *Engine) MarkSaved() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.savedText = e.text
}

// LineEnding returns the document's line ending style.
func (e *Engine) LineEnding() LineEnding {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lineEnding
}

// ============================================================================
// Cursor and Selection
// ============================================================================

// CursorPosition returns the cursor's grapheme offset.
func (e *Engine) CursorPosition() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursorPos
}

// SetCursorPosition moves the cursor, clamped to [0, Len]. Any active
// selection collapses.
func (e *Engine) SetCursorPosition(pos int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cursorPos = clamp(pos, 0, e.table.Len())
	e.sel = nil
	e.recomputeLineColLocked()
}

// Select sets the selection from anchor to head, both clamped to the
// document bounds. The cursor follows the head.
func (e *Engine) Select(anchor, head int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := cursor.New(anchor, head).Clamp(e.table.Len())
	e.sel = &s
	e.cursorPos = s.Head
	e.recomputeLineColLocked()
}

// ClearSelection collapses any active selection to the cursor.
func (e *Engine) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sel = nil
}

// SelectionRange returns the normalized selection range and true, or a
// zero range and false when no non-empty selection is active.
func (e *Engine) SelectionRange() (Range, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.sel == nil || e.sel.IsEmpty() {
		return Range{}, false
	}
	return e.sel.Range(), true
}

// CurrentLine returns the 1-indexed line containing the cursor.
func (e *Engine) CurrentLine() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.line
}

// CurrentColumn returns the 1-indexed column of the cursor within its
// line, counted in grapheme clusters.
func (e *Engine) CurrentColumn() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.column
}

// ============================================================================
// Write Operations
// ============================================================================

// Insert inserts text at the current cursor position.
func (e *Engine) Insert(text string) {
	e.InsertAt(text, e.CursorPosition())
}

// InsertAt inserts text at the given grapheme offset. Out-of-bounds
// offsets and empty text are no-ops: nothing changes and no undo step is
// recorded.
func (e *Engine) InsertAt(text string, at int) {
	e.mu.Lock()
	if !e.insertLocked(text, at) {
		e.mu.Unlock()
		return
	}
	ev := e.eventLocked(notify.KindEdit)
	e.mu.Unlock()

	e.notifier.Notify(ev)
}

// Delete removes the given grapheme range. Empty or out-of-bounds ranges
// are no-ops.
func (e *Engine) Delete(r Range) {
	e.mu.Lock()
	if _, ok := e.deleteLocked(r); !ok {
		e.mu.Unlock()
		return
	}
	ev := e.eventLocked(notify.KindEdit)
	e.mu.Unlock()

	e.notifier.Notify(ev)
}

// DeleteBackward deletes the active selection if there is one, otherwise
// the single grapheme cluster before the cursor. A no-op at offset 0.
func (e *Engine) DeleteBackward() {
	e.mu.Lock()

	var ok bool
	if r, selected := e.selectionRangeLocked(); selected {
		_, ok = e.deleteLocked(r)
	} else if e.cursorPos > 0 {
		_, ok = e.deleteLocked(Range{Start: e.cursorPos - 1, End: e.cursorPos})
	}
	if !ok {
		e.mu.Unlock()
		return
	}

	ev := e.eventLocked(notify.KindEdit)
	e.mu.Unlock()

	e.notifier.Notify(ev)
}

// DeleteForward deletes the active selection if there is one, otherwise
// the single grapheme cluster after the cursor. A no-op at the end of
// the document.
func (e *Engine) DeleteForward() {
	e.mu.Lock()

	var ok bool
	if r, selected := e.selectionRangeLocked(); selected {
		_, ok = e.deleteLocked(r)
	} else if e.cursorPos < e.table.Len() {
		_, ok = e.deleteLocked(Range{Start: e.cursorPos, End: e.cursorPos + 1})
	}
	if !ok {
		e.mu.Unlock()
		return
	}

	ev := e.eventLocked(notify.KindEdit)
	e.mu.Unlock()

	e.notifier.Notify(ev)
}

// ReplaceRange deletes the range and inserts the replacement as one
// atomic undo step.
func (e *Engine) ReplaceRange(r Range, text string) {
	e.mu.Lock()
	if !e.replaceRangeLocked(r, text) {
		e.mu.Unlock()
		return
	}
	ev := e.eventLocked(notify.KindEdit)
	e.mu.Unlock()

	e.notifier.Notify(ev)
}

// LoadText replaces the entire document. The cursor resets to 0, the
// selection and undo history clear, the line ending style is
// re-detected, and the new content becomes the saved baseline.
func (e *Engine) LoadText(text string) {
	e.mu.Lock()
	e.loadLocked(text)
	ev := e.eventLocked(notify.KindLoad)
	e.mu.Unlock()

	e.notifier.Notify(ev)
}

// ============================================================================
// Undo / Redo
// ============================================================================

// Undo reverses the most recent edit. Returns false when there is
// nothing to undo.
func (e *Engine) Undo() bool {
	e.mu.Lock()
	cmd, ok := e.history.Undo()
	if !ok {
		e.mu.Unlock()
		return false
	}

	e.applyInverseLocked(cmd)
	e.sel = nil
	e.refreshLocked()
	e.recomputeLineColLocked()
	ev := e.eventLocked(notify.KindUndo)
	e.mu.Unlock()

	e.notifier.Notify(ev)
	return true
}

// Redo reapplies the most recently undone edit. Returns false when
// there is nothing to redo.
func (e *Engine) Redo() bool {
	e.mu.Lock()
	cmd, ok := e.history.Redo()
	if !ok {
		e.mu.Unlock()
		return false
	}

	e.applyForwardLocked(cmd)
	e.sel = nil
	e.refreshLocked()
	e.recomputeLineColLocked()
	ev := e.eventLocked(notify.KindRedo)
	e.mu.Unlock()

	e.notifier.Notify(ev)
	return true
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoDescription returns a description of the next undo step, or ""
// when there is none.
func (e *Engine) UndoDescription() string {
	desc, _, _ := e.history.PeekUndo()
	return desc
}

// RedoDescription returns a description of the next redo step, or ""
// when there is none.
func (e *Engine) RedoDescription() string {
	desc, _, _ := e.history.PeekRedo()
	return desc
}

// ============================================================================
// Notification
// ============================================================================

// Subscribe registers an observer for document changes. Delivery is
// synchronous: exactly one event per mutating call, after the snapshot
// is refreshed.
func (e *Engine) Subscribe(observer Observer) *Subscription {
	return e.notifier.Subscribe(observer)
}

// ============================================================================
// Internal
// ============================================================================

// applyInverseLocked undoes a popped command directly against the table,
// bypassing the recording path. Compound inverses apply in reverse
// order.
func (e *Engine) applyInverseLocked(cmd history.Command) {
	switch c := cmd.(type) {
	case history.Insert:
		n := grapheme.Count(c.Text)
		e.table.Delete(Range{Start: c.Offset, End: c.Offset + n})
		e.cursorPos = c.Offset
	case history.Delete:
		e.table.Insert(c.Text, c.Range.Start)
		e.cursorPos = c.Range.Start + grapheme.Count(c.Text)
	case history.Compound:
		for i := len(c.Commands) - 1; i >= 0; i-- {
			e.applyInverseLocked(c.Commands[i])
		}
	}
}

// applyForwardLocked replays a popped command directly against the
// table. Compound commands replay in original order.
func (e *Engine) applyForwardLocked(cmd history.Command) {
	switch c := cmd.(type) {
	case history.Insert:
		e.table.Insert(c.Text, c.Offset)
		e.cursorPos = c.Offset + grapheme.Count(c.Text)
	case history.Delete:
		e.table.Delete(c.Range)
		e.cursorPos = c.Range.Start
	case history.Compound:
		for _, inner := range c.Commands {
			e.applyForwardLocked(inner)
		}
	}
}

func (e *Engine) insertLocked(text string, at int) bool {
	if text == "" || at < 0 || at > e.table.Len() {
		return false
	}

	e.table.Insert(text, at)
	e.history.RecordInsert(text, at)

	e.cursorPos = at + grapheme.Count(text)
	e.sel = nil
	e.refreshLocked()
	e.recomputeLineColLocked()
	return true
}

// deleteLocked removes the range and returns the removed text. Empty or
// out-of-bounds ranges return ("", false) with no state change.
func (e *Engine) deleteLocked(r Range) (string, bool) {
	if !r.IsValid() || r.IsEmpty() || r.Start < 0 || r.End > e.table.Len() {
		return "", false
	}

	removed := e.table.Substring(r)
	e.table.Delete(r)
	e.history.RecordDelete(removed, r)

	e.cursorPos = r.Start
	e.sel = nil
	e.refreshLocked()
	e.recomputeLineColLocked()
	return removed, true
}

func (e *Engine) replaceRangeLocked(r Range, text string) bool {
	if !r.IsValid() || r.Start < 0 || r.End > e.table.Len() {
		return false
	}
	if r.IsEmpty() && text == "" {
		return false
	}

	e.history.BeginTransaction("Replace")
	if !r.IsEmpty() {
		removed := e.table.Substring(r)
		e.table.Delete(r)
		e.history.RecordDelete(removed, r)
	}
	if text != "" {
		e.table.Insert(text, r.Start)
		e.history.RecordInsert(text, r.Start)
	}
	e.history.EndTransaction()

	e.cursorPos = r.Start + grapheme.Count(text)
	e.sel = nil
	e.refreshLocked()
	e.recomputeLineColLocked()
	return true
}

func (e *Engine) loadLocked(text string) {
	e.table.ReplaceAll(text)
	e.history.Clear()

	e.text = text
	e.savedText = text
	e.lineEnding = detectLineEnding(text)
	e.cursorPos = 0
	e.sel = nil
	e.recomputeLineColLocked()
}

func (e *Engine) selectionRangeLocked() (Range, bool) {
	if e.sel == nil || e.sel.IsEmpty() {
		return Range{}, false
	}
	return e.sel.Range(), true
}

// refreshLocked rebuilds the published snapshot from the table.
func (e *Engine) refreshLocked() {
	e.text = e.table.Text()
}

// recomputeLineColLocked derives the 1-indexed line and column from the
// text preceding the cursor. A "\r\n" pair is one grapheme cluster, so
// it counts as a single line break.
func (e *Engine) recomputeLineColLocked() {
	e.cursorPos = clamp(e.cursorPos, 0, e.table.Len())
	prefix := grapheme.Slice(e.text, 0, e.cursorPos)

	line := 1
	lineStart := 0
	for i := 0; i < len(prefix); {
		switch prefix[i] {
		case '\n':
			line++
			i++
			lineStart = i
		case '\r':
			line++
			i++
			if i < len(prefix) && prefix[i] == '\n' {
				i++
			}
			lineStart = i
		default:
			i++
		}
	}

	e.line = line
	e.column = grapheme.Count(prefix[lineStart:]) + 1
}

func (e *Engine) eventLocked(kind notify.EventKind) Event {
	return Event{
		Kind:     kind,
		Text:     e.text,
		Modified: e.text != e.savedText,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
