package engine

import (
	"strings"

	"github.com/loomtext/loom/internal/notify"
)

// TransformToUppercase uppercases the selection, or the whole document
// when no selection is active.
func (e *Engine) TransformToUppercase() {
	e.transform(strings.ToUpper)
}

// TransformToLowercase lowercases the selection, or the whole document
// when no selection is active.
func (e *Engine) TransformToLowercase() {
	e.transform(strings.ToLower)
}

// ConvertTabsToSpaces replaces each tab with the configured tab width in
// spaces, in the selection or the whole document.
func (e *Engine) ConvertTabsToSpaces() {
	spaces := strings.Repeat(" ", e.tabWidth)
	e.transform(func(s string) string {
		return strings.ReplaceAll(s, "\t", spaces)
	})
}

// ConvertSpacesToTabs replaces each run of tab-width spaces with a tab,
// in the selection or the whole document.
func (e *Engine) ConvertSpacesToTabs() {
	spaces := strings.Repeat(" ", e.tabWidth)
	e.transform(func(s string) string {
		return strings.ReplaceAll(s, spaces, "\t")
	})
}

// transform applies f to the active selection via ReplaceRange (one
// undo step), or to the entire document via the load path (clearing undo
// history) when nothing is selected. The asymmetry is part of the
// contract: whole-document transforms are full replacements, not edits.
func (e *Engine) transform(f func(string) string) {
	e.mu.Lock()

	if r, ok := e.selectionRangeLocked(); ok {
		old := e.table.Substring(r)
		replacement := f(old)
		if replacement == old || !e.replaceRangeLocked(r, replacement) {
			e.mu.Unlock()
			return
		}
		ev := e.eventLocked(notify.KindEdit)
		e.mu.Unlock()
		e.notifier.Notify(ev)
		return
	}

	transformed := f(e.text)
	if transformed == e.text {
		e.mu.Unlock()
		return
	}
	e.loadLocked(transformed)
	ev := e.eventLocked(notify.KindLoad)
	e.mu.Unlock()
	e.notifier.Notify(ev)
}
