package engine

import (
	"strings"

	"github.com/loomtext/loom/internal/notify"
)

// LineEnding specifies the line ending style of a document.
type LineEnding int

const (
	// LineEndingLF is Unix-style "\n".
	LineEndingLF LineEnding = iota

	// LineEndingCRLF is Windows-style "\r\n".
	LineEndingCRLF

	// LineEndingCR is classic-Mac-style "\r".
	LineEndingCR
)

// String returns the line ending name.
func (le LineEnding) String() string {
	switch le {
	case LineEndingLF:
		return "LF"
	case LineEndingCRLF:
		return "CRLF"
	case LineEndingCR:
		return "CR"
	default:
		return "unknown"
	}
}

// Sequence returns the byte sequence for this line ending.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// detectLineEnding classifies a document by the first line break found.
// Text with no line breaks defaults to LF.
func detectLineEnding(s string) LineEnding {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			return LineEndingLF
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				return LineEndingCRLF
			}
			return LineEndingCR
		}
	}
	return LineEndingLF
}

// normalizeLineEndings rewrites every line break in s as "\n".
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// ConvertLineEndings rewrites every line break in the document to the
// target style. This is a whole-document replacement: it goes through
// the same path as LoadText, so undo history is cleared and the result
// becomes the new saved baseline.
func (e *Engine) ConvertLineEndings(target LineEnding) {
	e.mu.Lock()
	converted := strings.ReplaceAll(normalizeLineEndings(e.text), "\n", target.Sequence())
	e.loadLocked(converted)
	e.lineEnding = target
	ev := e.eventLocked(notify.KindLoad)
	e.mu.Unlock()

	e.notifier.Notify(ev)
}
