package piecetable

import (
	"strings"
	"sync"

	"github.com/loomtext/loom/internal/engine/grapheme"
)

// Table is the mutable text buffer. All methods are thread-safe.
//
// Bound violations are absorbed silently: a mutating call with an invalid
// offset or range leaves the table untouched, and an invalid read returns
// the empty string.
type Table struct {
	mu       sync.RWMutex
	original string
	added    []byte
	pieces   []piece
	length   int // total grapheme clusters across all pieces
}

// New creates a table seeded with the given text as its original buffer.
func New(text string) *Table {
	t := &Table{}
	t.seed(text)
	return t
}

// seed resets the table around a fresh original buffer.
func (t *Table) seed(text string) {
	t.original = text
	t.added = nil
	t.pieces = nil
	t.length = 0

	if n := grapheme.Count(text); n > 0 {
		t.pieces = []piece{{src: sourceOriginal, off: 0, bytes: len(text), clusters: n}}
		t.length = n
	}
}

// Len returns the document length in grapheme clusters.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.length
}

// IsEmpty returns true if the table holds no text.
func (t *Table) IsEmpty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.length == 0
}

// PieceCount returns the number of pieces in the sequence.
func (t *Table) PieceCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.pieces)
}

// AppendBufferLen returns the byte size of the append buffer. The buffer
// grows monotonically; deletions never reclaim it (Compact does).
func (t *Table) AppendBufferLen() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.added)
}

// span returns the text a piece references.
func (t *Table) span(p piece) string {
	if p.src == sourceOriginal {
		return t.original[p.off : p.off+p.bytes]
	}
	return string(t.added[p.off : p.off+p.bytes])
}

// locate finds the piece containing the given cluster offset. It returns
// the piece index and the cluster offset within that piece. An offset on
// a piece boundary resolves to the following piece with a zero in-piece
// offset; offset == length resolves to (len(pieces), 0).
func (t *Table) locate(offset int) (int, int) {
	pos := 0
	for i, p := range t.pieces {
		if offset < pos+p.clusters {
			return i, offset - pos
		}
		pos += p.clusters
	}
	return len(t.pieces), 0
}

// split cuts a piece in two at the given in-piece cluster offset.
// The offset must be strictly inside the piece.
func (t *Table) split(p piece, at int) (piece, piece) {
	b := grapheme.ByteOffset(t.span(p), at)
	left := piece{src: p.src, off: p.off, bytes: b, clusters: at}
	right := piece{src: p.src, off: p.off + b, bytes: p.bytes - b, clusters: p.clusters - at}
	return left, right
}

// Insert inserts text at the given grapheme offset. Inserting the empty
// string, or inserting outside [0, Len()], is a no-op.
func (t *Table) Insert(text string, at int) {
	if text == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if at < 0 || at > t.length {
		return
	}

	np := piece{
		src:      sourceAppend,
		off:      len(t.added),
		bytes:    len(text),
		clusters: grapheme.Count(text),
	}
	t.added = append(t.added, text...)

	idx, rem := t.locate(at)
	if rem == 0 {
		t.pieces = append(t.pieces, piece{})
		copy(t.pieces[idx+1:], t.pieces[idx:])
		t.pieces[idx] = np
	} else {
		left, right := t.split(t.pieces[idx], rem)
		t.pieces = append(t.pieces, piece{}, piece{})
		copy(t.pieces[idx+3:], t.pieces[idx+1:])
		t.pieces[idx] = left
		t.pieces[idx+1] = np
		t.pieces[idx+2] = right
	}

	t.length += np.clusters
}

// Delete removes the grapheme clusters in r from the document. The
// backing buffers are untouched; only the piece list is rewritten.
// Empty, inverted, or out-of-bounds ranges are a no-op.
func (t *Table) Delete(r Range) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.rangeOK(r) || r.IsEmpty() {
		return
	}

	kept := make([]piece, 0, len(t.pieces)+1)
	pos := 0
	for _, p := range t.pieces {
		pieceEnd := pos + p.clusters
		switch {
		case pieceEnd <= r.Start || pos >= r.End:
			// Entirely outside the deleted range.
			kept = append(kept, p)
		case pos >= r.Start && pieceEnd <= r.End:
			// Entirely inside; drop it.
		default:
			if r.Start > pos {
				left, _ := t.split(p, r.Start-pos)
				kept = append(kept, left)
			}
			if r.End < pieceEnd {
				_, right := t.split(p, r.End-pos)
				kept = append(kept, right)
			}
		}
		pos = pieceEnd
	}

	t.pieces = kept
	t.length -= r.Len()
}

// Text returns the full document by concatenating all piece spans.
func (t *Table) Text() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.textLocked()
}

func (t *Table) textLocked() string {
	var b strings.Builder
	for _, p := range t.pieces {
		b.WriteString(t.span(p))
	}
	return b.String()
}

// Substring returns the text covering the grapheme clusters in r.
// Invalid ranges return the empty string.
func (t *Table) Substring(r Range) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.rangeOK(r) || r.IsEmpty() {
		return ""
	}

	var b strings.Builder
	pos := 0
	for _, p := range t.pieces {
		pieceEnd := pos + p.clusters
		if pieceEnd > r.Start && pos < r.End {
			from := max(r.Start-pos, 0)
			to := min(r.End-pos, p.clusters)
			b.WriteString(grapheme.Slice(t.span(p), from, to))
		}
		pos = pieceEnd
		if pos >= r.End {
			break
		}
	}
	return b.String()
}

// Clear resets the table to empty: both buffers are released and the
// piece list is emptied.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seed("")
}

// ReplaceAll swaps the entire document for the given text. The new text
// becomes the original-buffer baseline and the append buffer is reset.
func (t *Table) ReplaceAll(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seed(text)
}

// Compact rebuilds the backing buffers from the live piece list,
// releasing append-buffer bytes no piece references. Purely a memory
// optimization; the visible text is unchanged.
func (t *Table) Compact() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seed(t.textLocked())
}

// rangeOK reports whether r lies within the document. Callers still need
// to handle empty ranges separately.
func (t *Table) rangeOK(r Range) bool {
	return r.IsValid() && r.Start >= 0 && r.End <= t.length
}
