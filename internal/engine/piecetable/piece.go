package piecetable

// source identifies which backing buffer a piece references.
type source uint8

const (
	sourceOriginal source = iota
	sourceAppend
)

// piece references a contiguous span of one backing buffer. Spans are
// tracked both in bytes (for slicing the buffer) and in grapheme clusters
// (for public addressing). A piece with zero clusters is never stored.
type piece struct {
	src      source
	off      int // byte offset into the backing buffer
	bytes    int // byte length of the span
	clusters int // grapheme-cluster length of the span
}

// Range is a half-open grapheme-cluster range [Start, End).
type Range struct {
	Start int
	End   int
}

// NewRange creates a range from start and end offsets.
func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

// Len returns the length of the range in grapheme clusters.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if Start <= End.
func (r Range) IsValid() bool {
	return r.Start <= r.End
}

// Contains returns true if the given offset is within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Shift returns the range moved by delta clusters.
func (r Range) Shift(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}
