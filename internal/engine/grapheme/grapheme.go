package grapheme

import "github.com/rivo/uniseg"

// Count returns the number of grapheme clusters in s.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// ByteOffset returns the byte offset immediately before the n-th grapheme
// cluster of s. n == 0 maps to the start of the string and n == Count(s)
// maps to len(s). Values outside [0, Count(s)] are clamped; the returned
// offset is always a cluster boundary.
func ByteOffset(s string, n int) int {
	if n <= 0 {
		return 0
	}

	off := 0
	state := -1
	for remaining := s; len(remaining) > 0 && n > 0; n-- {
		var cluster string
		cluster, remaining, _, state = uniseg.StepString(remaining, state)
		off += len(cluster)
	}
	return off
}

// Slice returns the substring of s covering grapheme clusters
// [start, end). Bounds are clamped to [0, Count(s)]; an inverted range
// yields the empty string.
func Slice(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < start {
		return ""
	}

	from := ByteOffset(s, start)
	to := from + ByteOffset(s[from:], end-start)
	return s[from:to]
}

// Split returns the two halves of s around the boundary before the n-th
// grapheme cluster.
func Split(s string, n int) (string, string) {
	off := ByteOffset(s, n)
	return s[:off], s[off:]
}

// Last returns the final grapheme cluster of s, or the empty string if s
// is empty.
func Last(s string) string {
	if s == "" {
		return ""
	}

	var last string
	state := -1
	for remaining := s; len(remaining) > 0; {
		last, remaining, _, state = uniseg.StepString(remaining, state)
	}
	return last
}

// First returns the leading grapheme cluster of s, or the empty string if
// s is empty.
func First(s string) string {
	if s == "" {
		return ""
	}
	cluster, _, _, _ := uniseg.StepString(s, -1)
	return cluster
}
