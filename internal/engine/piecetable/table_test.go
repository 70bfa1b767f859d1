package piecetable

import (
	"strings"
	"testing"

	"github.com/loomtext/loom/internal/engine/grapheme"
)

func TestRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"hello",
		"line one\nline two\n",
		"héllo wörld",
		"\U0001F1FA\U0001F1F8 flags \U0001F1EF\U0001F1F5",
		"tabs\tand\r\nendings\r",
	}

	for _, text := range tests {
		if got := New(text).Text(); got != text {
			t.Errorf("New(%q).Text() = %q", text, got)
		}
	}
}

func TestLenCountsGraphemeClusters(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"", 0},
		{"hello", 5},
		{"\U0001F468\u200D\U0001F469\u200D\U0001F467\u200D\U0001F466", 1},
		{"\U0001F1FA\U0001F1F8", 1},
		{"é", 1},
		{"\U0001F44D\U0001F3FD", 1},
		{"a\U0001F1FA\U0001F1F8b", 3},
	}

	for _, tt := range tests {
		if got := New(tt.s).Len(); got != tt.want {
			t.Errorf("New(%q).Len() = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name string
		base string
		text string
		at   int
		want string
	}{
		{"into empty", "", "abc", 0, "abc"},
		{"at start", "world", "hello ", 0, "hello world"},
		{"at end", "hello", " world", 5, "hello world"},
		{"mid piece", "held", "llo wor", 2, "hello world"},
		{"middle", "ad", "bc", 1, "abcd"},
		{"emoji offset", "a\U0001F1FA\U0001F1F8b", "X", 2, "a\U0001F1FA\U0001F1F8Xb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt := New(tt.base)
			pt.Insert(tt.text, tt.at)
			if got := pt.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInsertNoOps(t *testing.T) {
	pt := New("abc")

	pt.Insert("X", -1)
	pt.Insert("X", 4)
	pt.Insert("", 1)

	if got := pt.Text(); got != "abc" {
		t.Errorf("Text() = %q after no-op inserts", got)
	}
	if pt.Len() != 3 {
		t.Errorf("Len() = %d after no-op inserts", pt.Len())
	}
}

func TestInsertSplitsPieces(t *testing.T) {
	pt := New("abcdef")
	pt.Insert("XY", 3)

	if got := pt.PieceCount(); got != 3 {
		t.Errorf("PieceCount() = %d, want 3", got)
	}
	if got := pt.Text(); got != "abcXYdef" {
		t.Errorf("Text() = %q", got)
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name string
		base string
		r    Range
		want string
	}{
		{"front", "hello", NewRange(0, 2), "llo"},
		{"back", "hello", NewRange(3, 5), "hel"},
		{"middle", "hello", NewRange(1, 4), "ho"},
		{"all", "hello", NewRange(0, 5), ""},
		{"single emoji", "a\U0001F1FA\U0001F1F8b", NewRange(1, 2), "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt := New(tt.base)
			pt.Delete(tt.r)
			if got := pt.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
			if got := pt.Len(); got != grapheme.Count(tt.want) {
				t.Errorf("Len() = %d, want %d", got, grapheme.Count(tt.want))
			}
		})
	}
}

func TestDeleteNoOps(t *testing.T) {
	pt := New("hello")

	pt.Delete(NewRange(-1, 3))
	pt.Delete(NewRange(2, 105))
	pt.Delete(NewRange(4, 2))
	pt.Delete(NewRange(2, 2))

	if got := pt.Text(); got != "hello" {
		t.Errorf("Text() = %q after no-op deletes", got)
	}
}

func TestDeleteAcrossPieces(t *testing.T) {
	pt := New("abc")
	pt.Insert("123", 1) // a123bc
	pt.Insert("xyz", 6) // a123bcxyz

	pt.Delete(NewRange(2, 7)) // drop 23bcx
	if got := pt.Text(); got != "a1yz" {
		t.Errorf("Text() = %q, want %q", got, "a1yz")
	}
}

func TestDeleteDoesNotShrinkBuffers(t *testing.T) {
	pt := New("abc")
	pt.Insert("0123456789", 3)
	grown := pt.AppendBufferLen()

	pt.Delete(NewRange(3, 13))
	if pt.AppendBufferLen() != grown {
		t.Error("delete should not reclaim append-buffer bytes")
	}
	if got := pt.Text(); got != "abc" {
		t.Errorf("Text() = %q", got)
	}
}

func TestInsertDeleteInverse(t *testing.T) {
	base := "the quick brown fox"
	inserts := []struct {
		text string
		at   int
	}{
		{"X", 0},
		{"\U0001F1FA\U0001F1F8", 4},
		{"tail", 19},
	}

	for _, in := range inserts {
		pt := New(base)
		pt.Insert(in.text, in.at)
		pt.Delete(NewRange(in.at, in.at+grapheme.Count(in.text)))
		if got := pt.Text(); got != base {
			t.Errorf("insert %q at %d then delete: got %q, want %q", in.text, in.at, got, base)
		}
	}
}

func TestSubstring(t *testing.T) {
	pt := New("hello")
	pt.Insert(" world", 5)

	tests := []struct {
		name string
		r    Range
		want string
	}{
		{"within first piece", NewRange(1, 4), "ell"},
		{"across pieces", NewRange(3, 8), "lo wo"},
		{"all", NewRange(0, 11), "hello world"},
		{"empty", NewRange(4, 4), ""},
		{"inverted", NewRange(5, 2), ""},
		{"out of bounds", NewRange(8, 20), ""},
		{"negative", NewRange(-2, 3), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pt.Substring(tt.r); got != tt.want {
				t.Errorf("Substring(%v) = %q, want %q", tt.r, got, tt.want)
			}
		})
	}
}

func TestClear(t *testing.T) {
	pt := New("hello")
	pt.Insert(" world", 5)
	pt.Clear()

	if pt.Len() != 0 || pt.Text() != "" || pt.PieceCount() != 0 {
		t.Error("Clear should reset to an empty table")
	}
	if pt.AppendBufferLen() != 0 {
		t.Error("Clear should release the append buffer")
	}
}

func TestReplaceAll(t *testing.T) {
	pt := New("old content")
	pt.Insert("!!!", 3)
	pt.ReplaceAll("fresh")

	if got := pt.Text(); got != "fresh" {
		t.Errorf("Text() = %q", got)
	}
	if pt.PieceCount() != 1 {
		t.Errorf("PieceCount() = %d, want 1 after ReplaceAll", pt.PieceCount())
	}
	if pt.AppendBufferLen() != 0 {
		t.Error("ReplaceAll should reset the append buffer")
	}
}

func TestCompact(t *testing.T) {
	pt := New("abcdef")
	pt.Insert("123", 2)
	pt.Delete(NewRange(0, 1))
	before := pt.Text()

	pt.Compact()

	if got := pt.Text(); got != before {
		t.Errorf("Compact changed text: %q -> %q", before, got)
	}
	if pt.PieceCount() != 1 {
		t.Errorf("PieceCount() = %d, want 1 after Compact", pt.PieceCount())
	}
	if pt.AppendBufferLen() != 0 {
		t.Error("Compact should release the append buffer")
	}
}

func TestTypingSimulation(t *testing.T) {
	pt := New("")
	for i, r := range []rune("Hello") {
		pt.Insert(string(r), i)
	}
	if got := pt.Text(); got != "Hello" {
		t.Fatalf("after typing: %q", got)
	}

	pt.Delete(NewRange(pt.Len()-1, pt.Len())) // backspace
	if got := pt.Text(); got != "Hell" {
		t.Fatalf("after backspace: %q", got)
	}

	for _, r := range "o World" {
		pt.Insert(string(r), pt.Len())
	}
	if got := pt.Text(); got != "Hello World" {
		t.Fatalf("after typing more: %q", got)
	}
}

func TestManySmallEdits(t *testing.T) {
	pt := New("")
	var want strings.Builder
	for i := 0; i < 200; i++ {
		pt.Insert("ab", pt.Len())
		want.WriteString("ab")
	}
	if got := pt.Text(); got != want.String() {
		t.Fatalf("bulk append mismatch: len %d vs %d", len(got), want.Len())
	}
	if pt.Len() != 400 {
		t.Fatalf("Len() = %d, want 400", pt.Len())
	}
}
