// Package grapheme converts between grapheme-cluster counts and byte
// offsets within UTF-8 strings.
//
// Every public position in the engine is a count of Unicode grapheme
// clusters (user-perceived characters), never bytes or runes. A ZWJ emoji
// sequence, a flag built from two regional indicators, or a base letter
// plus combining marks each count as one unit. This package is the single
// place where that translation happens: the piece table and the engine
// call into it for every boundary computation, so positions can never
// land inside a multi-scalar cluster.
//
// Segmentation follows Unicode UAX #29 via github.com/rivo/uniseg.
package grapheme
