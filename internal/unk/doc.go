// Package unk implements unknown-word handling: a per-codepoint
// character-category table (category.go) and the category-indexed
// dictionary of candidate unknown-word entries it drives (unknown.go).
//
// Like internal/dict, every on-disk format here is little-endian,
// unconditionally (see internal/dict's package doc for why). The
// category table's trailing array covers the full [0, 0xFFFF] code
// point range (65536 entries); codepoints at or above 0x10000 always
// resolve to the table's default category rather than being stored.
package unk
