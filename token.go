package murasaki

import (
	"iter"
	"strings"
)

// Token is one morpheme produced by Tokenize: a surface span of the
// original input plus its comma-separated feature string, split lazily
// by Features.
type Token struct {
	Surface   string
	Start     int
	End       int
	Unknown   bool
	contents  string
}

// Features splits the token's feature string on "," lazily, the way
// a dictionary's Morph.Features does for a known morph.
func (t Token) Features() iter.Seq[string] {
	return func(yield func(string) bool) {
		if t.contents == "" {
			return
		}
		rest := t.contents
		for {
			field, tail, found := strings.Cut(rest, ",")
			if !yield(field) {
				return
			}
			if !found {
				return
			}
			rest = tail
		}
	}
}
