package murasaki

import (
	"fmt"
	"unicode/utf8"

	"github.com/agatan/yoin/internal/dict"
	"github.com/agatan/yoin/internal/lattice"
	"github.com/agatan/yoin/internal/unk"
)

// ErrInvalidUTF8 is returned by Tokenize when the input is not valid
// UTF-8. The segmentation algorithm walks the input rune by rune, so
// malformed input would otherwise silently mis-slice rather than fail
// loudly.
var ErrInvalidUTF8 = fmt.Errorf("murasaki: input is not valid UTF-8")

// Tokenizer holds the three read-only dictionary artifacts needed to
// segment text: a known-word dictionary, an unknown-word model, and a
// bigram connection matrix. The zero value is not usable; construct one
// with New or a package like ipadic that loads a bundled dictionary.
//
// A *Tokenizer is safe for concurrent use: Tokenize builds a fresh
// internal/lattice.Lattice per call and never mutates the dictionary.
type Tokenizer struct {
	dict    *dict.Dict
	unknown *unk.UnknownDict
	matrix  *dict.Matrix
}

// New builds a Tokenizer from already-loaded dictionary artifacts.
func New(d *dict.Dict, unknown *unk.UnknownDict, matrix *dict.Matrix) *Tokenizer {
	return &Tokenizer{dict: d, unknown: unknown, matrix: matrix}
}

// Tokenize segments s into its minimum-cost sequence of morphemes. It
// returns ErrInvalidUTF8 if s is not valid UTF-8; every other failure
// mode (malformed dictionary, out-of-range connection id) indicates a
// corrupt or mismatched set of dictionary artifacts rather than bad
// input.
func (t *Tokenizer) Tokenize(s string) ([]Token, error) {
	if !utf8.ValidString(s) {
		return nil, ErrInvalidUTF8
	}

	l, err := lattice.Build(s, lattice.Sources{
		Dict:    t.dict,
		Unknown: t.unknown,
		Matrix:  t.matrix,
	})
	if err != nil {
		return nil, fmt.Errorf("murasaki: tokenize: %w", err)
	}

	path := l.Reconstruct()
	tokens := make([]Token, len(path))
	for i, n := range path {
		tokens[i] = Token{
			Surface:  n.Surface,
			Start:    n.ByteStart,
			End:      n.ByteEnd,
			Unknown:  n.Kind == lattice.KindUnknown,
			contents: n.Contents,
		}
	}
	return tokens, nil
}
