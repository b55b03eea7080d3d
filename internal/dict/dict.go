package dict

import (
	"fmt"
	"iter"
	"os"

	"github.com/agatan/yoin/internal/fst"
)

// Dict combines an FST program (surface -> morph arena offset) with the
// morph arena itself: LookupIter resolves every accept to a decoded
// Morph.
type Dict struct {
	prog  *fst.Program
	arena []byte
}

// NewDict builds a Dict directly from a compiled program and a morph
// arena, for use by internal/compiler and tests that don't round-trip
// through disk.
func NewDict(prog *fst.Program, arena []byte) *Dict {
	return &Dict{prog: prog, arena: arena}
}

// LoadDict reads the compiled FST bytecode from dicPath and the morph
// arena from morphPath, both fully into owned buffers with os.ReadFile
// (no mmap). The FST's start state is always
// address 0, per internal/fst.Compile's topological layout.
func LoadDict(dicPath, morphPath string) (*Dict, error) {
	code, err := os.ReadFile(dicPath)
	if err != nil {
		return nil, fmt.Errorf("dict: loading %s: %w", dicPath, err)
	}
	arena, err := os.ReadFile(morphPath)
	if err != nil {
		return nil, fmt.Errorf("dict: loading %s: %w", morphPath, err)
	}
	return &Dict{prog: fst.NewProgram(code, 0), arena: arena}, nil
}

// LookupIter performs common-prefix search over input, yielding the
// decoded Morph at each accept in order of increasing match length.
func (d *Dict) LookupIter(input []byte) iter.Seq[Morph] {
	return func(yield func(Morph) bool) {
		it := fst.NewIter(d.prog, input)
		for {
			acc, ok, err := it.Next()
			if err != nil {
				// A well-formed dictionary never reaches this; see
				// fst.ErrLookup's doc comment. Treat as no further matches
				// rather than letting a corrupt mmap/file panic a caller.
				return
			}
			if !ok {
				return
			}
			m, _, err := DecodeMorph(d.arena[acc.Output:])
			if err != nil {
				return
			}
			if !yield(m) {
				return
			}
		}
	}
}

// LookupStrIter is LookupIter over a string's UTF-8 bytes.
func (d *Dict) LookupStrIter(input string) iter.Seq[Morph] {
	return d.LookupIter([]byte(input))
}
