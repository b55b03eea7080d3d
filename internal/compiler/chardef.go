package compiler

import (
	"io"

	"github.com/agatan/yoin/internal/unk"
)

// ParseCharDef parses the character-category definition file, wrapping
// any failure in a BuildError naming the source file.
func ParseCharDef(name string, r io.Reader) (*unk.CategoryTable, error) {
	cats, err := unk.ParseCharDef(r)
	if err != nil {
		return nil, &BuildError{File: name, Err: err}
	}
	return cats, nil
}
