package compiler

import (
	"io"

	"github.com/agatan/yoin/internal/unk"
)

// ParseUnkDef parses the unknown-word definition file, wrapping any
// failure in a BuildError naming the source file.
func ParseUnkDef(name string, r io.Reader) ([]unk.RawUnkEntry, error) {
	raw, err := unk.ParseUnkDef(r)
	if err != nil {
		return nil, &BuildError{File: name, Err: err}
	}
	return raw, nil
}
