// Package compiler assembles the four on-disk dictionary artifacts
// (FST bytecode, morph arena, connection matrix, unknown-word table)
// from the text definition files a dictionary maintainer edits by hand.
// It is the only place in this module that ever constructs those
// artifacts; the runtime packages (internal/fst, internal/dict,
// internal/unk) only ever read them back.
package compiler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/agatan/yoin/internal/dict"
	"github.com/agatan/yoin/internal/fst"
	"github.com/agatan/yoin/internal/unk"
)

// Artifacts is the fully assembled, in-memory form of a compiled
// dictionary: ready to drive a Tokenizer directly, or to be persisted
// with WriteTo.
type Artifacts struct {
	Dict    *dict.Dict
	Matrix  *dict.Matrix
	Unknown *unk.UnknownDict

	program *fst.Program
	arena   []byte
}

// Compile reads a morph CSV, a character-category definition file, an
// unknown-word definition file, and an already-encoded connection
// matrix (there is no text format for the matrix, so this is read with
// dict.ReadMatrix directly), and assembles the four dictionary
// artifacts. Every parse or structural failure is returned as a
// *BuildError.
func Compile(morphs, chardefFile, unkdefFile, matrixFile io.Reader) (*Artifacts, error) {
	morphRecords, err := ParseMorphCSV("morphs.csv", morphs)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(morphRecords, func(i, j int) bool {
		return morphRecords[i].Surface < morphRecords[j].Surface
	})

	var arena []byte
	b := fst.NewBuilder()
	for _, m := range morphRecords {
		offset := uint32(len(arena))
		w := &byteAppender{buf: &arena}
		if _, err := dict.EncodeMorph(w, m); err != nil {
			return nil, &BuildError{File: "morphs.csv", Err: fmt.Errorf("encoding morph %q: %w", m.Surface, err)}
		}
		if err := b.Add([]byte(m.Surface), offset); err != nil {
			return nil, &BuildError{File: "morphs.csv", Err: fmt.Errorf("surface %q: %w", m.Surface, err)}
		}
	}
	program := fst.CompileProgram(b.Finish())

	cats, err := ParseCharDef("chardef", chardefFile)
	if err != nil {
		return nil, err
	}

	rawUnk, err := ParseUnkDef("unkdef", unkdefFile)
	if err != nil {
		return nil, err
	}
	unkDict, err := unk.BuildUnknownDict(rawUnk, cats)
	if err != nil {
		return nil, &BuildError{File: "unkdef", Err: err}
	}

	matrix, err := dict.ReadMatrix(matrixFile)
	if err != nil {
		return nil, &BuildError{File: "matrix", Err: err}
	}

	return &Artifacts{
		Dict:    dict.NewDict(program, arena),
		Matrix:  matrix,
		Unknown: unkDict,
		program: program,
		arena:   arena,
	}, nil
}

// byteAppender is an io.Writer that appends to the []byte it points at,
// for building the morph arena without an intermediate bytes.Buffer.
type byteAppender struct{ buf *[]byte }

func (w *byteAppender) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}

// WriteTo emits the four on-disk artifact files into dir, named
// base+".dic", base+".morph", base+".matrix", base+".unk".
func (a *Artifacts) WriteTo(dir, base string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("compiler: creating %s: %w", dir, err)
	}

	files := []struct {
		ext    string
		writeF func(io.Writer) (int64, error)
	}{
		{".dic", func(w io.Writer) (int64, error) {
			n, err := w.Write(a.program.Bytes())
			return int64(n), err
		}},
		{".morph", func(w io.Writer) (int64, error) {
			n, err := w.Write(a.arena)
			return int64(n), err
		}},
		{".matrix", a.Matrix.WriteTo},
		{".unk", a.Unknown.WriteTo},
	}

	for _, f := range files {
		path := filepath.Join(dir, base+f.ext)
		if err := writeFile(path, f.writeF); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, writeF func(io.Writer) (int64, error)) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("compiler: creating %s: %w", path, err)
	}
	defer out.Close()
	if _, err := writeF(out); err != nil {
		return fmt.Errorf("compiler: writing %s: %w", path, err)
	}
	return nil
}
