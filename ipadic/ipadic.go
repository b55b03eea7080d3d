// Package ipadic bundles a small IPA-style sample dictionary, embedded
// at build time, so callers can get a working Tokenizer without
// shipping or locating dictionary files on disk.
//
// The bundled lexicon is intentionally tiny: enough morphs and
// character categories to demonstrate known-word and unknown-word
// segmentation, not a production-scale dictionary. Load a larger
// dictionary with dict.LoadDict/unk.ReadUnknownDict/dict.ReadMatrix and
// murasaki.New directly when full coverage matters.
package ipadic

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/agatan/yoin"
	"github.com/agatan/yoin/internal/compiler"
	"github.com/agatan/yoin/internal/dict"
)

//go:embed morphs.csv
var morphsCSV []byte

//go:embed chardef.txt
var chardefText []byte

//go:embed unkdef.txt
var unkdefText []byte

// connectionSize is one past the largest connection id any bundled
// morph or unknown-word entry uses. Every bigram cost is zero: the
// bundled lexicon is small enough that surface overlap, not connection
// cost, drives segmentation.
const connectionSize = 10

var (
	loadOnce sync.Once
	loaded   *murasaki.Tokenizer
	loadErr  error
)

// Load compiles the embedded sample dictionary and returns a ready
// Tokenizer. The dictionary is compiled once per process and cached.
func Load() (*murasaki.Tokenizer, error) {
	loadOnce.Do(func() {
		loaded, loadErr = build()
	})
	return loaded, loadErr
}

func build() (*murasaki.Tokenizer, error) {
	matrix, err := dict.NewMatrix(connectionSize, connectionSize, make([]int16, connectionSize*connectionSize))
	if err != nil {
		return nil, fmt.Errorf("ipadic: building connection matrix: %w", err)
	}
	var matrixBuf bytes.Buffer
	if _, err := matrix.WriteTo(&matrixBuf); err != nil {
		return nil, fmt.Errorf("ipadic: encoding connection matrix: %w", err)
	}

	arts, err := compiler.Compile(
		bytes.NewReader(morphsCSV),
		bytes.NewReader(chardefText),
		bytes.NewReader(unkdefText),
		bytes.NewReader(matrixBuf.Bytes()),
	)
	if err != nil {
		return nil, fmt.Errorf("ipadic: compiling bundled dictionary: %w", err)
	}
	return murasaki.New(arts.Dict, arts.Unknown, arts.Matrix), nil
}
