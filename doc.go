// Package murasaki is a Japanese morphological analyzer.
//
// # Overview
//
// Japanese text has no whitespace between words, so segmenting a
// sentence into morphemes requires a dictionary of known words, a cost
// model for how those words connect, and a fallback for sequences the
// dictionary doesn't cover. murasaki builds a lattice of every
// dictionary match (and, where needed, unknown-word candidates) over
// the input and picks the lowest-cost path through it with Viterbi,
// the same approach used by MeCab, Kuromoji, and other IPADIC-family
// analyzers.
//
// # When to Use murasaki
//
// murasaki is useful for:
//   - Search indexing: segmenting Japanese text into terms before
//     building an inverted index
//   - Text analysis: part-of-speech tagging, reading/pronunciation
//     lookup, and other feature extraction that a dictionary entry's
//     comma-separated contents field carries
//   - Any pipeline that needs deterministic, dictionary-driven
//     segmentation rather than a statistical/neural tokenizer
//
// # When NOT to Use murasaki
//
// murasaki is not suitable for:
//   - Languages other than Japanese (the character-category and
//     connection-cost model is specific to Japanese text)
//   - Domains needing neologism coverage beyond what the loaded
//     dictionary and unknown-word model provide (mis-segmentation is
//     expected for out-of-vocabulary proper nouns, slang, etc.)
//   - Rewriting or building dictionaries at runtime: see
//     internal/compiler and cmd/murasaki-build for the offline path
//
// # Basic Usage
//
//	t, err := ipadic.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	tokens, err := t.Tokenize("すもももももももものうち")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, tok := range tokens {
//		fmt.Printf("%s\t", tok.Surface)
//		for f := range tok.Features() {
//			fmt.Printf("%s,", f)
//		}
//		fmt.Println()
//	}
//
// # Loading a custom dictionary
//
//	d, err := dict.LoadDict("ipadic.dic", "ipadic.morph")
//	matrix, err := dict.ReadMatrix(matrixFile)
//	unkDict, err := unk.ReadUnknownDict(unkFile)
//	t := murasaki.New(d, unkDict, matrix)
//
// # Performance Characteristics
//
// Lookup is a common-prefix search over a minimized finite-state
// transducer: O(k) per candidate start position, where k is the
// longest matching surface. Lattice construction and Viterbi relaxation
// are both linear in the input's character count times the average
// number of candidates per position. The dictionary's FST bytecode and
// morph arena are loaded once and shared read-only across concurrent
// Tokenize calls.
package murasaki
