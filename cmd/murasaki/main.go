// Command murasaki tokenizes text read from a file or stdin, writing one
// surface/feature line per morpheme followed by a literal EOS line after
// each input line, in the style of the reference mecab/kuromoji CLIs.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xyproto/env/v2"

	"github.com/agatan/yoin"
	"github.com/agatan/yoin/internal/dict"
	"github.com/agatan/yoin/internal/unk"
	"github.com/agatan/yoin/ipadic"
)

const dictBase = "murasaki"

func main() {
	fileFlag := flag.String("file", "", "input file (default: stdin)")
	dictFlag := flag.String("dict", "", "directory holding a compiled dictionary (default: $MURASAKI_DICT_DIR, falls back to the bundled sample)")
	configFlag := flag.String("config", "", "optional YAML config file")
	verboseFlag := flag.Bool("v", false, "log a run id and the dictionary source to stderr")
	flag.Parse()

	cfg := fileConfig{DictDir: env.Str("MURASAKI_DICT_DIR", ""), Verbose: *verboseFlag}
	if *configFlag != "" {
		fromFile, err := loadFileConfig(*configFlag)
		if err != nil {
			log.Fatal(err)
		}
		if fromFile.DictDir != "" {
			cfg.DictDir = fromFile.DictDir
		}
		if fromFile.Verbose {
			cfg.Verbose = true
		}
	}
	if *dictFlag != "" {
		cfg.DictDir = *dictFlag
	}

	if cfg.Verbose {
		log.Printf("murasaki: run %s", uuid.New())
	}

	tok, source, err := loadTokenizer(cfg.DictDir)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Verbose {
		log.Printf("murasaki: dictionary source: %s", source)
	}

	in := io.Reader(os.Stdin)
	if *fileFlag != "" {
		f, err := os.Open(*fileFlag)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}

	if err := run(tok, in, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// loadTokenizer loads a compiled dictionary from dir if present, falling
// back to the bundled ipadic sample otherwise.
func loadTokenizer(dir string) (*murasaki.Tokenizer, string, error) {
	if dir == "" {
		tok, err := ipadic.Load()
		return tok, "bundled ipadic sample", err
	}

	dicPath := filepath.Join(dir, dictBase+".dic")
	morphPath := filepath.Join(dir, dictBase+".morph")
	matrixPath := filepath.Join(dir, dictBase+".matrix")
	unkPath := filepath.Join(dir, dictBase+".unk")

	d, err := dict.LoadDict(dicPath, morphPath)
	if errors.Is(err, os.ErrNotExist) {
		tok, loadErr := ipadic.Load()
		return tok, "bundled ipadic sample", loadErr
	}
	if err != nil {
		return nil, "", err
	}

	matrixFile, err := os.Open(matrixPath)
	if err != nil {
		return nil, "", err
	}
	defer matrixFile.Close()
	matrix, err := dict.ReadMatrix(matrixFile)
	if err != nil {
		return nil, "", err
	}

	unkFile, err := os.Open(unkPath)
	if err != nil {
		return nil, "", err
	}
	defer unkFile.Close()
	unknown, err := unk.ReadUnknownDict(unkFile)
	if err != nil {
		return nil, "", err
	}

	return murasaki.New(d, unknown, matrix), dir, nil
}

func run(tok *murasaki.Tokenizer, in io.Reader, out io.Writer) error {
	w := bufio.NewWriter(out)
	defer w.Flush()

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := sc.Text()
		tokens, err := tok.Tokenize(line)
		if err != nil {
			return fmt.Errorf("murasaki: tokenizing %q: %w", line, err)
		}
		for _, t := range tokens {
			fmt.Fprintf(w, "%s\t%s\n", t.Surface, joinFeatures(t))
		}
		fmt.Fprintln(w, "EOS")
	}
	return sc.Err()
}

func joinFeatures(t murasaki.Token) string {
	var b strings.Builder
	first := true
	for f := range t.Features() {
		if !first {
			b.WriteByte(',')
		}
		b.WriteString(f)
		first = false
	}
	return b.String()
}
