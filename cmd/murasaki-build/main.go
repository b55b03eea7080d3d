// Command murasaki-build compiles a morph CSV, a character-category
// definition file, an unknown-word definition file, and a connection
// matrix into the four on-disk dictionary artifacts murasaki.New's
// callers load back with dict.LoadDict/unk.ReadUnknownDict/dict.ReadMatrix.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/agatan/yoin/internal/compiler"
)

func main() {
	morphFlag := flag.String("morph", "", "morph definition CSV (required)")
	chardefFlag := flag.String("chardef", "", "character category definition file (required)")
	unkdefFlag := flag.String("unkdef", "", "unknown-word definition file (required)")
	matrixFlag := flag.String("matrix", "", "binary connection matrix (required)")
	outFlag := flag.String("out", ".", "output directory")
	flag.Parse()

	if *morphFlag == "" || *chardefFlag == "" || *unkdefFlag == "" || *matrixFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	morphs, err := os.Open(*morphFlag)
	if err != nil {
		log.Fatal(err)
	}
	defer morphs.Close()

	chardef, err := os.Open(*chardefFlag)
	if err != nil {
		log.Fatal(err)
	}
	defer chardef.Close()

	unkdef, err := os.Open(*unkdefFlag)
	if err != nil {
		log.Fatal(err)
	}
	defer unkdef.Close()

	matrix, err := os.Open(*matrixFlag)
	if err != nil {
		log.Fatal(err)
	}
	defer matrix.Close()

	arts, err := compiler.Compile(morphs, chardef, unkdef, matrix)
	if err != nil {
		log.Fatal(err)
	}

	if err := arts.WriteTo(*outFlag, "murasaki"); err != nil {
		log.Fatal(err)
	}
}
