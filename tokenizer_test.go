package murasaki

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agatan/yoin/internal/dict"
	"github.com/agatan/yoin/internal/fst"
	"github.com/agatan/yoin/internal/unk"
)

func buildTestTokenizer(t *testing.T) *Tokenizer {
	t.Helper()

	morphs := []dict.Morph{
		{Surface: "すもも", LeftID: 1, RightID: 1, Weight: 0, Contents: "名詞,一般,*,*,*,*,すもも,スモモ,スモモ"},
		{Surface: "もも", LeftID: 1, RightID: 1, Weight: 0, Contents: "名詞,一般,*,*,*,*,もも,モモ,モモ"},
		{Surface: "の", LeftID: 2, RightID: 2, Weight: 0, Contents: "助詞,連体化,*,*,*,*,の,ノ,ノ"},
		{Surface: "うち", LeftID: 1, RightID: 1, Weight: 0, Contents: "名詞,非自立,*,*,*,*,うち,ウチ,ウチ"},
	}
	sorted := append([]dict.Morph(nil), morphs...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Surface < sorted[j-1].Surface; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	var arena bytes.Buffer
	b := fst.NewBuilder()
	for _, m := range sorted {
		offset := uint32(arena.Len())
		_, err := dict.EncodeMorph(&arena, m)
		require.NoError(t, err)
		require.NoError(t, b.Add([]byte(m.Surface), offset))
	}
	prog := fst.CompileProgram(b.Finish())
	d := dict.NewDict(prog, arena.Bytes())

	cats := unk.NewCategoryTable()
	def := cats.RegisterCategory("DEFAULT", false, false, 0)
	cats.SetDefault(def)
	unkDict, err := unk.BuildUnknownDict(nil, cats)
	require.NoError(t, err)

	width, height := 3, 3
	costs := make([]int16, width*height)
	matrix, err := dict.NewMatrix(width, height, costs)
	require.NoError(t, err)

	return New(d, unkDict, matrix)
}

func TestTokenizeSegmentsKnownWords(t *testing.T) {
	tok := buildTestTokenizer(t)
	tokens, err := tok.Tokenize("すもものうち")
	require.NoError(t, err)

	var surfaces []string
	for _, tk := range tokens {
		surfaces = append(surfaces, tk.Surface)
	}
	require.Equal(t, []string{"すもも", "の", "うち"}, surfaces)
}

func TestTokenizeReportsByteOffsets(t *testing.T) {
	tok := buildTestTokenizer(t)
	tokens, err := tok.Tokenize("もも")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	require.Equal(t, 0, tokens[0].Start)
	require.Equal(t, len("もも"), tokens[0].End)
	require.False(t, tokens[0].Unknown)
}

func TestTokenizeFeatures(t *testing.T) {
	tok := buildTestTokenizer(t)
	tokens, err := tok.Tokenize("もも")
	require.NoError(t, err)
	require.Len(t, tokens, 1)

	var feats []string
	for f := range tokens[0].Features() {
		feats = append(feats, f)
	}
	require.Equal(t, []string{"名詞", "一般", "*", "*", "*", "*", "もも", "モモ", "モモ"}, feats)
}

func TestTokenizeRejectsInvalidUTF8(t *testing.T) {
	tok := buildTestTokenizer(t)
	_, err := tok.Tokenize(string([]byte{0xff, 0xfe}))
	require.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestTokenizeEmptyInput(t *testing.T) {
	tok := buildTestTokenizer(t)
	tokens, err := tok.Tokenize("")
	require.NoError(t, err)
	require.Empty(t, tokens)
}
