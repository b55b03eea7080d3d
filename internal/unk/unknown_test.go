package unk

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildSampleDict(t *testing.T) (*UnknownDict, CategoryID, CategoryID) {
	t.Helper()
	cats, err := ParseCharDef(strings.NewReader(sampleCharDef))
	require.NoError(t, err)

	raw, err := ParseUnkDef(strings.NewReader(strings.Join([]string{
		"KANJI,1,2,300,名詞,一般,*,*,*,*,*",
		"KANJI,3,4,500,名詞,固有名詞,*,*,*,*,*",
		"DEFAULT,9,9,1000,記号,一般,*,*,*,*,*",
	}, "\n")))
	require.NoError(t, err)

	d, err := BuildUnknownDict(raw, cats)
	require.NoError(t, err)

	kanjiID, _ := cats.Lookup("KANJI")
	defaultID, _ := cats.Lookup("DEFAULT")
	return d, kanjiID, defaultID
}

func TestParseUnkDef(t *testing.T) {
	raw, err := ParseUnkDef(strings.NewReader("KANJI,1,2,300,名詞,一般\n# comment\n\nDEFAULT,9,9,1000,記号\n"))
	require.NoError(t, err)
	require.Len(t, raw, 2)
	require.Equal(t, "KANJI", raw[0].Category)
	require.Equal(t, uint16(1), raw[0].Entry.LeftID)
	require.Equal(t, int16(300), raw[0].Entry.Weight)
	require.Equal(t, "名詞,一般", raw[0].Entry.Contents)
}

func TestParseUnkDefMalformed(t *testing.T) {
	_, err := ParseUnkDef(strings.NewReader("KANJI,1,2\n"))
	require.Error(t, err)
}

func TestFetchEntries(t *testing.T) {
	d, kanjiID, defaultID := buildSampleDict(t)

	var got []Entry
	for e := range d.FetchEntries(kanjiID) {
		got = append(got, e)
	}
	require.Len(t, got, 2)
	require.Equal(t, uint16(1), got[0].LeftID)
	require.Equal(t, uint16(3), got[1].LeftID)

	var def []Entry
	for e := range d.FetchEntries(defaultID) {
		def = append(def, e)
	}
	require.Len(t, def, 1)
	require.Equal(t, uint16(9), def[0].LeftID)
}

func TestFetchEntriesEmptyCategory(t *testing.T) {
	d, _, _ := buildSampleDict(t)
	symbolID, ok := d.Categories.Lookup("SYMBOL")
	require.True(t, ok)
	for range d.FetchEntries(symbolID) {
		t.Fatalf("expected no entries for a category with none registered")
	}
}

func TestFetchEntriesEarlyStop(t *testing.T) {
	d, kanjiID, _ := buildSampleDict(t)
	n := 0
	for range d.FetchEntries(kanjiID) {
		n++
		break
	}
	require.Equal(t, 1, n)
}

func TestUnknownDictRoundTrip(t *testing.T) {
	d, kanjiID, _ := buildSampleDict(t)

	var buf bytes.Buffer
	_, err := d.WriteTo(&buf)
	require.NoError(t, err)

	got, err := ReadUnknownDict(&buf)
	require.NoError(t, err)

	var entries []Entry
	for e := range got.FetchEntries(kanjiID) {
		entries = append(entries, e)
	}
	require.Len(t, entries, 2)
	require.Equal(t, uint16(1), entries[0].LeftID)
	require.Equal(t, "名詞,一般,*,*,*,*,*", entries[0].Contents)
}
