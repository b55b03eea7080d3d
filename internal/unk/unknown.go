package unk

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// Entry is one unknown-word dictionary entry: the same connection
// identifiers and weight a known morph carries, keyed by category
// rather than by surface.
type Entry struct {
	LeftID   uint16
	RightID  uint16
	Weight   int16
	Contents string
}

// UnknownDict is a category-id-indexed table of Entry lists: indices
// and counts locate each category's run inside a shared entryOffsets
// array, which in turn points into a concatenated entries blob.
type UnknownDict struct {
	indices      []uint32
	counts       []uint32
	entryOffsets []uint32
	entries      []byte
	Categories   *CategoryTable
}

// NewUnknownDict assembles an UnknownDict directly from its parts, for
// use by internal/compiler.
func NewUnknownDict(indices, counts, entryOffsets []uint32, entries []byte, cats *CategoryTable) *UnknownDict {
	return &UnknownDict{indices: indices, counts: counts, entryOffsets: entryOffsets, entries: entries, Categories: cats}
}

// FetchEntries returns a lazy iterator over cate's entries, decoding
// each lazily from the offsets slice rather than building a slice of
// Entry values up front: this runs on every lattice expansion, so
// avoiding an allocation per category lookup matters.
func (d *UnknownDict) FetchEntries(cate CategoryID) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		if int(cate) >= len(d.indices) {
			return
		}
		start := d.indices[cate]
		count := d.counts[cate]
		for i := uint32(0); i < count; i++ {
			off := d.entryOffsets[start+i]
			e, _, err := decodeEntry(d.entries[off:])
			if err != nil {
				return
			}
			if !yield(e) {
				return
			}
		}
	}
}

// decodeEntry reads one Entry record: u16 left, u16 right, i16 weight,
// u32 contents length, contents bytes.
func decodeEntry(b []byte) (Entry, int, error) {
	if len(b) < 10 {
		return Entry{}, 0, fmt.Errorf("unk: truncated entry header")
	}
	left := byteOrder.Uint16(b[0:2])
	right := byteOrder.Uint16(b[2:4])
	weight := int16(byteOrder.Uint16(b[4:6]))
	contentsLen := int(byteOrder.Uint32(b[6:10]))
	n := 10
	if contentsLen < 0 || n+contentsLen > len(b) {
		return Entry{}, 0, fmt.Errorf("unk: entry contents length %d exceeds buffer", contentsLen)
	}
	contents := string(b[n : n+contentsLen])
	n += contentsLen
	return Entry{LeftID: left, RightID: right, Weight: weight, Contents: contents}, n, nil
}

// encodeEntry appends e's on-disk record to dst and returns the result.
func encodeEntry(dst []byte, e Entry) []byte {
	var hdr [10]byte
	byteOrder.PutUint16(hdr[0:2], e.LeftID)
	byteOrder.PutUint16(hdr[2:4], e.RightID)
	byteOrder.PutUint16(hdr[4:6], uint16(e.Weight))
	byteOrder.PutUint32(hdr[6:10], uint32(len(e.Contents)))
	dst = append(dst, hdr[:]...)
	dst = append(dst, e.Contents...)
	return dst
}

// RawUnkEntry is one parsed line of an unkdef file, with the category
// still a name (resolved against a CategoryTable by the caller, since
// ParseUnkDef alone does not know the chardef's name-to-id mapping).
type RawUnkEntry struct {
	Category string
	Entry    Entry
}

// ParseUnkDef parses the unknown-word definition CSV format:
// "CATEGORY,left_id,right_id,weight,features...". The trailing
// comma-joined fields become Entry.Contents verbatim.
func ParseUnkDef(r io.Reader) ([]RawUnkEntry, error) {
	var out []RawUnkEntry
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		fields := strings.Split(raw, ",")
		if len(fields) < 4 {
			return nil, fmt.Errorf("unk: unkdef line %d: expected at least 4 comma-separated fields, got %d", lineNo, len(fields))
		}
		left, err := strconv.ParseUint(fields[1], 10, 16)
		if err != nil {
			return nil, fmt.Errorf("unk: unkdef line %d: left_id: %w", lineNo, err)
		}
		right, err := strconv.ParseUint(fields[2], 10, 16)
		if err != nil {
			return nil, fmt.Errorf("unk: unkdef line %d: right_id: %w", lineNo, err)
		}
		weight, err := strconv.ParseInt(fields[3], 10, 16)
		if err != nil {
			return nil, fmt.Errorf("unk: unkdef line %d: weight: %w", lineNo, err)
		}
		out = append(out, RawUnkEntry{
			Category: fields[0],
			Entry: Entry{
				LeftID:   uint16(left),
				RightID:  uint16(right),
				Weight:   int16(weight),
				Contents: strings.Join(fields[4:], ","),
			},
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("unk: reading unkdef: %w", err)
	}
	return out, nil
}

// BuildUnknownDict groups raw entries by resolved category id and lays
// out the indices/counts/entryOffsets/entries arrays. Categories not
// present in raw still get a zero-length run, so
// FetchEntries on them is a safe no-op rather than an out-of-range read.
func BuildUnknownDict(raw []RawUnkEntry, cats *CategoryTable) (*UnknownDict, error) {
	n := cats.NumCategories()
	byCategory := make([][]Entry, n)
	for _, r := range raw {
		id, ok := cats.Lookup(r.Category)
		if !ok {
			return nil, fmt.Errorf("unk: unkdef references unknown category %q", r.Category)
		}
		byCategory[id] = append(byCategory[id], r.Entry)
	}

	indices := make([]uint32, n)
	counts := make([]uint32, n)
	var entryOffsets []uint32
	var entries []byte
	for id := 0; id < n; id++ {
		indices[id] = uint32(len(entryOffsets))
		counts[id] = uint32(len(byCategory[id]))
		for _, e := range byCategory[id] {
			entryOffsets = append(entryOffsets, uint32(len(entries)))
			entries = encodeEntry(entries, e)
		}
	}
	return NewUnknownDict(indices, counts, entryOffsets, entries, cats), nil
}

// WriteTo encodes the unknown-word dictionary in its on-disk layout:
// u32 N, N indices, u32 N, N counts, u32 M, M entry offsets, u32 L, L
// entry bytes, followed by the character-category table.
func (d *UnknownDict) WriteTo(w io.Writer) (int64, error) {
	var total int64
	write := func(p []byte) error {
		n, err := w.Write(p)
		total += int64(n)
		return err
	}
	writeU32Slice := func(vals []uint32) error {
		if err := write(u32Bytes(uint32(len(vals)))); err != nil {
			return err
		}
		buf := make([]byte, len(vals)*4)
		for i, v := range vals {
			byteOrder.PutUint32(buf[i*4:], v)
		}
		return write(buf)
	}

	if err := writeU32Slice(d.indices); err != nil {
		return total, err
	}
	if err := writeU32Slice(d.counts); err != nil {
		return total, err
	}
	if err := writeU32Slice(d.entryOffsets); err != nil {
		return total, err
	}
	if err := write(u32Bytes(uint32(len(d.entries)))); err != nil {
		return total, err
	}
	if err := write(d.entries); err != nil {
		return total, err
	}
	n, err := d.Categories.WriteTo(w)
	total += n
	return total, err
}

func u32Bytes(v uint32) []byte {
	b := make([]byte, 4)
	byteOrder.PutUint32(b, v)
	return b
}

// ReadUnknownDict decodes the layout WriteTo produces.
func ReadUnknownDict(r io.Reader) (*UnknownDict, error) {
	readU32 := func() (uint32, error) {
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		return byteOrder.Uint32(b[:]), nil
	}
	readU32Slice := func() ([]uint32, error) {
		n, err := readU32()
		if err != nil {
			return nil, err
		}
		buf := make([]byte, n*4)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		out := make([]uint32, n)
		for i := range out {
			out[i] = byteOrder.Uint32(buf[i*4:])
		}
		return out, nil
	}

	indices, err := readU32Slice()
	if err != nil {
		return nil, fmt.Errorf("unk: reading indices: %w", err)
	}
	counts, err := readU32Slice()
	if err != nil {
		return nil, fmt.Errorf("unk: reading counts: %w", err)
	}
	if len(counts) != len(indices) {
		return nil, fmt.Errorf("unk: indices length %d != counts length %d", len(indices), len(counts))
	}
	entryOffsets, err := readU32Slice()
	if err != nil {
		return nil, fmt.Errorf("unk: reading entry offsets: %w", err)
	}
	entriesLen, err := readU32()
	if err != nil {
		return nil, fmt.Errorf("unk: reading entries length: %w", err)
	}
	entries := make([]byte, entriesLen)
	if _, err := io.ReadFull(r, entries); err != nil {
		return nil, fmt.Errorf("unk: reading entries: %w", err)
	}
	for i, idx := range indices {
		if idx+counts[i] > uint32(len(entryOffsets)) {
			return nil, fmt.Errorf("unk: category %d: indices+counts exceeds entryOffsets length", i)
		}
	}

	cats, err := ReadCategoryTable(r)
	if err != nil {
		return nil, fmt.Errorf("unk: reading category table: %w", err)
	}
	return NewUnknownDict(indices, counts, entryOffsets, entries, cats), nil
}
