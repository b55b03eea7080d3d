package unk

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var byteOrder = binary.LittleEndian

// CategoryID indexes into a CategoryTable's category definitions.
type CategoryID = uint8

// Category bundles the flags attached to a character category:
// whether unknown-word generation should run even when the dictionary
// matched (Invoke), whether to additionally emit one maximal
// same-category run (Group), and how many length-mode surfaces (1..Length)
// to emit.
type Category struct {
	Invoke bool
	Group  bool
	Length uint8
}

const tableSize = 1 << 16

// CategoryTable maps every code point in [0, 0xFFFF] to a CategoryID,
// with a default id for everything outside that range (and for any
// codepoint inside it that was never assigned a range). Grounded on the
// range-filling/coalescing idiom of a Unicode trie generator, flattened
// to one dense array since the domain here is a fixed 16-bit space
// rather than the full 21-bit codepoint range.
type CategoryTable struct {
	names     []string
	byName    map[string]CategoryID
	invokes   []bool
	groups    []bool
	lengths   []uint8
	defaultID CategoryID
	table     [tableSize]CategoryID
}

// NewCategoryTable returns an empty table; every codepoint resolves to
// category 0 until RegisterCategory/SetDefault/AddRange are called.
func NewCategoryTable() *CategoryTable {
	return &CategoryTable{}
}

// RegisterCategory defines a new named category and returns its id.
// Category ids are assigned in registration order, starting at 0.
func (t *CategoryTable) RegisterCategory(name string, invoke, group bool, length uint8) CategoryID {
	id := CategoryID(len(t.invokes))
	t.names = append(t.names, name)
	t.invokes = append(t.invokes, invoke)
	t.groups = append(t.groups, group)
	t.lengths = append(t.lengths, length)
	if name != "" {
		if t.byName == nil {
			t.byName = make(map[string]CategoryID)
		}
		t.byName[name] = id
	}
	return id
}

// Lookup resolves a category name (as used in chardef/unkdef text
// formats) to its id.
func (t *CategoryTable) Lookup(name string) (CategoryID, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// SetDefault marks id as the fallback category for unassigned and
// out-of-range codepoints.
func (t *CategoryTable) SetDefault(id CategoryID) {
	t.defaultID = id
}

// AddCodepoint assigns cp to category id. Codepoints >= 0x10000 are
// silently ignored: they always resolve to the default category.
func (t *CategoryTable) AddCodepoint(cp rune, id CategoryID) {
	if cp < 0 || cp >= tableSize {
		return
	}
	t.table[cp] = id
}

// AddRange assigns every codepoint in [start, end] to category id.
func (t *CategoryTable) AddRange(start, end rune, id CategoryID) {
	if start < 0 {
		start = 0
	}
	if end >= tableSize {
		end = tableSize - 1
	}
	for cp := start; cp <= end; cp++ {
		t.table[cp] = id
	}
}

// CategoryIDFor returns the category id for ch: the default id if ch is
// outside [0, 0xFFFF].
func (t *CategoryTable) CategoryIDFor(ch rune) CategoryID {
	if ch < 0 || ch >= tableSize {
		return t.defaultID
	}
	return t.table[ch]
}

// Categorize returns the full Category (invoke/group/length) for ch.
func (t *CategoryTable) Categorize(ch rune) Category {
	return t.CategoryByID(t.CategoryIDFor(ch))
}

// CategoryByID looks up a Category by its already-resolved id.
func (t *CategoryTable) CategoryByID(id CategoryID) Category {
	if int(id) >= len(t.invokes) {
		return Category{}
	}
	return Category{Invoke: t.invokes[id], Group: t.groups[id], Length: t.lengths[id]}
}

// NumCategories reports how many categories have been registered.
func (t *CategoryTable) NumCategories() int { return len(t.invokes) }

// ParseCharDef parses the character-category definition text format:
// "#" begins a comment, category lines are "NAME INVOKE GROUP LENGTH",
// range lines are "0xSTART..0xEND NAME" or "0xCODE NAME". A "DEFAULT"
// category is required and becomes the table's default.
func ParseCharDef(r io.Reader) (*CategoryTable, error) {
	t := NewCategoryTable()
	var pendingRanges [][3]string // start, end(or ""), name

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Text()
		if i := strings.IndexByte(raw, '#'); i >= 0 {
			raw = raw[:i]
		}
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			continue
		}
		if strings.HasPrefix(fields[0], "0x") || strings.HasPrefix(fields[0], "0X") {
			if len(fields) != 2 {
				return nil, fmt.Errorf("unk: chardef line %d: malformed range line %q", line, raw)
			}
			codeField := fields[0]
			start, end, found := strings.Cut(codeField, "..")
			if !found {
				end = start
			}
			pendingRanges = append(pendingRanges, [3]string{start, end, fields[1]})
			continue
		}
		if len(fields) != 4 {
			return nil, fmt.Errorf("unk: chardef line %d: malformed category line %q", line, raw)
		}
		name := fields[0]
		invoke, err := parseFlag(fields[1])
		if err != nil {
			return nil, fmt.Errorf("unk: chardef line %d: invoke field: %w", line, err)
		}
		group, err := parseFlag(fields[2])
		if err != nil {
			return nil, fmt.Errorf("unk: chardef line %d: group field: %w", line, err)
		}
		length, err := strconv.ParseUint(fields[3], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("unk: chardef line %d: length field: %w", line, err)
		}
		if _, dup := t.Lookup(name); dup {
			return nil, fmt.Errorf("unk: chardef line %d: category %q defined twice", line, name)
		}
		t.RegisterCategory(name, invoke, group, uint8(length))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("unk: reading chardef: %w", err)
	}

	defaultID, ok := t.Lookup("DEFAULT")
	if !ok {
		return nil, fmt.Errorf("unk: chardef: missing required DEFAULT category")
	}
	t.SetDefault(defaultID)

	for _, rg := range pendingRanges {
		id, ok := t.Lookup(rg[2])
		if !ok {
			return nil, fmt.Errorf("unk: chardef: range references unknown category %q", rg[2])
		}
		start, err := strconv.ParseInt(rg[0], 0, 32)
		if err != nil {
			return nil, fmt.Errorf("unk: chardef: range start %q: %w", rg[0], err)
		}
		end, err := strconv.ParseInt(rg[1], 0, 32)
		if err != nil {
			return nil, fmt.Errorf("unk: chardef: range end %q: %w", rg[1], err)
		}
		t.AddRange(rune(start), rune(end), id)
	}
	return t, nil
}

func parseFlag(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("expected 0 or 1, got %q", s)
	}
}

// WriteTo encodes the table in the on-disk layout that trails the
// unknown-word dictionary blob: u8 N_categories, u8 default_id, N
// invokes, N groups, N lengths, then the full codepoint table.
func (t *CategoryTable) WriteTo(w io.Writer) (int64, error) {
	n := len(t.invokes)
	hdr := make([]byte, 2+n+n+n)
	hdr[0] = byte(n)
	hdr[1] = t.defaultID
	off := 2
	for i := 0; i < n; i++ {
		if t.invokes[i] {
			hdr[off+i] = 1
		}
	}
	off += n
	for i := 0; i < n; i++ {
		if t.groups[i] {
			hdr[off+i] = 1
		}
	}
	off += n
	copy(hdr[off:], t.lengths)

	written, err := w.Write(hdr)
	total := int64(written)
	if err != nil {
		return total, err
	}
	nn, err := w.Write(t.table[:])
	return total + int64(nn), err
}

// ReadCategoryTable decodes the layout WriteTo produces.
func ReadCategoryTable(r io.Reader) (*CategoryTable, error) {
	var hdr2 [2]byte
	if _, err := io.ReadFull(r, hdr2[:]); err != nil {
		return nil, fmt.Errorf("unk: reading category table header: %w", err)
	}
	n := int(hdr2[0])
	t := &CategoryTable{defaultID: hdr2[1]}

	flags := make([]byte, 3*n)
	if _, err := io.ReadFull(r, flags); err != nil {
		return nil, fmt.Errorf("unk: reading category flags: %w", err)
	}
	t.invokes = make([]bool, n)
	t.groups = make([]bool, n)
	t.lengths = make([]uint8, n)
	for i := 0; i < n; i++ {
		t.invokes[i] = flags[i] != 0
		t.groups[i] = flags[n+i] != 0
		t.lengths[i] = flags[2*n+i]
	}
	if int(t.defaultID) >= n {
		return nil, fmt.Errorf("unk: default category %d out of range [0,%d)", t.defaultID, n)
	}

	if _, err := io.ReadFull(r, t.table[:]); err != nil {
		return nil, fmt.Errorf("unk: reading codepoint table: %w", err)
	}
	for _, id := range t.table {
		if int(id) >= n {
			return nil, fmt.Errorf("unk: codepoint table references category %d out of range [0,%d)", id, n)
		}
	}
	return t, nil
}
