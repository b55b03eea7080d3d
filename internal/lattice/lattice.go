// Package lattice builds the per-input candidate-morpheme DAG and
// relaxes it with Viterbi (viterbi.go) to produce the minimum-cost
// segmentation.
package lattice

import (
	"unicode/utf8"

	"github.com/agatan/yoin/internal/dict"
	"github.com/agatan/yoin/internal/unk"
)

// maxGroupChars bounds a group-mode unknown-word surface, per spec.
const maxGroupChars = 1024

// noPrev marks a node with no predecessor: only BOS carries it.
const noPrev int32 = -1

// Kind distinguishes a Lattice node's origin.
type Kind int

const (
	KindBOS Kind = iota
	KindEOS
	KindKnown
	KindUnknown
)

// Node is one candidate morpheme (or the BOS/EOS sentinel) in the
// lattice: its surface span in both byte and character coordinates,
// connection ids, emission weight, and feature string.
type Node struct {
	Kind            Kind
	ByteStart       int
	ByteEnd         int
	CharStart       int
	CharLen         int
	LeftID, RightID uint16
	Weight          int16
	Surface         string
	Contents        string
}

// bosEosContextID is the connection-matrix context id reserved for the
// sentence boundary, matching the common mecab/kuromoji-family
// convention that context 0 is never assigned to a real morph.
const bosEosContextID = 0

// Sources bundles the three read-only artifacts a lattice is built
// against: the known-word dictionary, the unknown-word handler, and the
// bigram connection matrix.
type Sources struct {
	Dict    *dict.Dict
	Unknown *unk.UnknownDict
	Matrix  *dict.Matrix
}

// Lattice is the append-only node arena plus the parallel cost/prev
// arrays Viterbi relaxes as nodes are added, and the end_nodes buckets
// indexed by character position. It is built fresh for every
// tokenization call and discarded afterward.
type Lattice struct {
	nodes     []Node
	prev      []int32
	cost      []int64
	endNodes  [][]int32
	charSize  int
	bosID     int32
	eosID     int32
	input     string
	bytePos   []int // bytePos[i] is the byte offset of the i-th rune; bytePos[charSize] == len(input)
}

// Build runs the lattice construction driver loop over input,
// consulting src for known-word lookups and unknown-word expansion,
// and returns the fully relaxed Lattice ready for Reconstruct.
func Build(input string, src Sources) (*Lattice, error) {
	bytePos := make([]int, 0, len(input)+1)
	for i := range input {
		bytePos = append(bytePos, i)
	}
	bytePos = append(bytePos, len(input))
	charSize := len(bytePos) - 1

	l := &Lattice{
		endNodes: make([][]int32, charSize+2),
		charSize: charSize,
		input:    input,
		bytePos:  bytePos,
	}

	l.bosID = l.appendNode(Node{
		Kind: KindBOS, ByteStart: 0, ByteEnd: 0, CharStart: 0, CharLen: 0,
		LeftID: bosEosContextID, RightID: bosEosContextID,
	})
	l.prev[l.bosID] = noPrev
	l.cost[l.bosID] = 0
	l.endNodes[0] = append(l.endNodes[0], l.bosID)

	runes := make([]rune, 0, charSize)
	for _, r := range input {
		runes = append(runes, r)
	}

	for pos := 0; pos < charSize; pos++ {
		if len(l.endNodes[pos]) == 0 {
			continue
		}
		if err := l.expandAt(pos, runes, src); err != nil {
			return nil, err
		}
	}

	l.eosID = noPrev
	if err := l.addNode(charSize, Node{
		Kind: KindEOS, ByteStart: bytePos[charSize], ByteEnd: bytePos[charSize],
		CharStart: charSize, CharLen: 0,
		LeftID: bosEosContextID, RightID: bosEosContextID,
	}, src); err != nil {
		return nil, err
	}
	l.eosID = int32(len(l.nodes) - 1)

	return l, nil
}

func (l *Lattice) appendNode(n Node) int32 {
	id := int32(len(l.nodes))
	l.nodes = append(l.nodes, n)
	l.prev = append(l.prev, noPrev)
	l.cost = append(l.cost, 0)
	return id
}

// expandAt performs one iteration of the driver loop at character
// position pos: known-word lookup followed by unknown-word expansion
// when nothing matched or the category demands it regardless.
func (l *Lattice) expandAt(pos int, runes []rune, src Sources) error {
	suffix := l.input[l.bytePos[pos]:]
	matched := false
	var lookupErr error
	for m := range src.Dict.LookupStrIter(suffix) {
		charLen := utf8.RuneCountInString(m.Surface)
		n := Node{
			Kind: KindKnown, ByteStart: l.bytePos[pos], ByteEnd: l.bytePos[pos+charLen],
			CharStart: pos, CharLen: charLen,
			LeftID: m.LeftID, RightID: m.RightID, Weight: m.Weight,
			Surface: m.Surface, Contents: m.Contents,
		}
		if err := l.addNode(pos+charLen, n, src); err != nil {
			lookupErr = err
			break
		}
		matched = true
	}
	if lookupErr != nil {
		return lookupErr
	}

	ch := runes[pos]
	cid := src.Unknown.Categories.CategoryIDFor(ch)
	cate := src.Unknown.Categories.CategoryByID(cid)

	if !matched || cate.Invoke {
		runLen := sameCategoryRun(runes, pos, cid, src.Unknown.Categories)

		if cate.Group {
			groupLen := min(runLen, maxGroupChars)
			if err := l.addUnknownNodes(pos, groupLen, cid, src); err != nil {
				return err
			}
		}
		if cate.Length > 0 {
			maxK := min(int(cate.Length), runLen)
			for k := 1; k <= maxK; k++ {
				if err := l.addUnknownNodes(pos, k, cid, src); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// sameCategoryRun returns the number of consecutive runes starting at
// pos (inclusive) whose category id equals cid.
func sameCategoryRun(runes []rune, pos int, cid unk.CategoryID, cats *unk.CategoryTable) int {
	n := 0
	for i := pos; i < len(runes); i++ {
		if cats.CategoryIDFor(runes[i]) != cid {
			break
		}
		n++
	}
	return n
}

// addUnknownNodes adds one Unknown node per unk.Entry registered for
// cid, covering charLen characters starting at pos.
func (l *Lattice) addUnknownNodes(pos, charLen int, cid unk.CategoryID, src Sources) error {
	surface := l.input[l.bytePos[pos]:l.bytePos[pos+charLen]]
	for e := range src.Unknown.FetchEntries(cid) {
		n := Node{
			Kind: KindUnknown, ByteStart: l.bytePos[pos], ByteEnd: l.bytePos[pos+charLen],
			CharStart: pos, CharLen: charLen,
			LeftID: e.LeftID, RightID: e.RightID, Weight: e.Weight,
			Surface: surface, Contents: e.Contents,
		}
		if err := l.addNode(pos+charLen, n, src); err != nil {
			return err
		}
	}
	return nil
}

// NumNodes returns the number of nodes in the arena, including BOS/EOS.
func (l *Lattice) NumNodes() int { return len(l.nodes) }

// Node returns the node at id.
func (l *Lattice) Node(id int32) Node { return l.nodes[id] }

// CharSize returns the input's length in runes.
func (l *Lattice) CharSize() int { return l.charSize }
