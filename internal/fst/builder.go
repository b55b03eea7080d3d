package fst

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrUnsortedInput is returned by Builder.Add when a key is strictly less
// than the previously added key. The builder requires a lexicographically
// sorted key stream (duplicates allowed) so that incremental minimization
// never has to revisit an already-frozen state.
var ErrUnsortedInput = errors.New("fst: keys must be added in sorted order")

// Builder incrementally constructs a minimized Transducer from a sorted
// sequence of (key, value) pairs, following Mihov/Liljenzin incremental
// minimization as described for this module: a mutable "spine" of
// not-yet-minimized states for the key currently being added, frozen into
// a hash-consed arena as each key's common prefix with its predecessor is
// discovered.
//
// Output-pushing policy: values here are opaque u32 dictionary offsets,
// not structured byte strings, so there is nothing to gain by pushing a
// value onto an early, possibly-shared transition the way a classic
// byte-output FST would. Every value is instead carried as a
// state-output (ACCEPT_WITH) on its key's terminal state; a surface
// shared by several morphs (homographs) just accumulates more than one
// state-output there. OUTJUMP stays a decodable opcode (iter.go
// implements it) but this builder never emits one.
type Builder struct {
	arena   []*state       // frozen states, addressed by index (the final Transducer's state arena)
	table   map[string]int32 // structural signature -> frozen state id, for hash-consing
	spine   []*state       // live, not-yet-minimized states for the key in progress; spine[i] is reached after i bytes
	prevKey []byte
	hasPrev bool
	done    bool
}

// NewBuilder creates an empty Builder ready to accept keys in sorted order.
func NewBuilder() *Builder {
	b := &Builder{
		table: make(map[string]int32),
		spine: []*state{{}},
	}
	return b
}

// Add inserts the next (key, value) pair. Keys must be non-decreasing
// across calls (duplicates are allowed: multiple morphs can share one
// surface, each with its own value). Returns ErrUnsortedInput otherwise.
func (b *Builder) Add(key []byte, value uint32) error {
	if b.done {
		return fmt.Errorf("fst: Add called after Finish")
	}
	if b.hasPrev && bytes.Compare(key, b.prevKey) < 0 {
		return ErrUnsortedInput
	}

	p := commonPrefixLen(b.prevKey, key)
	if !b.hasPrev {
		p = 0
	}

	// Freeze spine[i] for i from len(prevKey) down to p+1, wiring each
	// frozen id into the arc that currently points at it from spine[i-1].
	for i := len(b.spine) - 1; i > p; i-- {
		id := b.freeze(b.spine[i])
		parent := b.spine[i-1]
		last := &parent.arcs[len(parent.arcs)-1]
		last.target = id
	}
	b.spine = b.spine[:p+1]

	// Extend the spine for the new key's suffix beyond the common prefix.
	// key == prevKey takes p == len(key) and this loop is a no-op, landing
	// straight on the shared terminal state below.
	for i := p; i < len(key); i++ {
		b.spine[i].arcs = append(b.spine[i].arcs, arc{label: key[i], target: -1})
		b.spine = append(b.spine, &state{})
	}

	b.spine[len(key)].final = true
	b.spine[len(key)].stateOutputs = append(b.spine[len(key)].stateOutputs, value)

	b.prevKey = append(b.prevKey[:0], key...)
	b.hasPrev = true
	return nil
}

// Finish freezes every remaining spine state, including the root, and
// returns the completed Transducer. The Builder must not be reused
// afterwards.
func (b *Builder) Finish() *Transducer {
	for i := len(b.spine) - 1; i > 0; i-- {
		id := b.freeze(b.spine[i])
		parent := b.spine[i-1]
		last := &parent.arcs[len(parent.arcs)-1]
		last.target = id
	}
	start := b.freeze(b.spine[0])
	b.done = true
	return &Transducer{states: b.arena, start: start}
}

// freeze hash-conses s: if an existing frozen state has the same
// structural signature, its id is reused and s is discarded; otherwise a
// new immutable copy of s is appended to the arena.
func (b *Builder) freeze(s *state) int32 {
	sig := s.signature()
	if id, ok := b.table[sig]; ok {
		return id
	}
	frozen := &state{
		final:        s.final,
		arcs:         append([]arc(nil), s.arcs...),
		stateOutputs: append([]uint32(nil), s.stateOutputs...),
	}
	id := int32(len(b.arena))
	b.arena = append(b.arena, frozen)
	b.table[sig] = id
	return id
}

func commonPrefixLen(a, b []byte) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
