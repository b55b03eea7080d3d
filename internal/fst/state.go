// Package fst implements a minimal acyclic finite-state transducer: a
// deterministic automaton mapping byte strings to u32 identifiers,
// built by incremental (Mihov/Liljenzin-style) minimization, compiled to
// a compact interpretable bytecode, and walked at lookup time by a
// common-prefix iterator.
//
// The three pieces live in separate files but share the state
// representation here: builder.go constructs a minimized Transducer from
// a sorted key stream, compile.go turns it into bytecode, and iter.go
// walks that bytecode.
package fst

import "sort"

// arc is a single labeled transition out of a state.
type arc struct {
	label  byte
	target int32 // arena id of the child state; -1 while still unresolved (pointing into the live spine)
	output uint32
	hasOut bool
}

// state is a node of the automaton. During construction it is mutable
// (part of the builder's spine); once minimized it is immutable and
// lives at a fixed id in a Transducer's arena.
type state struct {
	final        bool
	arcs         []arc
	stateOutputs []uint32 // values emitted on reaching this state when final (homographs, repeated keys)
}

// signature returns a canonical string encoding of the state's structural
// content, used as the hash-consing key. Two states with equal signatures
// are interchangeable in any automaton and are collapsed to one.
func (s *state) signature() string {
	arcs := append([]arc(nil), s.arcs...)
	sort.Slice(arcs, func(i, j int) bool { return arcs[i].label < arcs[j].label })

	outs := append([]uint32(nil), s.stateOutputs...)
	sort.Slice(outs, func(i, j int) bool { return outs[i] < outs[j] })

	buf := make([]byte, 0, 16+12*len(arcs)+4*len(outs))
	if s.final {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	for _, a := range arcs {
		buf = append(buf, a.label)
		buf = appendUint32(buf, uint32(a.target))
		if a.hasOut {
			buf = append(buf, 1)
			buf = appendUint32(buf, a.output)
		} else {
			buf = append(buf, 0)
		}
	}
	buf = append(buf, 0xFF) // separator between arcs and state-outputs
	for _, o := range outs {
		buf = appendUint32(buf, o)
	}
	return string(buf)
}

func appendUint32(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// Transducer is a finished, minimized automaton: an arena of frozen
// states plus the id of the start state. It is produced by Builder.Finish
// and consumed by Compile; it is never mutated afterwards.
type Transducer struct {
	states []*state
	start  int32
}
