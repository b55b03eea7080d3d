package fst

import "encoding/binary"

// Compile serializes a minimized Transducer into a linear byte array of
// per-state operation blocks, laid out so that every transition's jump
// field is a non-negative forward offset to an already-addressed state.
//
// This module lays states out via a topological order (every parent
// before every state it transitions to, the reverse of a post-order
// DFS from the start state) and resolves jump widths with a small
// relaxation loop, rather than literally building the byte array back
// to front and reversing it once at the end. Either construction
// produces the same layout invariants: the start state is the first
// byte of the stream, and every jump is forward.
func Compile(t *Transducer) []byte {
	order := topoOrder(t)

	arc32 := make([][]bool, len(t.states))
	for i, s := range t.states {
		arc32[i] = make([]bool, len(s.arcs))
	}
	addr := make([]int, len(t.states))

	layout := func() int {
		pos := 0
		for _, id := range order {
			addr[id] = pos
			pos += stateSize(t.states[id], arc32[id])
		}
		return pos
	}

	total := layout()
	for {
		// Promotions are collected and applied only after the pass, so
		// every jump in a pass is measured against the layout addr holds.
		var promote [][2]int
		for _, id := range order {
			s := t.states[id]
			acceptSize := 5 * len(s.stateOutputs)
			for ai, a := range s.arcs {
				nextOp := addr[id] + acceptSize + arcEnd(s, arc32[id], ai)
				j := addr[a.target] - nextOp
				if j < 0 {
					panic("fst: negative jump; topological layout invariant violated")
				}
				if !arc32[id][ai] && !jumpFits16(j) {
					promote = append(promote, [2]int{int(id), ai})
				}
			}
		}
		if len(promote) == 0 {
			break
		}
		for _, p := range promote {
			arc32[p[0]][p[1]] = true
		}
		total = layout()
	}

	out := make([]byte, total)
	for _, id := range order {
		s := t.states[id]
		pos := addr[id]
		for _, v := range s.stateOutputs {
			out[pos] = packOp(opAcceptWith, jump16)
			pos++
			binary.LittleEndian.PutUint32(out[pos:], v)
			pos += 4
		}
		for ai, a := range s.arcs {
			op := opJump
			if a.hasOut {
				op = opOutjump
			}
			js := jump16
			if arc32[id][ai] {
				js = jump32
			}
			out[pos] = packOp(op, js)
			pos++
			out[pos] = a.label
			pos++

			jumpFieldPos := pos
			if js == jump16 {
				pos += 2
			} else {
				pos += 4
			}
			if a.hasOut {
				pos += 4
			}
			nextOp := pos
			j := uint32(addr[a.target] - nextOp)
			if js == jump16 {
				binary.LittleEndian.PutUint16(out[jumpFieldPos:], uint16(j))
			} else {
				binary.LittleEndian.PutUint32(out[jumpFieldPos:], j)
			}
			if a.hasOut {
				outPos := jumpFieldPos + 2
				if js == jump32 {
					outPos = jumpFieldPos + 4
				}
				binary.LittleEndian.PutUint32(out[outPos:], a.output)
			}
		}
		out[pos] = packOp(opBreak, jump16)
		pos++
	}
	return out
}

// arcLen returns the encoded byte length of arc a, given whether its
// jump field is currently encoded as 32 bits.
func arcLen(a arc, is32 bool) int {
	n := 2 // op byte + cmp byte
	if is32 {
		n += 4
	} else {
		n += 2
	}
	if a.hasOut {
		n += 4
	}
	return n
}

// arcEnd returns the byte offset, relative to the start of state s's arc
// section (after its ACCEPT_WITH ops, before any BREAK), of the position
// immediately after arc index ai's encoding: the "next operation"
// address the arc's own jump field is relative to.
func arcEnd(s *state, arc32 []bool, ai int) int {
	off := 0
	for i := 0; i <= ai; i++ {
		off += arcLen(s.arcs[i], arc32[i])
	}
	return off
}

// stateSize returns the total encoded byte length of state s: its
// ACCEPT_WITH operations (one per state-output value), its arcs, and
// its terminating BREAK byte.
func stateSize(s *state, arc32 []bool) int {
	n := 1 // BREAK
	for i, a := range s.arcs {
		n += arcLen(a, arc32[i])
	}
	n += 5 * len(s.stateOutputs) // op byte + u32 output, each
	return n
}

// topoOrder returns the automaton's reachable states in an order where,
// for every transition u -> v, u appears before v. It is computed as the
// reverse of a post-order DFS from the start state, which has exactly
// that property for any DAG.
func topoOrder(t *Transducer) []int32 {
	visited := make([]bool, len(t.states))
	var post []int32
	var visit func(id int32)
	visit = func(id int32) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, a := range t.states[id].arcs {
			visit(a.target)
		}
		post = append(post, id)
	}
	visit(t.start)
	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post
}
