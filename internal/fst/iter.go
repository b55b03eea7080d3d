package fst

import (
	"encoding/binary"
	"errors"
)

// ErrLookup is returned when a lookup walks off the end of a bytecode
// program: a malformed or truncated Program, never a property of a
// valid Transducer produced by Compile.
var ErrLookup = errors.New("fst: malformed program")

// Program is a compiled Transducer's bytecode together with the address
// of its start state, ready to be walked by Iter without touching the
// Transducer or Builder types at all.
type Program struct {
	code  []byte
	start int32
}

// NewProgram wraps a bytecode buffer produced by Compile. start is the
// address of the start state within code; Compile always places the
// start state at address 0 (see CompileProgram).
func NewProgram(code []byte, start int32) *Program {
	return &Program{code: code, start: start}
}

// CompileProgram compiles t and returns the resulting Program in one
// step, fixing the start address to 0, where Compile lays out t's start
// state.
func CompileProgram(t *Transducer) *Program {
	return NewProgram(Compile(t), 0)
}

// Bytes returns the raw compiled bytecode, for serialization.
func (p *Program) Bytes() []byte { return p.code }

// Accept is one matched prefix of the input, yielded by Iter.Next: Len
// bytes of the input were consumed to reach a final state carrying
// Output as one of its state-output values.
type Accept struct {
	Len    int
	Output uint32
}

// Iter walks a Program's bytecode against a fixed input, yielding one
// Accept per state-output encountered along the way, in order of
// increasing Len, since the bytecode only ever jumps forward. A single
// Iter walks at most one path through the automaton: the unique path
// (if any) spelled out by input.
//
// This is a common-prefix search, not a single membership test: a
// dictionary containing "feb" and "february" run against input
// "february" yields two Accepts, one at Len 3 and one at Len 8.
type Iter struct {
	prog    *Program
	input   []byte
	pc      int
	matched int
	done    bool
}

// NewIter starts a common-prefix search of input against prog.
func NewIter(prog *Program, input []byte) *Iter {
	return &Iter{prog: prog, input: input, pc: int(prog.start)}
}

// Next advances the walk to the next Accept. It returns ok == false
// once the walk reaches BREAK or runs out of input to compare against
// a transition; a malformed program surfaces as a non-nil error.
func (it *Iter) Next() (acc Accept, ok bool, err error) {
	if it.done {
		return Accept{}, false, nil
	}
	code := it.prog.code
	for {
		if it.pc < 0 || it.pc >= len(code) {
			it.done = true
			return Accept{}, false, ErrLookup
		}
		op, js := unpackOp(code[it.pc])
		switch op {
		case opBreak:
			it.done = true
			return Accept{}, false, nil

		case opAcceptWith:
			if it.pc+5 > len(code) {
				it.done = true
				return Accept{}, false, ErrLookup
			}
			v := binary.LittleEndian.Uint32(code[it.pc+1:])
			it.pc += 5
			return Accept{Len: it.matched, Output: v}, true, nil

		case opJump, opOutjump:
			if it.matched == len(it.input) {
				it.done = true
				return Accept{}, false, nil
			}
			if it.pc+2 > len(code) {
				it.done = true
				return Accept{}, false, ErrLookup
			}
			cmp := code[it.pc+1]
			jumpPos := it.pc + 2
			width := 2
			if js == jump32 {
				width = 4
			}
			if jumpPos+width > len(code) {
				it.done = true
				return Accept{}, false, ErrLookup
			}
			var jump int
			if js == jump32 {
				jump = int(binary.LittleEndian.Uint32(code[jumpPos:]))
			} else {
				jump = int(binary.LittleEndian.Uint16(code[jumpPos:]))
			}
			next := jumpPos + width
			if op == opOutjump {
				next += 4 // staged output field; this builder never emits it, but a
				// hand-assembled program may, so it must still be skipped correctly.
			}
			if next > len(code) {
				it.done = true
				return Accept{}, false, ErrLookup
			}
			if it.input[it.matched] == cmp {
				it.matched++
				it.pc = next + jump
				continue
			}
			it.pc = next
			continue

		default:
			it.done = true
			return Accept{}, false, ErrLookup
		}
	}
}

// Lookup reports whether key is an exact accepted key in prog, and its
// first associated value if so. For dictionaries with homographs
// (several values on the same key) use Iter directly to see them all.
func Lookup(prog *Program, key []byte) (value uint32, found bool) {
	it := NewIter(prog, key)
	for {
		acc, ok, err := it.Next()
		if err != nil || !ok {
			return 0, false
		}
		if acc.Len == len(key) {
			return acc.Output, true
		}
	}
}
