package fst

import "testing"

func TestCompileStartAtZero(t *testing.T) {
	b := NewBuilder()
	for _, k := range []string{"a", "ab", "abc"} {
		if err := b.Add([]byte(k), uint32(len(k))); err != nil {
			t.Fatalf("Add(%q): %v", k, err)
		}
	}
	prog := CompileProgram(b.Finish())
	if prog.start != 0 {
		t.Fatalf("start = %d, want 0 (topological order places the start state first)", prog.start)
	}
}

// disassemble walks a compiled program once, linearly, and returns the
// set of byte offsets where a state's op block begins (valid jump
// targets) plus every (next-op address, target address) pair observed
// at a JUMP/OUTJUMP. It does not assume anything about Compile's
// internal layout beyond the documented op encodings.
func disassemble(t *testing.T, code []byte) (opStarts map[int]bool, jumps [][2]int) {
	t.Helper()
	opStarts = map[int]bool{}
	i := 0
	for i < len(code) {
		opStarts[i] = true
		op, js := unpackOp(code[i])
		switch op {
		case opBreak:
			i++
		case opAcceptWith:
			if i+5 > len(code) {
				t.Fatalf("ACCEPT_WITH at %d: truncated", i)
			}
			i += 5
		case opJump, opOutjump:
			if i+2 > len(code) {
				t.Fatalf("JUMP at %d: truncated", i)
			}
			width := 2
			if js == jump32 {
				width = 4
			}
			jumpPos := i + 2
			if jumpPos+width > len(code) {
				t.Fatalf("JUMP at %d: truncated jump field", i)
			}
			var jump int
			if js == jump32 {
				jump = int(uint32(code[jumpPos]) | uint32(code[jumpPos+1])<<8 | uint32(code[jumpPos+2])<<16 | uint32(code[jumpPos+3])<<24)
			} else {
				jump = int(uint16(code[jumpPos]) | uint16(code[jumpPos+1])<<8)
			}
			next := jumpPos + width
			if op == opOutjump {
				next += 4
			}
			jumps = append(jumps, [2]int{next, next + jump})
			i = next
		default:
			t.Fatalf("unknown opcode %d at %d", op, i)
		}
	}
	return opStarts, jumps
}

func TestCompileJumpsAreForward(t *testing.T) {
	// A wide key set forces several distinct states and jump widths;
	// every jump must land exactly on some state's op block, at or
	// after the point the jump is taken from.
	b := NewBuilder()
	words := []string{"ant", "anteater", "antler", "apple", "application", "apply", "banana", "band", "bandana"}
	for i, w := range words {
		if err := b.Add([]byte(w), uint32(i)); err != nil {
			t.Fatalf("Add(%q): %v", w, err)
		}
	}
	tr := b.Finish()
	code := Compile(tr)

	opStarts, jumps := disassemble(t, code)
	for _, j := range jumps {
		from, target := j[0], j[1]
		if target < from {
			t.Fatalf("jump from %d targets %d, which is behind it", from, target)
		}
		if target < 0 || target >= len(code) {
			t.Fatalf("jump target %d out of range [0,%d)", target, len(code))
		}
		if !opStarts[target] {
			t.Fatalf("jump target %d does not land on a state's op block", target)
		}
	}

	for _, w := range words {
		if _, ok := Lookup(CompileProgram(tr), []byte(w)); !ok {
			t.Fatalf("Lookup(%q): not found", w)
		}
	}
}

func TestCompileWideJumpsPromoteTo32Bit(t *testing.T) {
	// Enough distinct keys, generated in sorted order, that the bytecode
	// for an early state has to jump over more than 0xFFFF bytes of
	// later states, forcing at least one JUMP to the 32-bit encoding.
	b := NewBuilder()
	n := 0
	for c := byte('a'); c <= 'z'; c++ {
		for i := 0; i < 4000; i++ {
			key := []byte{c, byte(i / 256), byte(i % 256), byte('A' + i%26), byte('0' + i%10)}
			if err := b.Add(key, uint32(n)); err != nil {
				t.Fatalf("Add: %v", err)
			}
			n++
		}
	}
	tr := b.Finish()
	code := Compile(tr)

	saw32 := false
	for i := 0; i < len(code); {
		op, js := unpackOp(code[i])
		switch op {
		case opBreak:
			i++
		case opAcceptWith:
			i += 5
		case opJump, opOutjump:
			if js == jump32 {
				saw32 = true
			}
			width := 2
			if js == jump32 {
				width = 4
			}
			i += 2 + width
			if op == opOutjump {
				i += 4
			}
		}
	}
	if !saw32 {
		t.Fatalf("expected at least one 32-bit jump in a program this large")
	}
}
