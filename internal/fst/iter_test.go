package fst

import "testing"

func TestIterStopsAtBreak(t *testing.T) {
	prog := build(t, map[string]uint32{"a": 1})
	it := NewIter(prog, []byte("a"))
	if acc, ok, err := it.Next(); err != nil || !ok || acc.Output != 1 {
		t.Fatalf("first Next() = %v, %v, %v", acc, ok, err)
	}
	if _, ok, err := it.Next(); err != nil || ok {
		t.Fatalf("second Next() should be done: ok=%v err=%v", ok, err)
	}
}

func TestIterStopsWhenInputExhausted(t *testing.T) {
	prog := build(t, map[string]uint32{"abcdef": 1})
	it := NewIter(prog, []byte("abc"))
	_, ok, err := it.Next()
	if err != nil {
		t.Fatalf("Next(): %v", err)
	}
	if ok {
		t.Fatalf("expected no accept for a key longer than the input")
	}
}

func TestIterNoMatchingByte(t *testing.T) {
	prog := build(t, map[string]uint32{"cat": 1, "dog": 2})
	it := NewIter(prog, []byte("car"))
	_, ok, err := it.Next()
	if err != nil {
		t.Fatalf("Next(): %v", err)
	}
	if ok {
		t.Fatalf("expected no accept for a byte that diverges before any final state")
	}
}

func TestIterMalformedProgramErrors(t *testing.T) {
	prog := NewProgram([]byte{packOp(opJump, jump16), 'a'}, 0) // truncated: missing jump field
	it := NewIter(prog, []byte("a"))
	_, ok, err := it.Next()
	if ok {
		t.Fatalf("expected no accept from a truncated program")
	}
	if err != ErrLookup {
		t.Fatalf("err = %v, want ErrLookup", err)
	}
}

func TestLookupMiss(t *testing.T) {
	prog := build(t, map[string]uint32{"hello": 1})
	if _, ok := Lookup(prog, []byte("hell")); ok {
		t.Fatalf("Lookup(hell) against dictionary {hello}: found, want miss (not itself a key)")
	}
}
