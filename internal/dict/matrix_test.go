package dict

import (
	"bytes"
	"testing"
)

func TestMatrixRoundTrip(t *testing.T) {
	// 2x3: width=2 (rightID range), height=3 (leftID range)
	m, err := NewMatrix(2, 3, []int16{-3, -2, -1, 0, 1, 2})
	if err != nil {
		t.Fatalf("NewMatrix: %v", err)
	}
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	got, err := ReadMatrix(&buf)
	if err != nil {
		t.Fatalf("ReadMatrix: %v", err)
	}
	if got.Width() != 2 || got.Height() != 3 {
		t.Fatalf("dims = %dx%d, want 2x3", got.Width(), got.Height())
	}
	want := [][]int16{{-3, -2}, {-1, 0}, {1, 2}}
	for left := 0; left < 3; left++ {
		row, err := got.Row(uint16(left))
		if err != nil {
			t.Fatalf("Row(%d): %v", left, err)
		}
		for right := 0; right < 2; right++ {
			if row[right] != want[left][right] {
				t.Fatalf("row[%d][%d] = %d, want %d", left, right, row[right], want[left][right])
			}
			c, err := got.Cost(uint16(left), uint16(right))
			if err != nil {
				t.Fatalf("Cost(%d,%d): %v", left, right, err)
			}
			if c != want[left][right] {
				t.Fatalf("Cost(%d,%d) = %d, want %d", left, right, c, want[left][right])
			}
		}
	}
}

func TestMatrixOutOfRange(t *testing.T) {
	m, err := NewMatrix(2, 2, []int16{0, 0, 0, 0})
	if err != nil {
		t.Fatalf("NewMatrix: %v", err)
	}
	if _, err := m.Row(2); err == nil {
		t.Fatalf("expected ErrOutOfRange for leftID 2 on a height-2 matrix")
	}
	if _, err := m.Cost(0, 2); err == nil {
		t.Fatalf("expected ErrOutOfRange for rightID 2 on a width-2 matrix")
	}
}

func TestNewMatrixSizeMismatch(t *testing.T) {
	if _, err := NewMatrix(2, 2, []int16{1, 2, 3}); err == nil {
		t.Fatalf("expected error for mismatched costs length")
	}
}
