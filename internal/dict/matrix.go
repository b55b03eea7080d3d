package dict

import (
	"errors"
	"fmt"
	"io"
)

// ErrOutOfRange is returned by Matrix.Row/Matrix.Cost when an id
// exceeds the matrix's declared dimensions.
var ErrOutOfRange = errors.New("dict: connection id out of range")

// Matrix is a read-only width x height table of bigram connection
// costs. cost(rightID, leftID) == table[leftID*width + rightID]: rows
// are indexed by leftID, columns by rightID.
type Matrix struct {
	width, height int
	costs         []int16
}

// ReadMatrix decodes the on-disk layout: u16 width, u16 height, then
// width*height i16 costs, row-major on leftID.
func ReadMatrix(r io.Reader) (*Matrix, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("dict: reading matrix header: %w", err)
	}
	width := int(byteOrder.Uint16(hdr[0:2]))
	height := int(byteOrder.Uint16(hdr[2:4]))

	body := make([]byte, width*height*2)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("dict: reading matrix body (%dx%d): %w", width, height, err)
	}
	costs := make([]int16, width*height)
	for i := range costs {
		costs[i] = int16(byteOrder.Uint16(body[i*2:]))
	}
	return &Matrix{width: width, height: height, costs: costs}, nil
}

// WriteTo encodes m in the on-disk layout and returns the number of
// bytes written.
func (m *Matrix) WriteTo(w io.Writer) (int64, error) {
	hdr := make([]byte, 4)
	byteOrder.PutUint16(hdr[0:2], uint16(m.width))
	byteOrder.PutUint16(hdr[2:4], uint16(m.height))
	n, err := w.Write(hdr)
	if err != nil {
		return int64(n), err
	}
	body := make([]byte, len(m.costs)*2)
	for i, c := range m.costs {
		byteOrder.PutUint16(body[i*2:], uint16(c))
	}
	nn, err := w.Write(body)
	return int64(n + nn), err
}

// Width returns the matrix's declared width (valid rightID upper bound).
func (m *Matrix) Width() int { return m.width }

// Height returns the matrix's declared height (valid leftID upper bound).
func (m *Matrix) Height() int { return m.height }

// Row returns the slice of width costs for leftID, a borrowed view into
// m's backing array so inner Viterbi loops can index it directly after
// one bounds check.
func (m *Matrix) Row(leftID uint16) ([]int16, error) {
	if int(leftID) >= m.height {
		return nil, fmt.Errorf("%w: leftID %d >= height %d", ErrOutOfRange, leftID, m.height)
	}
	start := int(leftID) * m.width
	return m.costs[start : start+m.width], nil
}

// Cost returns cost(rightID, leftID).
func (m *Matrix) Cost(leftID, rightID uint16) (int16, error) {
	row, err := m.Row(leftID)
	if err != nil {
		return 0, err
	}
	if int(rightID) >= m.width {
		return 0, fmt.Errorf("%w: rightID %d >= width %d", ErrOutOfRange, rightID, m.width)
	}
	return row[rightID], nil
}

// NewMatrix builds a Matrix from a flat, row-major (on leftID) costs
// slice, for use by internal/compiler. len(costs) must equal
// width*height.
func NewMatrix(width, height int, costs []int16) (*Matrix, error) {
	if len(costs) != width*height {
		return nil, fmt.Errorf("dict: NewMatrix: %d costs does not match %dx%d", len(costs), width, height)
	}
	return &Matrix{width: width, height: height, costs: costs}, nil
}
