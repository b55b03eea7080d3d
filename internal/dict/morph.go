package dict

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode/utf8"
)

// ErrMalformedRecord is returned by DecodeMorph when a length prefix
// would overrun the buffer or (with ValidateUTF8 set) surface/contents
// bytes are not valid UTF-8.
var ErrMalformedRecord = errors.New("dict: malformed morph record")

// ValidateUTF8 gates the surface/contents UTF-8 check in DecodeMorph.
// Dictionaries produced by internal/compiler are already known-valid;
// this defaults to on because a hand-assembled or corrupted file is not
// something this package should trust silently.
var ValidateUTF8 = true

// Morph is one dictionary entry: a surface form with its connection
// identifiers, emission weight, and a comma-separated feature string.
type Morph struct {
	Surface  string
	LeftID   uint16
	RightID  uint16
	Weight   int16
	Contents string
}

// Features splits Contents on "," lazily, yielding each field without
// building an intermediate slice, via Go's range-over-func iterators.
func (m Morph) Features() iter.Seq[string] {
	return func(yield func(string) bool) {
		if m.Contents == "" {
			return
		}
		rest := m.Contents
		for {
			i := strings.IndexByte(rest, ',')
			if i < 0 {
				yield(rest)
				return
			}
			if !yield(rest[:i]) {
				return
			}
			rest = rest[i+1:]
		}
	}
}

// EncodeMorph writes m's on-disk record to w and returns the number of
// bytes written: u32 surface length, surface bytes, u16 left_id, u16
// right_id, i16 weight, u32 contents length, contents bytes.
func EncodeMorph(w io.Writer, m Morph) (int, error) {
	var hdr [8]byte
	n := 0

	byteOrder.PutUint32(hdr[:4], uint32(len(m.Surface)))
	nn, err := w.Write(hdr[:4])
	n += nn
	if err != nil {
		return n, err
	}
	nn, err = io.WriteString(w, m.Surface)
	n += nn
	if err != nil {
		return n, err
	}

	byteOrder.PutUint16(hdr[0:2], m.LeftID)
	byteOrder.PutUint16(hdr[2:4], m.RightID)
	byteOrder.PutUint16(hdr[4:6], uint16(m.Weight))
	nn, err = w.Write(hdr[:6])
	n += nn
	if err != nil {
		return n, err
	}

	byteOrder.PutUint32(hdr[:4], uint32(len(m.Contents)))
	nn, err = w.Write(hdr[:4])
	n += nn
	if err != nil {
		return n, err
	}
	nn, err = io.WriteString(w, m.Contents)
	n += nn
	return n, err
}

// EncodedLen returns the number of bytes EncodeMorph will write for m,
// for callers sizing an arena before encoding into it.
func EncodedLen(m Morph) int {
	return 4 + len(m.Surface) + 2 + 2 + 2 + 4 + len(m.Contents)
}

// DecodeMorph reads one record from the front of b, returning the
// decoded Morph and the number of bytes consumed. The returned strings
// borrow from b; callers that retain a Morph past b's lifetime must
// copy.
func DecodeMorph(b []byte) (Morph, int, error) {
	if len(b) < 4 {
		return Morph{}, 0, fmt.Errorf("%w: truncated surface length", ErrMalformedRecord)
	}
	surfLen := int(byteOrder.Uint32(b))
	n := 4
	if surfLen < 0 || n+surfLen > len(b) {
		return Morph{}, 0, fmt.Errorf("%w: surface length %d exceeds buffer", ErrMalformedRecord, surfLen)
	}
	surface := b[n : n+surfLen]
	n += surfLen

	if n+2+2+2+4 > len(b) {
		return Morph{}, 0, fmt.Errorf("%w: truncated fixed fields", ErrMalformedRecord)
	}
	leftID := byteOrder.Uint16(b[n:])
	n += 2
	rightID := byteOrder.Uint16(b[n:])
	n += 2
	weight := int16(byteOrder.Uint16(b[n:]))
	n += 2
	contentsLen := int(byteOrder.Uint32(b[n:]))
	n += 4
	if contentsLen < 0 || n+contentsLen > len(b) {
		return Morph{}, 0, fmt.Errorf("%w: contents length %d exceeds buffer", ErrMalformedRecord, contentsLen)
	}
	contents := b[n : n+contentsLen]
	n += contentsLen

	if ValidateUTF8 {
		if !utf8.Valid(surface) {
			return Morph{}, 0, fmt.Errorf("%w: surface is not valid UTF-8", ErrMalformedRecord)
		}
		if !utf8.Valid(contents) {
			return Morph{}, 0, fmt.Errorf("%w: contents is not valid UTF-8", ErrMalformedRecord)
		}
	}

	return Morph{
		Surface:  string(surface),
		LeftID:   leftID,
		RightID:  rightID,
		Weight:   weight,
		Contents: string(contents),
	}, n, nil
}
