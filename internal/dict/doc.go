// Package dict implements the known-word dictionary: a morph record codec
// (morph.go), a connection-cost matrix reader (matrix.go), and the facade
// that ties both to an FST program for common-prefix lookup (dict.go).
//
// On-disk layout note: every format in this package is documented as
// "native-endian" by its origin. Go has no single portable native-endian
// encoder, so this package always reads and writes little-endian,
// unconditionally, on every platform. A dictionary built on one machine
// is therefore portable to any other: not truly host-native, but a
// stricter and simpler contract to implement and test.
package dict

import "encoding/binary"

var byteOrder = binary.LittleEndian
