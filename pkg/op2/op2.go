// Package op2 decodes constraint, rigid element, load, and degree-of-freedom
// set records from the GEOM4 table of OP2 result files.
//
// An OP2 table is a sequence of records. Each record starts with a 3-word key
// (item code, increment, revision) followed by a packed payload of 4-byte
// (single precision) or 8-byte (double precision) words. Payloads mix fixed
// width fields with variable-length lists terminated by negative sentinel
// words. Different solver vendors emit incompatible layouts under the same
// key; the decoder tells them apart by exact length arithmetic.
//
// The package never owns the model: decoded entities are handed to a
// caller-supplied EntitySink one chunk at a time, and only after the whole
// chunk decoded cleanly.
package op2

import "encoding/binary"

// Precision selects the stream word width.
type Precision int

const (
	// Single streams use 4-byte integers and floats.
	Single Precision = 4
	// Double streams use 8-byte integers and floats.
	Double Precision = 8
)

// WordSize returns the width in bytes of one payload word.
func (p Precision) WordSize() int {
	if p == Double {
		return 8
	}
	return 4
}

func (p Precision) String() string {
	if p == Double {
		return "double"
	}
	return "single"
}

// ParsePrecision converts "single"/"double" (or "4"/"8") to a Precision.
func ParsePrecision(s string) (Precision, bool) {
	switch s {
	case "single", "4", "":
		return Single, true
	case "double", "8":
		return Double, true
	default:
		return Single, false
	}
}

// Format describes how payload bytes are laid out on the wire.
type Format struct {
	Order     binary.ByteOrder
	Precision Precision
}

// DefaultFormat is little-endian single precision, the layout written by
// every current solver on x86.
func DefaultFormat() Format {
	return Format{Order: binary.LittleEndian, Precision: Single}
}

func (f Format) order() binary.ByteOrder {
	if f.Order == nil {
		return binary.LittleEndian
	}
	return f.Order
}

// Reserved list terminators.
const (
	sentinelEnd   = -1
	sentinelGroup = -2
	sentinelElem  = -3
)

// keyWords is the number of words in the record key prefix.
const keyWords = 3
