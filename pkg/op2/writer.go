package op2

import (
	"encoding/binary"
	"math"
)

// Encoder builds a record payload word by word.
type Encoder struct {
	format Format
	buf    []byte
}

// NewEncoder returns an encoder for the given wire format.
func NewEncoder(format Format) *Encoder {
	if format.Precision == 0 {
		format.Precision = Single
	}
	return &Encoder{format: format}
}

// Ints appends integer words.
func (e *Encoder) Ints(vals ...int) *Encoder {
	order := e.format.order()
	for _, v := range vals {
		if e.format.Precision == Double {
			e.buf = appendWord(e.buf, order, 8, uint64(int64(v)))
		} else {
			e.buf = appendWord(e.buf, order, 4, uint64(uint32(int32(v))))
		}
	}
	return e
}

// Floats appends float words.
func (e *Encoder) Floats(vals ...float64) *Encoder {
	order := e.format.order()
	for _, v := range vals {
		if e.format.Precision == Double {
			e.buf = appendWord(e.buf, order, 8, math.Float64bits(v))
		} else {
			e.buf = appendWord(e.buf, order, 4, uint64(math.Float32bits(float32(v))))
		}
	}
	return e
}

// String appends s as one space-padded word. Longer strings are cut.
func (e *Encoder) String(s string) *Encoder {
	ws := e.format.Precision.WordSize()
	word := make([]byte, ws)
	for i := range word {
		word[i] = ' '
	}
	copy(word, s)
	e.buf = append(e.buf, word...)
	return e
}

// Raw appends b unchanged.
func (e *Encoder) Raw(b []byte) *Encoder {
	e.buf = append(e.buf, b...)
	return e
}

// Bytes returns the payload built so far.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Record returns key followed by the payload, unframed; the form
// DecodeChunk takes.
func (e *Encoder) Record(k RecordKey) []byte {
	head := NewEncoder(e.format).Ints(k.Code, k.Increment, k.Revision)
	return append(head.buf, e.buf...)
}

// AppendRecord frames key plus payload as one Fortran block and appends it
// to dst.
func AppendRecord(dst []byte, format Format, k RecordKey, payload []byte) []byte {
	rec := NewEncoder(format).Ints(k.Code, k.Increment, k.Revision).Raw(payload).Bytes()
	return AppendBlock(dst, format, rec)
}

// AppendBlock frames b as one Fortran block.
func AppendBlock(dst []byte, format Format, b []byte) []byte {
	order := format.order()
	dst = appendWord(dst, order, markerSize, uint64(len(b)))
	dst = append(dst, b...)
	return appendWord(dst, order, markerSize, uint64(len(b)))
}

func appendWord(dst []byte, order binary.ByteOrder, width int, v uint64) []byte {
	var w [8]byte
	if width == 8 {
		order.PutUint64(w[:], v)
	} else {
		order.PutUint32(w[:], uint32(v))
	}
	return append(dst, w[:width]...)
}
