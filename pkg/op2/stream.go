package op2

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// markerSize is the width of the Fortran block length markers. Markers stay
// 4 bytes wide in double precision streams.
const markerSize = 4

// DetectByteOrder inspects the first block marker of a stream. Little-endian
// is tried first.
func DetectByteOrder(buf []byte) (binary.ByteOrder, error) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		if _, _, err := blockAt(buf, 0, order); err == nil {
			return order, nil
		}
	}
	return nil, fmt.Errorf("%w: no valid leading block marker", ErrCorruptStream)
}

// ResolveByteOrder maps "little", "big" or "auto" (or "") to a byte order.
// auto inspects the leading block marker of data.
func ResolveByteOrder(name string, data []byte) (binary.ByteOrder, error) {
	switch name {
	case "", "auto":
		return DetectByteOrder(data)
	case "little":
		return binary.LittleEndian, nil
	case "big":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("unknown byte order %q (want auto, little or big)", name)
	}
}

// OrderName returns "little" or "big".
func OrderName(order binary.ByteOrder) string {
	if order == binary.BigEndian {
		return "big"
	}
	return "little"
}

func blockAt(buf []byte, off int, order binary.ByteOrder) (int, int, error) {
	if len(buf)-off < 2*markerSize {
		return 0, 0, fmt.Errorf("%w: %d bytes at offset %d cannot hold a block", ErrCorruptStream, len(buf)-off, off)
	}
	n := int(int32(order.Uint32(buf[off:])))
	if n < 0 || n > len(buf)-off-2*markerSize {
		return 0, 0, fmt.Errorf("%w: block length %d at offset %d", ErrCorruptStream, n, off)
	}
	closing := int(int32(order.Uint32(buf[off+markerSize+n:])))
	if closing != n {
		return 0, 0, fmt.Errorf("%w: block at offset %d opens with %d and closes with %d", ErrCorruptStream, off, n, closing)
	}
	return off + markerSize, n, nil
}

// Reader walks the Fortran blocks of an in-memory stream.
type Reader struct {
	buf   []byte
	order binary.ByteOrder
	off   int
}

// NewReader returns a reader positioned at the start of buf.
func NewReader(buf []byte, order binary.ByteOrder) *Reader {
	return &Reader{buf: buf, order: order}
}

// Next returns the payload offset and length of the next block, or io.EOF
// once the stream is exhausted.
func (r *Reader) Next() (int, int, error) {
	if r.off == len(r.buf) {
		return 0, 0, io.EOF
	}
	off, n, err := blockAt(r.buf, r.off, r.order)
	if err != nil {
		return 0, 0, err
	}
	r.off = off + n + markerSize
	return off, n, nil
}

// Offset returns the byte position of the next block marker.
func (r *Reader) Offset() int {
	return r.off
}

// Stats summarizes one DecodeStream call.
type Stats struct {
	Blocks   int            `json:"blocks"`
	Markers  int            `json:"markers"`
	Decoded  int            `json:"decoded"`
	Skipped  int            `json:"skipped"`
	Failed   map[string]int `json:"failed,omitempty"`
	Entities int            `json:"entities"`
}

// FailedTotal sums failures across error kinds.
func (s Stats) FailedTotal() int {
	total := 0
	for _, n := range s.Failed {
		total += n
	}
	return total
}

type countingSink struct {
	EntitySink
	n int
}

func (s *countingSink) RegisterEntity(e Entity) {
	s.n++
	s.EntitySink.RegisterEntity(e)
}

// DecodeStream decodes every block of buf as a GEOM4 record. Blocks of a
// single word are table markers and are passed over. Record failures are
// counted and logged but never stop the stream; broken framing does.
func (d *Decoder) DecodeStream(ctx context.Context, sink EntitySink, diag Diagnostics, buf []byte) (Stats, error) {
	stats := Stats{Failed: map[string]int{}}
	counter := &countingSink{EntitySink: sink}
	r := NewReader(buf, d.format.order())
	ws := d.format.Precision.WordSize()
	for {
		if err := ctx.Err(); err != nil {
			stats.Entities = counter.n
			return stats, err
		}
		off, n, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			stats.Entities = counter.n
			return stats, err
		}
		stats.Blocks++
		if n <= ws {
			stats.Markers++
			continue
		}
		skipped, err := d.decodeChunk(counter, diag, buf, off, n)
		switch {
		case err != nil:
			stats.Failed[ErrorKind(err)]++
		case skipped:
			stats.Skipped++
		default:
			stats.Decoded++
		}
	}
	stats.Entities = counter.n
	return stats, nil
}
