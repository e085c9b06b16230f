package op2

import (
	"encoding/binary"
	"math"
	"strings"
)

// View is the integer and float interpretation of one word span. Many
// layouts reuse an offset for either an id or a physical constant, so both
// views are always decoded from the same bytes.
type View struct {
	Ints   []int
	Floats []float64
}

// Len returns the number of words in the view.
func (v View) Len() int {
	return len(v.Ints)
}

// Slice returns the sub-view of words [start, end).
func (v View) Slice(start, end int) View {
	return View{Ints: v.Ints[start:end], Floats: v.Floats[start:end]}
}

// NewView decodes count words of the given width starting at off.
func NewView(buf []byte, off, count, width int, order binary.ByteOrder) (View, error) {
	ints, err := Ints(buf, off, count, width, order)
	if err != nil {
		return View{}, err
	}
	floats, err := Floats(buf, off, count, width, order)
	if err != nil {
		return View{}, err
	}
	return View{Ints: ints, Floats: floats}, nil
}

func checkSpan(buf []byte, off, count, width int) error {
	if width != 4 && width != 8 {
		return malformed("unsupported word width %d", width)
	}
	if off < 0 || count < 0 {
		return truncated("negative span off=%d count=%d", off, count)
	}
	end := off + count*width
	if end > len(buf) || end < off {
		return truncated("need %d bytes at offset %d, have %d", count*width, off, len(buf)-off)
	}
	return nil
}

// Ints decodes count signed integers of width 4 or 8 bytes.
func Ints(buf []byte, off, count, width int, order binary.ByteOrder) ([]int, error) {
	if err := checkSpan(buf, off, count, width); err != nil {
		return nil, err
	}
	out := make([]int, count)
	for i := range out {
		p := buf[off+i*width:]
		if width == 4 {
			out[i] = int(int32(order.Uint32(p)))
		} else {
			out[i] = int(int64(order.Uint64(p)))
		}
	}
	return out, nil
}

// Floats decodes count IEEE-754 floats of width 4 or 8 bytes.
func Floats(buf []byte, off, count, width int, order binary.ByteOrder) ([]float64, error) {
	if err := checkSpan(buf, off, count, width); err != nil {
		return nil, err
	}
	out := make([]float64, count)
	for i := range out {
		p := buf[off+i*width:]
		if width == 4 {
			out[i] = float64(math.Float32frombits(order.Uint32(p)))
		} else {
			out[i] = math.Float64frombits(order.Uint64(p))
		}
	}
	return out, nil
}

// FixedString decodes a space padded ASCII field of width bytes. Trailing
// spaces and NULs are dropped.
func FixedString(buf []byte, off, width int) (string, error) {
	if off < 0 || width < 0 || off+width > len(buf) {
		return "", truncated("need %d string bytes at offset %d", width, off)
	}
	return strings.TrimRight(string(buf[off:off+width]), " \x00"), nil
}
