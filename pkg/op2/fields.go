package op2

import "fmt"

// maxThruSpan bounds an expanded "id1 THRU id2" range so a corrupt pair
// cannot allocate unbounded memory.
const maxThruSpan = 1 << 22

// validComponent reports whether c is a component code: 0 for scalar points,
// or distinct digits 1-6.
func validComponent(c int) bool {
	if c == 0 {
		return true
	}
	if c < 0 {
		return false
	}
	var seen [7]bool
	for ; c > 0; c /= 10 {
		d := c % 10
		if d < 1 || d > 6 || seen[d] {
			return false
		}
		seen[d] = true
	}
	return true
}

func checkComponent(what string, c int) error {
	if !validComponent(c) {
		return malformed("%s component %d", what, c)
	}
	return nil
}

func checkID(what string, id int) error {
	if id <= 0 {
		return malformed("%s id %d", what, id)
	}
	return nil
}

func checkIDs(what string, ids []int) error {
	for i, id := range ids {
		if id <= 0 {
			return malformed("%s id %d at position %d", what, id, i)
		}
	}
	return nil
}

// thruRange expands the inclusive range lo..hi.
func thruRange(lo, hi int) ([]int, error) {
	if lo <= 0 || hi < lo {
		return nil, malformed("thru range %d..%d", lo, hi)
	}
	if hi-lo >= maxThruSpan {
		return nil, malformed("thru range %d..%d exceeds %d ids", lo, hi, maxThruSpan)
	}
	out := make([]int, 0, hi-lo+1)
	for id := lo; id <= hi; id++ {
		out = append(out, id)
	}
	return out, nil
}

// chain walks a list segment holding one or more instances of
//
//	[head words] thru ids...
//
// thru=0 lists explicit ids to the end of the segment. thru=1 is a two word
// inclusive range after which another instance may follow.
func chain(ints []int, head int, emit func(head, ids []int) error) error {
	for len(ints) > 0 {
		if len(ints) < head+1 {
			return malformed("instance of %d words lacks its %d word header", len(ints), head+1)
		}
		h, flag, rest := ints[:head], ints[head], ints[head+1:]
		var ids []int
		switch flag {
		case 0:
			ids = append([]int(nil), rest...)
			ints = nil
		case 1:
			if len(rest) < 2 {
				return malformed("thru range needs 2 ids, have %d", len(rest))
			}
			r, err := thruRange(rest[0], rest[1])
			if err != nil {
				return err
			}
			ids, ints = r, rest[2:]
		default:
			return malformed("thru flag %d", flag)
		}
		if err := emit(h, ids); err != nil {
			return err
		}
	}
	return nil
}

// flat decodes a payload of fixed entries of words words each. A nil entity
// from build is dropped.
func flat(words int, build func(c *Chunk, v View, off int) (Entity, error)) DecodeFunc {
	return func(c *Chunk) ([]Entity, int, error) {
		stride := words * c.WordSize()
		if len(c.Data)%stride != 0 {
			return nil, 0, truncated("%d bytes is not a multiple of the %d-byte entry", len(c.Data), stride)
		}
		v, err := c.Words()
		if err != nil {
			return nil, 0, err
		}
		n := len(c.Data) / stride
		out := make([]Entity, 0, n)
		for i := 0; i < n; i++ {
			e, err := build(c, v.Slice(i*words, (i+1)*words), i*stride)
			if err != nil {
				return nil, 0, fmt.Errorf("entry %d: %w", i, err)
			}
			if e != nil {
				out = append(out, e)
			}
		}
		return out, len(c.Data), nil
	}
}
