package op2

// Segment is the half-open word range [Start, End) of one list. When Open is
// false the terminating sentinel sits at End; Open marks a terminator that
// was synthesized at end-of-buffer.
type Segment struct {
	Start int
	End   int
	Open  bool
}

// Len returns the number of words in the segment, sentinel excluded.
func (s Segment) Len() int {
	return s.End - s.Start
}

// Node is one level of a layered split.
type Node struct {
	Segment
	Children []Node
}

// Split partitions ints on sentinel. Data after the last sentinel becomes an
// Open segment. A buffer without any sentinel is one Open segment when single
// is set, and malformed otherwise.
func Split(ints []int, sentinel int, single bool) ([]Segment, error) {
	if len(ints) == 0 {
		return nil, nil
	}
	var segs []Segment
	start := 0
	for i, v := range ints {
		if v == sentinel {
			segs = append(segs, Segment{Start: start, End: i})
			start = i + 1
		}
	}
	if len(segs) == 0 {
		if !single {
			return nil, malformed("no %d terminator in %d words", sentinel, len(ints))
		}
		return []Segment{{Start: 0, End: len(ints), Open: true}}, nil
	}
	if start < len(ints) {
		segs = append(segs, Segment{Start: start, End: len(ints), Open: true})
	}
	return segs, nil
}

// SplitTrailing partitions ints on sentinel where every terminator is
// followed by exactly trailer vendor words (an alpha, say). The buffer must
// end exactly after the last trailer.
func SplitTrailing(ints []int, sentinel, trailer int) ([]Segment, error) {
	if trailer == 0 {
		segs, err := Split(ints, sentinel, false)
		if err != nil {
			return nil, err
		}
		if n := len(segs); n > 0 && segs[n-1].Open {
			return nil, malformed("%d words after last %d terminator", segs[n-1].Len(), sentinel)
		}
		return segs, nil
	}
	if len(ints) == 0 {
		return nil, nil
	}
	var segs []Segment
	start, i := 0, 0
	for i < len(ints) {
		if ints[i] != sentinel {
			i++
			continue
		}
		segs = append(segs, Segment{Start: start, End: i})
		i += 1 + trailer
		start = i
	}
	if i > len(ints) {
		return nil, malformed("terminator at word %d lacks %d trailing words", segs[len(segs)-1].End, trailer)
	}
	if start != len(ints) {
		return nil, malformed("%d words after last %d terminator", len(ints)-start, sentinel)
	}
	return segs, nil
}

// SplitLevels splits on sentinels[0] first, then each interior on the next
// level. Inner levels always permit a single implicit segment.
func SplitLevels(ints []int, sentinels []int, single bool) ([]Node, error) {
	if len(sentinels) == 0 {
		return nil, malformed("no sentinel levels")
	}
	return splitRange(ints, 0, len(ints), sentinels, single)
}

func splitRange(ints []int, lo, hi int, sentinels []int, single bool) ([]Node, error) {
	segs, err := Split(ints[lo:hi], sentinels[0], single)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, len(segs))
	for i, s := range segs {
		s.Start += lo
		s.End += lo
		nodes[i].Segment = s
		if len(sentinels) > 1 {
			children, err := splitRange(ints, s.Start, s.End, sentinels[1:], true)
			if err != nil {
				return nil, err
			}
			nodes[i].Children = children
		}
	}
	return nodes, nil
}

// checkFree rejects any reserved sentinel inside a segment assumed free of
// them.
func checkFree(ints []int, sentinels ...int) error {
	for i, v := range ints {
		for _, s := range sentinels {
			if v == s {
				return malformed("stray sentinel %d at word %d", s, i)
			}
		}
	}
	return nil
}
