package op2

// Degree-of-freedom set records: ASET/BSET/CSET/QSET/OMIT and their list
// forms, USET/USET1, SEQSET1/SECSET1.

func decodeDOFSet(card string) DecodeFunc {
	return flat(2, func(_ *Chunk, v View, _ int) (Entity, error) {
		grid, comp := v.Ints[0], v.Ints[1]
		if err := checkID(card+" grid", grid); err != nil {
			return nil, err
		}
		if err := checkComponent(card, comp); err != nil {
			return nil, err
		}
		return &DOFSet{Type: card, Grid: grid, Component: comp}, nil
	})
}

// decodeDOFSet1 handles [comp thru ids... -1]. A final list may omit its
// terminator.
func decodeDOFSet1(card string) DecodeFunc {
	return func(c *Chunk) ([]Entity, int, error) {
		v, err := c.Words()
		if err != nil {
			return nil, 0, err
		}
		segs, err := Split(v.Ints, sentinelEnd, true)
		if err != nil {
			return nil, 0, err
		}
		var out []Entity
		for _, s := range segs {
			err := chain(v.Ints[s.Start:s.End], 1, func(h, ids []int) error {
				if err := checkComponent(card, h[0]); err != nil {
					return err
				}
				if len(ids) == 0 {
					return malformed("%s list is empty", card)
				}
				if err := checkIDs(card, ids); err != nil {
					return err
				}
				out = append(out, &DOFSet1{Type: card, Component: h[0], Grids: ids})
				return nil
			})
			if err != nil {
				return nil, 0, err
			}
		}
		return out, len(c.Data), nil
	}
}

// decodeUSet reads [name grid comp] where name is a one word ASCII tag.
func decodeUSet(c *Chunk) ([]Entity, int, error) {
	ws := c.WordSize()
	return flat(3, func(c *Chunk, v View, off int) (Entity, error) {
		name, err := FixedString(c.Data, off, ws)
		if err != nil {
			return nil, err
		}
		if err := checkID("USET grid", v.Ints[1]); err != nil {
			return nil, err
		}
		if err := checkComponent("USET", v.Ints[2]); err != nil {
			return nil, err
		}
		return &USet{Name: name, Grid: v.Ints[1], Component: v.Ints[2]}, nil
	})(c)
}

// decodeUSet1 reads instances of [name comp thru ...]. thru=0 lists ids up
// to a -1 or the end of the payload; thru=1 is a bare id1 id2 range.
func decodeUSet1(c *Chunk) ([]Entity, int, error) {
	v, err := c.Words()
	if err != nil {
		return nil, 0, err
	}
	ws := c.WordSize()
	n := v.Len()
	var out []Entity
	for i := 0; i < n; {
		if n-i < 3 {
			return nil, 0, malformed("USET1 header at word %d needs 3 words, have %d", i, n-i)
		}
		name, err := FixedString(c.Data, i*ws, ws)
		if err != nil {
			return nil, 0, err
		}
		comp, flag := v.Ints[i+1], v.Ints[i+2]
		if err := checkComponent("USET1", comp); err != nil {
			return nil, 0, err
		}
		i += 3
		var ids []int
		switch flag {
		case 0:
			start := i
			for i < n && v.Ints[i] != sentinelEnd {
				i++
			}
			ids = append([]int(nil), v.Ints[start:i]...)
			if i < n {
				i++
			}
		case 1:
			if n-i < 2 {
				return nil, 0, malformed("USET1 thru range needs 2 ids, have %d", n-i)
			}
			ids, err = thruRange(v.Ints[i], v.Ints[i+1])
			if err != nil {
				return nil, 0, err
			}
			i += 2
		default:
			return nil, 0, malformed("USET1 thru flag %d", flag)
		}
		if len(ids) == 0 {
			c.Warnf("empty %s set skipped", name)
			continue
		}
		if err := checkIDs("USET1", ids); err != nil {
			return nil, 0, err
		}
		out = append(out, &USet1{Name: name, Component: comp, Grids: ids})
	}
	return out, len(c.Data), nil
}

// decodeSuperSet1 handles [seid comp thru ids... -1] where a thru range may
// chain into another instance.
func decodeSuperSet1(card string) DecodeFunc {
	return func(c *Chunk) ([]Entity, int, error) {
		v, err := c.Words()
		if err != nil {
			return nil, 0, err
		}
		segs, err := Split(v.Ints, sentinelEnd, true)
		if err != nil {
			return nil, 0, err
		}
		var out []Entity
		for _, s := range segs {
			err := chain(v.Ints[s.Start:s.End], 2, func(h, ids []int) error {
				if h[0] < 0 {
					return malformed("%s superelement %d", card, h[0])
				}
				if err := checkComponent(card, h[1]); err != nil {
					return err
				}
				if len(ids) == 0 {
					return malformed("%s list is empty", card)
				}
				if err := checkIDs(card, ids); err != nil {
					return err
				}
				out = append(out, &SuperSet1{Type: card, SEID: h[0], Component: h[1], Grids: ids})
				return nil
			})
			if err != nil {
				return nil, 0, err
			}
		}
		return out, len(c.Data), nil
	}
}
