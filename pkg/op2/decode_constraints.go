package op2

// maxNXNode is the first grid id NX writes for nodes that do not exist in
// the model; SPC entries on them are dropped.
const maxNXNode = 100000000

// spcNX reads [sid grid comp enforced].
func spcNX(c *Chunk, v View, _ int) (Entity, error) {
	sid, grid, comp := v.Ints[0], v.Ints[1], v.Ints[2]
	if err := checkID("SPC set", sid); err != nil {
		return nil, err
	}
	if err := checkComponent("SPC", comp); err != nil {
		return nil, err
	}
	if grid >= maxNXNode {
		c.Warnf("SPC %d on invalid node %d skipped", sid, grid)
		return nil, nil
	}
	if err := checkID("SPC grid", grid); err != nil {
		return nil, err
	}
	return &SPC{SID: sid, Grid: grid, Component: comp, Enforced: v.Floats[3]}, nil
}

// spcMSC reads [sid grid comp 0 enforced].
func spcMSC(_ *Chunk, v View, _ int) (Entity, error) {
	sid, grid, comp := v.Ints[0], v.Ints[1], v.Ints[2]
	if err := checkID("SPC set", sid); err != nil {
		return nil, err
	}
	if err := checkID("SPC grid", grid); err != nil {
		return nil, err
	}
	if err := checkComponent("SPC", comp); err != nil {
		return nil, err
	}
	if v.Ints[3] != 0 {
		return nil, malformed("SPC %d unused word is %d", sid, v.Ints[3])
	}
	return &SPC{SID: sid, Grid: grid, Component: comp, Enforced: v.Floats[4]}, nil
}

var decodeSPC = dual(
	variant{name: "NX", words: 4, decode: flat(4, spcNX)},
	variant{name: "MSC", words: 5, decode: flat(5, spcMSC)},
)

// decodeSPC1 handles [sid comp thru ids... -1]. A thru range may chain into
// another instance; an instance with no ids yields nothing.
func decodeSPC1(c *Chunk) ([]Entity, int, error) {
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
			sid, comp := h[0], h[1]
			if err := checkID("SPC1 set", sid); err != nil {
				return err
			}
			if err := checkComponent("SPC1", comp); err != nil {
				return err
			}
			if len(ids) == 0 {
				c.Warnf("SPC1 %d has no grids", sid)
				return nil
			}
			if err := checkIDs("SPC1", ids); err != nil {
				return err
			}
			out = append(out, &SPC1{SID: sid, Component: comp, Grids: ids})
			return nil
		})
		if err != nil {
			return nil, 0, err
		}
	}
	return out, len(c.Data), nil
}

// decodeSPCOFF1 handles [comp thru ids... -1] with chained thru ranges.
func decodeSPCOFF1(c *Chunk) ([]Entity, int, error) {
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
			if err := checkComponent("SPCOFF1", h[0]); err != nil {
				return err
			}
			if len(ids) == 0 {
				return malformed("SPCOFF1 list is empty")
			}
			if err := checkIDs("SPCOFF1", ids); err != nil {
				return err
			}
			out = append(out, &SPCOFF1{Component: h[0], Grids: ids})
			return nil
		})
		if err != nil {
			return nil, 0, err
		}
	}
	return out, len(c.Data), nil
}

// decodeSetUnion handles [sid set... -1] for SPCADD and MPCADD.
func decodeSetUnion(card string) DecodeFunc {
	return func(c *Chunk) ([]Entity, int, error) {
		v, err := c.Words()
		if err != nil {
			return nil, 0, err
		}
		segs, err := Split(v.Ints, sentinelEnd, false)
		if err != nil {
			return nil, 0, err
		}
		out := make([]Entity, 0, len(segs))
		for _, s := range segs {
			ids := v.Ints[s.Start:s.End]
			if len(ids) < 2 {
				return nil, 0, malformed("%s needs a set id and at least one member, have %d words", card, len(ids))
			}
			if err := checkIDs(card, ids); err != nil {
				return nil, 0, err
			}
			out = append(out, &SetUnion{Type: card, SID: ids[0], Sets: append([]int(nil), ids[1:]...)})
		}
		return out, len(c.Data), nil
	}
}

// decodeMPC handles [sid grid comp coef (grid comp coef)... -1 -1 -1].
func decodeMPC(c *Chunk) ([]Entity, int, error) {
	v, err := c.Words()
	if err != nil {
		return nil, 0, err
	}
	n := v.Len()
	var out []Entity
	for i := 0; i < n; {
		if n-i < 4 {
			return nil, 0, malformed("MPC header at word %d needs 4 words, have %d", i, n-i)
		}
		m := &MPC{SID: v.Ints[i]}
		if err := checkID("MPC set", m.SID); err != nil {
			return nil, 0, err
		}
		m.Grids = append(m.Grids, v.Ints[i+1])
		m.Components = append(m.Components, v.Ints[i+2])
		m.Coefficients = append(m.Coefficients, v.Floats[i+3])
		i += 4
		for {
			if n-i < 3 {
				return nil, 0, malformed("MPC %d lacks its -1 -1 -1 terminator", m.SID)
			}
			g, comp := v.Ints[i], v.Ints[i+1]
			if g == sentinelEnd {
				if comp != sentinelEnd || v.Ints[i+2] != sentinelEnd {
					return nil, 0, malformed("MPC %d partial terminator at word %d", m.SID, i)
				}
				i += 3
				break
			}
			m.Grids = append(m.Grids, g)
			m.Components = append(m.Components, comp)
			m.Coefficients = append(m.Coefficients, v.Floats[i+2])
			i += 3
		}
		if err := checkIDs("MPC grid", m.Grids); err != nil {
			return nil, 0, err
		}
		for _, comp := range m.Components {
			if err := checkComponent("MPC", comp); err != nil {
				return nil, 0, err
			}
		}
		out = append(out, m)
	}
	return out, len(c.Data), nil
}

var decodeSuport = flat(2, func(_ *Chunk, v View, _ int) (Entity, error) {
	if err := checkID("SUPORT grid", v.Ints[0]); err != nil {
		return nil, err
	}
	if err := checkComponent("SUPORT", v.Ints[1]); err != nil {
		return nil, err
	}
	return &Suport{Grid: v.Ints[0], Component: v.Ints[1]}, nil
})

// decodeSuport1 handles [sid (grid comp)... -1 -1].
func decodeSuport1(c *Chunk) ([]Entity, int, error) {
	v, err := c.Words()
	if err != nil {
		return nil, 0, err
	}
	n := v.Len()
	var out []Entity
	for i := 0; i < n; {
		s := &Suport1{SID: v.Ints[i]}
		if err := checkID("SUPORT1 set", s.SID); err != nil {
			return nil, 0, err
		}
		i++
		for {
			if n-i < 2 {
				return nil, 0, malformed("SUPORT1 %d lacks its -1 -1 terminator", s.SID)
			}
			g, comp := v.Ints[i], v.Ints[i+1]
			i += 2
			if g == sentinelEnd {
				if comp != sentinelEnd {
					return nil, 0, malformed("SUPORT1 %d partial terminator", s.SID)
				}
				break
			}
			if err := checkID("SUPORT1 grid", g); err != nil {
				return nil, 0, err
			}
			if err := checkComponent("SUPORT1", comp); err != nil {
				return nil, 0, err
			}
			s.Grids = append(s.Grids, g)
			s.Components = append(s.Components, comp)
		}
		if len(s.Grids) == 0 {
			return nil, 0, malformed("SUPORT1 %d is empty", s.SID)
		}
		out = append(out, s)
	}
	return out, len(c.Data), nil
}
