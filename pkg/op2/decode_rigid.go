package op2

// Rigid elements. NX and MSC differ only by a trailing thermal expansion
// coefficient (alpha) word, so each record has a variant with and without
// it and the exact payload length picks one.

func rbarNX(_ *Chunk, v View, _ int) (Entity, error) {
	e := &RBAR{
		EID: v.Ints[0], GA: v.Ints[1], GB: v.Ints[2],
		CNA: v.Ints[3], CNB: v.Ints[4], CMA: v.Ints[5], CMB: v.Ints[6],
	}
	if err := checkIDs("RBAR", []int{e.EID, e.GA, e.GB}); err != nil {
		return nil, err
	}
	for _, comp := range []int{e.CNA, e.CNB, e.CMA, e.CMB} {
		if err := checkComponent("RBAR", comp); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func rbarMSC(c *Chunk, v View, off int) (Entity, error) {
	e, err := rbarNX(c, v, off)
	if err != nil {
		return nil, err
	}
	e.(*RBAR).Alpha = v.Floats[7]
	return e, nil
}

var decodeRBAR = dual(
	variant{name: "NX", words: 7, decode: flat(7, rbarNX)},
	variant{name: "MSC", words: 8, decode: flat(8, rbarMSC)},
)

func rrodNX(_ *Chunk, v View, _ int) (Entity, error) {
	e := &RROD{EID: v.Ints[0], GA: v.Ints[1], GB: v.Ints[2], CMA: v.Ints[3], CMB: v.Ints[4]}
	if err := checkIDs("RROD", []int{e.EID, e.GA, e.GB}); err != nil {
		return nil, err
	}
	if err := checkComponent("RROD", e.CMA); err != nil {
		return nil, err
	}
	if err := checkComponent("RROD", e.CMB); err != nil {
		return nil, err
	}
	return e, nil
}

func rrodMSC(c *Chunk, v View, off int) (Entity, error) {
	e, err := rrodNX(c, v, off)
	if err != nil {
		return nil, err
	}
	e.(*RROD).Alpha = v.Floats[5]
	return e, nil
}

var decodeRROD = dual(
	variant{name: "NX", words: 5, decode: flat(5, rrodNX)},
	variant{name: "MSC", words: 6, decode: flat(6, rrodMSC)},
)

// pairsUntil reads (grid, comp) pairs from i until the (stop, stop) pair.
func pairsUntil(ints []int, i, stop int, what string) (grids, comps []int, next int, err error) {
	for {
		if len(ints)-i < 2 {
			return nil, nil, 0, malformed("%s lacks its %d %d terminator", what, stop, stop)
		}
		g, comp := ints[i], ints[i+1]
		i += 2
		if g == stop {
			if comp != stop {
				return nil, nil, 0, malformed("%s partial terminator at word %d", what, i-2)
			}
			return grids, comps, i, nil
		}
		if err := checkID(what+" grid", g); err != nil {
			return nil, nil, 0, err
		}
		if err := checkComponent(what, comp); err != nil {
			return nil, nil, 0, err
		}
		grids = append(grids, g)
		comps = append(comps, comp)
	}
}

// decodeRBE1 handles [eid (gn cn)... -2 -2 (gm cm)... -1 -1 (alpha unused)?].
// The unused word after alpha must be zero.
func decodeRBE1(trailer int) DecodeFunc {
	return func(c *Chunk) ([]Entity, int, error) {
		v, err := c.Words()
		if err != nil {
			return nil, 0, err
		}
		n := v.Len()
		var out []Entity
		for i := 0; i < n; {
			e := &RBE1{EID: v.Ints[i]}
			if err := checkID("RBE1", e.EID); err != nil {
				return nil, 0, err
			}
			i++
			e.IndependentGrids, e.IndependentComponents, i, err = pairsUntil(v.Ints, i, sentinelGroup, "RBE1 independent")
			if err != nil {
				return nil, 0, err
			}
			e.DependentGrids, e.DependentComponents, i, err = pairsUntil(v.Ints, i, sentinelEnd, "RBE1 dependent")
			if err != nil {
				return nil, 0, err
			}
			if len(e.IndependentGrids) == 0 || len(e.DependentGrids) == 0 {
				return nil, 0, malformed("RBE1 %d has an empty grid list", e.EID)
			}
			if trailer > 0 {
				if n-i < trailer {
					return nil, 0, malformed("RBE1 %d lacks its alpha", e.EID)
				}
				e.Alpha = v.Floats[i]
				if trailer > 1 && v.Ints[i+1] != 0 {
					return nil, 0, malformed("RBE1 %d unused word after alpha is %d", e.EID, v.Ints[i+1])
				}
				i += trailer
			}
			out = append(out, e)
		}
		return out, len(c.Data), nil
	}
}

// decodeRBE2 handles [eid gn cm gm... -1 alpha?].
func decodeRBE2(trailer int) DecodeFunc {
	return func(c *Chunk) ([]Entity, int, error) {
		v, err := c.Words()
		if err != nil {
			return nil, 0, err
		}
		segs, err := SplitTrailing(v.Ints, sentinelEnd, trailer)
		if err != nil {
			return nil, 0, err
		}
		out := make([]Entity, 0, len(segs))
		for _, s := range segs {
			w := v.Ints[s.Start:s.End]
			if len(w) < 4 {
				return nil, 0, malformed("RBE2 needs eid, grid, component and a dependent grid, have %d words", len(w))
			}
			e := &RBE2{EID: w[0], Grid: w[1], Component: w[2], DependentGrids: append([]int(nil), w[3:]...)}
			if err := checkIDs("RBE2", w); err != nil {
				return nil, 0, err
			}
			if err := checkComponent("RBE2", e.Component); err != nil {
				return nil, 0, err
			}
			if trailer > 0 {
				e.Alpha = v.Floats[s.End+1]
			}
			out = append(out, e)
		}
		return out, len(c.Data), nil
	}
}

// decodeRBE3 handles
//
//	eid refgrid refc (wt c g... -1)... [-2 (gm cm)...] -3 alpha?
//
// The weight groups end at the -2 (or the -3 when there are no dependent
// grids).
func decodeRBE3(trailer int) DecodeFunc {
	return func(c *Chunk) ([]Entity, int, error) {
		v, err := c.Words()
		if err != nil {
			return nil, 0, err
		}
		segs, err := SplitTrailing(v.Ints, sentinelElem, trailer)
		if err != nil {
			return nil, 0, err
		}
		out := make([]Entity, 0, len(segs))
		for _, s := range segs {
			e, err := rbe3(v.Slice(s.Start, s.End))
			if err != nil {
				return nil, 0, err
			}
			if trailer > 0 {
				e.Alpha = v.Floats[s.End+1]
			}
			out = append(out, e)
		}
		return out, len(c.Data), nil
	}
}

func rbe3(w View) (*RBE3, error) {
	if w.Len() < 3 {
		return nil, malformed("RBE3 header needs 3 words, have %d", w.Len())
	}
	e := &RBE3{EID: w.Ints[0], RefGrid: w.Ints[1], RefComponent: w.Ints[2]}
	if err := checkIDs("RBE3", w.Ints[:2]); err != nil {
		return nil, err
	}
	if err := checkComponent("RBE3 reference", e.RefComponent); err != nil {
		return nil, err
	}

	body := w.Slice(3, w.Len())
	levels, err := SplitLevels(body.Ints, []int{sentinelGroup, sentinelEnd}, true)
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 || len(levels) > 2 {
		return nil, malformed("RBE3 %d has %d -2 separated sections", e.EID, len(levels))
	}

	for _, g := range levels[0].Children {
		if g.Open {
			return nil, malformed("RBE3 %d weight group lacks its -1 terminator", e.EID)
		}
		if g.Len() < 3 {
			return nil, malformed("RBE3 %d weight group of %d words", e.EID, g.Len())
		}
		grp := WeightGroup{
			Weight:    body.Floats[g.Start],
			Component: body.Ints[g.Start+1],
			Grids:     append([]int(nil), body.Ints[g.Start+2:g.End]...),
		}
		if err := checkComponent("RBE3 weight group", grp.Component); err != nil {
			return nil, err
		}
		if err := checkIDs("RBE3 weight group", grp.Grids); err != nil {
			return nil, err
		}
		e.Groups = append(e.Groups, grp)
	}
	if len(e.Groups) == 0 {
		return nil, malformed("RBE3 %d has no weight groups", e.EID)
	}

	if len(levels) == 2 {
		dep := body.Ints[levels[1].Start:levels[1].End]
		if err := checkFree(dep, sentinelEnd, sentinelGroup); err != nil {
			return nil, err
		}
		if len(dep)%2 != 0 {
			return nil, malformed("RBE3 %d dependent list of %d words is not pairs", e.EID, len(dep))
		}
		for i := 0; i < len(dep); i += 2 {
			if err := checkID("RBE3 dependent grid", dep[i]); err != nil {
				return nil, err
			}
			if err := checkComponent("RBE3 dependent", dep[i+1]); err != nil {
				return nil, err
			}
			e.DependentGrids = append(e.DependentGrids, dep[i])
			e.DependentComponents = append(e.DependentComponents, dep[i+1])
		}
	}
	return e, nil
}

var (
	decodeRBE1Dual = dual(
		variant{name: "NX", decode: decodeRBE1(0)},
		variant{name: "MSC", decode: decodeRBE1(2)},
	)
	decodeRBE2Dual = dual(
		variant{name: "NX", decode: decodeRBE2(0)},
		variant{name: "MSC", decode: decodeRBE2(1)},
	)
	decodeRBE3Dual = dual(
		variant{name: "NX", decode: decodeRBE3(0)},
		variant{name: "MSC", decode: decodeRBE3(1)},
	)
)
