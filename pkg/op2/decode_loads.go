package op2

// spcdNX reads [sid grid comp enforced].
func spcdNX(_ *Chunk, v View, _ int) (Entity, error) {
	sid, grid, comp := v.Ints[0], v.Ints[1], v.Ints[2]
	if err := checkID("SPCD set", sid); err != nil {
		return nil, err
	}
	if err := checkID("SPCD grid", grid); err != nil {
		return nil, err
	}
	if err := checkComponent("SPCD", comp); err != nil {
		return nil, err
	}
	return &SPCD{SID: sid, Grid: grid, Component: comp, Enforced: v.Floats[3]}, nil
}

// spcdMSC reads [sid grid comp 0 enforced].
func spcdMSC(c *Chunk, v View, off int) (Entity, error) {
	if v.Ints[3] != 0 {
		return nil, malformed("SPCD %d unused word is %d", v.Ints[0], v.Ints[3])
	}
	return spcdNX(c, View{
		Ints:   []int{v.Ints[0], v.Ints[1], v.Ints[2], v.Ints[4]},
		Floats: []float64{v.Floats[0], v.Floats[1], v.Floats[2], v.Floats[4]},
	}, off)
}

var decodeSPCD = dual(
	variant{name: "NX", words: 4, decode: flat(4, spcdNX)},
	variant{name: "MSC", words: 5, decode: flat(5, spcdMSC)},
)
