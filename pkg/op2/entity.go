package op2

import "fmt"

// Entity is one fully decoded model card.
type Entity interface {
	// Card is the bulk data card name, e.g. "SPC1" or "RBE3".
	Card() string
	// EntityID is the identifying number: element, set, or grid id.
	EntityID() int
}

// Mergeable entities describe one logical card that the encoder may split
// across continuation instances. Sinks fold instances with equal MergeKey.
type Mergeable interface {
	Entity
	MergeKey() string
	Merge(next Entity) (Entity, bool)
}

// DOFSet is one (grid, component) member of an ASET, BSET, CSET, QSET or
// OMIT card.
type DOFSet struct {
	Type      string `json:"type"`
	Grid      int    `json:"grid"`
	Component int    `json:"component"`
}

func (s *DOFSet) Card() string  { return s.Type }
func (s *DOFSet) EntityID() int { return s.Grid }

// DOFSet1 lists grids sharing one component code (ASET1, BSET1, CSET1,
// QSET1, OMIT1).
type DOFSet1 struct {
	Type      string `json:"type"`
	Component int    `json:"component"`
	Grids     []int  `json:"grids"`
}

func (s *DOFSet1) Card() string  { return s.Type }
func (s *DOFSet1) EntityID() int { return firstOf(s.Grids) }

// USet is a user set member.
type USet struct {
	Name      string `json:"name"`
	Grid      int    `json:"grid"`
	Component int    `json:"component"`
}

func (s *USet) Card() string  { return "USET" }
func (s *USet) EntityID() int { return s.Grid }

// USet1 lists grids of a named user set.
type USet1 struct {
	Name      string `json:"name"`
	Component int    `json:"component"`
	Grids     []int  `json:"grids"`
}

func (s *USet1) Card() string  { return "USET1" }
func (s *USet1) EntityID() int { return firstOf(s.Grids) }

// SuperSet1 is a superelement DOF list (SEQSET1, SECSET1). Long thru ranges
// arrive as chained instances that merge into one card.
type SuperSet1 struct {
	Type      string `json:"type"`
	SEID      int    `json:"seid"`
	Component int    `json:"component"`
	Grids     []int  `json:"grids"`
}

func (s *SuperSet1) Card() string  { return s.Type }
func (s *SuperSet1) EntityID() int { return s.SEID }

func (s *SuperSet1) MergeKey() string {
	return fmt.Sprintf("%s/%d/%d", s.Type, s.SEID, s.Component)
}

// Merge returns a new set holding the grids of s followed by those of next.
func (s *SuperSet1) Merge(next Entity) (Entity, bool) {
	o, ok := next.(*SuperSet1)
	if !ok || o.MergeKey() != s.MergeKey() {
		return s, false
	}
	grids := make([]int, 0, len(s.Grids)+len(o.Grids))
	grids = append(grids, s.Grids...)
	grids = append(grids, o.Grids...)
	return &SuperSet1{Type: s.Type, SEID: s.SEID, Component: s.Component, Grids: grids}, true
}

// SPC is a single point constraint with enforced displacement.
type SPC struct {
	SID       int     `json:"sid"`
	Grid      int     `json:"grid"`
	Component int     `json:"component"`
	Enforced  float64 `json:"enforced"`
}

func (c *SPC) Card() string  { return "SPC" }
func (c *SPC) EntityID() int { return c.SID }

// SPC1 constrains one component code on a list of grids.
type SPC1 struct {
	SID       int   `json:"sid"`
	Component int   `json:"component"`
	Grids     []int `json:"grids"`
}

func (c *SPC1) Card() string  { return "SPC1" }
func (c *SPC1) EntityID() int { return c.SID }

// SPCOFF1 releases a component code on a list of grids.
type SPCOFF1 struct {
	Component int   `json:"component"`
	Grids     []int `json:"grids"`
}

func (c *SPCOFF1) Card() string  { return "SPCOFF1" }
func (c *SPCOFF1) EntityID() int { return firstOf(c.Grids) }

// SetUnion combines constraint sets (SPCADD, MPCADD).
type SetUnion struct {
	Type string `json:"type"`
	SID  int    `json:"sid"`
	Sets []int  `json:"sets"`
}

func (c *SetUnion) Card() string  { return c.Type }
func (c *SetUnion) EntityID() int { return c.SID }

// MPC is a multipoint constraint: sum of coefficient*u(grid,component) = 0.
type MPC struct {
	SID          int       `json:"sid"`
	Grids        []int     `json:"grids"`
	Components   []int     `json:"components"`
	Coefficients []float64 `json:"coefficients"`
}

func (c *MPC) Card() string  { return "MPC" }
func (c *MPC) EntityID() int { return c.SID }

// Suport is a fictitious support on one grid.
type Suport struct {
	Grid      int `json:"grid"`
	Component int `json:"component"`
}

func (c *Suport) Card() string  { return "SUPORT" }
func (c *Suport) EntityID() int { return c.Grid }

// Suport1 is a fictitious support set.
type Suport1 struct {
	SID        int   `json:"sid"`
	Grids      []int `json:"grids"`
	Components []int `json:"components"`
}

func (c *Suport1) Card() string  { return "SUPORT1" }
func (c *Suport1) EntityID() int { return c.SID }

// SPCD is an enforced displacement load.
type SPCD struct {
	SID       int     `json:"sid"`
	Grid      int     `json:"grid"`
	Component int     `json:"component"`
	Enforced  float64 `json:"enforced"`
}

func (l *SPCD) Card() string  { return "SPCD" }
func (l *SPCD) EntityID() int { return l.SID }

// RBAR is a rigid bar between grids A and B.
type RBAR struct {
	EID   int     `json:"eid"`
	GA    int     `json:"ga"`
	GB    int     `json:"gb"`
	CNA   int     `json:"cna"`
	CNB   int     `json:"cnb"`
	CMA   int     `json:"cma"`
	CMB   int     `json:"cmb"`
	Alpha float64 `json:"alpha"`
}

func (e *RBAR) Card() string  { return "RBAR" }
func (e *RBAR) EntityID() int { return e.EID }

// RROD is a pin-ended rigid rod.
type RROD struct {
	EID   int     `json:"eid"`
	GA    int     `json:"ga"`
	GB    int     `json:"gb"`
	CMA   int     `json:"cma"`
	CMB   int     `json:"cmb"`
	Alpha float64 `json:"alpha"`
}

func (e *RROD) Card() string  { return "RROD" }
func (e *RROD) EntityID() int { return e.EID }

// RBE1 is a rigid body with independent and dependent grid lists.
type RBE1 struct {
	EID                   int     `json:"eid"`
	IndependentGrids      []int   `json:"independent_grids"`
	IndependentComponents []int   `json:"independent_components"`
	DependentGrids        []int   `json:"dependent_grids"`
	DependentComponents   []int   `json:"dependent_components"`
	Alpha                 float64 `json:"alpha"`
}

func (e *RBE1) Card() string  { return "RBE1" }
func (e *RBE1) EntityID() int { return e.EID }

// RBE2 ties dependent grids rigidly to one independent grid.
type RBE2 struct {
	EID            int     `json:"eid"`
	Grid           int     `json:"grid"`
	Component      int     `json:"component"`
	DependentGrids []int   `json:"dependent_grids"`
	Alpha          float64 `json:"alpha"`
}

func (e *RBE2) Card() string  { return "RBE2" }
func (e *RBE2) EntityID() int { return e.EID }

// WeightGroup is one weighted set of RBE3 master grids.
type WeightGroup struct {
	Weight    float64 `json:"weight"`
	Component int     `json:"component"`
	Grids     []int   `json:"grids"`
}

// RBE3 interpolates a reference grid from weighted averages of grid groups.
type RBE3 struct {
	EID                 int           `json:"eid"`
	RefGrid             int           `json:"ref_grid"`
	RefComponent        int           `json:"ref_component"`
	Groups              []WeightGroup `json:"groups"`
	DependentGrids      []int         `json:"dependent_grids"`
	DependentComponents []int         `json:"dependent_components"`
	Alpha               float64       `json:"alpha"`
}

func (e *RBE3) Card() string  { return "RBE3" }
func (e *RBE3) EntityID() int { return e.EID }

func firstOf(ids []int) int {
	if len(ids) == 0 {
		return 0
	}
	return ids[0]
}
