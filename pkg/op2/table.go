package op2

import "sort"

// Entry binds a record key to its card name and decoder. A nil Decode marks
// a key that is recognized but skipped.
type Entry struct {
	Name   string
	Decode DecodeFunc
}

// Implemented reports whether the entry decodes its records.
func (e Entry) Implemented() bool {
	return e.Decode != nil
}

// Table is an immutable key to decoder mapping.
type Table struct {
	entries map[RecordKey]Entry
}

// NewTable copies entries into a new table.
func NewTable(entries map[RecordKey]Entry) *Table {
	t := &Table{entries: make(map[RecordKey]Entry, len(entries))}
	for k, e := range entries {
		t.entries[k] = e
	}
	return t
}

// Lookup returns the entry for key.
func (t *Table) Lookup(key RecordKey) (Entry, bool) {
	e, ok := t.entries[key]
	return e, ok
}

// Keys returns every key in ascending order.
func (t *Table) Keys() []RecordKey {
	keys := make([]RecordKey, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Len returns the number of keys.
func (t *Table) Len() int {
	return len(t.entries)
}

func key(code, inc, rev int) RecordKey {
	return RecordKey{Code: code, Increment: inc, Revision: rev}
}

var geom4 = NewTable(map[RecordKey]Entry{
	key(5561, 76, 215):   {"ASET", decodeDOFSet("ASET")},
	key(5571, 77, 216):   {"ASET1", decodeDOFSet1("ASET1")},
	key(110, 1, 311):     {"BSET", decodeDOFSet("BSET")},
	key(410, 4, 314):     {"BSET1", decodeDOFSet1("BSET1")},
	key(310, 3, 313):     {"CSET", decodeDOFSet("CSET")},
	key(210, 2, 312):     {"CSET1", decodeDOFSet1("CSET1")},
	key(510, 5, 315):     {"QSET", decodeDOFSet("QSET")},
	key(610, 6, 316):     {"QSET1", decodeDOFSet1("QSET1")},
	key(5001, 50, 15):    {"OMIT", decodeDOFSet("OMIT")},
	key(4951, 63, 92):    {"OMIT1", decodeDOFSet1("OMIT1")},
	key(2010, 20, 193):   {"USET", decodeUSet},
	key(2110, 21, 194):   {"USET1", decodeUSet1},
	key(1210, 12, 322):   {"SEQSET1", decodeSuperSet1("SEQSET1")},
	key(1010, 10, 320):   {"SECSET1", decodeSuperSet1("SECSET1")},
	key(4901, 49, 17):    {"MPC", decodeMPC},
	key(4891, 60, 83):    {"MPCADD", decodeSetUnion("MPCADD")},
	key(5501, 55, 16):    {"SPC", decodeSPC},
	key(5481, 58, 12):    {"SPC1", decodeSPC1},
	key(5491, 59, 13):    {"SPCADD", decodeSetUnion("SPCADD")},
	key(6210, 62, 344):   {"SPCOFF1", decodeSPCOFF1},
	key(5110, 51, 256):   {"SPCD", decodeSPCD},
	key(5601, 56, 14):    {"SUPORT", decodeSuport},
	key(10100, 101, 472): {"SUPORT1", decodeSuport1},
	key(6601, 66, 292):   {"RBAR", decodeRBAR},
	key(6501, 65, 291):   {"RROD", decodeRROD},
	key(6801, 68, 294):   {"RBE1", decodeRBE1Dual},
	key(6901, 69, 295):   {"RBE2", decodeRBE2Dual},
	key(7101, 71, 187):   {"RBE3", decodeRBE3Dual},

	// Recognized, not decoded.
	key(10200, 102, 473): {Name: "BNDGRID"},
	key(1510, 15, 328):   {Name: "CYAX"},
	key(5210, 52, 257):   {Name: "CYJOIN"},
	key(1610, 16, 329):   {Name: "CYSUP"},
	key(1710, 17, 330):   {Name: "CYSYM"},
	key(8801, 88, 9022):  {Name: "EGENDT"},
	key(9001, 90, 9024):  {Name: "FCENDT"},
	key(8001, 80, 395):   {Name: "GMBC"},
	key(7801, 78, 393):   {Name: "GMSPC"},
	key(14201, 142, 652): {Name: "RBJOINT"},
	key(14301, 143, 653): {Name: "RBJSTIF"},
	key(1310, 13, 247):   {Name: "RELEASE"},
	key(14101, 141, 640): {Name: "RPNOM"},
	key(7001, 70, 186):   {Name: "RSPLINE"},
	key(7201, 72, 398):   {Name: "RSSCON"},
	key(1110, 11, 321):   {Name: "SEQSET"},
	key(6701, 67, 293):   {Name: "RTRPLT"},
	key(12001, 120, 601): {Name: "BLTMPC"},
	key(110, 1, 584):     {Name: "BNDFIX"},
	key(210, 2, 585):     {Name: "BNDFIX1"},
	key(310, 3, 586):     {Name: "BNDFREE"},
	key(9801, 98, 609):   {Name: "RVDOF"},
	key(9901, 99, 610):   {Name: "RVDOF1"},
	key(11901, 119, 561): {Name: "RWELD"},
	key(810, 8, 318):     {Name: "SESET"},

	// Undocumented keys seen in solver output.
	key(4901, 49, 420017): {},
	key(5561, 76, 0):      {},
	key(610, 6, 0):        {},
	key(5110, 51, 620256): {},
	key(5501, 55, 620016): {},
	key(410, 4, 0):        {},
	key(9801, 98, 79):     {},
	key(9901, 99, 80):     {},
	key(5571, 77, 0):      {},
	key(210, 2, 0):        {},
})

// Geom4Table returns the GEOM4 dispatch table.
func Geom4Table() *Table {
	return geom4
}
