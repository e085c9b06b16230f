package model

import (
	"reflect"
	"testing"

	"github.com/samcharles93/op2geom/pkg/op2"
)

var _ op2.EntitySink = (*Model)(nil)

func TestRegisterKeepsOrder(t *testing.T) {
	t.Parallel()

	m := New()
	m.RegisterEntity(&op2.SPC1{SID: 1, Component: 123, Grids: []int{1}})
	m.RegisterEntity(&op2.MPC{SID: 2})
	m.RegisterEntity(&op2.SPC1{SID: 1, Component: 456, Grids: []int{2}})
	m.IncrementRecordCount("SPC1", 2)
	m.IncrementRecordCount("MPC", 1)

	if m.Len() != 3 {
		t.Fatalf("len got %d", m.Len())
	}
	if got := m.ByCard("SPC1"); len(got) != 2 || got[1].(*op2.SPC1).Component != 456 {
		t.Fatalf("SPC1 got %+v", got)
	}
	want := []CardSummary{{Card: "MPC", Entities: 1, Records: 1}, {Card: "SPC1", Entities: 2, Records: 2}}
	if got := m.Summary(); !reflect.DeepEqual(got, want) {
		t.Fatalf("summary got %+v", got)
	}
}

func TestRegisterMergesContinuations(t *testing.T) {
	t.Parallel()

	m := New()
	m.RegisterEntity(&op2.SuperSet1{Type: "SEQSET1", SEID: 2, Grids: []int{100, 101}})
	m.RegisterEntity(&op2.SuperSet1{Type: "SECSET1", SEID: 2, Grids: []int{7}})
	m.RegisterEntity(&op2.SuperSet1{Type: "SEQSET1", SEID: 2, Grids: []int{105}})
	m.IncrementRecordCount("SEQSET1", 2)

	got := m.ByCard("SEQSET1")
	if len(got) != 1 {
		t.Fatalf("expected one merged SEQSET1, got %d", len(got))
	}
	if grids := got[0].(*op2.SuperSet1).Grids; !reflect.DeepEqual(grids, []int{100, 101, 105}) {
		t.Fatalf("merged grids got %v", grids)
	}
	if m.Len() != 2 {
		t.Fatalf("len got %d", m.Len())
	}
	sum := m.Summary()
	if sum[1].Card != "SEQSET1" || sum[1].Entities != 1 || sum[1].Records != 2 {
		t.Fatalf("summary got %+v", sum)
	}
}

func TestDecodeIntoModel(t *testing.T) {
	t.Parallel()

	f := op2.DefaultFormat()
	payload := op2.NewEncoder(f).Ints(2, 0, 1, 100, 102, 2, 0, 0, 105, -1).Bytes()
	rec := op2.NewEncoder(f).Raw(payload).Record(op2.RecordKey{Code: 1210, Increment: 12, Revision: 322})

	m := New()
	if _, err := op2.NewDecoder(f).DecodeChunk(m, nil, rec, 0, len(rec)); err != nil {
		t.Fatalf("decode: %v", err)
	}
	items := m.Items()
	if len(items) != 1 || items[0].Card != "SEQSET1" || items[0].ID != 2 {
		t.Fatalf("items got %+v", items)
	}
	if grids := items[0].Entity.(*op2.SuperSet1).Grids; !reflect.DeepEqual(grids, []int{100, 101, 102, 105}) {
		t.Fatalf("grids got %v", grids)
	}
	if m.RecordCounts()["SEQSET1"] != 2 {
		t.Fatalf("record count got %v", m.RecordCounts())
	}
}

func TestEntitiesReturnsCopy(t *testing.T) {
	t.Parallel()

	m := New()
	m.RegisterEntity(&op2.Suport{Grid: 1, Component: 1})
	got := m.Entities()
	got[0] = nil
	if m.Entities()[0] == nil {
		t.Fatalf("Entities exposed internal slice")
	}
}
