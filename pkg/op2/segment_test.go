package op2

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		ints   []int
		single bool
		want   []Segment
		err    error
	}{
		{"terminated", []int{1, 2, -1, 3, -1}, false, []Segment{{0, 2, false}, {3, 4, false}}, nil},
		{"open tail", []int{1, 2, -1, 3, 4}, false, []Segment{{0, 2, false}, {3, 5, true}}, nil},
		{"empty interior", []int{-1, -1}, false, []Segment{{0, 0, false}, {1, 1, false}}, nil},
		{"none single", []int{1, 2, 3}, true, []Segment{{0, 3, true}}, nil},
		{"none multi", []int{1, 2, 3}, false, nil, ErrRecordMalformed},
		{"empty", nil, false, nil, nil},
	}
	for _, tc := range cases {
		got, err := Split(tc.ints, -1, tc.single)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Fatalf("%s: expected %v, got %v", tc.name, tc.err, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: split: %v", tc.name, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: got %+v want %+v", tc.name, got, tc.want)
		}
	}
}

func TestSplitTrailing(t *testing.T) {
	t.Parallel()

	// The trailer word may hold any bits, including the sentinel itself.
	ints := []int{1, 2, -1, -1, 3, -1, 0}
	got, err := SplitTrailing(ints, -1, 1)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	want := []Segment{{0, 2, false}, {4, 5, false}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}

	if _, err := SplitTrailing([]int{1, 2, -1}, -1, 1); !errors.Is(err, ErrRecordMalformed) {
		t.Fatalf("missing trailer: expected malformed, got %v", err)
	}
	if _, err := SplitTrailing([]int{1, -1, 0, 5}, -1, 1); !errors.Is(err, ErrRecordMalformed) {
		t.Fatalf("stray tail: expected malformed, got %v", err)
	}
	if _, err := SplitTrailing([]int{1, -1, 7}, -1, 0); !errors.Is(err, ErrRecordMalformed) {
		t.Fatalf("trailer 0 with tail: expected malformed, got %v", err)
	}
}

func TestSplitLevels(t *testing.T) {
	t.Parallel()

	// wt c g g -1 wt c g -1 -2 gm cm
	ints := []int{9, 123, 1, 2, -1, 9, 1, 3, -1, -2, 20, 456}
	got, err := SplitLevels(ints, []int{-2, -1}, true)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d top-level nodes", len(got))
	}
	if got[0].Segment != (Segment{0, 9, false}) || got[1].Segment != (Segment{10, 12, true}) {
		t.Fatalf("top level got %+v / %+v", got[0].Segment, got[1].Segment)
	}
	groups := got[0].Children
	if len(groups) != 2 {
		t.Fatalf("got %d groups", len(groups))
	}
	if groups[0].Segment != (Segment{0, 4, false}) || groups[1].Segment != (Segment{5, 8, false}) {
		t.Fatalf("groups got %+v", groups)
	}
	if len(got[1].Children) != 1 || !got[1].Children[0].Open {
		t.Fatalf("dependent level got %+v", got[1].Children)
	}

	if _, err := SplitLevels(ints, nil, true); !errors.Is(err, ErrRecordMalformed) {
		t.Fatalf("expected malformed for no levels, got %v", err)
	}
}

func TestCheckFree(t *testing.T) {
	t.Parallel()

	if err := checkFree([]int{1, 2, 3}, -1, -2); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if err := checkFree([]int{1, -2, 3}, -1, -2); !errors.Is(err, ErrRecordMalformed) {
		t.Fatalf("expected malformed, got %v", err)
	}
}

func TestValidComponent(t *testing.T) {
	t.Parallel()

	for _, c := range []int{0, 1, 6, 123, 123456, 654321, 35} {
		if !validComponent(c) {
			t.Fatalf("%d should be valid", c)
		}
	}
	for _, c := range []int{-1, 7, 10, 112, 1234567, 100000} {
		if validComponent(c) {
			t.Fatalf("%d should be invalid", c)
		}
	}
}
