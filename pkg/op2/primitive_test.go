package op2

import (
	"encoding/binary"
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestIntsAndFloatsShareBytes(t *testing.T) {
	t.Parallel()

	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		for _, p := range []Precision{Single, Double} {
			f := Format{Order: order, Precision: p}
			buf := NewEncoder(f).Ints(7, -1).Floats(2.5).Bytes()
			v, err := NewView(buf, 0, 3, p.WordSize(), order)
			if err != nil {
				t.Fatalf("%s/%s: view: %v", order, p, err)
			}
			if !reflect.DeepEqual(v.Ints[:2], []int{7, -1}) {
				t.Fatalf("%s/%s: ints got %v", order, p, v.Ints)
			}
			if v.Floats[2] != 2.5 {
				t.Fatalf("%s/%s: float got %v want 2.5", order, p, v.Floats[2])
			}
			if v.Len() != 3 {
				t.Fatalf("%s/%s: len got %d", order, p, v.Len())
			}
		}
	}
}

func TestFloatsSinglePrecisionRounding(t *testing.T) {
	t.Parallel()

	buf := enc().Floats(0.1).Bytes()
	got, err := Floats(buf, 0, 1, 4, binary.LittleEndian)
	if err != nil {
		t.Fatalf("floats: %v", err)
	}
	if want := float64(float32(0.1)); got[0] != want {
		t.Fatalf("got %v want %v", got[0], want)
	}
	if math.Abs(got[0]-0.1) > 1e-7 {
		t.Fatalf("value drifted: %v", got[0])
	}
}

func TestIntsOutOfRange(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 10)
	if _, err := Ints(buf, 4, 2, 4, binary.LittleEndian); !errors.Is(err, ErrRecordTruncated) {
		t.Fatalf("expected truncated, got %v", err)
	}
	if _, err := Ints(buf, -1, 1, 4, binary.LittleEndian); !errors.Is(err, ErrRecordTruncated) {
		t.Fatalf("expected truncated for negative offset, got %v", err)
	}
	if _, err := Ints(buf, 0, 1, 2, binary.LittleEndian); !errors.Is(err, ErrRecordMalformed) {
		t.Fatalf("expected malformed for width 2, got %v", err)
	}
	if got, err := Ints(buf, 10, 0, 4, binary.LittleEndian); err != nil || len(got) != 0 {
		t.Fatalf("empty read at end: got %v, %v", got, err)
	}
}

func TestFixedString(t *testing.T) {
	t.Parallel()

	buf := []byte("U1  AB\x00\x00")
	got, err := FixedString(buf, 0, 4)
	if err != nil || got != "U1" {
		t.Fatalf("got %q, %v", got, err)
	}
	got, err = FixedString(buf, 4, 4)
	if err != nil || got != "AB" {
		t.Fatalf("got %q, %v", got, err)
	}
	if _, err := FixedString(buf, 6, 4); !errors.Is(err, ErrRecordTruncated) {
		t.Fatalf("expected truncated, got %v", err)
	}
}

func TestParsePrecision(t *testing.T) {
	t.Parallel()

	cases := map[string]Precision{"single": Single, "": Single, "4": Single, "double": Double, "8": Double}
	for in, want := range cases {
		got, ok := ParsePrecision(in)
		if !ok || got != want {
			t.Fatalf("ParsePrecision(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParsePrecision("quad"); ok {
		t.Fatalf("expected quad to be rejected")
	}
}

func TestParseRecordKey(t *testing.T) {
	t.Parallel()

	k, err := ParseRecordKey("(5501, 55, 16)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if want := (RecordKey{5501, 55, 16}); k != want {
		t.Fatalf("got %v want %v", k, want)
	}
	if k.String() != "(5501,55,16)" {
		t.Fatalf("string got %q", k.String())
	}
	if _, err := ParseRecordKey("1,2"); err == nil {
		t.Fatalf("expected error for 2 fields")
	}
	if _, err := ParseRecordKey("1,x,3"); err == nil {
		t.Fatalf("expected error for non-integer")
	}
}
