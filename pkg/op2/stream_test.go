package op2

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func buildStream(f Format) []byte {
	var buf []byte
	buf = AppendBlock(buf, f, NewEncoder(f).Ints(-1).Bytes())
	buf = AppendRecord(buf, f, keyASET, NewEncoder(f).Ints(1, 123, 2, 456).Bytes())
	buf = AppendRecord(buf, f, RecordKey{1, 2, 3}, NewEncoder(f).Ints(9).Bytes())
	buf = AppendRecord(buf, f, keyMPC, NewEncoder(f).Ints(10, 5, 1).Floats(2.0).Ints(-1, -1).Bytes())
	buf = AppendBlock(buf, f, NewEncoder(f).Ints(0).Bytes())
	return buf
}

func TestDecodeStream(t *testing.T) {
	t.Parallel()

	for _, f := range []Format{
		{Order: binary.LittleEndian, Precision: Single},
		{Order: binary.BigEndian, Precision: Single},
		{Order: binary.LittleEndian, Precision: Double},
	} {
		buf := buildStream(f)
		order, err := DetectByteOrder(buf)
		if err != nil {
			t.Fatalf("%s: detect: %v", f.Order, err)
		}
		if order != f.Order {
			t.Fatalf("detect got %s want %s", order, f.Order)
		}

		sink := &recordingSink{}
		diag := &recordingDiag{}
		stats, err := NewDecoder(f).DecodeStream(context.Background(), sink, diag, buf)
		if err != nil {
			t.Fatalf("%s/%s: stream: %v", f.Order, f.Precision, err)
		}
		want := Stats{Blocks: 5, Markers: 2, Decoded: 1, Skipped: 1, Failed: map[string]int{"malformed": 1}, Entities: 2}
		if !reflect.DeepEqual(stats, want) {
			t.Fatalf("%s/%s: stats got %+v want %+v", f.Order, f.Precision, stats, want)
		}
		if stats.FailedTotal() != 1 {
			t.Fatalf("failed total got %d", stats.FailedTotal())
		}
		if len(sink.entities) != 2 || len(diag.warnings) != 1 || len(diag.infos) != 1 {
			t.Fatalf("sink %d entities, %d warnings, %d infos", len(sink.entities), len(diag.warnings), len(diag.infos))
		}
	}
}

func TestDecodeStreamCorruptFraming(t *testing.T) {
	t.Parallel()

	buf := buildStream(single())
	// Break the closing marker of the second block.
	first := 4 + 4 + 4
	n := int(binary.LittleEndian.Uint32(buf[first:]))
	binary.LittleEndian.PutUint32(buf[first+4+n:], uint32(n+4))

	sink := &recordingSink{}
	stats, err := NewDecoder(single()).DecodeStream(context.Background(), sink, nil, buf)
	if !errors.Is(err, ErrCorruptStream) {
		t.Fatalf("expected corrupt stream, got %v", err)
	}
	if stats.Blocks != 1 || len(sink.entities) != 0 {
		t.Fatalf("stats got %+v", stats)
	}
}

func TestDecodeStreamCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDecoder(single()).DecodeStream(ctx, &recordingSink{}, nil, buildStream(single()))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestReaderNext(t *testing.T) {
	t.Parallel()

	buf := AppendBlock(nil, single(), []byte{1, 2, 3})
	buf = AppendBlock(buf, single(), nil)
	r := NewReader(buf, binary.LittleEndian)

	off, n, err := r.Next()
	if err != nil || off != 4 || n != 3 {
		t.Fatalf("first block got %d,%d,%v", off, n, err)
	}
	if !bytes.Equal(buf[off:off+n], []byte{1, 2, 3}) {
		t.Fatalf("payload got %v", buf[off:off+n])
	}
	if _, n, err = r.Next(); err != nil || n != 0 {
		t.Fatalf("empty block got %d,%v", n, err)
	}
	if _, _, err = r.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
	if r.Offset() != len(buf) {
		t.Fatalf("offset got %d want %d", r.Offset(), len(buf))
	}
}

func TestDetectByteOrderRejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := DetectByteOrder([]byte{0xff, 0xff, 0xff, 0x7f, 0, 0, 0, 0}); !errors.Is(err, ErrCorruptStream) {
		t.Fatalf("expected corrupt stream, got %v", err)
	}
	if _, err := DetectByteOrder(nil); !errors.Is(err, ErrCorruptStream) {
		t.Fatalf("expected corrupt stream for empty input, got %v", err)
	}
}

func TestOpenFile(t *testing.T) {
	t.Parallel()

	want := buildStream(single())
	path := filepath.Join(t.TempDir(), "model.op2")
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !bytes.Equal(f.Data, want) {
		t.Fatalf("data mismatch")
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if f.Data != nil {
		t.Fatalf("data retained after close")
	}
	if err := f.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestOpenFileEmptyAndMissing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.op2")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open empty: %v", err)
	}
	if len(f.Data) != 0 {
		t.Fatalf("empty file has %d bytes", len(f.Data))
	}
	_ = f.Close()

	if _, err := OpenFile(filepath.Join(t.TempDir(), "missing.op2")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist, got %v", err)
	}
}

func TestReadAllAtShortReader(t *testing.T) {
	t.Parallel()

	if _, err := readAllAt(bytes.NewReader([]byte{1, 2}), 4); err == nil {
		t.Fatalf("expected error for short reader")
	}
	got, err := readAllAt(bytes.NewReader([]byte{1, 2, 3}), 3)
	if err != nil || !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestResolveByteOrder(t *testing.T) {
	t.Parallel()

	be := buildStream(Format{Order: binary.BigEndian, Precision: Single})
	for name, want := range map[string]binary.ByteOrder{"auto": binary.BigEndian, "": binary.BigEndian, "little": binary.LittleEndian, "big": binary.BigEndian} {
		got, err := ResolveByteOrder(name, be)
		if err != nil || got != want {
			t.Fatalf("ResolveByteOrder(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ResolveByteOrder("middle", be); err == nil {
		t.Fatalf("expected error for unknown order")
	}
	if OrderName(binary.BigEndian) != "big" || OrderName(binary.LittleEndian) != "little" {
		t.Fatalf("order names wrong")
	}
}
