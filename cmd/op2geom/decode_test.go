package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/samcharles93/op2geom/internal/api"
	"github.com/samcharles93/op2geom/internal/logger"
	"github.com/samcharles93/op2geom/pkg/op2"
)

var (
	keySPC1    = op2.RecordKey{Code: 5481, Increment: 58, Revision: 12}
	keyRSPLINE = op2.RecordKey{Code: 7001, Increment: 70, Revision: 186}
	keyASET    = op2.RecordKey{Code: 5561, Increment: 76, Revision: 215}
)

func writeStream(t *testing.T, format op2.Format, broken bool) string {
	t.Helper()
	var buf []byte
	buf = op2.AppendBlock(buf, format, op2.NewEncoder(format).Ints(-1).Bytes())
	buf = op2.AppendRecord(buf, format, keySPC1, op2.NewEncoder(format).Ints(3, 123, 1, 10, 12, -1).Bytes())
	buf = op2.AppendRecord(buf, format, keyRSPLINE, op2.NewEncoder(format).Ints(1, 2, 3).Bytes())
	if broken {
		buf = op2.AppendRecord(buf, format, keyASET, []byte{1, 2, 3, 4, 5})
	}
	path := filepath.Join(t.TempDir(), "geom4.bin")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write stream: %v", err)
	}
	return path
}

func quietLogger() logger.Logger {
	return logger.Text(io.Discard, slog.LevelError)
}

func TestRunDecodeSummary(t *testing.T) {
	t.Parallel()

	path := writeStream(t, op2.DefaultFormat(), false)
	var out bytes.Buffer
	err := runDecode(context.Background(), quietLogger(), &out, decodeOptions{
		Path:      path,
		Endian:    "auto",
		Precision: "single",
		Output:    "summary",
	})
	if err != nil {
		t.Fatalf("runDecode returned error: %v", err)
	}
	got := out.String()
	for _, want := range []string{"little endian, single precision", "decoded         1", "skipped         1", "SPC1"} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestRunDecodeJSON(t *testing.T) {
	t.Parallel()

	path := writeStream(t, op2.DefaultFormat(), false)
	var out bytes.Buffer
	err := runDecode(context.Background(), quietLogger(), &out, decodeOptions{
		Path:      path,
		Endian:    "little",
		Precision: "single",
		Output:    "json",
	})
	if err != nil {
		t.Fatalf("runDecode returned error: %v", err)
	}
	var head struct {
		Endian string    `json:"endian"`
		Stats  op2.Stats `json:"stats"`
	}
	if err := json.Unmarshal(out.Bytes(), &head); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	if head.Endian != "little" || head.Stats.Entities != 1 || head.Stats.Markers != 1 {
		t.Fatalf("unexpected result %+v", head)
	}
	if !strings.Contains(out.String(), `"grids": [`) {
		t.Fatalf("entity payload missing:\n%s", out.String())
	}
}

func TestRunDecodeDebugStream(t *testing.T) {
	t.Parallel()

	path := writeStream(t, op2.DefaultFormat(), false)
	var dbg bytes.Buffer
	err := runDecode(context.Background(), quietLogger(), io.Discard, decodeOptions{
		Path:      path,
		Endian:    "auto",
		Precision: "single",
		Output:    "summary",
		Debug:     &dbg,
	})
	if err != nil {
		t.Fatalf("runDecode returned error: %v", err)
	}
	if !strings.HasPrefix(dbg.String(), "SPC1 (5481,58,12) nbytes=") {
		t.Fatalf("debug stream got %q", dbg.String())
	}
}

func TestRunDecodeStrict(t *testing.T) {
	t.Parallel()

	path := writeStream(t, op2.DefaultFormat(), true)
	opts := decodeOptions{Path: path, Endian: "auto", Precision: "single", Output: "summary"}

	if err := runDecode(context.Background(), quietLogger(), io.Discard, opts); err != nil {
		t.Fatalf("lenient decode returned error: %v", err)
	}
	opts.Strict = true
	err := runDecode(context.Background(), quietLogger(), io.Discard, opts)
	if err == nil || err.Error() != "1 record failed to decode" {
		t.Fatalf("strict decode got %v", err)
	}
}

func TestRunDecodeRejectsOptions(t *testing.T) {
	t.Parallel()

	path := writeStream(t, op2.DefaultFormat(), false)
	cases := []struct {
		name string
		opts decodeOptions
	}{
		{"output", decodeOptions{Path: path, Endian: "auto", Precision: "single", Output: "xml"}},
		{"precision", decodeOptions{Path: path, Endian: "auto", Precision: "quad", Output: "summary"}},
		{"endian", decodeOptions{Path: path, Endian: "middle", Precision: "single", Output: "summary"}},
		{"missing file", decodeOptions{Path: filepath.Join(t.TempDir(), "nope"), Endian: "auto", Precision: "single", Output: "summary"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := runDecode(context.Background(), quietLogger(), io.Discard, tc.opts); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestRunDecodeCorruptFraming(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.bin")
	// leading marker promises 64 bytes that are not there
	if err := os.WriteFile(path, []byte{64, 0, 0, 0, 1, 0, 0, 0}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := runDecode(context.Background(), quietLogger(), io.Discard, decodeOptions{
		Path: path, Endian: "little", Precision: "single", Output: "summary",
	})
	if !errors.Is(err, op2.ErrCorruptStream) {
		t.Fatalf("expected corrupt stream, got %v", err)
	}
}

func TestSelectRecords(t *testing.T) {
	t.Parallel()

	table := op2.Geom4Table()
	all, err := selectRecords(table, "", false)
	if err != nil || len(all) != table.Len() {
		t.Fatalf("all: got %d, %v", len(all), err)
	}
	impl, err := selectRecords(table, "", true)
	if err != nil {
		t.Fatalf("implemented: %v", err)
	}
	for _, info := range impl {
		if !info.Implemented {
			t.Fatalf("unimplemented key %s listed", info.Key)
		}
	}
	one, err := selectRecords(table, "(5481,58,12)", false)
	if err != nil || len(one) != 1 || one[0].Name != "SPC1" {
		t.Fatalf("single key: got %+v, %v", one, err)
	}
	if _, err := selectRecords(table, "1,2,3", false); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if _, err := selectRecords(table, "1,2", false); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestWriteRecords(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	writeRecords(&out, []api.RecordInfo{
		{Key: "(5481,58,12)", Name: "SPC1", Implemented: true},
		{Key: "(1,2,3)"},
	})
	got := out.String()
	if !strings.Contains(got, "SPC1       decode") || !strings.Contains(got, "-          skip") {
		t.Fatalf("unexpected listing:\n%s", got)
	}
	if !strings.HasSuffix(got, "2 key(s), 1 decoded\n") {
		t.Fatalf("unexpected footer:\n%s", got)
	}
}
