package op2

import (
	"encoding/binary"
	"testing"
)

type recordingSink struct {
	entities []Entity
	counts   map[string]int
}

func (s *recordingSink) RegisterEntity(e Entity) {
	s.entities = append(s.entities, e)
}

func (s *recordingSink) IncrementRecordCount(name string, n int) {
	if s.counts == nil {
		s.counts = map[string]int{}
	}
	s.counts[name] += n
}

type recordingDiag struct {
	debug    bool
	lines    []string
	infos    []string
	warnings []string
}

func (d *recordingDiag) DebugEnabled() bool          { return d.debug }
func (d *recordingDiag) WriteDiagnostic(text string) { d.lines = append(d.lines, text) }
func (d *recordingDiag) LogInfo(text string)         { d.infos = append(d.infos, text) }
func (d *recordingDiag) LogWarning(text string)      { d.warnings = append(d.warnings, text) }

func single() Format {
	return Format{Order: binary.LittleEndian, Precision: Single}
}

// decodeRecord frames payload under k and runs it through DecodeChunk.
func decodeRecord(t *testing.T, format Format, k RecordKey, payload []byte) (*recordingSink, *recordingDiag, error) {
	t.Helper()
	rec := NewEncoder(format).Raw(payload).Record(k)
	sink := &recordingSink{}
	diag := &recordingDiag{debug: true}
	n, err := NewDecoder(format).DecodeChunk(sink, diag, rec, 0, len(rec))
	if n != len(rec) {
		t.Fatalf("consumed %d bytes, want %d", n, len(rec))
	}
	return sink, diag, err
}

func enc() *Encoder {
	return NewEncoder(single())
}
