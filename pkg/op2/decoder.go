package op2

import "fmt"

// DecodeFunc decodes the payload of one chunk. It must not touch any state
// outside c: entities are returned, never registered. The int result is the
// number of payload bytes consumed.
type DecodeFunc func(c *Chunk) ([]Entity, int, error)

// Chunk is the payload of one record, key already stripped.
type Chunk struct {
	Key    RecordKey
	Name   string
	Data   []byte
	Format Format
	// Variant names the vendor layout that matched, for dual records.
	Variant string

	warnings []string
}

// WordSize returns the payload word width in bytes.
func (c *Chunk) WordSize() int {
	return c.Format.Precision.WordSize()
}

// Words decodes the whole payload as integer and float views.
func (c *Chunk) Words() (View, error) {
	ws := c.WordSize()
	if len(c.Data)%ws != 0 {
		return View{}, truncated("payload of %d bytes is not a whole number of %d-byte words", len(c.Data), ws)
	}
	return NewView(c.Data, 0, len(c.Data)/ws, ws, c.Format.order())
}

// Warnf buffers a warning. Warnings reach the diagnostics sink only if the
// chunk decodes successfully.
func (c *Chunk) Warnf(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

func (c *Chunk) fork() *Chunk {
	return &Chunk{Key: c.Key, Name: c.Name, Data: c.Data, Format: c.Format}
}

// Decoder turns announced chunks into entities using an immutable dispatch
// table. It holds no per-stream state and may be shared.
type Decoder struct {
	table  *Table
	format Format
}

// NewDecoder returns a decoder over the GEOM4 dispatch table.
func NewDecoder(format Format) *Decoder {
	return NewTableDecoder(Geom4Table(), format)
}

// NewTableDecoder returns a decoder over a custom dispatch table.
func NewTableDecoder(table *Table, format Format) *Decoder {
	if format.Precision == 0 {
		format.Precision = Single
	}
	return &Decoder{table: table, format: format}
}

// DispatchTable returns the table the decoder resolves keys against.
func (d *Decoder) DispatchTable() *Table {
	return d.table
}

// Format returns the wire format the decoder was built for.
func (d *Decoder) Format() Format {
	return d.format
}

// Resolve returns the entry that decodes key. Unknown keys and keys the
// table names without a decoder yield an error wrapping
// ErrUnsupportedRecordType; the entry still carries the name when known.
func (d *Decoder) Resolve(key RecordKey) (Entry, error) {
	entry, ok := d.table.Lookup(key)
	if !ok || entry.Decode == nil {
		return entry, &RecordError{Key: key, Name: entry.Name, Err: ErrUnsupportedRecordType}
	}
	return entry, nil
}

// DecodeChunk decodes the record of length bytes at buf[off:]. The record
// starts with its 3-word key. The returned byte count is always length so
// the caller stays aligned with the stream. Records the decoder does not
// handle are logged and skipped without error. A non-nil error is a
// *RecordError and means nothing reached the sink.
func (d *Decoder) DecodeChunk(sink EntitySink, diag Diagnostics, buf []byte, off, length int) (int, error) {
	_, err := d.decodeChunk(sink, diag, buf, off, length)
	return length, err
}

// decodeChunk reports whether the record was skipped as unsupported.
func (d *Decoder) decodeChunk(sink EntitySink, diag Diagnostics, buf []byte, off, length int) (bool, error) {
	if diag == nil {
		diag = NopDiagnostics{}
	}
	ws := d.format.Precision.WordSize()
	if off < 0 || length < 0 || off > len(buf) || length > len(buf)-off {
		err := &RecordError{Err: truncated("declared %d bytes at offset %d, buffer holds %d", length, off, len(buf)-off)}
		diag.LogWarning(err.Error())
		return false, err
	}
	if length < keyWords*ws {
		err := &RecordError{Err: truncated("record of %d bytes cannot hold its key", length)}
		diag.LogWarning(err.Error())
		return false, err
	}

	raw := buf[off : off+length]
	kv, err := Ints(raw, 0, keyWords, ws, d.format.order())
	if err != nil {
		rerr := &RecordError{Err: err}
		diag.LogWarning(rerr.Error())
		return false, rerr
	}
	key := RecordKey{Code: kv[0], Increment: kv[1], Revision: kv[2]}

	entry, err := d.Resolve(key)
	if err != nil {
		name := entry.Name
		if name == "" {
			name = "record"
		}
		diag.LogInfo(fmt.Sprintf("skipping %s %s", name, key))
		return true, nil
	}

	c := &Chunk{Key: key, Name: entry.Name, Data: raw[keyWords*ws:], Format: d.format}
	entities, n, err := entry.Decode(c)
	if err == nil && n != len(c.Data) {
		err = malformed("decoded %d of %d payload bytes", n, len(c.Data))
	}
	if err != nil {
		rerr := &RecordError{Key: key, Name: entry.Name, Err: err}
		diag.LogWarning(rerr.Error())
		return false, rerr
	}

	if diag.DebugEnabled() {
		line := fmt.Sprintf("%s %s nbytes=%d n=%d", entry.Name, key, len(c.Data), len(entities))
		if c.Variant != "" {
			line += " variant=" + c.Variant
		}
		diag.WriteDiagnostic(line)
		for _, e := range entities {
			diag.WriteDiagnostic(fmt.Sprintf("  %s=%+v", e.Card(), e))
		}
	}
	for _, w := range c.warnings {
		diag.LogWarning(fmt.Sprintf("%s %s: %s", entry.Name, key, w))
	}
	for _, e := range entities {
		sink.RegisterEntity(e)
	}
	sink.IncrementRecordCount(entry.Name, len(entities))
	return false, nil
}
