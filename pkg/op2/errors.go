package op2

import (
	"errors"
	"fmt"
)

var (
	// ErrRecordTruncated reports a payload shorter than its layout requires.
	ErrRecordTruncated = errors.New("op2: record truncated")
	// ErrRecordMalformed reports a payload that violates its sentinel grammar
	// or carries an invalid field.
	ErrRecordMalformed = errors.New("op2: record malformed")
	// ErrRecordVariantUnknown reports a payload matching none of the known
	// vendor layouts for its key.
	ErrRecordVariantUnknown = errors.New("op2: unknown record variant")
	// ErrUnsupportedRecordType reports a key that is not decoded. Only
	// Decoder.Resolve returns it; DecodeChunk skips such records silently.
	ErrUnsupportedRecordType = errors.New("op2: unsupported record type")
	// ErrCorruptStream reports broken block framing; decoding cannot
	// continue past it.
	ErrCorruptStream = errors.New("op2: corrupt stream framing")
)

// RecordError carries the record identity alongside a decode failure.
type RecordError struct {
	Key  RecordKey
	Name string
	Err  error
}

func (e *RecordError) Error() string {
	name := e.Name
	if name == "" {
		name = "?"
	}
	return fmt.Sprintf("%s %s: %v", name, e.Key, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRecordMalformed, fmt.Sprintf(format, args...))
}

func truncated(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRecordTruncated, fmt.Sprintf(format, args...))
}

// ErrorKind names the taxonomy bucket of err, for counters and logs.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrRecordVariantUnknown):
		return "variant_unknown"
	case errors.Is(err, ErrRecordTruncated):
		return "truncated"
	case errors.Is(err, ErrRecordMalformed):
		return "malformed"
	case errors.Is(err, ErrUnsupportedRecordType):
		return "unsupported"
	case errors.Is(err, ErrCorruptStream):
		return "corrupt_stream"
	default:
		return "other"
	}
}
