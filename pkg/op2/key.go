package op2

import (
	"fmt"
	"strconv"
	"strings"
)

// RecordKey identifies a record type: item code, increment, revision.
type RecordKey struct {
	Code      int
	Increment int
	Revision  int
}

func (k RecordKey) String() string {
	return fmt.Sprintf("(%d,%d,%d)", k.Code, k.Increment, k.Revision)
}

// Less orders keys by code, then increment, then revision.
func (k RecordKey) Less(o RecordKey) bool {
	if k.Code != o.Code {
		return k.Code < o.Code
	}
	if k.Increment != o.Increment {
		return k.Increment < o.Increment
	}
	return k.Revision < o.Revision
}

// ParseRecordKey accepts "a,b,c" with optional surrounding parentheses.
func ParseRecordKey(s string) (RecordKey, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	parts := strings.Split(s, ",")
	if len(parts) != keyWords {
		return RecordKey{}, fmt.Errorf("record key %q: want 3 integers", s)
	}
	var v [keyWords]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return RecordKey{}, fmt.Errorf("record key %q: %w", s, err)
		}
		v[i] = n
	}
	return RecordKey{Code: v[0], Increment: v[1], Revision: v[2]}, nil
}
