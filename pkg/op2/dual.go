package op2

import (
	"errors"
	"fmt"
)

// variant is one vendor layout of a record type. Fixed-stride layouts set
// words; layouts that carry their own framing leave it zero and match only
// when their grammar consumes the payload exactly.
type variant struct {
	name   string
	words  int
	decode DecodeFunc
}

// dual resolves a key shared by two vendor layouts. first is the simpler
// layout and is always tried first; a layout that fits the length but fails
// validation falls through to the other. Only the winner's entities are
// returned.
func dual(first, second variant) DecodeFunc {
	return func(c *Chunk) ([]Entity, int, error) {
		ws := c.WordSize()
		if minWords := minStride(first, second); minWords > 0 && len(c.Data) < minWords*ws {
			return nil, 0, truncated("%d bytes is shorter than one %d-byte entry", len(c.Data), minWords*ws)
		}

		var causes []error
		for _, v := range [...]variant{first, second} {
			if v.words > 0 && len(c.Data)%(v.words*ws) != 0 {
				causes = append(causes, fmt.Errorf("%s: %d bytes is not a multiple of %d", v.name, len(c.Data), v.words*ws))
				continue
			}
			try := c.fork()
			entities, n, err := v.decode(try)
			if err == nil && n != len(c.Data) {
				err = fmt.Errorf("consumed %d of %d bytes", n, len(c.Data))
			}
			if err != nil {
				causes = append(causes, fmt.Errorf("%s: %w", v.name, err))
				continue
			}
			c.Variant = v.name
			c.warnings = append(c.warnings, try.warnings...)
			return entities, n, nil
		}
		return nil, 0, fmt.Errorf("%w: %w", ErrRecordVariantUnknown, errors.Join(causes...))
	}
}

func minStride(a, b variant) int {
	switch {
	case a.words == 0:
		return b.words
	case b.words == 0:
		return a.words
	case a.words < b.words:
		return a.words
	default:
		return b.words
	}
}
