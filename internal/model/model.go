// Package model holds decoded GEOM4 entities in memory.
package model

import (
	"sort"
	"sync"

	"github.com/samcharles93/op2geom/pkg/op2"
)

// Model is an append-only entity registry. It implements op2.EntitySink.
// Continuation instances of mergeable cards fold into the first instance.
type Model struct {
	mu       sync.RWMutex
	entities []op2.Entity
	mergeIdx map[string]int
	records  map[string]int
	cards    map[string]int
}

// New returns an empty model.
func New() *Model {
	return &Model{
		mergeIdx: make(map[string]int),
		records:  make(map[string]int),
		cards:    make(map[string]int),
	}
}

// RegisterEntity appends e, or merges it into an earlier instance of the
// same logical card.
func (m *Model) RegisterEntity(e op2.Entity) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if me, ok := e.(op2.Mergeable); ok {
		key := me.MergeKey()
		if i, seen := m.mergeIdx[key]; seen {
			if prev, ok := m.entities[i].(op2.Mergeable); ok {
				if merged, ok := prev.Merge(e); ok {
					m.entities[i] = merged
					return
				}
			}
		}
		m.mergeIdx[key] = len(m.entities)
	}
	m.entities = append(m.entities, e)
	m.cards[e.Card()]++
}

// IncrementRecordCount adds n to the decoded entity count of record type
// name.
func (m *Model) IncrementRecordCount(name string, n int) {
	m.mu.Lock()
	m.records[name] += n
	m.mu.Unlock()
}

// Len returns the number of stored entities.
func (m *Model) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entities)
}

// Entities returns the stored entities in registration order.
func (m *Model) Entities() []op2.Entity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]op2.Entity, len(m.entities))
	copy(out, m.entities)
	return out
}

// ByCard returns the entities of one card type.
func (m *Model) ByCard(card string) []op2.Entity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []op2.Entity
	for _, e := range m.entities {
		if e.Card() == card {
			out = append(out, e)
		}
	}
	return out
}

// RecordCounts returns a copy of the per record type counters.
func (m *Model) RecordCounts() map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]int, len(m.records))
	for k, v := range m.records {
		out[k] = v
	}
	return out
}

// CardSummary is the per card view of a model.
type CardSummary struct {
	Card     string `json:"card"`
	Entities int    `json:"entities"`
	Records  int    `json:"records"`
}

// Summary lists every card seen, sorted by name. Records counts what the
// decoder reported; Entities counts what was stored after merging.
func (m *Model) Summary() []CardSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make(map[string]struct{}, len(m.cards)+len(m.records))
	for k := range m.cards {
		names[k] = struct{}{}
	}
	for k := range m.records {
		names[k] = struct{}{}
	}
	out := make([]CardSummary, 0, len(names))
	for k := range names {
		out = append(out, CardSummary{Card: k, Entities: m.cards[k], Records: m.records[k]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Card < out[j].Card })
	return out
}

// Item is the exported form of one entity.
type Item struct {
	Card   string     `json:"card"`
	ID     int        `json:"id"`
	Entity op2.Entity `json:"entity"`
}

// Items returns every entity tagged with its card and id.
func (m *Model) Items() []Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Item, len(m.entities))
	for i, e := range m.entities {
		out[i] = Item{Card: e.Card(), ID: e.EntityID(), Entity: e}
	}
	return out
}
