package api

import (
	"github.com/goccy/go-json"

	"github.com/samcharles93/op2geom/internal/model"
	"github.com/samcharles93/op2geom/pkg/op2"
)

// DecodeResult is the cacheable body of a decode.
type DecodeResult struct {
	Endian    string              `json:"endian"`
	Precision string              `json:"precision"`
	Stats     op2.Stats           `json:"stats"`
	Cards     []model.CardSummary `json:"cards"`
	Entities  []model.Item        `json:"entities"`
}

// DecodeResponse wraps a result with per request fields.
type DecodeResponse struct {
	ID     string          `json:"id"`
	Cached bool            `json:"cached"`
	Result json.RawMessage `json:"result"`
}

// RecordInfo describes one dispatch table key.
type RecordInfo struct {
	Key         string `json:"key"`
	Code        int    `json:"code"`
	Increment   int    `json:"increment"`
	Revision    int    `json:"revision"`
	Name        string `json:"name,omitempty"`
	Implemented bool   `json:"implemented"`
}

// RecordsResponse lists dispatch table keys.
type RecordsResponse struct {
	Object string       `json:"object"`
	Data   []RecordInfo `json:"data"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorBody is the payload of every error response.
type ErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// RecordInfos lists table in key order.
func RecordInfos(table *op2.Table) []RecordInfo {
	keys := table.Keys()
	out := make([]RecordInfo, 0, len(keys))
	for _, k := range keys {
		e, _ := table.Lookup(k)
		out = append(out, RecordInfo{
			Key:         k.String(),
			Code:        k.Code,
			Increment:   k.Increment,
			Revision:    k.Revision,
			Name:        e.Name,
			Implemented: e.Implemented(),
		})
	}
	return out
}
