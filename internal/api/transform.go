package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"
)

// Envelope is the wire shape of every successful API response.
type Envelope struct {
	V       int  `json:"v" doc:"Envelope version"`
	Success bool `json:"success" doc:"Whether the request succeeded"`
	Data    any  `json:"data,omitempty" doc:"Response payload"`
}

// EnvelopeTransformer wraps successful response bodies in the standard
// envelope. Error bodies implement huma.StatusError and pass through
// untouched; they carry their own code and message fields.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if _, ok := v.(huma.StatusError); ok {
		return v, nil
	}
	code, err := strconv.Atoi(status)
	return Envelope{
		V:       1,
		Success: err == nil && code < 400,
		Data:    v,
	}, nil
}
