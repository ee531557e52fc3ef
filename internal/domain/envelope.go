package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Envelope kinds accepted on the source topic.
const (
	KindHistorical = "historical"
	KindForecast   = "forecast"
)

// RequestEnvelope is one unit of work published by the upstream collaborator.
// Historical envelopes carry observation records for training and prediction;
// forecast envelopes carry forecast records for alert analysis.
type RequestEnvelope struct {
	Kind        string      `json:"kind"`
	City        string      `json:"city"`
	HorizonDays int         `json:"horizon_days,omitempty"`
	Records     []RawRecord `json:"records"`
}

// ParseEnvelope deserializes a raw source-topic message into a RequestEnvelope.
func ParseEnvelope(raw RawEvent) (RequestEnvelope, error) {
	var env RequestEnvelope
	if err := json.Unmarshal(raw.Value, &env); err != nil {
		return RequestEnvelope{}, fmt.Errorf("parse request envelope: %w", err)
	}
	switch env.Kind {
	case KindHistorical, KindForecast:
	default:
		return RequestEnvelope{}, fmt.Errorf("unknown envelope kind %q", env.Kind)
	}
	return env, nil
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
