package domain

import (
	"context"
	"time"
)

// RawMETARRecord is the JSON form of a message on the source topic.
type RawMETARRecord struct {
	Station string `json:"station"`
	METAR   string `json:"metar"`
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

// ReportEvent is a decoded report ready for the sink topic.
type ReportEvent struct {
	ID          string    `json:"id"`
	Report      Report    `json:"report"`
	ProcessedAt time.Time `json:"processed_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
