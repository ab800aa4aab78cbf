package domain

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmptyReport is returned for source messages that carry no report text.
var ErrEmptyReport = errors.New("empty METAR report")

// ParseRawEvent decodes the METAR carried by a source message. The value is
// either a RawMETARRecord or the bare report text. The station hint comes from
// the record, then the "station" header, then the message key.
func ParseRawEvent(raw RawEvent) (ReportEvent, error) {
	rec, err := parseRecord(raw.Value)
	if err != nil {
		return ReportEvent{}, err
	}

	text := strings.TrimSpace(rec.METAR)
	if text == "" {
		return ReportEvent{}, fmt.Errorf("parse raw event: %w", ErrEmptyReport)
	}

	station := strings.TrimSpace(rec.Station)
	if station == "" {
		station = raw.Headers["station"]
	}
	if station == "" {
		station = string(raw.Key)
	}

	report := Decode(text, station)
	return ReportEvent{
		ID:     generateID(report.Station, text),
		Report: report,
	}, nil
}

func parseRecord(value []byte) (RawMETARRecord, error) {
	trimmed := bytes.TrimSpace(value)
	if !bytes.HasPrefix(trimmed, []byte("{")) {
		return RawMETARRecord{METAR: string(trimmed)}, nil
	}

	var rec RawMETARRecord
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return RawMETARRecord{}, fmt.Errorf("parse raw event: %w", err)
	}
	return rec, nil
}

// StampReportEvent records when the event was processed.
func StampReportEvent(event ReportEvent) ReportEvent {
	event.ProcessedAt = clock.Now()
	return event
}

// SerializeReportEvent marshals an event into a sink message keyed by its ID.
func SerializeReportEvent(event ReportEvent) (OutputEvent, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize report event: %w", err)
	}
	return OutputEvent{
		Key:   []byte(event.ID),
		Value: data,
		Headers: map[string]string{
			"station":      event.Report.Station,
			"processed_at": event.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}

// generateID derives a stable ID from the station and report text, so
// replaying the same observation produces the same key downstream.
func generateID(station, raw string) string {
	hash := sha256.Sum256([]byte(station + "|" + raw))
	short := hex.EncodeToString(hash[:8])
	if station == "" {
		return short
	}
	return station + "-" + short
}
