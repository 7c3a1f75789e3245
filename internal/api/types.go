package api

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Node is a remote item managed by ddld, as returned by a node search.
type Node struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LogRecord is one entry of the ddld operational log. Only Message is
// guaranteed; the other fields are filled when the service sends them.
type LogRecord struct {
	Level     int    `json:"level"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
	Thread    string `json:"thread"`
	Message   string `json:"message"`

	Raw json.RawMessage `json:"-"`
}

// wireLogRecord holds the optional fields undecoded so a record whose
// level, timestamp or thread has an unexpected type still yields its
// message.
type wireLogRecord struct {
	Message   *string         `json:"message"`
	Level     json.RawMessage `json:"level"`
	Timestamp json.RawMessage `json:"timestamp"`
	Thread    json.RawMessage `json:"thread"`
}

// DecodeLogRecord parses a single JSON-encoded record and keeps the raw
// bytes. Only a non-object or a message that is not a string is an
// error; the other fields are converted when possible and left zero
// otherwise.
func DecodeLogRecord(data []byte) (LogRecord, error) {
	var w wireLogRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return LogRecord{}, fmt.Errorf("decoding log record: %w", err)
	}
	rec := LogRecord{
		Level:     parseLevel(w.Level),
		Timestamp: parseTimestamp(w.Timestamp),
		Thread:    parseThread(w.Thread),
		Raw:       append(json.RawMessage(nil), data...),
	}
	if w.Message != nil {
		rec.Message = *w.Message
	}
	return rec, nil
}

var levelNumbers = map[string]int{
	"DEBUG":    10,
	"INFO":     20,
	"WARN":     30,
	"WARNING":  30,
	"ERROR":    40,
	"CRIT":     50,
	"CRITICAL": 50,
	"FATAL":    50,
}

// parseLevel accepts a number or a level name.
func parseLevel(raw json.RawMessage) int {
	if n, ok := rawNumber(raw); ok {
		return int(n)
	}
	var name string
	if json.Unmarshal(raw, &name) != nil {
		return 0
	}
	if n, err := strconv.Atoi(strings.TrimSpace(name)); err == nil {
		return n
	}
	return levelNumbers[strings.ToUpper(strings.TrimSpace(name))]
}

// parseTimestamp accepts unix milliseconds as a number or numeric string.
func parseTimestamp(raw json.RawMessage) int64 {
	if n, ok := rawNumber(raw); ok {
		return int64(n)
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return 0
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int64(n)
}

// parseThread accepts a string or any scalar, rendered as its JSON text.
func parseThread(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	if _, ok := rawNumber(raw); ok {
		return string(raw)
	}
	return ""
}

func rawNumber(raw json.RawMessage) (float64, bool) {
	var n float64
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil {
		return 0, false
	}
	return n, true
}

// Time returns the record timestamp, or the zero time when absent.
func (r LogRecord) Time() time.Time {
	if r.Timestamp <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(r.Timestamp)
}

// LevelName maps the numeric level (10 debug through 50 critical) to a tag.
func (r LogRecord) LevelName() string {
	switch {
	case r.Level >= 50:
		return "CRIT"
	case r.Level >= 40:
		return "ERROR"
	case r.Level >= 30:
		return "WARN"
	case r.Level >= 20:
		return "INFO"
	case r.Level > 0:
		return "DEBUG"
	}
	return ""
}
