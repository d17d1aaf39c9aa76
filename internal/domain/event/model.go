package event

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Well-known event types. Type is an open string: clients send whatever
// they send, and unknown types still ride along in the log.
const (
	TypeGameStart  = "game_start"
	TypeGameEnd    = "game_end"
	TypeScore      = "score"
	TypeTurnover   = "turnover"
	TypeDriveStart = "drive_start"
	TypeDriveEnd   = "drive_end"
	TypePlay       = "play"
)

// Event is one record of a game's append-only event log. Timestamp and
// CreatedAt are heterogeneous on the wire (epoch number, ISO-8601
// string, or absent), so both are kept as decoded JSON values.
type Event struct {
	EventID   string         `json:"eventId"`
	GameID    string         `json:"gameId"`
	AppID     string         `json:"appId,omitempty"`
	Sport     string         `json:"sport,omitempty"`
	Type      string         `json:"type"`
	Timestamp any            `json:"timestamp,omitempty"`
	CreatedAt any            `json:"createdAt,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// SortKey extracts a numeric sort key from the event's timestamp
// fields. Timestamp wins over CreatedAt, numbers are used directly,
// date strings parse to epoch milliseconds, and anything unparsable
// yields 0 so that such events sort first. Total, no error path.
func (e Event) SortKey() int64 {
	if key, ok := timeValue(e.Timestamp); ok {
		return key
	}
	if key, ok := timeValue(e.CreatedAt); ok {
		return key
	}
	return 0
}

func timeValue(v any) (int64, bool) {
	switch value := v.(type) {
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return 0, false
		}
		return int64(value), true
	case int64:
		return value, true
	case int:
		return int64(value), true
	case json.Number:
		if f, err := value.Float64(); err == nil {
			return int64(f), true
		}
		return 0, false
	case string:
		return parseTimeString(value)
	default:
		return 0, false
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimeString(raw string) (int64, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, false
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UnixMilli(), true
		}
	}
	return 0, false
}

// Payload accessors. The payload is an open key/value bag, so every
// read tolerates missing keys and wrong shapes.

func (e Event) payloadValue(key string) (any, bool) {
	if e.Payload == nil {
		return nil, false
	}
	v, ok := e.Payload[key]
	return v, ok
}

// PayloadString returns the trimmed string at key, or "".
func (e Event) PayloadString(key string) string {
	v, ok := e.payloadValue(key)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// PayloadNumber returns the finite number at key.
func (e Event) PayloadNumber(key string) (float64, bool) {
	v, ok := e.payloadValue(key)
	if !ok {
		return 0, false
	}
	return asFiniteNumber(v)
}

// PayloadInt returns the value at key when it is an integer-valued
// number. Fractional values are rejected, mirroring how the payloads
// were validated upstream.
func (e Event) PayloadInt(key string) (int, bool) {
	f, ok := e.PayloadNumber(key)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func asFiniteNumber(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return 0, false
		}
		return value, true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case json.Number:
		f, err := value.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// IntegerIn reads an integer-valued number out of an arbitrary decoded
// JSON value, the same way PayloadInt does for payload keys.
func IntegerIn(v any) (int, bool) {
	f, ok := asFiniteNumber(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
