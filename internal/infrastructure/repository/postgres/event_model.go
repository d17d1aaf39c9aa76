package postgres

import (
	"database/sql"
	"fmt"

	sonic "github.com/bytedance/sonic"

	"github.com/gridline/gamecast/internal/domain/event"
)

type gameEventTableModel struct {
	ID        int64          `db:"id"`
	EventID   string         `db:"event_id"`
	GameID    string         `db:"game_id"`
	AppID     sql.NullString `db:"app_id"`
	Sport     sql.NullString `db:"sport"`
	EventType string         `db:"event_type"`
	TS        []byte         `db:"ts"`
	CreatedAt []byte         `db:"created_at"`
	Payload   []byte         `db:"payload"`
}

// gameEventInsertModel mirrors the table without the serial id; column
// order feeds the insert builder via db tags.
type gameEventInsertModel struct {
	EventID   string `db:"event_id"`
	GameID    string `db:"game_id"`
	AppID     string `db:"app_id"`
	Sport     string `db:"sport"`
	EventType string `db:"event_type"`
	TS        []byte `db:"ts"`
	CreatedAt []byte `db:"created_at"`
	Payload   []byte `db:"payload"`
}

func (m gameEventTableModel) toDomain() (event.Event, error) {
	out := event.Event{
		EventID: m.EventID,
		GameID:  m.GameID,
		AppID:   m.AppID.String,
		Sport:   m.Sport.String,
		Type:    m.EventType,
	}

	var err error
	if out.Timestamp, err = decodeJSONValue(m.TS); err != nil {
		return event.Event{}, fmt.Errorf("decode ts for event %s: %w", m.EventID, err)
	}
	if out.CreatedAt, err = decodeJSONValue(m.CreatedAt); err != nil {
		return event.Event{}, fmt.Errorf("decode created_at for event %s: %w", m.EventID, err)
	}
	if len(m.Payload) > 0 {
		if err := sonic.Unmarshal(m.Payload, &out.Payload); err != nil {
			return event.Event{}, fmt.Errorf("decode payload for event %s: %w", m.EventID, err)
		}
	}

	return out, nil
}

func toInsertModel(item event.Event) (gameEventInsertModel, error) {
	ts, err := encodeJSONValue(item.Timestamp)
	if err != nil {
		return gameEventInsertModel{}, fmt.Errorf("encode ts for event %s: %w", item.EventID, err)
	}
	createdAt, err := encodeJSONValue(item.CreatedAt)
	if err != nil {
		return gameEventInsertModel{}, fmt.Errorf("encode created_at for event %s: %w", item.EventID, err)
	}

	payload := item.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	rawPayload, err := sonic.Marshal(payload)
	if err != nil {
		return gameEventInsertModel{}, fmt.Errorf("encode payload for event %s: %w", item.EventID, err)
	}

	return gameEventInsertModel{
		EventID:   item.EventID,
		GameID:    item.GameID,
		AppID:     item.AppID,
		Sport:     item.Sport,
		EventType: item.Type,
		TS:        ts,
		CreatedAt: createdAt,
		Payload:   rawPayload,
	}, nil
}

// Timestamps are stored as raw JSON so a numeric epoch and a string
// date survive the round trip with their original type.
func decodeJSONValue(raw []byte) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out any
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeJSONValue(value any) ([]byte, error) {
	if value == nil {
		return []byte("null"), nil
	}
	return sonic.Marshal(value)
}
