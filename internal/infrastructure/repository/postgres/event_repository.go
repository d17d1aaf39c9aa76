package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridline/gamecast/internal/domain/event"
	qb "github.com/gridline/gamecast/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) ListByGame(ctx context.Context, gameID string) ([]event.Event, error) {
	query, args, err := qb.Select("*").From("game_events").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select events by game query: %w", err)
	}

	var rows []gameEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		if isSchemaMismatch(err) {
			return r.listByGameLegacy(ctx, gameID)
		}
		return nil, fmt.Errorf("select events by game: %w", err)
	}

	return rowsToDomain(rows)
}

// listByGameLegacy reads pre-migration tables that lack the app_id,
// sport, ts, and created_at columns. One deterministic retry, no loop.
func (r *EventRepository) listByGameLegacy(ctx context.Context, gameID string) ([]event.Event, error) {
	query, args, err := qb.Select(
		"id",
		"event_id",
		"game_id",
		"COALESCE((to_jsonb(game_events) ->> 'app_id'), '') AS app_id",
		"COALESCE((to_jsonb(game_events) ->> 'sport'), '') AS sport",
		"event_type",
		"COALESCE((to_jsonb(game_events) -> 'ts'), 'null'::jsonb) AS ts",
		"COALESCE((to_jsonb(game_events) -> 'created_at'), 'null'::jsonb) AS created_at",
		"payload",
	).From("game_events").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build legacy select events by game query: %w", err)
	}

	var rows []gameEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select events by game legacy: %w", err)
	}

	return rowsToDomain(rows)
}

func (r *EventRepository) Append(ctx context.Context, items []event.Event) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append events tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		row, err := toInsertModel(item)
		if err != nil {
			return err
		}

		// Replays of the same batch are expected; the event log never
		// rewrites an existing event.
		query, args, err := qb.InsertModel("game_events", row, "ON CONFLICT (event_id) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build insert event query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert event %s: %w", item.EventID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append events tx: %w", err)
	}

	return nil
}

func rowsToDomain(rows []gameEventTableModel) ([]event.Event, error) {
	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
