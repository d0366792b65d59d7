package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chronos-hq/chronos-backend-go/internal/domain/attendance"
	"github.com/chronos-hq/chronos-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type eventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) attendance.EventRepository {
	return &eventRepository{db: db}
}

// storeErr marks infrastructure failures so callers can distinguish
// them from invariant rejections.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, attendance.ErrStoreUnavailable)
}

// ListByUser implements attendance.EventRepository.
func (r *eventRepository) ListByUser(ctx context.Context, userID string) ([]attendance.Event, error) {
	query := `
		SELECT id, user_id, type, created_at
		FROM attendance_events
		WHERE user_id = $1
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, storeErr("list events", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		var ev attendance.Event
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Type, &ev.CreatedAt); err != nil {
			return nil, storeErr("scan event", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list events", err)
	}

	return events, nil
}

// LatestForUser implements attendance.EventRepository. Ties on
// created_at are broken by id: event IDs are UUIDv7, so insertion
// order is preserved.
func (r *eventRepository) LatestForUser(ctx context.Context, userID string) (*attendance.Event, error) {
	query := `
		SELECT id, user_id, type, created_at
		FROM attendance_events
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var ev attendance.Event
	err := r.db.QueryRow(ctx, query, userID).Scan(&ev.ID, &ev.UserID, &ev.Type, &ev.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("latest event", err)
	}

	return &ev, nil
}

// Append implements attendance.EventRepository. The latest-event read
// and the insert run inside one transaction holding a per-user
// advisory lock, so concurrent appends for the same user serialize and
// the alternation invariant cannot be violated by a race.
func (r *eventRepository) Append(ctx context.Context, userID string, eventType attendance.EventType) (attendance.Event, error) {
	var created attendance.Event

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID); err != nil {
			return storeErr("lock user ledger", err)
		}

		var latest *attendance.EventType
		var latestType attendance.EventType
		err := tx.QueryRow(ctx, `
			SELECT type
			FROM attendance_events
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		`, userID).Scan(&latestType)
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return storeErr("latest event", err)
			}
		} else {
			latest = &latestType
		}

		if err := checkAlternation(latest, eventType); err != nil {
			return err
		}

		id := uuid.Must(uuid.NewV7()).String()
		err = tx.QueryRow(ctx, `
			INSERT INTO attendance_events (id, user_id, type, created_at)
			VALUES ($1, $2, $3, NOW())
			RETURNING id, user_id, type, created_at
		`, id, userID, eventType).Scan(&created.ID, &created.UserID, &created.Type, &created.CreatedAt)
		if err != nil {
			return storeErr("insert event", err)
		}

		return nil
	})
	if err != nil {
		return attendance.Event{}, err
	}

	return created, nil
}

// checkAlternation enforces the per-user alternation invariant against
// the most recent event type (nil when the ledger is empty).
func checkAlternation(latest *attendance.EventType, next attendance.EventType) error {
	switch next {
	case attendance.CheckIn:
		if latest != nil && *latest == attendance.CheckIn {
			return attendance.ErrAlreadyCheckedIn
		}
	case attendance.CheckOut:
		if latest == nil {
			return attendance.ErrNoOpenShift
		}
		if *latest == attendance.CheckOut {
			return attendance.ErrAlreadyCheckedOut
		}
	}
	return nil
}

// List implements attendance.EventRepository.
func (r *eventRepository) List(ctx context.Context, filter attendance.EventFilter) ([]attendance.Event, int64, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argPos))
		args = append(args, filter.UserID)
		argPos++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argPos))
		args = append(args, *filter.From)
		argPos++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at < $%d", argPos))
		args = append(args, *filter.To)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM attendance_events WHERE %s`, where)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, storeErr("count events", err)
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, type, created_at
		FROM attendance_events
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, storeErr("list events", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		var ev attendance.Event
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Type, &ev.CreatedAt); err != nil {
			return nil, 0, storeErr("scan event", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr("list events", err)
	}

	return events, total, nil
}

// GetByID implements attendance.EventRepository.
func (r *eventRepository) GetByID(ctx context.Context, id string) (attendance.Event, error) {
	query := `
		SELECT id, user_id, type, created_at
		FROM attendance_events
		WHERE id = $1
	`

	var ev attendance.Event
	err := r.db.QueryRow(ctx, query, id).Scan(&ev.ID, &ev.UserID, &ev.Type, &ev.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Event{}, attendance.ErrEventNotFound
		}
		return attendance.Event{}, storeErr("get event", err)
	}

	return ev, nil
}

// Update implements attendance.EventRepository.
func (r *eventRepository) Update(ctx context.Context, event attendance.Event) error {
	query := `
		UPDATE attendance_events
		SET type = $2, created_at = $3
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, event.ID, event.Type, event.CreatedAt)
	if err != nil {
		return storeErr("update event", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrEventNotFound
	}

	return nil
}

// Delete implements attendance.EventRepository.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM attendance_events WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete event", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrEventNotFound
	}

	return nil
}
