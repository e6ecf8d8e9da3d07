package event

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	domain "eventhub/internal/domain/event"
)

const eventColumns = "id, title, description, date, time, location, coordinator_id, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new EventStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Event by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Event, error) {
	query := "SELECT " + eventColumns + " FROM event WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanEvent(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Event{}, fmt.Errorf("event not found: %w", err)
	}
	return entity, err
}

// Save persists an Event to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "title", "description", "date", "time", "location", "coordinator_id", "created_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?", "?"}
	updates := []string{
		"title=excluded.title",
		"description=excluded.description",
		"date=excluded.date",
		"time=excluded.time",
		"location=excluded.location",
	}
	// coordinator_id is deliberately absent from the update list: ownership
	// never transfers.

	query := fmt.Sprintf(
		"INSERT INTO event (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Title,
		entity.Description,
		entity.Date,
		entity.Time,
		entity.Location,
		entity.CoordinatorID,
		entity.CreatedAt.Format("2006-01-02T15:04:05.999999999Z07:00"),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes an Event from the database. Registrations for the event are
// removed by the foreign key cascade.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM event WHERE id = ?", id)
	return err
}

// ListByDate retrieves all events ordered by date ascending.
// PRE: none
// POST: Returns all events in catalog order
func (s *SQLiteStore) ListByDate(ctx context.Context) ([]domain.Event, error) {
	query := "SELECT " + eventColumns + " FROM event ORDER BY date ASC, time ASC"
	return s.list(ctx, query)
}

// ListByCoordinator retrieves a coordinator's own events, newest first.
// PRE: coordinatorID is non-empty
// POST: Returns the coordinator's events ordered by creation time descending
func (s *SQLiteStore) ListByCoordinator(ctx context.Context, coordinatorID string) ([]domain.Event, error) {
	query := "SELECT " + eventColumns + " FROM event WHERE coordinator_id = ? ORDER BY created_at DESC"
	return s.list(ctx, query, coordinatorID)
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Event
	for rows.Next() {
		entity, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// scanEvent extracts an Event from a row scanner function.
func scanEvent(scan func(dest ...interface{}) error) (domain.Event, error) {
	var entity domain.Event
	var createdAt string
	err := scan(
		&entity.ID,
		&entity.Title,
		&entity.Description,
		&entity.Date,
		&entity.Time,
		&entity.Location,
		&entity.CoordinatorID,
		&createdAt,
	)
	if err != nil {
		return domain.Event{}, err
	}
	entity.CreatedAt, _ = parseTime(createdAt)
	return entity, nil
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}
