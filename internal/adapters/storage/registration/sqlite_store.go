package registration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	domain "eventhub/internal/domain/registration"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new RegistrationStore.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts a new registration. The composite primary key enforces at
// most one registration per (event, account) pair; a constraint violation maps
// to ErrDuplicate.
// PRE: entity has been validated
// POST: Entity is inserted, or ErrDuplicate if the pair already exists
func (s *SQLiteStore) Create(ctx context.Context, entity domain.Registration) error {
	query := "INSERT INTO registration (event_id, account_id, registered_at) VALUES (?, ?, ?)"
	_, err := s.db.ExecContext(ctx, query,
		entity.EventID,
		entity.AccountID,
		entity.RegisteredAt.Format("2006-01-02T15:04:05.999999999Z07:00"),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Get retrieves a registration by its composite key.
// PRE: eventID and accountID are non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) Get(ctx context.Context, eventID, accountID string) (domain.Registration, error) {
	query := "SELECT event_id, account_id, registered_at FROM registration WHERE event_id = ? AND account_id = ?"
	row := s.db.QueryRowContext(ctx, query, eventID, accountID)

	entity, err := scanRegistration(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Registration{}, fmt.Errorf("registration not found: %w", err)
	}
	return entity, err
}

// Delete removes a registration by its composite key.
// PRE: eventID and accountID are non-empty
// POST: The pair is removed; no-op when absent
func (s *SQLiteStore) Delete(ctx context.Context, eventID, accountID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM registration WHERE event_id = ? AND account_id = ?", eventID, accountID)
	return err
}

// ListByAccount retrieves all registrations held by one account.
// PRE: accountID is non-empty
// POST: Returns the account's registrations
func (s *SQLiteStore) ListByAccount(ctx context.Context, accountID string) ([]domain.Registration, error) {
	query := "SELECT event_id, account_id, registered_at FROM registration WHERE account_id = ?"
	rows, err := s.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Registration
	for rows.Next() {
		entity, err := scanRegistration(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// CountByEvent returns the number of registrants for one event.
// PRE: eventID is non-empty
// POST: Returns count >= 0
func (s *SQLiteStore) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM registration WHERE event_id = ?", eventID).Scan(&count)
	return count, err
}

// ListParticipants retrieves the denormalized roster for one event from the
// event_participants view.
// PRE: eventID is non-empty
// POST: Returns roster rows ordered by registration time
func (s *SQLiteStore) ListParticipants(ctx context.Context, eventID string) ([]ParticipantRow, error) {
	query := `SELECT event_id, account_id, registered_at, name, email, phone, department, year_of_study, college, event_title
		FROM event_participants WHERE event_id = ? ORDER BY registered_at ASC`
	rows, err := s.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []ParticipantRow
	for rows.Next() {
		var row ParticipantRow
		var registeredAt string
		if err := rows.Scan(
			&row.EventID,
			&row.AccountID,
			&registeredAt,
			&row.Name,
			&row.Email,
			&row.Phone,
			&row.Department,
			&row.YearOfStudy,
			&row.College,
			&row.EventTitle,
		); err != nil {
			return nil, err
		}
		row.RegisteredAt, _ = parseTime(registeredAt)
		results = append(results, row)
	}
	return results, rows.Err()
}

// scanRegistration extracts a Registration from a row scanner function.
// A registered_at value that cannot be parsed yields a zero timestamp, which
// the domain treats as not-cancellable.
func scanRegistration(scan func(dest ...interface{}) error) (domain.Registration, error) {
	var entity domain.Registration
	var registeredAt string
	err := scan(
		&entity.EventID,
		&entity.AccountID,
		&registeredAt,
	)
	if err != nil {
		return domain.Registration{}, err
	}
	entity.RegisteredAt, _ = parseTime(registeredAt)
	return entity, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: UNIQUE")
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
