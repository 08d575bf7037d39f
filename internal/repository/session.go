package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cesmanager/cesmanager-go/internal/model"
)

var ErrSessionNotFound = errors.New("session not found")

const sessionColumns = `id, user_id, start_date_time, end_date_time`

// SessionRepository handles session persistence operations. Every query that
// returns or changes rows owned by a user is filtered on user_id.
type SessionRepository struct {
	db      DBTX
	conn    *sql.DB
	dialect Dialect
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db *sql.DB, d Dialect) *SessionRepository {
	return &SessionRepository{db: db, conn: db, dialect: d}
}

// RunInTx calls fn with a repository bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (r *SessionRepository) RunInTx(ctx context.Context, fn func(repo *SessionRepository) error) error {
	return withTx(ctx, r.conn, func(tx *sql.Tx) error {
		return fn(&SessionRepository{db: tx, conn: r.conn, dialect: r.dialect})
	})
}

// ListByUser returns all sessions owned by userID in insertion order.
func (r *SessionRepository) ListByUser(ctx context.Context, userID int64) ([]model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE user_id = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(query), userID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.StartDateTime, &s.EndDateTime); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sessions = append(sessions, normalise(s))
	}

	return sessions, rows.Err()
}

// GetByID retrieves a session regardless of owner. Callers must check UserID.
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, r.dialect.rebind(query), id))
}

// GetByIDAndUser retrieves a session only if it is owned by userID.
func (r *SessionRepository) GetByIDAndUser(ctx context.Context, id, userID int64) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ? AND user_id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, r.dialect.rebind(query), id, userID))
}

// Create inserts a session and sets its generated ID.
func (r *SessionRepository) Create(ctx context.Context, s *model.Session) error {
	query := `INSERT INTO sessions (user_id, start_date_time, end_date_time) VALUES (?, ?, ?)`

	id, err := insertID(ctx, r.db, r.dialect, query, s.UserID, s.StartDateTime, s.EndDateTime)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	s.ID = id
	return nil
}

// Update stores the start and end of an existing session owned by s.UserID.
func (r *SessionRepository) Update(ctx context.Context, s *model.Session) error {
	query := `UPDATE sessions SET start_date_time = ?, end_date_time = ? WHERE id = ? AND user_id = ?`

	if _, err := r.db.ExecContext(ctx, r.dialect.rebind(query), s.StartDateTime, s.EndDateTime, s.ID, s.UserID); err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	return nil
}

// Delete removes a session owned by userID.
func (r *SessionRepository) Delete(ctx context.Context, id, userID int64) error {
	query := `DELETE FROM sessions WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, r.dialect.rebind(query), id, userID)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (r *SessionRepository) scanOne(row *sql.Row) (*model.Session, error) {
	var s model.Session
	if err := row.Scan(&s.ID, &s.UserID, &s.StartDateTime, &s.EndDateTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	s = normalise(s)
	return &s, nil
}

func normalise(s model.Session) model.Session {
	s.StartDateTime = s.StartDateTime.UTC()
	s.EndDateTime = s.EndDateTime.UTC()
	return s
}
