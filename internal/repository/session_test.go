package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cesmanager/cesmanager-go/internal/model"
)

func seedUser(t *testing.T, repo *UserRepository, name string) int64 {
	t.Helper()
	u := &model.User{Username: name, PasswordHash: []byte("h"), PasswordSalt: []byte("s")}
	require.NoError(t, repo.Create(context.Background(), u))
	return u.ID
}

func newSession(userID int64, start time.Time, minutes int) *model.Session {
	return &model.Session{UserID: userID, StartDateTime: start, EndDateTime: start.Add(time.Duration(minutes) * time.Minute)}
}

func TestSessionRepository_CRUD_SQLite(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	users := NewUserRepository(db, SQLite)
	repo := NewSessionRepository(db, SQLite)

	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")
	start := time.Date(2020, 11, 19, 14, 0, 0, 0, time.UTC)

	first := newSession(alice, start, 30)
	second := newSession(alice, start.Add(time.Hour), 45)
	foreign := newSession(bob, start, 10)
	for _, s := range []*model.Session{first, second, foreign} {
		require.NoError(t, repo.Create(ctx, s))
	}

	list, err := repo.ListByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.True(t, start.Equal(list[0].StartDateTime))
	assert.Equal(t, 30.0, list[0].Duration())

	got, err := repo.GetByIDAndUser(ctx, foreign.ID, alice)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	got, err = repo.GetByID(ctx, foreign.ID)
	require.NoError(t, err)
	assert.Equal(t, bob, got.UserID)

	first.EndDateTime = start.Add(90 * time.Minute)
	require.NoError(t, repo.Update(ctx, first))
	got, err = repo.GetByIDAndUser(ctx, first.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, 90.0, got.Duration())

	assert.ErrorIs(t, repo.Delete(ctx, foreign.ID, alice), ErrSessionNotFound)
	require.NoError(t, repo.Delete(ctx, first.ID, alice))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID, alice), ErrSessionNotFound)

	list, err = repo.ListByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)

	list, err = repo.ListByUser(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSessionRepository_CreateRequiresExistingUser_SQLite(t *testing.T) {
	repo := NewSessionRepository(newSQLiteDB(t), SQLite)

	err := repo.Create(context.Background(), newSession(404, time.Now().UTC(), 5))
	assert.Error(t, err)
}

func TestSessionRepository_UserDeleteCascades_SQLite(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewSessionRepository(db, SQLite)
	users := NewUserRepository(db, SQLite)
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	start := time.Date(2020, 11, 19, 14, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newSession(alice, start, 30)))
	require.NoError(t, repo.Create(ctx, newSession(bob, start, 15)))

	_, err := db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", alice)
	require.NoError(t, err)

	list, err := repo.ListByUser(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, list)

	var orphans int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions WHERE user_id = ?", alice).Scan(&orphans))
	assert.Zero(t, orphans)

	list, err = repo.ListByUser(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSessionRepository_RunInTxRollsBack_SQLite(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewSessionRepository(db, SQLite)
	alice := seedUser(t, NewUserRepository(db, SQLite), "alice")

	boom := errors.New("boom")
	err := repo.RunInTx(ctx, func(tx *SessionRepository) error {
		if err := tx.Create(ctx, newSession(alice, time.Now().UTC(), 5)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := repo.ListByUser(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSessionRepository_RunInTxCommits_Mock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionRepository(db, MySQL)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sessions WHERE id = ? AND user_id = ?`)).
		WithArgs(int64(3), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.RunInTx(context.Background(), func(tx *SessionRepository) error {
		return tx.Delete(context.Background(), 3, 1)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_ListPostgresPlaceholders_Mock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionRepository(db, Postgres)
	start := time.Date(2020, 11, 19, 14, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, start_date_time, end_date_time FROM sessions WHERE user_id = $1 ORDER BY id ASC`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "start_date_time", "end_date_time"}).
			AddRow(int64(1), int64(1), start, start.Add(30*time.Minute)))

	list, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 30.0, list[0].Duration())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_QueryErrorIsWrapped_Mock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionRepository(db, MySQL)

	down := errors.New("db down")
	mock.ExpectQuery(`SELECT .* FROM sessions WHERE id = \? AND user_id = \?`).WillReturnError(down)

	_, err := repo.GetByIDAndUser(context.Background(), 1, 1)
	assert.ErrorIs(t, err, down)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}
