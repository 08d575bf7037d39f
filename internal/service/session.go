package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cesmanager/cesmanager-go/internal/mapper"
	"github.com/cesmanager/cesmanager-go/internal/model"
	"github.com/cesmanager/cesmanager-go/internal/repository"
)

// Messages returned to clients alongside non-Ok status codes.
const (
	MsgSessionsNotFound     = "Could not find sessions."
	MsgSessionNotFoundByID  = "Could not find session by Id."
	MsgSessionNotFoundToUpd = "Could not find session to update."
	MsgSessionNotFoundToDel = "Could not find session to Delete."
	MsgNegativeDuration     = "EndDateTime cannot be earlier than StartDateTime."
	MsgInternalError        = "Internal server error."
)

// SessionService handles session business logic. It holds no per-request
// state; every operation receives the caller's user ID explicitly and never
// touches sessions owned by anyone else.
type SessionService struct {
	sessions *repository.SessionRepository
	users    *repository.UserRepository
}

// NewSessionService creates a new SessionService.
func NewSessionService(sessions *repository.SessionRepository, users *repository.UserRepository) *SessionService {
	return &SessionService{sessions: sessions, users: users}
}

// ListSessions returns every session owned by ownerID in insertion order.
// An owner without sessions gets StatusSessionNotFound.
func (s *SessionService) ListSessions(ctx context.Context, ownerID int64) model.Response[[]model.GetSessionResponse] {
	sessions, err := s.sessions.ListByUser(ctx, ownerID)
	if err != nil {
		return internalError[[]model.GetSessionResponse](ctx, "listing sessions", err, "owner_id", ownerID)
	}
	if len(sessions) == 0 {
		return model.Fail[[]model.GetSessionResponse](model.StatusSessionNotFound, MsgSessionsNotFound)
	}

	return model.OK(mapper.ToGetSessions(sessions))
}

// GetSession returns a single session if it exists and is owned by ownerID.
func (s *SessionService) GetSession(ctx context.Context, id, ownerID int64) model.Response[model.GetSessionResponse] {
	session, err := s.sessions.GetByIDAndUser(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return model.Fail[model.GetSessionResponse](model.StatusSessionNotFound, MsgSessionNotFoundByID)
		}
		return internalError[model.GetSessionResponse](ctx, "loading session", err, "owner_id", ownerID, "session_id", id)
	}

	return model.OK(mapper.ToGetSession(*session))
}

// AddSession stores a new session for ownerID and returns the owner's full
// list. Intervals whose end is not after their start are rejected without
// touching the store.
func (s *SessionService) AddSession(ctx context.Context, ownerID int64, req model.AddSessionRequest) model.Response[[]model.GetSessionResponse] {
	if req.Duration() <= 0 {
		return model.Fail[[]model.GetSessionResponse](model.StatusNegativeDuration, MsgNegativeDuration)
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return internalError[[]model.GetSessionResponse](ctx, "resolving session owner", err, "owner_id", ownerID)
	}

	session := mapper.FromAddSession(owner.ID, req)
	var sessions []model.Session
	err = s.sessions.RunInTx(ctx, func(tx *repository.SessionRepository) error {
		if err := tx.Create(ctx, &session); err != nil {
			return err
		}
		list, err := tx.ListByUser(ctx, owner.ID)
		sessions = list
		return err
	})
	if err != nil {
		return internalError[[]model.GetSessionResponse](ctx, "adding session", err, "owner_id", ownerID)
	}

	slog.InfoContext(ctx, "session added", "owner_id", owner.ID, "session_id", session.ID, "duration_min", session.Duration())
	return model.OK(mapper.ToGetSessions(sessions))
}

// UpdateSession replaces the interval of a session owned by ownerID and
// returns the updated session. Sessions owned by someone else are reported
// as not found.
func (s *SessionService) UpdateSession(ctx context.Context, ownerID int64, req model.UpdateSessionRequest) model.Response[model.GetSessionResponse] {
	var resp model.Response[model.GetSessionResponse]

	err := s.sessions.RunInTx(ctx, func(tx *repository.SessionRepository) error {
		existing, err := tx.GetByID(ctx, req.ID)
		switch {
		case errors.Is(err, repository.ErrSessionNotFound):
			resp = model.Fail[model.GetSessionResponse](model.StatusSessionNotFound, MsgSessionNotFoundToUpd)
			return nil
		case err != nil:
			return err
		case existing.UserID != ownerID:
			slog.WarnContext(ctx, "update of foreign session refused", "owner_id", ownerID, "session_id", req.ID)
			resp = model.Fail[model.GetSessionResponse](model.StatusSessionNotFound, MsgSessionNotFoundToUpd)
			return nil
		}

		if req.Duration() <= 0 {
			resp = model.Fail[model.GetSessionResponse](model.StatusNegativeDuration, MsgNegativeDuration)
			return nil
		}

		mapper.ApplyUpdate(existing, req)
		if err := tx.Update(ctx, existing); err != nil {
			return err
		}

		resp = model.OK(mapper.ToGetSession(*existing))
		return nil
	})
	if err != nil {
		return internalError[model.GetSessionResponse](ctx, "updating session", err, "owner_id", ownerID, "session_id", req.ID)
	}

	return resp
}

// DeleteSession removes a session owned by ownerID and returns the sessions
// that remain. The remaining list may be empty.
func (s *SessionService) DeleteSession(ctx context.Context, id, ownerID int64) model.Response[[]model.GetSessionResponse] {
	var resp model.Response[[]model.GetSessionResponse]

	err := s.sessions.RunInTx(ctx, func(tx *repository.SessionRepository) error {
		notFound := model.Fail[[]model.GetSessionResponse](model.StatusSessionNotFound, MsgSessionNotFoundToDel)

		if _, err := tx.GetByIDAndUser(ctx, id, ownerID); err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				resp = notFound
				return nil
			}
			return err
		}

		if err := tx.Delete(ctx, id, ownerID); err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				resp = notFound
				return nil
			}
			return err
		}

		remaining, err := tx.ListByUser(ctx, ownerID)
		if err != nil {
			return err
		}

		resp = model.OK(mapper.ToGetSessions(remaining))
		return nil
	})
	if err != nil {
		return internalError[[]model.GetSessionResponse](ctx, "deleting session", err, "owner_id", ownerID, "session_id", id)
	}

	return resp
}

// internalError logs err and returns a generic InternalServerError response.
// The underlying error is never exposed to the caller.
func internalError[T any](ctx context.Context, op string, err error, args ...any) model.Response[T] {
	slog.ErrorContext(ctx, op+" failed", append(args, "error", err)...)
	return model.Fail[T](model.StatusInternalServerError, MsgInternalError)
}
