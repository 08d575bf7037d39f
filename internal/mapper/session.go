// Package mapper converts between persisted entities and their transfer shapes.
package mapper

import "github.com/cesmanager/cesmanager-go/internal/model"

// ToGetSession maps a stored session to its API representation.
func ToGetSession(s model.Session) model.GetSessionResponse {
	return model.GetSessionResponse{
		ID:            s.ID,
		StartDateTime: s.StartDateTime,
		EndDateTime:   s.EndDateTime,
		Duration:      s.Duration(),
	}
}

// ToGetSessions maps a slice of sessions, preserving order. It never returns nil.
func ToGetSessions(sessions []model.Session) []model.GetSessionResponse {
	result := make([]model.GetSessionResponse, len(sessions))
	for i, s := range sessions {
		result[i] = ToGetSession(s)
	}
	return result
}

// FromAddSession builds a new session entity for the given owner.
func FromAddSession(ownerID int64, req model.AddSessionRequest) model.Session {
	return model.Session{
		UserID:        ownerID,
		StartDateTime: req.StartDateTime.UTC(),
		EndDateTime:   req.EndDateTime.UTC(),
	}
}

// ApplyUpdate copies the requested interval onto an existing session.
func ApplyUpdate(s *model.Session, req model.UpdateSessionRequest) {
	s.StartDateTime = req.StartDateTime.UTC()
	s.EndDateTime = req.EndDateTime.UTC()
}
