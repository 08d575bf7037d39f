package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cesmanager/cesmanager-go/internal/middleware"
	"github.com/cesmanager/cesmanager-go/internal/model"
	"github.com/cesmanager/cesmanager-go/internal/service"
)

// SessionHandler handles HTTP requests for session operations.
type SessionHandler struct {
	service *service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{service: svc}
}

// HandleGetAll handles GET /session/getall requests.
func (h *SessionHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	writeResult(w, h.service.ListSessions(r.Context(), userID))
}

// HandleGet handles GET /session/{id} requests.
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	writeResult(w, h.service.GetSession(r.Context(), id, userID))
}

// HandleAdd handles POST /session requests.
func (h *SessionHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.AddSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	writeResult(w, h.service.AddSession(r.Context(), userID, req))
}

// HandleUpdate handles PUT /session requests.
func (h *SessionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.UpdateSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	writeResult(w, h.service.UpdateSession(r.Context(), userID, req))
}

// HandleDelete handles DELETE /session/{id} requests.
func (h *SessionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	writeResult(w, h.service.DeleteSession(r.Context(), id, userID))
}

func sessionID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid session id"))
		return 0, false
	}
	return id, true
}
