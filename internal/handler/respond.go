package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cesmanager/cesmanager-go/internal/model"
)

const maxBodyBytes = 1 << 20 // 1MB

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encoding response", "error", err)
	}
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// decodeJSON reads a size-limited JSON body into dst. It writes the error
// response itself and reports false when the body is unusable.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}
	return true
}

// httpStatus maps a service status code onto the HTTP status returned to clients.
func httpStatus(code model.StatusCode) int {
	switch code {
	case model.StatusOK:
		return http.StatusOK
	case model.StatusSessionNotFound:
		return http.StatusNotFound
	case model.StatusNegativeDuration, model.StatusInvalidLogin, model.StatusInvalidRegister:
		return http.StatusBadRequest
	case model.StatusInternalServerError, model.StatusUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// writeResult writes the payload of a successful response and any failure
// as an error body carrying the response message.
func writeResult[T any](w http.ResponseWriter, resp model.Response[T]) {
	status := httpStatus(resp.Status)
	if !resp.Success() {
		writeJSON(w, status, errorResponse(resp.Message))
		return
	}
	writeJSON(w, status, resp.Data)
}
