package model

import (
	"encoding/json"
	"fmt"
)

// StatusCode is the outcome of a service operation.
type StatusCode int

const (
	StatusUnknown StatusCode = iota
	StatusOK
	StatusInternalServerError
	StatusSessionNotFound
	StatusNegativeDuration
	StatusInvalidLogin
	StatusInvalidRegister
)

var statusNames = [...]string{
	StatusUnknown:             "Unknown",
	StatusOK:                  "Ok",
	StatusInternalServerError: "InternalServerError",
	StatusSessionNotFound:     "SessionNotFound",
	StatusNegativeDuration:    "NegativeDuration",
	StatusInvalidLogin:        "InvalidLogin",
	StatusInvalidRegister:     "InvalidRegister",
}

func (s StatusCode) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("StatusCode(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText encodes the status by name so JSON clients see "Ok" rather than 1.
func (s StatusCode) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name. Unrecognised names decode as StatusUnknown.
func (s *StatusCode) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = StatusCode(i)
			return nil
		}
	}
	*s = StatusUnknown
	return nil
}

// Response is the envelope returned by every service operation.
type Response[T any] struct {
	Data    T          `json:"data"`
	Status  StatusCode `json:"statusCode"`
	Message string     `json:"message,omitempty"`
}

// Success reports whether the operation finished with StatusOK.
func (r Response[T]) Success() bool {
	return r.Status == StatusOK
}

// MarshalJSON adds the derived success flag to the encoded envelope.
func (r Response[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Data    T          `json:"data"`
		Success bool       `json:"success"`
		Message string     `json:"message,omitempty"`
		Status  StatusCode `json:"statusCode"`
	}{
		Data:    r.Data,
		Success: r.Success(),
		Message: r.Message,
		Status:  r.Status,
	})
}

// OK wraps data in a successful response.
func OK[T any](data T) Response[T] {
	return Response[T]{Data: data, Status: StatusOK}
}

// Fail builds a response carrying only a status and message.
func Fail[T any](status StatusCode, msg string) Response[T] {
	return Response[T]{Status: status, Message: msg}
}
