package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// timestampLayouts are accepted for incoming timestamps. Values without a zone
// are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses s using the first matching layout in timestampLayouts.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

type intervalJSON struct {
	StartDateTime string `json:"startDateTime"`
	EndDateTime   string `json:"endDateTime"`
}

func (j intervalJSON) parse() (start, end time.Time, err error) {
	if start, err = ParseTimestamp(j.StartDateTime); err != nil {
		return
	}
	end, err = ParseTimestamp(j.EndDateTime)
	return
}

// Session is a time interval owned by exactly one user.
type Session struct {
	ID            int64
	UserID        int64
	StartDateTime time.Time
	EndDateTime   time.Time
}

// Duration returns the length of the session in minutes.
func (s Session) Duration() float64 {
	return DurationMinutes(s.StartDateTime, s.EndDateTime)
}

// DurationMinutes returns end - start expressed in (fractional) minutes.
func DurationMinutes(start, end time.Time) float64 {
	return end.Sub(start).Minutes()
}

// AddSessionRequest is the payload for creating a session. The owner is
// never taken from the body.
type AddSessionRequest struct {
	StartDateTime time.Time `json:"startDateTime"`
	EndDateTime   time.Time `json:"endDateTime"`
}

// Duration returns the requested session length in minutes.
func (r AddSessionRequest) Duration() float64 {
	return DurationMinutes(r.StartDateTime, r.EndDateTime)
}

func (r *AddSessionRequest) UnmarshalJSON(b []byte) error {
	var raw intervalJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	start, end, err := raw.parse()
	if err != nil {
		return err
	}
	r.StartDateTime, r.EndDateTime = start, end
	return nil
}

// UpdateSessionRequest is the payload for replacing a session's interval.
type UpdateSessionRequest struct {
	ID            int64     `json:"id"`
	StartDateTime time.Time `json:"startDateTime"`
	EndDateTime   time.Time `json:"endDateTime"`
}

// Duration returns the requested session length in minutes.
func (r UpdateSessionRequest) Duration() float64 {
	return DurationMinutes(r.StartDateTime, r.EndDateTime)
}

func (r *UpdateSessionRequest) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID int64 `json:"id"`
		intervalJSON
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	start, end, err := raw.parse()
	if err != nil {
		return err
	}
	r.ID, r.StartDateTime, r.EndDateTime = raw.ID, start, end
	return nil
}

// GetSessionResponse is the transfer shape returned to clients.
type GetSessionResponse struct {
	ID            int64     `json:"id"`
	StartDateTime time.Time `json:"startDateTime"`
	EndDateTime   time.Time `json:"endDateTime"`
	Duration      float64   `json:"duration"`
}
