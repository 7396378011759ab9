package api

import "time"

// DefaultKeyParam addresses the default timer in URLs.
const DefaultKeyParam = "_"

// TimerView is the JSON form of a timer snapshot.
type TimerView struct {
	Key       string     `json:"key"`
	Start     time.Time  `json:"start"`
	End       *time.Time `json:"end,omitempty"`
	ElapsedNS *int64     `json:"elapsed_ns,omitempty"`
	Finished  bool       `json:"finished"`
}

// StartResponse is returned when a timer starts.
type StartResponse struct {
	Key   string    `json:"key"`
	Start time.Time `json:"start"`
}

// StopResponse is returned when a timer stops.
type StopResponse struct {
	Key       string    `json:"key"`
	End       time.Time `json:"end"`
	ElapsedMS int64     `json:"elapsed_ms"`
}

// ElapsedResponse carries an elapsed reading in a unit.
type ElapsedResponse struct {
	Key     string `json:"key"`
	Unit    string `json:"unit"`
	Elapsed int64  `json:"elapsed"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
