package models

import (
	"strings"
	"time"
)

// Run is the record of one timed command execution.
type Run struct {
	ID      string   `yaml:"id" json:"id"`
	Key     string   `yaml:"key" json:"key"`
	Command []string `yaml:"command" json:"command"`

	// Elapsed is the timer's reading in Unit.
	Unit     string        `yaml:"unit" json:"unit"`
	Elapsed  int64         `yaml:"elapsed" json:"elapsed"`
	Duration time.Duration `yaml:"duration" json:"duration"`

	StartedAt  time.Time `yaml:"started_at" json:"started_at"`
	FinishedAt time.Time `yaml:"finished_at" json:"finished_at"`

	ExitCode int    `yaml:"exit_code" json:"exit_code"`
	Error    string `yaml:"error,omitempty" json:"error,omitempty"`

	Host     string `yaml:"host,omitempty" json:"host,omitempty"`
	Platform string `yaml:"platform,omitempty" json:"platform,omitempty"`
}

// Succeeded reports whether the command ran and exited zero.
func (r Run) Succeeded() bool {
	return r.ExitCode == 0 && r.Error == ""
}

// CommandLine returns the command joined with spaces.
func (r Run) CommandLine() string {
	return strings.Join(r.Command, " ")
}
