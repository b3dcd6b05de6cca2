package models

import (
	"fmt"
	"time"
)

// Status is the terminal state of one source file in a batch.
type Status int

const (
	StatusAdded Status = iota
	StatusOverwritten
	StatusSkippedDuplicate
	StatusFailedExtraction
	StatusFailedStorage
)

func (s Status) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusOverwritten:
		return "overwritten"
	case StatusSkippedDuplicate:
		return "skipped-duplicate"
	case StatusFailedExtraction:
		return "failed-extraction"
	case StatusFailedStorage:
		return "failed-storage"
	default:
		return ""
	}
}

// MarshalText encodes the status by name for JSON and YAML reports.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name written by [Status.MarshalText].
func (s *Status) UnmarshalText(b []byte) error {
	for c := StatusAdded; c <= StatusFailedStorage; c++ {
		if c.String() == string(b) {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", b)
}

// Succeeded reports whether the song ended up in the store.
func (s Status) Succeeded() bool {
	return s == StatusAdded || s == StatusOverwritten
}

// Outcome records what happened to one source file.
type Outcome struct {
	Name   string `json:"name" yaml:"name"`
	Path   string `json:"path" yaml:"path"`
	Status Status `json:"status" yaml:"status"`
	SongID int    `json:"song_id,omitempty" yaml:"song_id,omitempty"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Label renders the outcome the way the summary lists it, e.g. "Amazing Grace (Overwritten)".
func (o Outcome) Label() string {
	switch o.Status {
	case StatusOverwritten:
		return fmt.Sprintf("%s (Overwritten)", o.Name)
	case StatusSkippedDuplicate:
		return fmt.Sprintf("%s (Skipped, duplicate)", o.Name)
	case StatusFailedExtraction:
		return fmt.Sprintf("%s (Error extracting lyrics)", o.Name)
	case StatusFailedStorage:
		return fmt.Sprintf("%s (DB Error: %s)", o.Name, o.Detail)
	default:
		return o.Name
	}
}

// BatchReport holds the outcome of every file of a batch, in input order.
type BatchReport struct {
	ID         string    `json:"id" yaml:"id"`
	StorePath  string    `json:"store" yaml:"store"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	Outcomes   []Outcome `json:"outcomes" yaml:"outcomes"`
}

// Succeeded returns added and overwritten outcomes, in input order.
func (r *BatchReport) Succeeded() []Outcome {
	return r.filter(true)
}

// Failed returns skipped and failed outcomes, in input order.
func (r *BatchReport) Failed() []Outcome {
	return r.filter(false)
}

// Count returns how many outcomes have the given status.
func (r *BatchReport) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

func (r *BatchReport) filter(succeeded bool) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Status.Succeeded() == succeeded {
			out = append(out, o)
		}
	}
	return out
}
