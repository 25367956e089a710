package domain

import (
	"encoding/json"
	"fmt"
)

// Status is the lifecycle position of a dashboard search.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusNotFound
	StatusError
)

var statusNames = [...]string{"idle", "loading", "loaded", "not_found", "error"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalJSON encodes the status by name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a status name.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range statusNames {
		if n == name {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown dashboard status %q", name)
}

// Terminal reports whether a search has finished.
func (s Status) Terminal() bool {
	return s == StatusLoaded || s == StatusNotFound || s == StatusError
}

// DashboardState is the whole view state of one dashboard session.
// A new value replaces the previous one on every transition; Sequence
// identifies the search that produced it.
type DashboardState struct {
	Sequence          uint64                 `json:"sequence"`
	Term              string                 `json:"term"`
	Status            Status                 `json:"status"`
	Repository        *Repository            `json:"repository,omitempty"`
	Languages         LanguageMix            `json:"languages"`
	CommitActivity    []WeeklyCommitActivity `json:"commit_activity"`
	HasCommitActivity bool                   `json:"has_commit_activity"`
	Message           string                 `json:"message,omitempty"`
}
