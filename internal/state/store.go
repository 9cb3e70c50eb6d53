// Package state persists check history and the violation baseline using
// SQLite. History powers the `runs` command; the baseline lets a team
// adopt the linter on an existing project without fixing every name at
// once.
package state

import (
	"time"

	"github.com/leapstack-labs/layerlint/pkg/lint"
)

// Run is one recorded invocation of the checker.
type Run struct {
	ID           string
	Architecture string
	Total        int
	Passed       int
	Failed       int
	Suppressed   int
	StartedAt    time.Time
	Duration     time.Duration
}

// BaselineEntry is one accepted violation. A diagnostic matching an
// entry is suppressed instead of reported.
type BaselineEntry struct {
	Identifier string
	RuleID     string
	AddedAt    time.Time
}

// Key returns the suppression key for a baseline entry.
func (e BaselineEntry) Key() string {
	return e.Identifier + "\x00" + e.RuleID
}

// DiagnosticKey returns the suppression key for a diagnostic.
func DiagnosticKey(d lint.Diagnostic) string {
	return d.Identifier + "\x00" + d.RuleID
}

// Store persists runs and the baseline.
type Store interface {
	// SaveRun records a completed check invocation and returns its ID.
	SaveRun(run Run) (string, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]Run, error)

	// SaveBaseline replaces the baseline with the given entries.
	SaveBaseline(entries []BaselineEntry) error

	// AddBaseline appends entries, ignoring duplicates.
	AddBaseline(entries []BaselineEntry) error

	// LoadBaseline returns all baseline entries.
	LoadBaseline() ([]BaselineEntry, error)

	// ClearBaseline removes all baseline entries.
	ClearBaseline() error

	Close() error
}

// BaselineSet is an in-memory suppression index built from a baseline.
type BaselineSet map[string]struct{}

// NewBaselineSet indexes entries for suppression lookups.
func NewBaselineSet(entries []BaselineEntry) BaselineSet {
	set := make(BaselineSet, len(entries))
	for _, e := range entries {
		set[e.Key()] = struct{}{}
	}
	return set
}

// Suppressed reports whether a diagnostic is covered by the baseline.
func (s BaselineSet) Suppressed(d lint.Diagnostic) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[DiagnosticKey(d)]
	return ok
}
