package store

import (
	"context"
	"fmt"
)

// DryRunReport is the outcome of applying a load script and its rollback
// to a fresh database.
type DryRunReport struct {
	// Loaded holds per-table row counts after the load script.
	Loaded map[string]int `json:"loaded"`
	// Remaining holds per-table row counts after the rollback script.
	Remaining map[string]int `json:"remaining"`
}

// Clean reports whether the rollback removed every loaded row.
func (r DryRunReport) Clean() bool {
	for _, n := range r.Remaining {
		if n != 0 {
			return false
		}
	}
	return true
}

// DryRun applies load and then rollback to a new in-memory database and
// reports the row counts seen after each step.
func DryRun(ctx context.Context, load, rollback string) (*DryRunReport, error) {
	s, err := OpenMemory()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	if err := s.Apply(ctx, load); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	report := &DryRunReport{}
	if report.Loaded, err = s.Counts(ctx); err != nil {
		return nil, err
	}

	if err := s.Apply(ctx, rollback); err != nil {
		return nil, fmt.Errorf("rollback: %w", err)
	}
	if report.Remaining, err = s.Counts(ctx); err != nil {
		return nil, err
	}
	return report, nil
}
