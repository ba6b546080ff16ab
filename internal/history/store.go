// Package history persists run records in a local Badger store so past
// results survive the process. History is strictly out of band: a failure
// to record a run is logged and never changes the run's outcome.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/executor"
)

// Record is one persisted workflow run.
type Record struct {
	ID         string `badgerhold:"key"`
	Workflow   string
	Event      string
	Ref        string
	Conclusion string
	StartedAt  time.Time `badgerholdIndex:"StartedAt"`
	FinishedAt time.Time
	Entries    []EntryRecord
}

// EntryRecord is the persisted outcome of one matrix entry.
type EntryRecord struct {
	ID         string
	Conclusion string
	Class      string
	Error      string
	Duration   time.Duration
}

// Store wraps the underlying badgerhold database.
type Store struct {
	db *badgerhold.Store
}

// Open opens (or creates) the history database in dir.
func Open(dir string) (*Store, error) {
	opts := badgerhold.DefaultOptions
	opts.Dir = dir
	opts.ValueDir = dir
	opts.Logger = nil

	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open history store at %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun converts a run result into a record and persists it.
func (s *Store) SaveRun(ctx context.Context, result *executor.RunResult) (*Record, error) {
	rec := &Record{
		ID:         uuid.NewString(),
		Workflow:   result.Workflow,
		Event:      string(result.Event.Type),
		Ref:        result.Event.Ref,
		Conclusion: string(result.Conclusion()),
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
	}
	for _, e := range result.Entries {
		entry := EntryRecord{
			ID:         e.ID,
			Conclusion: string(e.Conclusion),
			Class:      string(e.Class),
			Duration:   e.Duration,
		}
		if e.Err != nil {
			entry.Error = e.Err.Error()
		}
		rec.Entries = append(rec.Entries, entry)
	}

	if err := s.db.Upsert(rec.ID, rec); err != nil {
		return nil, fmt.Errorf("failed to save run record: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Run record saved.", "id", rec.ID, "workflow", rec.Workflow)
	return rec, nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	query := badgerhold.Where("ID").Ne("").SortBy("StartedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []Record
	if err := s.db.Find(&records, query); err != nil {
		return nil, fmt.Errorf("failed to list run records: %w", err)
	}
	return records, nil
}
