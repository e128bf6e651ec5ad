// Package storage defines the spoiler log: a record of every randomization
// run, its pass outcomes and the mappings it drew.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/sagashuffle/internal/core/shuffle"
)

// ErrNotFound is returned when a run or mapping does not exist.
var ErrNotFound = errors.New("record not found")

// PassRecord is the stored outcome of one pass.
type PassRecord struct {
	Name   string
	State  string
	Detail string
	Error  string
}

// RunRecord is one randomization run.
type RunRecord struct {
	ID        int64
	Seed      int32
	CreatedAt time.Time
	Passes    []PassRecord
	// Mappings is keyed by space. GetRun and ListRuns leave it nil; use
	// GetMapping to read one space back.
	Mappings map[string]shuffle.Mapping
	// Spaces lists the stored mapping spaces, sorted.
	Spaces []string
}

// RunQuery selects one page of runs, newest first.
type RunQuery struct {
	PageSize  int
	PageToken string
	// Seed, when set, keeps only runs drawn from that seed.
	Seed *int32
}

// RunPage is one page of runs. NextPageToken is empty on the last page.
type RunPage struct {
	Runs          []RunRecord
	NextPageToken string
}

// RunStore persists runs.
type RunStore interface {
	PutRun(ctx context.Context, run RunRecord) (int64, error)
	GetRun(ctx context.Context, id int64) (RunRecord, error)
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
	QueryRuns(ctx context.Context, query RunQuery) (RunPage, error)
	GetMapping(ctx context.Context, runID int64, space string) (shuffle.Mapping, error)
	Close() error
}
