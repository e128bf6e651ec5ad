// Package sqlite provides the SQLite-backed spoiler log.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/louisbranch/sagashuffle/internal/core/shuffle"
	sqlitemigrate "github.com/louisbranch/sagashuffle/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/sagashuffle/internal/storage"
	"github.com/louisbranch/sagashuffle/internal/storage/cursor"
	"github.com/louisbranch/sagashuffle/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists randomization runs in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite spoiler log and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutRun stores a run with its passes and mappings and returns its id.
func (s *Store) PutRun(ctx context.Context, run storage.RunRecord) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("put run: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `INSERT INTO runs (seed, created_at) VALUES (?, ?)`, run.Seed, toMillis(createdAt))
	if err != nil {
		return 0, fmt.Errorf("put run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("put run: %w", err)
	}

	for i, p := range run.Passes {
		if strings.TrimSpace(p.Name) == "" {
			return 0, fmt.Errorf("pass %d: name is required", i)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_passes (run_id, position, name, state, detail, error) VALUES (?, ?, ?, ?, ?, ?)`,
			runID, i, p.Name, p.State, p.Detail, p.Error,
		); err != nil {
			return 0, fmt.Errorf("put run pass %s: %w", p.Name, err)
		}
	}

	for space, m := range run.Mappings {
		position := 0
		var insertErr error
		m.Each(func(from, to int) {
			if insertErr != nil {
				return
			}
			_, insertErr = tx.ExecContext(ctx,
				`INSERT INTO run_mappings (run_id, space, position, from_id, to_id) VALUES (?, ?, ?, ?, ?)`,
				runID, space, position, from, to,
			)
			position++
		})
		if insertErr != nil {
			return 0, fmt.Errorf("put run mapping %s: %w", space, insertErr)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("put run: %w", err)
	}
	return runID, nil
}

// GetRun returns one run with its passes and stored spaces.
func (s *Store) GetRun(ctx context.Context, id int64) (storage.RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.RunRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.RunRecord{}, fmt.Errorf("storage is not configured")
	}

	run := storage.RunRecord{ID: id}
	var createdAt int64
	err := s.sqlDB.QueryRowContext(ctx, `SELECT seed, created_at FROM runs WHERE id = ?`, id).Scan(&run.Seed, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.RunRecord{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.RunRecord{}, fmt.Errorf("get run: %w", err)
	}
	run.CreatedAt = fromMillis(createdAt)

	if run.Passes, err = s.passes(ctx, id); err != nil {
		return storage.RunRecord{}, err
	}
	if run.Spaces, err = s.spaces(ctx, id); err != nil {
		return storage.RunRecord{}, err
	}
	return run, nil
}

// ListRuns returns the newest runs first, with their passes.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]storage.RunRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}
	page, err := s.QueryRuns(ctx, storage.RunQuery{PageSize: limit})
	if err != nil {
		return nil, err
	}
	return page.Runs, nil
}

// QueryRuns returns one page of runs, newest first, with their passes.
func (s *Store) QueryRuns(ctx context.Context, query storage.RunQuery) (storage.RunPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.RunPage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.RunPage{}, fmt.Errorf("storage is not configured")
	}
	if query.PageSize <= 0 {
		return storage.RunPage{}, fmt.Errorf("page size must be greater than zero")
	}

	filter := ""
	if query.Seed != nil {
		filter = fmt.Sprintf("seed=%d", *query.Seed)
	}
	var beforeID int64
	if query.PageToken != "" {
		c, err := cursor.Decode(query.PageToken)
		if err != nil {
			return storage.RunPage{}, fmt.Errorf("invalid page token: %w", err)
		}
		if err := cursor.ValidateFilterHash(c, filter); err != nil {
			return storage.RunPage{}, fmt.Errorf("invalid page token: %w", err)
		}
		beforeID = c.BeforeID
	}

	var where []string
	var args []any
	if beforeID > 0 {
		where = append(where, "id < ?")
		args = append(args, beforeID)
	}
	if query.Seed != nil {
		where = append(where, "seed = ?")
		args = append(args, *query.Seed)
	}
	stmt := "SELECT id, seed, created_at FROM runs"
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	stmt += " ORDER BY id DESC LIMIT ?"
	args = append(args, query.PageSize+1)

	rows, err := s.sqlDB.QueryContext(ctx, stmt, args...)
	if err != nil {
		return storage.RunPage{}, fmt.Errorf("list runs: %w", err)
	}
	var runs []storage.RunRecord
	for rows.Next() {
		var run storage.RunRecord
		var createdAt int64
		if err := rows.Scan(&run.ID, &run.Seed, &createdAt); err != nil {
			_ = rows.Close()
			return storage.RunPage{}, fmt.Errorf("list runs: %w", err)
		}
		run.CreatedAt = fromMillis(createdAt)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return storage.RunPage{}, fmt.Errorf("list runs: %w", err)
	}
	_ = rows.Close()

	page := storage.RunPage{}
	if len(runs) > query.PageSize {
		runs = runs[:query.PageSize]
		token, err := cursor.Encode(cursor.NextPage(runs[len(runs)-1].ID, filter))
		if err != nil {
			return storage.RunPage{}, err
		}
		page.NextPageToken = token
	}
	for i := range runs {
		if runs[i].Passes, err = s.passes(ctx, runs[i].ID); err != nil {
			return storage.RunPage{}, err
		}
	}
	page.Runs = runs
	return page, nil
}

// GetMapping rebuilds the mapping one run drew for space, in draw order.
func (s *Store) GetMapping(ctx context.Context, runID int64, space string) (shuffle.Mapping, error) {
	if err := ctx.Err(); err != nil {
		return shuffle.Mapping{}, err
	}
	if s == nil || s.sqlDB == nil {
		return shuffle.Mapping{}, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT from_id, to_id
		   FROM run_mappings
		  WHERE run_id = ? AND space = ?
		  ORDER BY position ASC`,
		runID, space,
	)
	if err != nil {
		return shuffle.Mapping{}, fmt.Errorf("get mapping: %w", err)
	}
	defer rows.Close()

	var keys []int
	pairs := map[int]int{}
	for rows.Next() {
		var from, to int
		if err := rows.Scan(&from, &to); err != nil {
			return shuffle.Mapping{}, fmt.Errorf("get mapping: %w", err)
		}
		keys = append(keys, from)
		pairs[from] = to
	}
	if err := rows.Err(); err != nil {
		return shuffle.Mapping{}, fmt.Errorf("get mapping: %w", err)
	}
	if len(keys) == 0 {
		return shuffle.Mapping{}, storage.ErrNotFound
	}
	m, err := shuffle.FromPairs(keys, pairs)
	if err != nil {
		return shuffle.Mapping{}, fmt.Errorf("get mapping %s: %w", space, err)
	}
	return m, nil
}

func (s *Store) passes(ctx context.Context, runID int64) ([]storage.PassRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT name, state, detail, error
		   FROM run_passes
		  WHERE run_id = ?
		  ORDER BY position ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("get run passes: %w", err)
	}
	defer rows.Close()

	var out []storage.PassRecord
	for rows.Next() {
		var p storage.PassRecord
		if err := rows.Scan(&p.Name, &p.State, &p.Detail, &p.Error); err != nil {
			return nil, fmt.Errorf("get run passes: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get run passes: %w", err)
	}
	return out, nil
}

func (s *Store) spaces(ctx context.Context, runID int64) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT DISTINCT space FROM run_mappings WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("get run spaces: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var space string
		if err := rows.Scan(&space); err != nil {
			return nil, fmt.Errorf("get run spaces: %w", err)
		}
		out = append(out, space)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get run spaces: %w", err)
	}
	sort.Strings(out)
	return out, nil
}

var _ storage.RunStore = (*Store)(nil)
