package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/synsim/pkg/synsim/internalerr"
	"github.com/cognicore/synsim/pkg/synsim/store"
)

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite ledger with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v: %w", path, err, internalerr.ErrStoreUnavailable)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %v: %w", path, err, internalerr.ErrStoreUnavailable)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	window_size INTEGER NOT NULL,
	documents INTEGER NOT NULL,
	tokens INTEGER NOT NULL,
	vocab_size INTEGER NOT NULL,
	files TEXT
);

CREATE TABLE IF NOT EXISTS run_sets (
	run_id TEXT NOT NULL,
	name TEXT NOT NULL,
	total INTEGER NOT NULL,
	correct INTEGER NOT NULL,
	no_answer INTEGER NOT NULL,
	mean_similarity REAL NOT NULL,
	std_similarity REAL NOT NULL,
	PRIMARY KEY(run_id, name),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS predictions (
	run_id TEXT NOT NULL,
	set_name TEXT NOT NULL,
	position INTEGER NOT NULL,
	target TEXT NOT NULL,
	choice TEXT,
	expected TEXT,
	similarity REAL NOT NULL,
	answered INTEGER NOT NULL,
	correct INTEGER NOT NULL,
	PRIMARY KEY(run_id, set_name, position),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun writes a run with its sets and predictions in one transaction.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("run id is empty: %w", internalerr.ErrInvalidInput)
	}
	filesJSON, err := json.Marshal(r.Files)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// foreign_keys is per connection, so children are removed explicitly.
	for _, q := range []string{
		`DELETE FROM predictions WHERE run_id = ?`,
		`DELETE FROM run_sets WHERE run_id = ?`,
		`DELETE FROM runs WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, r.ID); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO runs (id, created_at, window_size, documents, tokens, vocab_size, files)
VALUES (?, ?, ?, ?, ?, ?, ?);
`, r.ID, r.CreatedAt.UTC().Format(timeLayout), r.Window, r.Documents, r.Tokens, r.VocabSize, string(filesJSON)); err != nil {
		return err
	}

	for _, set := range r.Sets {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO run_sets (run_id, name, total, correct, no_answer, mean_similarity, std_similarity)
VALUES (?, ?, ?, ?, ?, ?, ?);
`, r.ID, set.Name, set.Total, set.Correct, set.NoAnswer, set.MeanSimilarity, set.StdSimilarity); err != nil {
			return err
		}
		if err := insertPredictions(ctx, tx, r.ID, set); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertPredictions(ctx context.Context, tx *sql.Tx, runID string, set store.Set) error {
	if len(set.Predictions) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO predictions (run_id, set_name, position, target, choice, expected, similarity, answered, correct)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range set.Predictions {
		if _, err := stmt.ExecContext(ctx, runID, set.Name, p.Position, p.Target, p.Choice, p.Expected,
			p.Similarity, p.Answered, p.Correct); err != nil {
			return err
		}
	}
	return nil
}

// GetRun loads a run and its set summaries.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, created_at, window_size, documents, tokens, vocab_size, files
FROM runs WHERE id = ?;
`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Run{}, err
	}
	if r.Sets, err = s.loadSets(ctx, r.ID); err != nil {
		return store.Run{}, err
	}
	return r, nil
}

// ListRuns returns the most recent runs.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, created_at, window_size, documents, tokens, vocab_size, files
FROM runs
ORDER BY created_at DESC, id DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, err
	}

	var runs []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range runs {
		if runs[i].Sets, err = s.loadSets(ctx, runs[i].ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// Predictions returns the stored predictions of one set.
func (s *sqliteStore) Predictions(ctx context.Context, runID, set string) ([]store.Prediction, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT position, target, choice, expected, similarity, answered, correct
FROM predictions
WHERE run_id = ? AND set_name = ?
ORDER BY position;
`, runID, set)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var preds []store.Prediction
	for rows.Next() {
		var p store.Prediction
		if err := rows.Scan(&p.Position, &p.Target, &p.Choice, &p.Expected, &p.Similarity, &p.Answered, &p.Correct); err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return preds, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (store.Run, error) {
	var (
		r         store.Run
		created   string
		filesJSON sql.NullString
	)
	if err := sc.Scan(&r.ID, &created, &r.Window, &r.Documents, &r.Tokens, &r.VocabSize, &filesJSON); err != nil {
		return store.Run{}, err
	}
	ts, err := time.Parse(timeLayout, created)
	if err != nil {
		return store.Run{}, fmt.Errorf("run %s created_at: %w", r.ID, err)
	}
	r.CreatedAt = ts
	if filesJSON.Valid && filesJSON.String != "" {
		if err := json.Unmarshal([]byte(filesJSON.String), &r.Files); err != nil {
			return store.Run{}, err
		}
	}
	return r, nil
}

func (s *sqliteStore) loadSets(ctx context.Context, runID string) ([]store.Set, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT name, total, correct, no_answer, mean_similarity, std_similarity
FROM run_sets
WHERE run_id = ?
ORDER BY rowid;
`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []store.Set
	for rows.Next() {
		var set store.Set
		if err := rows.Scan(&set.Name, &set.Total, &set.Correct, &set.NoAnswer, &set.MeanSimilarity, &set.StdSimilarity); err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}
