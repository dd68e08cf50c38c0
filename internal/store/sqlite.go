// Package store persists reviews and analysis snapshots in SQLite.
// Reviews are append-only: re-importing a file never duplicates or
// mutates rows, so repeated runs are idempotent.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/headsetlab/comfortscan/internal/model"
)

// ErrNoSnapshot is returned when no analysis run has been persisted yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

const schema = `
CREATE TABLE IF NOT EXISTS reviews (
	id        TEXT PRIMARY KEY,
	source    TEXT NOT NULL DEFAULT '',
	title     TEXT NOT NULL DEFAULT '',
	body      TEXT NOT NULL DEFAULT '',
	url       TEXT NOT NULL DEFAULT '',
	timestamp TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS snapshots (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	generated_at TEXT NOT NULL,
	payload      TEXT NOT NULL
);
`

// Store is the SQLite-backed review and snapshot store.
type Store struct {
	db *sqlx.DB
}

// Open opens (and if needed creates) the database at path.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

type reviewRow struct {
	ID        string `db:"id"`
	Source    string `db:"source"`
	Title     string `db:"title"`
	Body      string `db:"body"`
	URL       string `db:"url"`
	Timestamp string `db:"timestamp"`
}

func toRow(r model.Review) reviewRow {
	var ts string
	if !r.Timestamp.IsZero() {
		ts = r.Timestamp.UTC().Format(time.RFC3339)
	}
	return reviewRow{
		ID:        r.ID,
		Source:    r.Source,
		Title:     r.Title,
		Body:      r.Body,
		URL:       r.URL,
		Timestamp: ts,
	}
}

func (row reviewRow) toModel() model.Review {
	r := model.Review{
		ID:     row.ID,
		Source: row.Source,
		Title:  row.Title,
		Body:   row.Body,
		URL:    row.URL,
	}
	if row.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339, row.Timestamp); err == nil {
			r.Timestamp = ts
		}
	}
	return r
}

// InsertReviews appends reviews, ignoring IDs already present. Returns
// the number of newly inserted rows.
func (s *Store) InsertReviews(ctx context.Context, reviews []model.Review) (int, error) {
	if len(reviews) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insert = `INSERT OR IGNORE INTO reviews (id, source, title, body, url, timestamp)
		VALUES (:id, :source, :title, :body, :url, :timestamp)`

	var inserted int
	for _, review := range reviews {
		if review.ID == "" {
			return inserted, fmt.Errorf("review with empty id")
		}
		res, err := tx.NamedExecContext(ctx, insert, toRow(review))
		if err != nil {
			return inserted, fmt.Errorf("insert review %s: %w", review.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

// Reviews returns every stored review, oldest first.
func (s *Store) Reviews(ctx context.Context) ([]model.Review, error) {
	var rows []reviewRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, source, title, body, url, timestamp FROM reviews ORDER BY timestamp, id`)
	if err != nil {
		return nil, fmt.Errorf("select reviews: %w", err)
	}

	reviews := make([]model.Review, len(rows))
	for i, row := range rows {
		reviews[i] = row.toModel()
	}
	return reviews, nil
}

// CountReviews returns the number of stored reviews.
func (s *Store) CountReviews(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM reviews`); err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return n, nil
}

// SaveSnapshot persists a finalized snapshot as JSON.
func (s *Store) SaveSnapshot(ctx context.Context, snap *model.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (generated_at, payload) VALUES (?, ?)`,
		snap.GeneratedAt.UTC().Format(time.RFC3339), string(payload))
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recently stored snapshot.
func (s *Store) LatestSnapshot(ctx context.Context) (*model.Snapshot, error) {
	var payload string
	err := s.db.GetContext(ctx, &payload,
		`SELECT payload FROM snapshots ORDER BY id DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}
