// Package storage is the sqlite backend: the same port surface as the
// spreadsheet store, backed by a local database for development and
// offline use. Events written here are replayed into the spreadsheet by
// the sync worker.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kidpoints/internal/core"
	"kidpoints/internal/sheets"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

var _ sheets.Store = (*Repository)(nil)

// ErrEventNotFound is returned when a sync message references an event id
// that no longer exists.
var ErrEventNotFound = errors.New("event not found")

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) Family(ctx context.Context, userID string) (core.Family, bool, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, tab_name, kids, created_at, updated_at FROM families WHERE user_id = ?`,
		userID)

	var fam core.Family
	var kids, created, updated string
	err := row.Scan(&fam.UserID, &fam.TabName, &kids, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Family{}, false, nil
	}
	if err != nil {
		return core.Family{}, false, fmt.Errorf("query family: %w", err)
	}
	for _, kid := range strings.Split(kids, ",") {
		if kid = strings.TrimSpace(kid); kid != "" {
			fam.Kids = append(fam.Kids, kid)
		}
	}
	fam.CreatedAt, _ = time.Parse(time.RFC3339, created)
	fam.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return fam, true, nil
}

func (r *Repository) SaveFamily(ctx context.Context, fam core.Family) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO families (user_id, tab_name, kids, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   tab_name = excluded.tab_name,
		   kids = excluded.kids,
		   updated_at = excluded.updated_at`,
		fam.UserID,
		fam.TabName,
		strings.Join(fam.Kids, ","),
		fam.CreatedAt.Format(time.RFC3339),
		fam.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save family: %w", err)
	}
	return nil
}

// EnsureEventTab is a no-op for sqlite: events are keyed by tab name in a
// single table, no per-family schema exists.
func (r *Repository) EnsureEventTab(ctx context.Context, tab string) error {
	return nil
}

func (r *Repository) AppendEvent(ctx context.Context, tab string, e core.Event) error {
	_, err := r.appendEvent(ctx, tab, e)
	return err
}

// appendEvent inserts the event and returns its row id, which the syncing
// wrapper publishes for the replay worker.
func (r *Repository) appendEvent(ctx context.Context, tab string, e core.Event) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, fmt.Errorf("validate event: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO events (tab_name, ts, date, person, delta, actor, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tab, e.Timestamp.Format(time.RFC3339), e.Date, e.Person, e.Delta, e.Actor, e.Note)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	slog.InfoContext(ctx, "Event saved to sqlite",
		"id", id, "tab", tab, "person", e.Person, "delta", e.Delta)
	return id, nil
}

func (r *Repository) ListEvents(ctx context.Context, tab string) ([]core.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ts, date, person, delta, actor, note FROM events WHERE tab_name = ? ORDER BY id`,
		tab)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []core.Event
	for rows.Next() {
		var e core.Event
		var ts string
		if err := rows.Scan(&ts, &e.Date, &e.Person, &e.Delta, &e.Actor, &e.Note); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Timestamp, _ = time.Parse(time.RFC3339, ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Event fetches a single event with its tab name, for the sync worker.
func (r *Repository) Event(ctx context.Context, id int64) (string, core.Event, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT tab_name, ts, date, person, delta, actor, note FROM events WHERE id = ?`, id)

	var tab, ts string
	var e core.Event
	err := row.Scan(&tab, &ts, &e.Date, &e.Person, &e.Delta, &e.Actor, &e.Note)
	if errors.Is(err, sql.ErrNoRows) {
		return "", core.Event{}, ErrEventNotFound
	}
	if err != nil {
		return "", core.Event{}, fmt.Errorf("query event %d: %w", id, err)
	}
	e.Timestamp, _ = time.Parse(time.RFC3339, ts)
	return tab, e, nil
}

// MarkEventSynced records that the event has been replayed to the sheet.
func (r *Repository) MarkEventSynced(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE events SET synced_at = ? WHERE id = ?`,
		time.Now().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("mark event synced: %w", err)
	}
	return nil
}
