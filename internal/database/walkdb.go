package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/w-vac/wikipedia-webscraper1.0/internal/model"
)

// FileName is the name of the database file inside the data directory.
const FileName = "wikiwalk.db"

// timestampLayout is fixed width so stored timestamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// WalkDB stores finished walks in SQLite.
type WalkDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures WalkDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a WalkDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*WalkDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	wdb := &WalkDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := wdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return wdb, nil
}

// Path returns the database file location.
func (wdb *WalkDB) Path() string {
	return wdb.dbPath
}

// Close closes the database connection.
func (wdb *WalkDB) Close() error {
	return wdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (wdb *WalkDB) createTables() error {
	schema := `
	-- One row per finished run
	CREATE TABLE IF NOT EXISTS walks (
		id TEXT PRIMARY KEY,
		start_url TEXT NOT NULL DEFAULT '',
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		reason TEXT NOT NULL,
		error TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_walks_started ON walks(started_at);

	-- Visited pages in visitation order
	CREATE TABLE IF NOT EXISTS walk_pages (
		walk_id TEXT NOT NULL REFERENCES walks(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		PRIMARY KEY (walk_id, position)
	);
	`

	_, err := wdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveWalk stores a finished walk and its pages in one transaction.
func (wdb *WalkDB) SaveWalk(ctx context.Context, walk *model.Walk) (err error) {
	if walk == nil || walk.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidWalk)
	}

	tx, err := wdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO walks (id, start_url, started_at, finished_at, reason, error)
	VALUES (?, ?, ?, ?, ?, ?)
	`,
		walk.ID,
		walk.StartURL,
		walk.StartedAt.UTC().Format(timestampLayout),
		walk.FinishedAt.UTC().Format(timestampLayout),
		walk.Reason.String(),
		walk.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to insert walk: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO walk_pages (walk_id, position, title, url)
	VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare page insert: %w", err)
	}
	defer stmt.Close()

	for i, page := range walk.Pages {
		if _, err = stmt.ExecContext(ctx, walk.ID, i+1, page.Title, page.URL); err != nil {
			return fmt.Errorf("failed to insert page %d: %w", i+1, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit walk: %w", err)
	}
	return nil
}

// ListWalks returns stored walks, most recent first.
// A limit of zero or less returns all walks.
func (wdb *WalkDB) ListWalks(ctx context.Context, limit int) ([]model.WalkSummary, error) {
	query := `
	SELECT w.id, w.start_url, w.started_at, w.finished_at, w.reason, w.error,
		(SELECT COUNT(*) FROM walk_pages p WHERE p.walk_id = w.id)
	FROM walks w
	ORDER BY w.started_at DESC, w.id
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := wdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list walks: %w", err)
	}
	defer rows.Close()

	var walks []model.WalkSummary
	for rows.Next() {
		var (
			s                 model.WalkSummary
			started, finished string
			reason            string
		)
		if err := rows.Scan(&s.ID, &s.StartURL, &started, &finished, &reason, &s.Error, &s.PageCount); err != nil {
			return nil, fmt.Errorf("failed to scan walk: %w", err)
		}
		s.StartedAt = parseTimestamp(started)
		s.FinishedAt = parseTimestamp(finished)
		s.Reason = model.ParseTerminationReason(reason)
		walks = append(walks, s)
	}
	return walks, rows.Err()
}

// GetWalk returns a stored walk with its pages. id may be a unique prefix
// of the full walk ID.
func (wdb *WalkDB) GetWalk(ctx context.Context, id string) (*model.Walk, error) {
	fullID, err := wdb.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		walk              model.Walk
		started, finished string
		reason            string
	)
	err = wdb.db.QueryRowContext(ctx, `
	SELECT id, start_url, started_at, finished_at, reason, error
	FROM walks WHERE id = ?
	`, fullID).Scan(&walk.ID, &walk.StartURL, &started, &finished, &reason, &walk.Error)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrWalkNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get walk: %w", err)
	}
	walk.StartedAt = parseTimestamp(started)
	walk.FinishedAt = parseTimestamp(finished)
	walk.Reason = model.ParseTerminationReason(reason)

	rows, err := wdb.db.QueryContext(ctx, `
	SELECT title, url FROM walk_pages
	WHERE walk_id = ?
	ORDER BY position
	`, fullID)
	if err != nil {
		return nil, fmt.Errorf("failed to get walk pages: %w", err)
	}
	defer rows.Close()

	walk.Pages = make([]model.VisitedPage, 0)
	for rows.Next() {
		var page model.VisitedPage
		if err := rows.Scan(&page.Title, &page.URL); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		walk.Pages = append(walk.Pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read walk pages: %w", err)
	}

	return &walk, nil
}

// DeleteWalk removes a stored walk and its pages.
func (wdb *WalkDB) DeleteWalk(ctx context.Context, id string) error {
	fullID, err := wdb.resolveID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := wdb.db.ExecContext(ctx, "DELETE FROM walks WHERE id = ?", fullID); err != nil {
		return fmt.Errorf("failed to delete walk: %w", err)
	}
	return nil
}

// resolveID expands a walk ID prefix to the full ID.
func (wdb *WalkDB) resolveID(ctx context.Context, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%w: empty ID", ErrWalkNotFound)
	}

	// IDs are UUIDs, so LIKE wildcards in user input are escaped.
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	rows, err := wdb.db.QueryContext(ctx,
		`SELECT id FROM walks WHERE id LIKE ? ESCAPE '\' LIMIT 2`, escaped+"%")
	if err != nil {
		return "", fmt.Errorf("failed to look up walk: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("failed to scan walk ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("failed to look up walk: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrWalkNotFound, prefix)
	case 1:
		return ids[0], nil
	default:
		for _, id := range ids {
			if id == prefix {
				return id, nil
			}
		}
		return "", fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
	}
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp tries each known format and returns zero time if none match.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
