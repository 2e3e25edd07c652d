package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"clipflow/internal/api"
	"clipflow/internal/config"
)

// ErrEmptyName is returned when an operation receives a blank video name.
var ErrEmptyName = errors.New("video name must not be empty")

// Store manages registry persistence backed by SQLite. It is the
// serialization point for concurrent completion reports: duplicate or stale
// reports are swallowed here and never produce a second transition.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the registry database and applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "registry.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the registry database location.
func (s *Store) Path() string {
	return s.path
}

// Register creates or resets the entry for name: on return both completion
// flags are false and no descriptor is stored.
func (s *Store) Register(ctx context.Context, name string) (*Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO videos (name, enhanced, metadata_extracted, metadata_json, created_at, updated_at)
         VALUES (?, 0, 0, NULL, ?, ?)
         ON CONFLICT(name) DO UPDATE SET
             enhanced = 0,
             metadata_extracted = 0,
             metadata_json = NULL,
             updated_at = excluded.updated_at`,
		name,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("register video: %w", err)
	}

	return s.Get(ctx, name)
}

// TrySetEnhanced flips the enhancement flag if it is unset and reports whether
// a transition occurred. Names unknown to the registry are created with the
// flag set so a completion report never gets lost.
func (s *Store) TrySetEnhanced(ctx context.Context, name string) (bool, error) {
	return s.trySet(ctx, name, "enhanced", nil)
}

// TrySetMetadata flips the metadata flag if it is unset, storing the
// descriptor atomically with the flag. Unknown names are created fail-open.
func (s *Store) TrySetMetadata(ctx context.Context, name string, descriptor api.Descriptor) (bool, error) {
	var payload *string
	if descriptor != nil {
		encoded, err := json.Marshal(descriptor)
		if err != nil {
			return false, fmt.Errorf("marshal descriptor: %w", err)
		}
		value := string(encoded)
		payload = &value
	}
	return s.trySet(ctx, name, "metadata_extracted", payload)
}

func (s *Store) trySet(ctx context.Context, name, column string, metadataJSON *string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyName
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO videos (name, enhanced, metadata_extracted, metadata_json, created_at, updated_at)
         VALUES (?, 0, 0, NULL, ?, ?)`,
		name,
		timestamp,
		timestamp,
	); err != nil {
		return false, fmt.Errorf("ensure video row: %w", err)
	}

	var res sql.Result
	if metadataJSON != nil {
		res, err = tx.ExecContext(
			ctx,
			`UPDATE videos SET `+column+` = 1, metadata_json = ?, updated_at = ? WHERE name = ? AND `+column+` = 0`,
			*metadataJSON,
			timestamp,
			name,
		)
	} else {
		res, err = tx.ExecContext(
			ctx,
			`UPDATE videos SET `+column+` = 1, updated_at = ? WHERE name = ? AND `+column+` = 0`,
			timestamp,
			name,
		)
	}
	if err != nil {
		return false, fmt.Errorf("set %s: %w", column, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return affected > 0, nil
}

// Get fetches a consistent snapshot of a registry entry, or nil when the name
// is unknown.
func (s *Store) Get(ctx context.Context, name string) (*Record, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT name, enhanced, metadata_extracted, metadata_json, created_at, updated_at FROM videos WHERE name = ?`,
		strings.TrimSpace(name),
	)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return record, nil
}

// List returns all registry entries, newest first.
func (s *Store) List(ctx context.Context) ([]*Record, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT name, enhanced, metadata_extracted, metadata_json, created_at, updated_at
         FROM videos ORDER BY created_at DESC, name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}
	return records, nil
}

// Summary reports aggregate counts per lifecycle bucket.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT
            COUNT(1),
            COALESCE(SUM(CASE WHEN enhanced = 0 AND metadata_extracted = 0 THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN enhanced + metadata_extracted = 1 THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN enhanced = 1 AND metadata_extracted = 1 THEN 1 ELSE 0 END), 0)
        FROM videos`)

	var summary Summary
	if err := row.Scan(&summary.Total, &summary.Pending, &summary.Partial, &summary.Complete); err != nil {
		return Summary{}, fmt.Errorf("registry summary: %w", err)
	}
	return summary, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		record       Record
		enhanced     int
		metadataDone int
		metadataJSON sql.NullString
		createdAt    string
		updatedAt    string
	)
	if err := row.Scan(&record.Name, &enhanced, &metadataDone, &metadataJSON, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	record.Enhanced = enhanced != 0
	record.MetadataExtracted = metadataDone != 0

	if metadataJSON.Valid && metadataJSON.String != "" {
		if err := json.Unmarshal([]byte(metadataJSON.String), &record.Metadata); err != nil {
			return nil, fmt.Errorf("decode descriptor: %w", err)
		}
	}

	if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		record.CreatedAt = parsed
	}
	if parsed, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		record.UpdatedAt = parsed
	}
	return &record, nil
}
