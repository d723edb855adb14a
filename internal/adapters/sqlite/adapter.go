// Package sqlite provides a SQLite-backed dataset catalog.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/ewilliams-labs/trackscope/internal/core/domain"
	"github.com/ewilliams-labs/trackscope/internal/core/ports"
)

var _ ports.CatalogRepository = (*Adapter)(nil)

// Adapter implements the catalog port for SQLite. A catalog holds sampled
// datasets keyed by source fingerprint and sample target.
type Adapter struct {
	db *sql.DB
}

// NewAdapter creates a connection and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// :memory: databases are per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

// LoadSample returns the stored sample for fingerprint and target in its
// original order.
func (a *Adapter) LoadSample(ctx context.Context, fingerprint string, target int) (ports.CatalogEntry, []domain.Track, error) {
	entry := ports.CatalogEntry{Fingerprint: fingerprint, Target: target}
	var storedAt int64
	row := a.db.QueryRowContext(ctx,
		"SELECT source, raw_rows, stored_at FROM datasets WHERE fingerprint = ? AND target = ?",
		fingerprint, target)
	if err := row.Scan(&entry.Source, &entry.RawRows, &storedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.CatalogEntry{}, nil, domain.ErrNotFound
		}
		return ports.CatalogEntry{}, nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	entry.StoredAt = time.Unix(storedAt, 0).UTC()

	rows, err := a.db.QueryContext(ctx, `
		SELECT track_name, artists, genre,
			popularity, danceability, energy, valence, tempo,
			loudness, acousticness, speechiness, instrumentalness, liveness
		FROM tracks
		WHERE fingerprint = ? AND target = ?
		ORDER BY position ASC
	`, fingerprint, target)
	if err != nil {
		return ports.CatalogEntry{}, nil, fmt.Errorf("failed to load dataset tracks: %w", err)
	}
	defer rows.Close()

	var tracks []domain.Track
	for rows.Next() {
		var t domain.Track
		f := &t.Features
		if err := rows.Scan(
			&t.TrackName, &t.Artists, &t.Genre,
			&f.Popularity, &f.Danceability, &f.Energy, &f.Valence, &f.Tempo,
			&f.Loudness, &f.Acousticness, &f.Speechiness, &f.Instrumentalness, &f.Liveness,
		); err != nil {
			return ports.CatalogEntry{}, nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, t)
	}
	if err := rows.Err(); err != nil {
		return ports.CatalogEntry{}, nil, fmt.Errorf("failed to iterate tracks: %w", err)
	}
	return entry, tracks, nil
}

// SaveSample replaces the sample stored under entry's fingerprint and target.
func (a *Adapter) SaveSample(ctx context.Context, entry ports.CatalogEntry, tracks []domain.Track) error {
	if entry.Fingerprint == "" {
		return fmt.Errorf("catalog: fingerprint cannot be empty")
	}
	if entry.StoredAt.IsZero() {
		entry.StoredAt = time.Now()
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO datasets (fingerprint, target, source, raw_rows, stored_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint, target) DO UPDATE SET
			source=excluded.source,
			raw_rows=excluded.raw_rows,
			stored_at=excluded.stored_at;
	`, entry.Fingerprint, entry.Target, entry.Source, entry.RawRows, entry.StoredAt.Unix()); err != nil {
		return fmt.Errorf("failed to save dataset metadata: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM tracks WHERE fingerprint = ? AND target = ?",
		entry.Fingerprint, entry.Target); err != nil {
		return fmt.Errorf("failed to clear old tracks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tracks (
			fingerprint, target, position, track_name, artists, genre,
			popularity, danceability, energy, valence, tempo,
			loudness, acousticness, speechiness, instrumentalness, liveness
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, t := range tracks {
		f := t.Features
		if _, err := stmt.ExecContext(ctx,
			entry.Fingerprint, entry.Target, i, t.TrackName, t.Artists, t.Genre,
			f.Popularity, f.Danceability, f.Energy, f.Valence, f.Tempo,
			f.Loudness, f.Acousticness, f.Speechiness, f.Instrumentalness, f.Liveness,
		); err != nil {
			return fmt.Errorf("failed to save track %s: %w", t.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

// Entries lists stored datasets, newest first.
func (a *Adapter) Entries(ctx context.Context) ([]ports.CatalogEntry, error) {
	rows, err := a.db.QueryContext(ctx,
		"SELECT fingerprint, target, source, raw_rows, stored_at FROM datasets ORDER BY stored_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	var out []ports.CatalogEntry
	for rows.Next() {
		var e ports.CatalogEntry
		var storedAt int64
		if err := rows.Scan(&e.Fingerprint, &e.Target, &e.Source, &e.RawRows, &storedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		e.StoredAt = time.Unix(storedAt, 0).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS datasets (
		fingerprint TEXT NOT NULL,
		target INTEGER NOT NULL,
		source TEXT NOT NULL,
		raw_rows INTEGER NOT NULL,
		stored_at INTEGER NOT NULL,
		PRIMARY KEY (fingerprint, target)
	);

	CREATE TABLE IF NOT EXISTS tracks (
		fingerprint TEXT NOT NULL,
		target INTEGER NOT NULL,
		position INTEGER NOT NULL,
		track_name TEXT NOT NULL,
		artists TEXT NOT NULL,
		genre TEXT NOT NULL,
		popularity REAL,
		danceability REAL,
		energy REAL,
		valence REAL,
		tempo REAL,
		loudness REAL,
		acousticness REAL,
		speechiness REAL,
		instrumentalness REAL,
		liveness REAL,
		PRIMARY KEY (fingerprint, target, position),
		FOREIGN KEY (fingerprint, target) REFERENCES datasets(fingerprint, target) ON DELETE CASCADE
	);
	`
	_, err := a.db.Exec(query)
	return err
}
