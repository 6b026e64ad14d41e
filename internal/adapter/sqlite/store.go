package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/cropet-service/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS crop_parameters (
	crop_id              INTEGER PRIMARY KEY,
	position             INTEGER NOT NULL,
	name                 TEXT NOT NULL,
	class_number         INTEGER NOT NULL,
	is_annual            INTEGER NOT NULL,
	curve_name           TEXT NOT NULL,
	season               TEXT NOT NULL,
	crop_gdd_trigger_doy INTEGER NOT NULL,
	params               TEXT NOT NULL,
	source               TEXT NOT NULL,
	loaded_at            TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_crop_parameters_position ON crop_parameters(position);
`

// StoredCrop is one row read back from the catalog.
type StoredCrop struct {
	ID       int
	Position int
	Params   domain.CropParameters
	Source   string
	LoadedAt time.Time
}

// Store persists crop tables into a SQLite database.
// It implements pipeline.Loader.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the catalog database at path and ensures
// the schema exists. Use ":memory:" for a throwaway database.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening crop catalog: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating crop_parameters table: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadTable replaces every stored crop with the rows of snap inside one
// transaction.
func (s *Store) LoadTable(ctx context.Context, snap domain.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin catalog load: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM crop_parameters`); err != nil {
		return fmt.Errorf("clearing crop_parameters: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO crop_parameters
			(crop_id, position, name, class_number, is_annual, curve_name, season,
			 crop_gdd_trigger_doy, params, source, loaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	loadedAt := snap.LoadedAt.UTC().Format(time.RFC3339Nano)
	for pos, id := range snap.Table.IDs() {
		rec, _ := snap.Table.Get(id)
		params, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding crop %d: %w", id, err)
		}
		_, err = stmt.ExecContext(ctx,
			id, pos, rec.Name, rec.ClassNumber, rec.IsAnnual, rec.CurveName, string(rec.Season),
			rec.CropGDDTriggerDOY, string(params), snap.Source, loadedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting crop %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog load: %w", err)
	}
	s.logger.Debug("crop catalog replaced", "crops", snap.Table.Len())
	return nil
}

// ListCrops returns the stored crops in their original column order.
func (s *Store) ListCrops(ctx context.Context) ([]StoredCrop, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT crop_id, position, params, source, loaded_at
		FROM crop_parameters
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying crop_parameters: %w", err)
	}
	defer rows.Close()

	var out []StoredCrop
	for rows.Next() {
		var (
			c        StoredCrop
			params   string
			loadedAt string
		)
		if err := rows.Scan(&c.ID, &c.Position, &params, &c.Source, &loadedAt); err != nil {
			return nil, fmt.Errorf("scanning crop row: %w", err)
		}
		if err := json.Unmarshal([]byte(params), &c.Params); err != nil {
			return nil, fmt.Errorf("decoding crop %d: %w", c.ID, err)
		}
		if c.LoadedAt, err = time.Parse(time.RFC3339Nano, loadedAt); err != nil {
			return nil, fmt.Errorf("parsing loaded_at for crop %d: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
