package modelstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/skylabs-meteo/forecast-analytics/internal/model"
)

// SQLiteStore persists artifacts in a keyed blob table, one row per model
// name. It expects a *sql.DB opened with a SQLite driver (modernc.org/sqlite).
type SQLiteStore struct {
	db   *sql.DB
	name string
}

// NewSQLiteStore creates a store for the named model over an open database.
func NewSQLiteStore(db *sql.DB, name string) *SQLiteStore {
	return &SQLiteStore{db: db, name: name}
}

// Migrate creates the artifact table when it does not exist.
func (s *SQLiteStore) Migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS model_artifacts (
			name TEXT PRIMARY KEY,
			payload BLOB NOT NULL,
			trained_at DATETIME,
			samples INTEGER,
			updated_at DATETIME NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate model_artifacts: %w", err)
	}
	return nil
}

// Load reads the artifact row for this model. No row is ok=false, not an error.
func (s *SQLiteStore) Load() (*model.Artifact, bool, error) {
	var payload []byte
	err := s.db.QueryRow(
		`SELECT payload FROM model_artifacts WHERE name = ?`, s.name,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load model artifact %q: %w", s.name, err)
	}
	artifact, err := model.DecodeArtifact(payload)
	if err != nil {
		return nil, false, err
	}
	return artifact, true, nil
}

// Save upserts the artifact row, overwriting any previous fit.
func (s *SQLiteStore) Save(artifact *model.Artifact) error {
	payload, err := artifact.Encode()
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO model_artifacts (name, payload, trained_at, samples, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			payload = excluded.payload,
			trained_at = excluded.trained_at,
			samples = excluded.samples,
			updated_at = excluded.updated_at
	`, s.name, payload, artifact.TrainedAt, artifact.Samples, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save model artifact %q: %w", s.name, err)
	}
	return nil
}
