// Package modelstore provides implementations of the model.Store strategy:
// the trained artifact can live in a flat file, a SQLite blob table, or
// memory, without the predictor knowing which.
package modelstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skylabs-meteo/forecast-analytics/internal/model"
)

// DefaultFilePath is where the artifact lives unless configured otherwise.
const DefaultFilePath = "models/weather_trend_model.gob"

// FileStore persists the artifact as a single gob file. The directory is
// created lazily on the first save, never at construction.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and decodes the artifact. A missing file is ok=false, not an error.
func (s *FileStore) Load() (*model.Artifact, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read model artifact %s: %w", s.path, err)
	}
	artifact, err := model.DecodeArtifact(data)
	if err != nil {
		return nil, false, err
	}
	return artifact, true, nil
}

// Save encodes the artifact and overwrites the file. The write goes through a
// temp file and rename so a crash mid-write never leaves a torn artifact.
func (s *FileStore) Save(artifact *model.Artifact) error {
	data, err := artifact.Encode()
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp artifact file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write model artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp artifact file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace model artifact %s: %w", s.path, err)
	}
	return nil
}
