package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ManagerDir is the per-project directory holding planning state.
	ManagerDir = ".project_manager"
	// DataFile is the filename for the project record.
	DataFile = "project_data.json"
)

// Store defines the persistence interface for project records.
// Abstracted for testability (DIP).
type Store interface {
	Load(projectRoot string) (*Data, error)
	Save(projectRoot string, data *Data) error
}

// FileStore implements Store using the local filesystem.
type FileStore struct{}

// NewFileStore creates a filesystem-backed project store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// DataPath returns the absolute path to a project's project_data.json.
func DataPath(projectRoot string) string {
	return filepath.Join(projectRoot, ManagerDir, DataFile)
}

// Load reads the project record. A missing file is not an error: it returns
// a fresh zero record, so every tool works on an uninitialized project.
func (fs *FileStore) Load(projectRoot string) (*Data, error) {
	raw, err := os.ReadFile(DataPath(projectRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return NewData(), nil
		}
		return nil, fmt.Errorf("reading project data: %w", err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing project_data.json: %w", err)
	}
	return &data, nil
}

// Save writes the project record, creating .project_manager/ as needed.
func (fs *FileStore) Save(projectRoot string, data *Data) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling project data: %w", err)
	}

	path := DataPath(projectRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating project manager directory: %w", err)
	}

	return os.WriteFile(path, raw, 0o644)
}
