package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const settingsFile = "settings.json"

// Store loads and saves the application settings. Implementations must write
// through synchronously: when Save returns nil the settings are durable.
type Store interface {
	Load() (*Settings, error)
	Save(settings *Settings) error
}

// FileStore persists settings as a JSON file with restricted permissions.
type FileStore struct {
	path string
}

// DefaultSettingsPath returns the XDG-compliant location of the settings file.
func DefaultSettingsPath() string {
	return filepath.Join(xdg.ConfigHome, "daybrief", settingsFile)
}

// NewFileStore creates a store backed by the given file path. An empty path
// selects the default XDG location.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultSettingsPath()
	}
	return &FileStore{path: path}
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the settings file. A missing file is not an error; it yields
// zero-value settings so first-run commands can proceed to configuration.
func (s *FileStore) Load() (*Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", s.path, err)
	}
	return &settings, nil
}

// Save writes the settings file with 0600 permissions. The write goes to a
// temporary file first and is renamed into place so a crash mid-write cannot
// leave a truncated settings file behind.
func (s *FileStore) Save(settings *Settings) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	tmp, err := os.CreateTemp(dir, settingsFile+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary settings file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set settings file permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temporary settings file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}
