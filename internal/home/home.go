package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the langextract home directory.
	DefaultDirName = ".langextract"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"

	// PresetsFileName is the optional file with extra schema presets.
	PresetsFileName = "presets.yaml"
)

// Dir represents the langextract home directory.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.langextract).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// PresetsPath returns the path to the default presets file.
func (d *Dir) PresetsPath() string {
	return filepath.Join(d.path, PresetsFileName)
}

// EnsureExists creates the home directory if it doesn't exist.
func (d *Dir) EnsureExists() error {
	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return fmt.Errorf("failed to create home directory: %w", err)
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}

// PresetsFile returns the presets file to load: explicit when set,
// otherwise the home presets file if it exists, otherwise "".
func (d *Dir) PresetsFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(d.PresetsPath()); err == nil {
		return d.PresetsPath()
	}
	return ""
}
