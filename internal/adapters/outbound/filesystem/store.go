package filesystem

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Store implements domain.FileStore on an afero filesystem.
type Store struct {
	fs afero.Fs
}

// New returns a Store on the OS filesystem.
func New() *Store { return NewWithFs(afero.NewOsFs()) }

func NewWithFs(fs afero.Fs) *Store { return &Store{fs: fs} }

func (s *Store) Exists(projectPath, relPath string) (bool, error) {
	return afero.Exists(s.fs, join(projectPath, relPath))
}

func (s *Store) Read(projectPath, relPath string) ([]byte, error) {
	return afero.ReadFile(s.fs, join(projectPath, relPath))
}

// Write creates parent directories as needed and replaces any existing file.
func (s *Store) Write(projectPath, relPath string, content []byte) error {
	fp := join(projectPath, relPath)
	if err := s.fs.MkdirAll(filepath.Dir(fp), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", relPath, err)
	}
	if err := afero.WriteFile(s.fs, fp, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", relPath, err)
	}
	return nil
}

func join(projectPath, relPath string) string {
	return filepath.Join(projectPath, filepath.FromSlash(relPath))
}
