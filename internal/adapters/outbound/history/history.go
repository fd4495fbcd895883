package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/archgen/archgen/internal/domain"
)

const historyFile = ".archgen/history/generations.json"

// FileHistory implements domain.GenerationHistory using JSON file storage.
type FileHistory struct {
	fs afero.Fs
}

func New() *FileHistory {
	return NewWithFs(afero.NewOsFs())
}

func NewWithFs(fs afero.Fs) *FileHistory {
	return &FileHistory{fs: fs}
}

// Save appends entry to the project's history file.
func (h *FileHistory) Save(projectPath string, entry domain.HistoryEntry) error {
	entries, err := h.Load(projectPath)
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	fp := filepath.Join(projectPath, historyFile)
	if err := h.fs.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return afero.WriteFile(h.fs, fp, data, 0644)
}

func (h *FileHistory) Load(projectPath string) ([]domain.HistoryEntry, error) {
	fp := filepath.Join(projectPath, historyFile)

	data, err := afero.ReadFile(h.fs, fp)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", historyFile, err)
	}

	return entries, nil
}
