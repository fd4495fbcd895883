package application

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/archgen/archgen/internal/domain"
	"github.com/archgen/archgen/internal/logger"
)

// MergeService merges YAML fragments into configuration files inside a
// project, keeping every existing value.
type MergeService struct {
	files domain.FileStore
	log   logger.Logger
}

func NewMergeService(files domain.FileStore, log logger.Logger) *MergeService {
	if log == nil {
		log = logger.Nop()
	}
	return &MergeService{files: files, log: log}
}

// MergeFile reads relPath, merges the YAML overlay into it and writes the
// result back unless dryRun is set. A missing target is created.
func (s *MergeService) MergeFile(ctx context.Context, projectPath, relPath string, overlay []byte, dryRun bool) (domain.FileMerge, error) {
	if err := ctx.Err(); err != nil {
		return domain.FileMerge{}, err
	}
	target, err := cleanRelative(relPath)
	if err != nil {
		return domain.FileMerge{}, err
	}
	fragment, err := parseYAMLMap(overlay)
	if err != nil {
		return domain.FileMerge{}, fmt.Errorf("parsing overlay: %w", err)
	}

	fm, err := mergeYAMLFile(s.files, projectPath, target, fragment, dryRun)
	if err != nil {
		return domain.FileMerge{}, err
	}
	for _, c := range fm.Conflicts {
		s.log.Warn("configuration value kept", "file", target, "path", c.Path, "existing", c.Existing, "generated", c.Generated)
	}
	s.log.Debug("merged configuration", "file", target, "added", len(fm.AddedKeys), "conflicts", len(fm.Conflicts))
	return fm, nil
}

// cleanRelative rejects paths that escape the project root.
func cleanRelative(p string) (string, error) {
	p = strings.ReplaceAll(p, `\`, "/")
	if strings.HasPrefix(p, "/") {
		return "", &domain.NameError{Field: "path", Value: p, Reason: "must be relative to the project root"}
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", &domain.NameError{Field: "path", Value: p, Reason: "must stay inside the project root"}
	}
	return cleaned, nil
}
