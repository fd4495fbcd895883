package application

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/archgen/archgen/internal/domain"
	"github.com/archgen/archgen/internal/logger"
)

// StructureSource loads one architecture's structure metadata from a
// template directory. A directory that does not define the architecture
// returns an error wrapping fs.ErrNotExist.
type StructureSource interface {
	LoadFile(arch domain.ArchitectureType) (domain.StructureMetadata, error)
}

// TemplateSet enumerates and syntax-checks the templates of a directory.
type TemplateSet interface {
	List(pattern string) ([]string, error)
	Check(name string) error
}

// ValidateTemplatesService checks a local template directory before it is
// used for generation.
type ValidateTemplatesService struct {
	git domain.GitInfo
	log logger.Logger
}

func NewValidateTemplatesService(git domain.GitInfo, log logger.Logger) *ValidateTemplatesService {
	if log == nil {
		log = logger.Nop()
	}
	return &ValidateTemplatesService{git: git, log: log}
}

// Validate loads every architecture's structure.yml, parses every template
// and records the directory's commit when it is a git repository.
func (s *ValidateTemplatesService) Validate(ctx context.Context, dir string, structures StructureSource, templates TemplateSet) (*domain.TemplateValidation, error) {
	v := &domain.TemplateValidation{Dir: dir}

	// 1. Structure metadata
	for _, arch := range domain.ValidArchitectures {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		_, err := structures.LoadFile(arch)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			v.Missing = append(v.Missing, arch)
		case err != nil:
			v.Errors = append(v.Errors, err.Error())
		default:
			v.Loaded = append(v.Loaded, arch)
		}
	}

	// 2. Templates
	names, err := templates.List("**/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	v.Templates = names
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := templates.Check(name); err != nil {
			v.Errors = append(v.Errors, err.Error())
		}
	}
	if len(names) == 0 {
		v.Errors = append(v.Errors, "no templates found (expected *.tmpl files)")
	}

	// 3. Provenance
	if s.git != nil && s.git.IsGitRepo(dir) {
		if hash, err := s.git.CommitHash(dir); err == nil {
			v.Commit = hash
		}
	}

	s.log.Debug("validated templates", "dir", dir, "loaded", len(v.Loaded), "templates", len(names), "errors", len(v.Errors))
	return v, nil
}
