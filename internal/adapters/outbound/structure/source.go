package structure

import (
	"path/filepath"

	"github.com/archgen/archgen/internal/adapters/outbound/render"
	"github.com/archgen/archgen/internal/domain"
	"github.com/archgen/archgen/internal/domain/metadata"
)

// Source is the renderer and metadata selected for a project.
type Source struct {
	Renderer *render.Renderer
	Provider *metadata.Provider
	// Dir is the absolute local template directory, empty for the embedded pack.
	Dir string
	// Overridden lists the architectures Dir redefines.
	Overridden []domain.ArchitectureType
}

// Load returns the embedded pack, or the local template directory when
// localPath is set. Relative paths are taken from projectPath.
func Load(projectPath, localPath string) (Source, error) {
	if localPath == "" {
		return Source{Renderer: render.Embedded(), Provider: metadata.Builtin()}, nil
	}
	dir := localPath
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(projectPath, dir)
	}
	r, err := render.Dir(dir)
	if err != nil {
		return Source{}, err
	}
	p, loaded, err := New(r.FS()).Provider()
	if err != nil {
		return Source{}, err
	}
	return Source{Renderer: r, Provider: p, Dir: dir, Overridden: loaded}, nil
}
