// Package structure loads architecture structure metadata from a template
// directory's architectures/<type>/structure.yml files.
package structure

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/archgen/archgen/internal/domain"
	"github.com/archgen/archgen/internal/domain/metadata"
)

// FileName is the per-architecture metadata file inside a template directory.
const FileName = "structure.yml"

// PathFor returns the slash path of the metadata file for arch.
func PathFor(arch domain.ArchitectureType) string {
	return path.Join("architectures", string(arch), FileName)
}

// Loader reads structure metadata from an fs.FS.
type Loader struct {
	fsys fs.FS
}

func New(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile parses and validates the metadata for arch. It returns
// fs.ErrNotExist when the directory does not define the architecture.
func (l *Loader) LoadFile(arch domain.ArchitectureType) (domain.StructureMetadata, error) {
	p := PathFor(arch)
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return domain.StructureMetadata{}, err
	}

	var md domain.StructureMetadata
	if err := yaml.Unmarshal(data, &md); err != nil {
		return domain.StructureMetadata{}, fmt.Errorf("parsing %s: %w", p, err)
	}
	if md.Architecture == "" {
		md.Architecture = arch
	}
	if md.Architecture != arch {
		return domain.StructureMetadata{}, fmt.Errorf("%s declares architecture %q", p, md.Architecture)
	}
	if err := md.Validate(); err != nil {
		return domain.StructureMetadata{}, fmt.Errorf("invalid %s: %w", p, err)
	}
	return md, nil
}

// Provider overlays every architecture the directory defines onto the
// built-in metadata. Missing files fall back to built-ins; malformed files
// are errors.
func (l *Loader) Provider() (*metadata.Provider, []domain.ArchitectureType, error) {
	var (
		records []domain.StructureMetadata
		loaded  []domain.ArchitectureType
	)
	for _, arch := range domain.ValidArchitectures {
		md, err := l.LoadFile(arch)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		records = append(records, md)
		loaded = append(loaded, arch)
	}
	p, err := metadata.Builtin().With(records...)
	if err != nil {
		return nil, nil, err
	}
	return p, loaded, nil
}
