package structure_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archgen/archgen/internal/adapters/outbound/structure"
	"github.com/archgen/archgen/internal/domain"
)

func TestLoad_EmbeddedPack(t *testing.T) {
	src, err := structure.Load(t.TempDir(), "")
	require.NoError(t, err)

	assert.Empty(t, src.Dir)
	assert.Empty(t, src.Overridden)
	assert.True(t, src.Renderer.Exists("common/model/Entity.java.tmpl"))
	assert.Len(t, src.Provider.Architectures(), len(domain.ValidArchitectures))
}

func TestLoad_RelativeLocalDir(t *testing.T) {
	project := t.TempDir()
	file := filepath.Join(project, "templates", "architectures", "clean", "structure.yml")
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
	require.NoError(t, os.WriteFile(file, []byte(cleanStructure), 0o644))

	src, err := structure.Load(project, "templates")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(project, "templates"), src.Dir)
	assert.Equal(t, []domain.ArchitectureType{domain.ArchClean}, src.Overridden)
	md, err := src.Provider.MetadataFor(domain.ArchClean)
	require.NoError(t, err)
	assert.Contains(t, md.PathTemplates["driven"], "driven-adapters")
}

func TestLoad_MissingDir(t *testing.T) {
	_, err := structure.Load(t.TempDir(), "does-not-exist")
	assert.Error(t, err)
}
