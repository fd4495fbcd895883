package metadata_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archgen/archgen/internal/domain"
	"github.com/archgen/archgen/internal/domain/metadata"
)

func TestBuiltin_CoversEveryArchitecture(t *testing.T) {
	p := metadata.Builtin()

	assert.Equal(t, domain.ValidArchitectures, p.Architectures())
	for _, arch := range domain.ValidArchitectures {
		md, err := p.MetadataFor(arch)
		require.NoError(t, err, arch)
		assert.Equal(t, arch, md.Architecture)
		assert.NoError(t, md.Validate(), arch)
		assert.Equal(t, arch.IsMultiModule(), md.IsMultiModule(), arch)
		for _, dir := range []string{"driven", "driving", "usecase", "model", "port"} {
			tmpl, ok := md.PathTemplate(dir)
			assert.True(t, ok, "%s has no %s template", arch, dir)
			assert.True(t, strings.Contains(tmpl, "{basePackage}"), "%s %s template lacks basePackage", arch, dir)
		}
	}
}

func TestMetadataFor_UnknownArchitecture(t *testing.T) {
	_, err := metadata.Builtin().MetadataFor("microkernel")

	var unknown *domain.UnknownArchitectureError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "microkernel", unknown.Value)
}

func TestMetadataFor_ReturnsPrivateCopy(t *testing.T) {
	p := metadata.Builtin()

	first, err := p.MetadataFor(domain.ArchClean)
	require.NoError(t, err)
	first.PathTemplates["driven"] = "tampered/{name}"

	second, err := p.MetadataFor(domain.ArchClean)
	require.NoError(t, err)
	assert.NotEqual(t, "tampered/{name}", second.PathTemplates["driven"])
}

func TestNew_RejectsInvalidRecord(t *testing.T) {
	_, err := metadata.New(domain.StructureMetadata{
		Architecture:  domain.ArchLayered,
		PathTemplates: map[string]string{"driven": "persistence/out"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `metadata for "layered"`)
}

func TestNew_LaterRecordWins(t *testing.T) {
	p, err := metadata.New(
		domain.StructureMetadata{Architecture: domain.ArchClean, PathTemplates: map[string]string{"driven": "a/{name}"}},
		domain.StructureMetadata{Architecture: domain.ArchClean, PathTemplates: map[string]string{"driven": "b/{name}"}},
	)
	require.NoError(t, err)

	md, err := p.MetadataFor(domain.ArchClean)
	require.NoError(t, err)
	assert.Equal(t, "b/{name}", md.PathTemplates["driven"])
	assert.False(t, p.Has(domain.ArchLayered))
}
