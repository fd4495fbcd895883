package application_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archgen/archgen/internal/adapters/outbound/render"
	"github.com/archgen/archgen/internal/adapters/outbound/structure"
	"github.com/archgen/archgen/internal/application"
	"github.com/archgen/archgen/internal/domain"
)

func TestValidateTemplates(t *testing.T) {
	fsys := fstest.MapFS{
		"architectures/clean/structure.yml": {Data: []byte(`
adapterPaths:
  driven: infrastructure/driven-adapters/{name}
  driving: infrastructure/entry-points/{name}
`)},
		"architectures/layered/structure.yml": {Data: []byte("adapterPaths: {}\n")},
		"common/adapters/driven/generic/Adapter.java.tmpl": {Data: []byte("class {{ .className }} {}")},
		"common/broken.tmpl":                               {Data: []byte("{{ if }}")},
	}
	git := &fakeGit{repos: map[string]bool{"./tpl": true}, hash: "abc123"}
	svc := application.NewValidateTemplatesService(git, nil)

	v, err := svc.Validate(context.Background(), "./tpl", structure.New(fsys), render.New(fsys))
	require.NoError(t, err)

	assert.Equal(t, []domain.ArchitectureType{domain.ArchClean}, v.Loaded)
	assert.Len(t, v.Missing, len(domain.ValidArchitectures)-2)
	assert.Len(t, v.Templates, 2)
	assert.Equal(t, "abc123", v.Commit)
	require.Len(t, v.Errors, 2)
	assert.Contains(t, v.Errors[0], "architectures/layered/structure.yml")
	assert.Contains(t, v.Errors[1], "common/broken.tmpl")
	assert.False(t, v.Valid())
}

func TestValidateTemplates_EmbeddedPackIsValid(t *testing.T) {
	svc := application.NewValidateTemplatesService(nil, nil)
	r := render.Embedded()

	v, err := svc.Validate(context.Background(), "embedded", structure.New(r.FS()), r)
	require.NoError(t, err)

	assert.True(t, v.Valid(), v.Errors)
	assert.Len(t, v.Missing, len(domain.ValidArchitectures))
}

func TestValidateTemplates_EmptyDirectory(t *testing.T) {
	svc := application.NewValidateTemplatesService(nil, nil)
	fsys := fstest.MapFS{}

	v, err := svc.Validate(context.Background(), "empty", structure.New(fsys), render.New(fsys))
	require.NoError(t, err)

	assert.False(t, v.Valid())
	assert.Contains(t, v.Errors[0], "no templates found")
}
