package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archgen/archgen/internal/domain"
)

func TestArchitecturesCommand_JSON(t *testing.T) {
	out, err := run(t, "architectures", "--json")
	require.NoError(t, err)

	var records []domain.StructureMetadata
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Len(t, records, len(domain.ValidArchitectures))
}

func TestArchitecturesCommand_Text(t *testing.T) {
	out, err := run(t, "archs")
	require.NoError(t, err)
	for _, a := range domain.ValidArchitectures {
		assert.Contains(t, out, string(a))
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestValidateTemplatesCommand_Valid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "common/adapters/driven/generic/Adapter.java.tmpl"), "public class {{ .className }} {}\n")

	out, err := run(t, "validate-templates", dir, "--json")
	require.NoError(t, err)

	var v domain.TemplateValidation
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.True(t, v.Valid())
}

func TestValidateTemplatesCommand_BrokenTemplate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "common/adapters/driven/generic/Adapter.java.tmpl"), "public class {{ .className }\n")

	_, err := run(t, "validate-templates", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 errors")
}
