package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archgen/archgen/internal/adapters/outbound/config"
	"github.com/archgen/archgen/internal/domain"
)

func initProject(t *testing.T, extra ...string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "orders")
	args := append([]string{"init", dir, "--package", "com.acme.orders"}, extra...)
	_, err := run(t, args...)
	require.NoError(t, err)
	return dir
}

func TestInitCommand_WritesProject(t *testing.T) {
	dir := initProject(t)

	cfg, err := config.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "orders", cfg.Name)
	assert.Equal(t, "com.acme.orders", cfg.BasePackage)
	assert.Equal(t, domain.ArchHexagonalSingle, cfg.Architecture)
	assert.Equal(t, "0.3.0", cfg.GeneratorVersion)

	assert.FileExists(t, filepath.Join(dir, "build.gradle"))
	assert.FileExists(t, filepath.Join(dir, "settings.gradle"))
	assert.FileExists(t, filepath.Join(dir, "src/main/resources/application.yml"))
	assert.FileExists(t, filepath.Join(dir, "src/main/java/com/acme/orders/OrdersApplication.java"))
}

func TestInitCommand_RefusesExistingProject(t *testing.T) {
	dir := initProject(t)

	_, err := run(t, "init", dir, "--package", "com.acme.orders")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")

	_, err = run(t, "init", dir, "--package", "com.acme.orders", "--force")
	assert.NoError(t, err)
}

func TestInitCommand_DryRunJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "payments")

	out, err := run(t, "init", dir, "--package", "com.acme.payments", "--arch", "onion-single", "--dry-run", "--json")
	require.NoError(t, err)

	var report domain.GenerationReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.DryRun)
	assert.Equal(t, domain.ArchOnionSingle, report.Architecture)
	assert.Contains(t, report.Paths(), "build.gradle")

	_, err = os.Stat(filepath.Join(dir, ".archgen.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestInitCommand_RequiresPackage(t *testing.T) {
	_, err := run(t, "init", t.TempDir())
	assert.Error(t, err)
}

func TestInitCommand_RejectsUnknownArchitecture(t *testing.T) {
	_, err := run(t, "init", t.TempDir(), "--package", "com.acme", "--name", "orders", "--arch", "layered-mvc")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownArchitecture)
}
