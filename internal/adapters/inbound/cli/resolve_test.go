package cli_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archgen/archgen/internal/domain"
)

func TestResolveCommand_ProjectDefaults(t *testing.T) {
	dir := initProject(t)

	out, err := run(t, "resolve", "UserRepository", "--path", dir)
	require.NoError(t, err)
	assert.Equal(t, redisDir, strings.TrimSpace(out))
}

func TestResolveCommand_ExplicitArchitecture(t *testing.T) {
	out, err := run(t, "resolve", "Payments", "--path", t.TempDir(),
		"--arch", "hexagonal-multi-granular", "--package", "com.shop", "-d", "driven")
	require.NoError(t, err)
	assert.Equal(t,
		"infrastructure/driven-adapters/payments/src/main/java/com/shop/infrastructure/drivenadapters/payments",
		strings.TrimSpace(out))
}

func TestResolveCommand_NoArchitecture(t *testing.T) {
	_, err := run(t, "resolve", "UserRepository", "--path", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no architecture")
}

func TestResolveCommand_UnsupportedDirection(t *testing.T) {
	_, err := run(t, "resolve", "UserRepository", "--path", t.TempDir(),
		"--arch", "hexagonal-single", "--package", "com.shop", "-d", "sideways")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedDirection)
}

func TestResolveCommand_MissingPackage(t *testing.T) {
	_, err := run(t, "resolve", "UserRepository", "--path", t.TempDir(), "--arch", "hexagonal-single")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingContextValue)
}
