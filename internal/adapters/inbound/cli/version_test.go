package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "archgen 0.3.0")
}

func TestUnknownCommand(t *testing.T) {
	_, err := run(t, "scaffold")
	assert.Error(t, err)
}
