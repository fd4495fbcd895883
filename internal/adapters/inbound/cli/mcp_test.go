package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archgen/archgen/internal/adapters/inbound/cli"
)

func TestMCPServeCommand_Registered(t *testing.T) {
	root := cli.NewRootCmdForTest()

	serve, _, err := root.Find([]string{"mcp", "serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())
	assert.NotNil(t, serve.Flags().Lookup("path"))
}

func TestMCPHelp(t *testing.T) {
	out, err := run(t, "mcp", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "serve")
}
