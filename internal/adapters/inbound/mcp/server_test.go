package mcp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/archgen/archgen/internal/adapters/inbound/mcp"
)

func TestNewArchgenMCPServer(t *testing.T) {
	s := mcpadapter.NewArchgenMCPServer(".", "0.3.0")
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s := mcpadapter.NewArchgenMCPServer(".", "0.3.0")
	require.NotNil(t, s)

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"archgen_resolve_path",
		"archgen_merge_yaml",
		"archgen_list_architectures",
		"archgen_generate_adapter",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}
