package mcp

import (
	"context"
	"encoding/json"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archgen/archgen/internal/domain"
)

func readResource(t *testing.T, handler func(context.Context, mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error), uri string) (string, error) {
	t.Helper()
	var req mcplib.ReadResourceRequest
	req.Params.URI = uri
	contents, err := handler(context.Background(), req)
	if err != nil {
		return "", err
	}
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcplib.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, uri, text.URI)
	return text.Text, nil
}

func TestArchitectureResource_Builtin(t *testing.T) {
	out, err := readResource(t, handleArchitectureResource(t.TempDir()), architectureURIPrefix+"clean")
	require.NoError(t, err)

	var md domain.StructureMetadata
	require.NoError(t, json.Unmarshal([]byte(out), &md))
	assert.Equal(t, domain.ArchClean, md.Architecture)
	assert.Contains(t, md.PathTemplates["driven"], "drivenadapters")
}

func TestArchitectureResource_Unknown(t *testing.T) {
	_, err := readResource(t, handleArchitectureResource(t.TempDir()), architectureURIPrefix+"serverless")
	assert.ErrorIs(t, err, domain.ErrUnknownArchitecture)
}

func TestConfigResource(t *testing.T) {
	dir := initProject(t)

	out, err := readResource(t, handleConfigResource(dir), "archgen://config")
	require.NoError(t, err)

	var cfg domain.ProjectConfig
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "orders", cfg.Name)
	assert.Equal(t, "com.acme", cfg.BasePackage)
}
