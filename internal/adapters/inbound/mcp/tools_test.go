package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archgen/archgen/internal/adapters/outbound/config"
	"github.com/archgen/archgen/internal/domain"
)

func callTool(t *testing.T, handler func(context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error), args map[string]any) *mcplib.CallToolResult {
	t.Helper()
	var req mcplib.CallToolRequest
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return text.Text
}

func initProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg, err := domain.NewProjectConfig(domain.ProjectOptions{
		Name:         "orders",
		BasePackage:  "com.acme",
		Architecture: string(domain.ArchHexagonalSingle),
		CreatedAt:    time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, config.New().Save(dir, cfg))
	return dir
}

func TestResolvePath_UsesProjectDefaults(t *testing.T) {
	dir := initProject(t)

	res := callTool(t, handleResolvePath(dir), map[string]any{"name": "UserRepository"})
	assert.False(t, res.IsError)
	assert.Equal(t, "src/main/java/com/acme/infrastructure/adapter/out/userrepository", resultText(t, res))
}

func TestResolvePath_ExplicitArchitecture(t *testing.T) {
	res := callTool(t, handleResolvePath(t.TempDir()), map[string]any{
		"name":         "Orders",
		"architecture": string(domain.ArchOnionSingle),
		"base_package": "com.shop",
		"direction":    "driving",
	})
	assert.False(t, res.IsError, resultText(t, res))
	assert.Contains(t, resultText(t, res), "src/main/java/com/shop/")
}

func TestResolvePath_UnknownArchitecture(t *testing.T) {
	res := callTool(t, handleResolvePath(t.TempDir()), map[string]any{"name": "X", "architecture": "serverless", "base_package": "com.x"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "serverless")
}

func TestResolvePath_MissingName(t *testing.T) {
	res := callTool(t, handleResolvePath(t.TempDir()), map[string]any{})
	assert.True(t, res.IsError)
}

func TestMergeYAML_Strings(t *testing.T) {
	res := callTool(t, handleMergeYAML(t.TempDir()), map[string]any{
		"base":    "server:\n  port: 8080\n",
		"overlay": "server:\n  port: 9090\n  host: 0.0.0.0\n",
	})
	require.False(t, res.IsError, resultText(t, res))

	var got domain.MergeResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, []string{"server.host"}, got.AddedKeys)
	require.Len(t, got.Conflicts, 1)
	assert.Equal(t, "server.port", got.Conflicts[0].Path)
}

func TestMergeYAML_InvalidOverlay(t *testing.T) {
	res := callTool(t, handleMergeYAML(t.TempDir()), map[string]any{"overlay": "a: [1, 2"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "parsing overlay")
}

func TestMergeYAML_TargetFileIsPreviewUnlessWrite(t *testing.T) {
	dir := t.TempDir()
	handler := handleMergeYAML(dir)

	res := callTool(t, handler, map[string]any{"target": "config/app.yml", "overlay": "a: 1\n"})
	require.False(t, res.IsError, resultText(t, res))
	assert.NoFileExists(t, filepath.Join(dir, "config/app.yml"))

	res = callTool(t, handler, map[string]any{"target": "config/app.yml", "overlay": "a: 1\n", "write": true})
	require.False(t, res.IsError, resultText(t, res))
	assert.FileExists(t, filepath.Join(dir, "config/app.yml"))
}

func TestListArchitectures_AllBuiltins(t *testing.T) {
	res := callTool(t, handleListArchitectures(t.TempDir()), map[string]any{})
	require.False(t, res.IsError, resultText(t, res))

	var records []domain.StructureMetadata
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &records))
	assert.Len(t, records, len(domain.ValidArchitectures))
}

func TestGenerateAdapter_PreviewOnly(t *testing.T) {
	dir := initProject(t)

	res := callTool(t, handleGenerateAdapter(dir, "0.3.0"), map[string]any{
		"name":    "UserRepository",
		"kind":    "redis",
		"entity":  "User",
		"methods": "Mono<User> findById(String id); Mono<Void> deleteById(String id)",
	})
	require.False(t, res.IsError, resultText(t, res))

	var got struct {
		Report domain.GenerationReport `json:"report"`
		Files  []previewFile           `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.True(t, got.Report.DryRun)
	require.NotEmpty(t, got.Files)
	assert.Equal(t, "src/main/java/com/acme/infrastructure/adapter/out/userrepository/UserRepositoryAdapter.java", got.Files[0].Path)
	assert.Contains(t, got.Files[0].Content, "public Mono<Void> deleteById(String id) {")
	assert.NoFileExists(t, filepath.Join(dir, filepath.FromSlash(got.Files[0].Path)))
}

func TestGenerateAdapter_BadSignature(t *testing.T) {
	dir := initProject(t)

	res := callTool(t, handleGenerateAdapter(dir, "0.3.0"), map[string]any{
		"name":    "UserRepository",
		"methods": "findById(String id)",
	})
	assert.True(t, res.IsError)
}

func TestGenerateAdapter_NoProject(t *testing.T) {
	res := callTool(t, handleGenerateAdapter(t.TempDir(), "0.3.0"), map[string]any{"name": "UserRepository"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "archgen init")
}
