package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewArchgenMCPServer creates an MCP server with all archgen tools and
// resources registered. projectPath is the root of the project the tools
// read .archgen.yaml from.
func NewArchgenMCPServer(projectPath, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"archgen",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, version)
	registerResources(s, projectPath)

	return s
}
