package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/archgen/archgen/internal/adapters/outbound/config"
	"github.com/archgen/archgen/internal/domain"
)

const architectureURIPrefix = "archgen://architectures/"

// registerResources registers all archgen MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. archgen://config - the project's .archgen.yaml
	s.AddResource(
		mcplib.NewResource(
			"archgen://config",
			"Project Config",
			mcplib.WithResourceDescription("Generation settings from the project's .archgen.yaml"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath),
	)

	// 2. archgen://architectures/{type} - structure metadata (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			architectureURIPrefix+"{type}",
			"Architecture Metadata",
			mcplib.WithTemplateDescription("Path templates, naming conventions and layer rules for one architecture"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleArchitectureResource(projectPath),
	)
}

func handleConfigResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := config.New().Load(projectPath)
		if err != nil {
			return nil, err
		}
		return jsonResource("archgen://config", cfg)
	}
}

func handleArchitectureResource(projectPath string) server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		uri := request.Params.URI
		arch, err := domain.ParseArchitectureType(strings.TrimPrefix(uri, architectureURIPrefix))
		if err != nil {
			return nil, err
		}
		src, err := projectTemplates(projectPath)
		if err != nil {
			return nil, err
		}
		md, err := src.Provider.MetadataFor(arch)
		if err != nil {
			return nil, err
		}
		return jsonResource(uri, md)
	}
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
