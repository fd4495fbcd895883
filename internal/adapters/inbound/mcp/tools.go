package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/archgen/archgen/internal/adapters/outbound/config"
	"github.com/archgen/archgen/internal/adapters/outbound/filesystem"
	"github.com/archgen/archgen/internal/adapters/outbound/gitinfo"
	"github.com/archgen/archgen/internal/adapters/outbound/history"
	"github.com/archgen/archgen/internal/adapters/outbound/structure"
	"github.com/archgen/archgen/internal/application"
	"github.com/archgen/archgen/internal/domain"
	"github.com/archgen/archgen/internal/domain/merge"
	"github.com/archgen/archgen/internal/domain/metadata"
	"github.com/archgen/archgen/internal/domain/pathresolve"
	"github.com/archgen/archgen/internal/logger"
)

// registerTools registers all archgen MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath, version string) {
	// 1. archgen_resolve_path
	s.AddTool(
		mcplib.NewTool("archgen_resolve_path",
			mcplib.WithDescription("Returns the project-relative directory a component belongs in for an architecture"),
			mcplib.WithString("name", mcplib.Required(), mcplib.Description("Component name, e.g. UserRepository")),
			mcplib.WithString("direction", mcplib.Description("driven, driving, usecase, model or port (default driven)")),
			mcplib.WithString("architecture", mcplib.Description("Architecture type; defaults to the project's .archgen.yaml")),
			mcplib.WithString("base_package", mcplib.Description("Base Java package; defaults to the project's .archgen.yaml")),
		),
		handleResolvePath(projectPath),
	)

	// 2. archgen_merge_yaml
	s.AddTool(
		mcplib.NewTool("archgen_merge_yaml",
			mcplib.WithDescription("Merges a YAML overlay into a base document; existing values win and are reported as conflicts"),
			mcplib.WithString("overlay", mcplib.Required(), mcplib.Description("YAML fragment to merge")),
			mcplib.WithString("base", mcplib.Description("Base YAML document; ignored when target is set")),
			mcplib.WithString("target", mcplib.Description("Project-relative YAML file to merge into")),
			mcplib.WithBoolean("write", mcplib.Description("Write the merged target file (default false)")),
		),
		handleMergeYAML(projectPath),
	)

	// 3. archgen_list_architectures
	s.AddTool(
		mcplib.NewTool("archgen_list_architectures",
			mcplib.WithDescription("Returns the structure metadata of every supported architecture as JSON"),
		),
		handleListArchitectures(projectPath),
	)

	// 4. archgen_generate_adapter
	s.AddTool(
		mcplib.NewTool("archgen_generate_adapter",
			mcplib.WithDescription("Previews the files an adapter would generate in the project without writing them"),
			mcplib.WithString("name", mcplib.Required(), mcplib.Description("Adapter name in PascalCase")),
			mcplib.WithString("direction", mcplib.Description("driven or driving (default driven)")),
			mcplib.WithString("kind", mcplib.Description("Template kind, e.g. redis, mongodb, postgresql, rest (default generic)")),
			mcplib.WithString("entity", mcplib.Description("Domain entity handled by the adapter")),
			mcplib.WithString("package", mcplib.Description("Java package; derived from the resolved directory when empty")),
			mcplib.WithString("methods", mcplib.Description(`Semicolon-separated signatures, e.g. "Mono<User> findById(String id); Mono<Void> delete(String id)"`)),
		),
		handleGenerateAdapter(projectPath, version),
	)
}

func handleResolvePath(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		direction := request.GetString("direction", string(domain.Driven))
		arch := request.GetString("architecture", "")
		basePackage := request.GetString("base_package", "")

		provider := metadata.Builtin()
		values := map[string]string{}
		if cfg, err := config.New().Load(projectPath); err == nil {
			values = cfg.PathContext()
			if arch == "" {
				arch = string(cfg.Architecture)
			}
			if basePackage == "" {
				basePackage = cfg.BasePackage
			}
			if src, err := structure.Load(projectPath, cfg.Templates.LocalPath); err == nil {
				provider = src.Provider
			}
		}
		at, err := domain.ParseArchitectureType(arch)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		values["basePackage"] = basePackage

		p, err := pathresolve.New(provider).ResolveAdapterPath(at, direction, name, values)
		if err != nil {
			return errorResult(fmt.Sprintf("resolve failed: %v", err)), nil
		}
		return textResult(p), nil
	}
}

func handleMergeYAML(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		overlay, err := request.RequireString("overlay")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		if target := request.GetString("target", ""); target != "" {
			svc := application.NewMergeService(filesystem.New(), logger.Nop())
			fm, err := svc.MergeFile(ctx, projectPath, target, []byte(overlay), !request.GetBool("write", false))
			if err != nil {
				return errorResult(fmt.Sprintf("merge failed: %v", err)), nil
			}
			return jsonResult(fm)
		}

		var base, over map[string]any
		if err := yaml.Unmarshal([]byte(request.GetString("base", "")), &base); err != nil {
			return errorResult(fmt.Sprintf("parsing base: %v", err)), nil
		}
		if err := yaml.Unmarshal([]byte(overlay), &over); err != nil {
			return errorResult(fmt.Sprintf("parsing overlay: %v", err)), nil
		}
		return jsonResult(merge.MergeWithReport(base, over))
	}
}

func handleListArchitectures(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		src, err := projectTemplates(projectPath)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		var records []domain.StructureMetadata
		for _, a := range src.Provider.Architectures() {
			md, err := src.Provider.MetadataFor(a)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			records = append(records, md)
		}
		return jsonResult(records)
	}
}

// previewFile is a generated file including its content.
type previewFile struct {
	Path    string          `json:"path"`
	Kind    domain.FileKind `json:"kind"`
	Content string          `json:"content"`
}

func handleGenerateAdapter(projectPath, version string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		cfg, err := config.New().Load(projectPath)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		src, err := structure.Load(projectPath, cfg.Templates.LocalPath)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if src.Dir != "" {
			cfg.Templates.LocalPath = src.Dir
		}

		direction, err := domain.ParseAdapterDirection(request.GetString("direction", string(domain.Driven)))
		if err != nil {
			return errorResult(err.Error()), nil
		}
		var sigs []string
		for _, s := range strings.Split(request.GetString("methods", ""), ";") {
			if strings.TrimSpace(s) != "" {
				sigs = append(sigs, s)
			}
		}
		methods, err := domain.ParseMethodSignatures(sigs)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		svc := application.NewGenerateService(src.Provider, src.Renderer, filesystem.New(), history.New(), gitinfo.New(), logger.Nop(), version)
		pkg := request.GetString("package", "")
		if pkg == "" {
			if pkg, err = svc.DefaultPackage(cfg, string(direction), name); err != nil {
				return errorResult(err.Error()), nil
			}
		}
		adapter, err := domain.NewAdapterConfig(name, pkg, direction, request.GetString("kind", ""), request.GetString("entity", ""), methods)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report, err := svc.GenerateAdapter(ctx, projectPath, cfg, adapter, application.GenerateOptions{DryRun: true, Force: true})
		if err != nil {
			return errorResult(fmt.Sprintf("generate failed: %v", err)), nil
		}
		files := make([]previewFile, 0, len(report.Files))
		for _, f := range report.Files {
			files = append(files, previewFile{Path: f.Path, Kind: f.Kind, Content: f.Content})
		}
		return jsonResult(map[string]any{
			"report": report,
			"files":  files,
		})
	}
}

// projectTemplates selects the project's template source, or the embedded
// pack when the project has no .archgen.yaml.
func projectTemplates(projectPath string) (structure.Source, error) {
	cfg, err := config.New().Load(projectPath)
	if errors.Is(err, config.ErrConfigNotFound) {
		return structure.Load(projectPath, "")
	}
	if err != nil {
		return structure.Source{}, err
	}
	return structure.Load(projectPath, cfg.Templates.LocalPath)
}

// jsonResult marshals v as indented JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns an error content result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
