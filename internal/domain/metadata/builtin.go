package metadata

import "github.com/archgen/archgen/internal/domain"

const javaRoot = "src/main/java/{basePackage}"

var hexagonalLayers = map[string][]string{
	"domain":         {},
	"application":    {"domain"},
	"infrastructure": {"application", "domain"},
}

var hexagonalNaming = domain.NamingConventions{
	Suffixes: map[string]string{
		"driven":  "Adapter",
		"driving": "Controller",
		"usecase": "UseCase",
		"port":    "Repository",
	},
}

var hexagonalPackages = []string{
	"domain.model",
	"domain.port.in",
	"domain.port.out",
	"application.usecase",
	"infrastructure.adapter.in",
	"infrastructure.adapter.out",
	"infrastructure.config",
}

func builtinRecords() []domain.StructureMetadata {
	return []domain.StructureMetadata{
		{
			Architecture: domain.ArchHexagonalSingle,
			PathTemplates: map[string]string{
				"driven":  javaRoot + "/infrastructure/adapter/out/{name}",
				"driving": javaRoot + "/infrastructure/adapter/in/{name}",
				"usecase": javaRoot + "/application/usecase",
				"model":   javaRoot + "/domain/model",
				"port":    javaRoot + "/domain/port/out",
			},
			NamingConventions: &hexagonalNaming,
			LayerDependencies: &domain.LayerDependencies{Allowed: hexagonalLayers},
			Packages:          hexagonalPackages,
		},
		{
			Architecture: domain.ArchHexagonalMulti,
			PathTemplates: map[string]string{
				"driven":  "infrastructure/" + javaRoot + "/infrastructure/adapter/out/{name}",
				"driving": "infrastructure/" + javaRoot + "/infrastructure/adapter/in/{name}",
				"usecase": "application/" + javaRoot + "/application/usecase",
				"model":   "domain/" + javaRoot + "/domain/model",
				"port":    "domain/" + javaRoot + "/domain/port/out",
			},
			NamingConventions: &hexagonalNaming,
			LayerDependencies: &domain.LayerDependencies{Allowed: hexagonalLayers},
			Packages:          hexagonalPackages,
			Modules:           []string{"domain", "application", "infrastructure"},
		},
		{
			Architecture: domain.ArchHexagonalMultiGranular,
			PathTemplates: map[string]string{
				"driven":  "infrastructure/driven-adapters/{name}/" + javaRoot + "/infrastructure/drivenadapters/{name}",
				"driving": "infrastructure/entry-points/{name}/" + javaRoot + "/infrastructure/entrypoints/{name}",
				"usecase": "domain/usecase/" + javaRoot + "/domain/usecase",
				"model":   "domain/model/" + javaRoot + "/domain/model",
				"port":    "domain/ports/" + javaRoot + "/domain/ports",
			},
			NamingConventions: &hexagonalNaming,
			LayerDependencies: &domain.LayerDependencies{Allowed: hexagonalLayers},
			Packages: []string{
				"domain.model",
				"domain.ports",
				"domain.usecase",
				"infrastructure.drivenadapters",
				"infrastructure.entrypoints",
			},
			Modules: []string{
				"domain/model",
				"domain/ports",
				"domain/usecase",
				"application/app-service",
				"infrastructure/driven-adapters",
				"infrastructure/entry-points",
			},
		},
		{
			Architecture: domain.ArchOnionSingle,
			PathTemplates: map[string]string{
				"driven":  javaRoot + "/infrastructure/adapter/out/{name}",
				"driving": javaRoot + "/infrastructure/adapter/in/{name}",
				"usecase": javaRoot + "/core/application/usecase",
				"model":   javaRoot + "/core/domain/model",
				"port":    javaRoot + "/core/domain/port",
			},
			NamingConventions: &hexagonalNaming,
			LayerDependencies: &domain.LayerDependencies{Allowed: map[string][]string{
				"core":           {},
				"infrastructure": {"core"},
			}},
			Packages: []string{
				"core.domain.model",
				"core.domain.port",
				"core.application.usecase",
				"infrastructure.adapter.in",
				"infrastructure.adapter.out",
			},
		},
		{
			Architecture: domain.ArchOnionMulti,
			PathTemplates: map[string]string{
				"driven":  "infrastructure/" + javaRoot + "/infrastructure/adapter/out/{name}",
				"driving": "infrastructure/" + javaRoot + "/infrastructure/adapter/in/{name}",
				"usecase": "core/" + javaRoot + "/core/application/usecase",
				"model":   "core/" + javaRoot + "/core/domain/model",
				"port":    "core/" + javaRoot + "/core/domain/port",
			},
			NamingConventions: &hexagonalNaming,
			LayerDependencies: &domain.LayerDependencies{Allowed: map[string][]string{
				"core":           {},
				"infrastructure": {"core"},
			}},
			Packages: []string{
				"core.domain.model",
				"core.domain.port",
				"core.application.usecase",
				"infrastructure.adapter.in",
				"infrastructure.adapter.out",
			},
			Modules: []string{"core", "infrastructure"},
		},
		{
			Architecture: domain.ArchClean,
			PathTemplates: map[string]string{
				"driven":  javaRoot + "/infrastructure/drivenadapters/{name}",
				"driving": javaRoot + "/infrastructure/entrypoints/{name}",
				"usecase": javaRoot + "/domain/usecase",
				"model":   javaRoot + "/domain/model",
				"port":    javaRoot + "/domain/model/gateways",
			},
			NamingConventions: &domain.NamingConventions{
				Suffixes: map[string]string{
					"driven":  "Adapter",
					"driving": "Handler",
					"usecase": "UseCase",
					"port":    "Gateway",
				},
			},
			LayerDependencies: &domain.LayerDependencies{Allowed: map[string][]string{
				"domain":         {},
				"infrastructure": {"domain"},
			}},
			Packages: []string{
				"domain.model",
				"domain.model.gateways",
				"domain.usecase",
				"infrastructure.drivenadapters",
				"infrastructure.entrypoints",
			},
		},
		{
			Architecture: domain.ArchLayered,
			PathTemplates: map[string]string{
				"driven":  javaRoot + "/persistence/adapter/out/{name}",
				"driving": javaRoot + "/web/adapter/in/{name}",
				"usecase": javaRoot + "/service",
				"model":   javaRoot + "/model",
				"port":    javaRoot + "/persistence",
			},
			NamingConventions: &domain.NamingConventions{
				Suffixes: map[string]string{
					"driven":  "Adapter",
					"driving": "Controller",
					"usecase": "Service",
					"port":    "Repository",
				},
			},
			LayerDependencies: &domain.LayerDependencies{Allowed: map[string][]string{
				"web":         {"service", "model"},
				"service":     {"persistence", "model"},
				"persistence": {"model"},
				"model":       {},
			}},
			Packages: []string{"model", "persistence", "service", "web"},
		},
	}
}
