package domain

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// DefaultGeneratorVersion is recorded when no generator version is supplied.
const DefaultGeneratorVersion = "0.1.0"

// ProjectConfig holds the project-level generation settings stored in .archgen.yaml.
// It is built once per run by NewProjectConfig and treated as read-only afterwards.
type ProjectConfig struct {
	Name                string            `yaml:"name"                json:"name"`
	BasePackage         string            `yaml:"basePackage"         json:"base_package"`
	Architecture        ArchitectureType  `yaml:"architecture"        json:"architecture"`
	Framework           Framework         `yaml:"framework"           json:"framework"`
	Paradigm            Paradigm          `yaml:"paradigm"            json:"paradigm"`
	GeneratorVersion    string            `yaml:"generatorVersion"    json:"generator_version"`
	CreatedAt           time.Time         `yaml:"createdAt"           json:"created_at"`
	AdaptersAsModules   bool              `yaml:"adaptersAsModules"   json:"adapters_as_modules"`
	DependencyOverrides map[string]string `yaml:"dependencyOverrides" json:"dependency_overrides,omitempty"`
	Templates           TemplateConfig    `yaml:"templates"           json:"templates"`
}

// TemplateConfig points generation at a local template directory.
// An empty LocalPath selects the embedded template pack.
type TemplateConfig struct {
	LocalPath string `yaml:"localPath,omitempty" json:"local_path,omitempty"`
}

// ProjectOptions is the raw, unvalidated input for NewProjectConfig.
type ProjectOptions struct {
	Name                string
	BasePackage         string
	Architecture        string
	Framework           string
	Paradigm            string
	GeneratorVersion    string
	CreatedAt           time.Time
	AdaptersAsModules   bool
	DependencyOverrides map[string]string
	TemplatesLocalPath  string
}

// NewProjectConfig validates opts and returns an immutable ProjectConfig.
func NewProjectConfig(opts ProjectOptions) (ProjectConfig, error) {
	if err := ValidateProjectName(opts.Name); err != nil {
		return ProjectConfig{}, err
	}
	if err := ValidatePackageName("basePackage", opts.BasePackage); err != nil {
		return ProjectConfig{}, err
	}

	arch, err := ParseArchitectureType(opts.Architecture)
	if err != nil {
		return ProjectConfig{}, err
	}

	framework := FrameworkSpring
	if opts.Framework != "" {
		if framework, err = ParseFramework(opts.Framework); err != nil {
			return ProjectConfig{}, err
		}
	}

	paradigm := ParadigmReactive
	if opts.Paradigm != "" {
		if paradigm, err = ParseParadigm(opts.Paradigm); err != nil {
			return ProjectConfig{}, err
		}
	}

	version := strings.TrimSpace(opts.GeneratorVersion)
	if version == "" {
		version = DefaultGeneratorVersion
	}
	if _, err := semver.NewVersion(version); err != nil {
		return ProjectConfig{}, &NameError{Field: "generatorVersion", Value: version, Reason: "must be a semantic version"}
	}

	for coord := range opts.DependencyOverrides {
		if !isDependencyCoordinate(coord) {
			return ProjectConfig{}, fmt.Errorf("dependencyOverrides: key %q must be group:artifact", coord)
		}
	}

	var overrides map[string]string
	if len(opts.DependencyOverrides) > 0 {
		overrides = maps.Clone(opts.DependencyOverrides)
	}

	return ProjectConfig{
		Name:                opts.Name,
		BasePackage:         opts.BasePackage,
		Architecture:        arch,
		Framework:           framework,
		Paradigm:            paradigm,
		GeneratorVersion:    version,
		CreatedAt:           opts.CreatedAt,
		AdaptersAsModules:   opts.AdaptersAsModules,
		DependencyOverrides: overrides,
		Templates:           TemplateConfig{LocalPath: opts.TemplatesLocalPath},
	}, nil
}

// Options converts the config back to raw options, e.g. to rebuild it with a change.
func (c ProjectConfig) Options() ProjectOptions {
	return ProjectOptions{
		Name:                c.Name,
		BasePackage:         c.BasePackage,
		Architecture:        string(c.Architecture),
		Framework:           string(c.Framework),
		Paradigm:            string(c.Paradigm),
		GeneratorVersion:    c.GeneratorVersion,
		CreatedAt:           c.CreatedAt,
		AdaptersAsModules:   c.AdaptersAsModules,
		DependencyOverrides: maps.Clone(c.DependencyOverrides),
		TemplatesLocalPath:  c.Templates.LocalPath,
	}
}

// PathContext returns the placeholder values every path template may reference.
func (c ProjectConfig) PathContext() map[string]string {
	return map[string]string{
		"basePackage": c.BasePackage,
		"project":     c.Name,
	}
}

func isDependencyCoordinate(s string) bool {
	parts := strings.Split(s, ":")
	return len(parts) == 2 && parts[0] != "" && parts[1] != ""
}

// MethodParameter is a single typed parameter of a generated method.
type MethodParameter struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// AdapterMethod is a method signature declared for an adapter or use case.
type AdapterMethod struct {
	Name       string            `yaml:"name"       json:"name"`
	ReturnType string            `yaml:"returnType" json:"return_type"`
	Parameters []MethodParameter `yaml:"parameters" json:"parameters,omitempty"`
}

// AdapterConfig declares one adapter to generate.
type AdapterConfig struct {
	Name        string           `yaml:"name"        json:"name"`
	PackageName string           `yaml:"packageName" json:"package_name"`
	Direction   AdapterDirection `yaml:"direction"   json:"direction"`
	Kind        string           `yaml:"kind"        json:"kind"`
	EntityName  string           `yaml:"entityName"  json:"entity_name"`
	Methods     []AdapterMethod  `yaml:"methods"     json:"methods,omitempty"`
}

// NewAdapterConfig validates the declaration. Kind defaults to "generic".
func NewAdapterConfig(name, packageName string, direction AdapterDirection, kind, entityName string, methods []AdapterMethod) (AdapterConfig, error) {
	if err := ValidateClassName("adapter name", name); err != nil {
		return AdapterConfig{}, err
	}
	if err := ValidatePackageName("adapter package", packageName); err != nil {
		return AdapterConfig{}, err
	}
	if direction != Driven && direction != Driving {
		return AdapterConfig{}, fmt.Errorf("unknown adapter direction %q (valid: driven, driving)", direction)
	}
	if entityName != "" {
		if err := ValidateClassName("entity name", entityName); err != nil {
			return AdapterConfig{}, err
		}
	}
	if err := validateMethods(methods); err != nil {
		return AdapterConfig{}, err
	}

	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		kind = "generic"
	}

	return AdapterConfig{
		Name:        name,
		PackageName: packageName,
		Direction:   direction,
		Kind:        kind,
		EntityName:  entityName,
		Methods:     append([]AdapterMethod(nil), methods...),
	}, nil
}

// UseCaseConfig declares an application use case.
type UseCaseConfig struct {
	Name        string          `yaml:"name"        json:"name"`
	PackageName string          `yaml:"packageName" json:"package_name"`
	Methods     []AdapterMethod `yaml:"methods"     json:"methods,omitempty"`
}

func NewUseCaseConfig(name, packageName string, methods []AdapterMethod) (UseCaseConfig, error) {
	if err := ValidateClassName("use case name", name); err != nil {
		return UseCaseConfig{}, err
	}
	if err := ValidatePackageName("use case package", packageName); err != nil {
		return UseCaseConfig{}, err
	}
	if err := validateMethods(methods); err != nil {
		return UseCaseConfig{}, err
	}
	return UseCaseConfig{
		Name:        name,
		PackageName: packageName,
		Methods:     append([]AdapterMethod(nil), methods...),
	}, nil
}

// EntityField is a typed field of a domain entity.
type EntityField struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// EntityConfig declares a domain entity.
type EntityConfig struct {
	Name        string        `yaml:"name"        json:"name"`
	PackageName string        `yaml:"packageName" json:"package_name"`
	Fields      []EntityField `yaml:"fields"      json:"fields,omitempty"`
	HasID       bool          `yaml:"hasId"       json:"has_id"`
}

func NewEntityConfig(name, packageName string, fields []EntityField, hasID bool) (EntityConfig, error) {
	if err := ValidateClassName("entity name", name); err != nil {
		return EntityConfig{}, err
	}
	if err := ValidatePackageName("entity package", packageName); err != nil {
		return EntityConfig{}, err
	}
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		if f.Name == "" || f.Type == "" {
			return EntityConfig{}, fmt.Errorf("fields[%d]: name and type are required", i)
		}
		if seen[f.Name] {
			return EntityConfig{}, fmt.Errorf("fields[%d]: duplicate field %q", i, f.Name)
		}
		seen[f.Name] = true
	}
	return EntityConfig{
		Name:        name,
		PackageName: packageName,
		Fields:      append([]EntityField(nil), fields...),
		HasID:       hasID,
	}, nil
}

func validateMethods(methods []AdapterMethod) error {
	for i, m := range methods {
		if m.Name == "" {
			return fmt.Errorf("methods[%d]: name is required", i)
		}
		if m.ReturnType == "" {
			return fmt.Errorf("methods[%d] %s: returnType is required", i, m.Name)
		}
		for j, p := range m.Parameters {
			if p.Name == "" || p.Type == "" {
				return fmt.Errorf("methods[%d] %s: parameters[%d] needs name and type", i, m.Name, j)
			}
		}
	}
	return nil
}
