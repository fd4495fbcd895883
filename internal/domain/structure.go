package domain

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// NamePlaceholder is substituted with the component's lowercase name.
const NamePlaceholder = "{name}"

// StructureMetadata describes an architecture's layout rules as data.
// One instance exists per ArchitectureType and is never mutated after load.
type StructureMetadata struct {
	Architecture      ArchitectureType   `yaml:"architecture"                json:"architecture"`
	PathTemplates     map[string]string  `yaml:"adapterPaths"                json:"path_templates"`
	NamingConventions *NamingConventions `yaml:"namingConventions,omitempty" json:"naming_conventions,omitempty"`
	LayerDependencies *LayerDependencies `yaml:"layerDependencies,omitempty" json:"layer_dependencies,omitempty"`
	Packages          []string           `yaml:"packages,omitempty"          json:"packages,omitempty"`
	Modules           []string           `yaml:"modules,omitempty"           json:"modules,omitempty"`
}

// Validate checks that the record can drive path resolution.
func (m StructureMetadata) Validate() error {
	if !m.Architecture.Valid() {
		return &UnknownArchitectureError{Value: string(m.Architecture)}
	}
	if len(m.PathTemplates) == 0 {
		return errors.New("adapter paths must not be empty")
	}
	_, hasDriven := m.PathTemplates[string(Driven)]
	_, hasDriving := m.PathTemplates[string(Driving)]
	if !hasDriven && !hasDriving {
		return errors.New("adapter paths must define at least 'driven' or 'driving'")
	}
	for _, dir := range m.Directions() {
		tmpl := m.PathTemplates[dir]
		if strings.TrimSpace(tmpl) == "" {
			return fmt.Errorf("adapter path %q is empty", dir)
		}
		if isAdapterDirection(dir) && !strings.Contains(tmpl, NamePlaceholder) {
			return fmt.Errorf("adapter path %q must contain %s", dir, NamePlaceholder)
		}
	}
	return nil
}

// PathTemplate returns the template for a direction key.
func (m StructureMetadata) PathTemplate(direction string) (string, bool) {
	t, ok := m.PathTemplates[direction]
	return t, ok
}

// Directions returns the direction keys in sorted order.
func (m StructureMetadata) Directions() []string {
	return slices.Sorted(maps.Keys(m.PathTemplates))
}

// IsMultiModule reports whether the metadata declares build modules.
func (m StructureMetadata) IsMultiModule() bool { return len(m.Modules) > 0 }

func (m StructureMetadata) HasNamingConventions() bool { return m.NamingConventions != nil }

func (m StructureMetadata) HasLayerDependencies() bool { return m.LayerDependencies != nil }

// Clone returns a deep copy so callers can never alias shared metadata.
func (m StructureMetadata) Clone() StructureMetadata {
	out := m
	out.PathTemplates = maps.Clone(m.PathTemplates)
	out.Packages = slices.Clone(m.Packages)
	out.Modules = slices.Clone(m.Modules)
	if m.NamingConventions != nil {
		nc := NamingConventions{
			Suffixes: maps.Clone(m.NamingConventions.Suffixes),
			Prefixes: maps.Clone(m.NamingConventions.Prefixes),
		}
		out.NamingConventions = &nc
	}
	if m.LayerDependencies != nil {
		allowed := make(map[string][]string, len(m.LayerDependencies.Allowed))
		for k, v := range m.LayerDependencies.Allowed {
			allowed[k] = slices.Clone(v)
		}
		out.LayerDependencies = &LayerDependencies{Allowed: allowed}
	}
	return out
}

func isAdapterDirection(dir string) bool {
	return dir == string(Driven) || dir == string(Driving)
}

// NamingConventions holds per-component prefixes and suffixes.
type NamingConventions struct {
	Suffixes map[string]string `yaml:"suffixes,omitempty" json:"suffixes,omitempty"`
	Prefixes map[string]string `yaml:"prefixes,omitempty" json:"prefixes,omitempty"`
}

// Apply decorates baseName with the prefix and suffix for componentType.
func (n NamingConventions) Apply(componentType, baseName string) string {
	return n.Prefixes[componentType] + baseName + n.Suffixes[componentType]
}

func (n NamingConventions) HasConventionsFor(componentType string) bool {
	_, s := n.Suffixes[componentType]
	_, p := n.Prefixes[componentType]
	return s || p
}

// LayerDependencies lists, per layer, the layers it may depend on.
type LayerDependencies struct {
	Allowed map[string][]string `yaml:",inline" json:"allowed"`
}

func (l LayerDependencies) CanDependOn(from, to string) bool {
	return slices.Contains(l.Allowed[from], to)
}

func (l LayerDependencies) AllowedFor(layer string) []string {
	return slices.Clone(l.Allowed[layer])
}

func (l LayerDependencies) Defines(layer string) bool {
	_, ok := l.Allowed[layer]
	return ok
}

// ValidateDependency returns an error describing a forbidden edge.
func (l LayerDependencies) ValidateDependency(from, to string) error {
	if !l.CanDependOn(from, to) {
		return fmt.Errorf("layer %q cannot depend on layer %q (allowed: %s)",
			from, to, strings.Join(l.AllowedFor(from), ", "))
	}
	return nil
}
