// Package pathresolve maps a logical component (architecture, direction,
// name) to a normalized project-relative path using structure metadata.
package pathresolve

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode"

	"github.com/archgen/archgen/internal/domain"
	"github.com/archgen/archgen/internal/domain/metadata"
)

const (
	keyName        = "name"
	keyType        = "type"
	keyModule      = "module"
	keyBasePackage = "basePackage"
)

var placeholderRe = regexp.MustCompile(`\{([^{}]+)\}`)

// packageKeys are context keys whose values are dotted package names
// expanded into directory segments.
var packageKeys = map[string]bool{
	keyBasePackage: true,
	"packageName":  true,
	"package":      true,
}

// layerNames are recognised even when an architecture does not define them,
// so a path into an undefined layer is reported rather than ignored.
var layerNames = []string{"core", "domain", "application", "infrastructure"}

// Resolver resolves component paths. It holds no mutable state and is safe
// for concurrent use.
type Resolver struct {
	provider domain.MetadataProvider
}

// New returns a Resolver backed by provider, or by the built-in metadata
// when provider is nil.
func New(provider domain.MetadataProvider) *Resolver {
	if provider == nil {
		provider = metadata.Builtin()
	}
	return &Resolver{provider: provider}
}

// ResolveAdapterPath returns the relative directory for a component of the
// given direction. The name is lowercased; {basePackage} dots become slashes;
// other placeholders come from ctx.
func (r *Resolver) ResolveAdapterPath(arch domain.ArchitectureType, direction, name string, ctx map[string]string) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	md, err := r.provider.MetadataFor(arch)
	if err != nil {
		return "", err
	}
	tmpl, ok := md.PathTemplate(direction)
	if !ok {
		return "", &domain.UnsupportedDirectionError{
			Architecture: arch,
			Direction:    direction,
			Supported:    md.Directions(),
		}
	}

	values := make(map[string]string, len(ctx)+2)
	for k, v := range ctx {
		values[k] = v
	}
	values[keyName] = strings.ToLower(name)
	values[keyType] = direction

	if strings.Contains(tmpl, "{"+keyModule+"}") && values[keyModule] == "" {
		if md.IsMultiModule() {
			return "", &domain.MissingContextValueError{
				Architecture: arch,
				Placeholder:  keyModule,
				Template:     tmpl,
				Hint:         "available modules: " + strings.Join(md.Modules, ", "),
			}
		}
		tmpl = dropModuleSegment(tmpl)
	}

	resolved, err := substitute(arch, tmpl, values)
	if err != nil {
		return "", err
	}
	return normalize(resolved)
}

// SubstitutePlaceholders replaces every {key} that ctx defines and leaves the
// rest in place. No expansion or normalization is applied.
func SubstitutePlaceholders(template string, ctx map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		if v, ok := ctx[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

// ValidatePath checks that p lies in a layer the architecture's dependency
// rules define. Architectures without rules accept every path.
func (r *Resolver) ValidatePath(p string, arch domain.ArchitectureType) error {
	md, err := r.provider.MetadataFor(arch)
	if err != nil {
		return err
	}
	if !md.HasLayerDependencies() {
		return nil
	}
	layer := extractLayer(p, md.LayerDependencies)
	if layer == "" {
		return fmt.Errorf("could not determine layer from path %q", p)
	}
	if !md.LayerDependencies.Defines(layer) {
		return fmt.Errorf("layer %q is not defined in architecture %q", layer, arch)
	}
	return nil
}

func substitute(arch domain.ArchitectureType, tmpl string, values map[string]string) (string, error) {
	var missing error
	out := placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		key := m[1 : len(m)-1]
		v, ok := values[key]
		if !ok || v == "" {
			if missing == nil {
				missing = &domain.MissingContextValueError{
					Architecture: arch,
					Placeholder:  key,
					Template:     tmpl,
				}
			}
			return m
		}
		if packageKeys[key] {
			v = strings.ReplaceAll(v, ".", "/")
		}
		return v
	})
	if missing != nil {
		return "", missing
	}
	return out, nil
}

func normalize(p string) (string, error) {
	p = strings.ReplaceAll(p, `\`, "/")
	p = path.Clean("/" + p)
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return "", &domain.NameError{Field: "path", Value: p, Reason: "resolves to the project root"}
	}
	for _, r := range p {
		if invisible(r) {
			return "", &domain.NameError{Field: "path", Value: p, Reason: "must not contain whitespace or control characters"}
		}
	}
	return p, nil
}

func checkName(name string) error {
	if name == "" {
		return &domain.NameError{Field: "adapterName", Value: name, Reason: "must not be empty"}
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return &domain.NameError{Field: "adapterName", Value: name, Reason: "must be a single path segment"}
	}
	for _, r := range name {
		if invisible(r) {
			return &domain.NameError{
				Field:      "adapterName",
				Value:      name,
				Reason:     "must not contain whitespace or control characters",
				Suggestion: domain.SuggestClassName(name),
			}
		}
	}
	return nil
}

// invisible reports whitespace, control and format characters such as U+200B.
func invisible(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r) || unicode.Is(unicode.Cf, r)
}

func dropModuleSegment(tmpl string) string {
	tmpl = strings.ReplaceAll(tmpl, "{"+keyModule+"}/", "")
	return strings.ReplaceAll(tmpl, "/{"+keyModule+"}", "")
}

// extractLayer returns the leftmost path segment naming a known layer.
func extractLayer(p string, deps *domain.LayerDependencies) string {
	segments := strings.Split(strings.ToLower(strings.ReplaceAll(p, `\`, "/")), "/")
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if deps.Defines(seg) {
			return seg
		}
		for _, l := range layerNames {
			if seg == l {
				return seg
			}
		}
	}
	return ""
}

const javaSourceRoot = "src/main/java/"

// PackageFromPath returns the dotted package of a directory that lies under a
// src/main/java source root.
func PackageFromPath(p string) (string, bool) {
	i := strings.Index(p, javaSourceRoot)
	if i < 0 || len(p) == i+len(javaSourceRoot) {
		return "", false
	}
	return strings.ReplaceAll(strings.Trim(p[i+len(javaSourceRoot):], "/"), "/", "."), true
}

// ModuleFromPath returns the build module directory that owns p, i.e. the
// part before its source root, or "" for the root project.
func ModuleFromPath(p string) string {
	i := strings.Index(p, javaSourceRoot)
	if i <= 0 {
		return ""
	}
	return strings.TrimSuffix(p[:i], "/")
}
