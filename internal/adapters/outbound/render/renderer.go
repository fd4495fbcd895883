// Package render executes the code-generation templates. The default pack
// is embedded; a local template directory can replace it.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/archgen/archgen/internal/domain"
)

//go:embed all:pack
var embedded embed.FS

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrMissingKey       = errors.New("template references a missing key")
)

// Renderer implements domain.TemplateRenderer over an fs.FS.
type Renderer struct {
	fsys fs.FS
}

// New returns a Renderer over fsys.
func New(fsys fs.FS) *Renderer {
	return &Renderer{fsys: fsys}
}

// Embedded returns a Renderer over the built-in template pack.
func Embedded() *Renderer {
	sub, err := fs.Sub(embedded, "pack")
	if err != nil {
		panic(fmt.Sprintf("embedded template pack: %v", err))
	}
	return New(sub)
}

// Dir returns a Renderer over a local template directory.
func Dir(path string) (*Renderer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template directory %s is not a directory", path)
	}
	return New(os.DirFS(path)), nil
}

// FS exposes the underlying filesystem, e.g. for structure metadata loading.
func (r *Renderer) FS() fs.FS { return r.fsys }

func (r *Renderer) Exists(name string) bool {
	info, err := fs.Stat(r.fsys, name)
	return err == nil && !info.IsDir()
}

// First returns the first candidate that exists.
func (r *Renderer) First(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if r.Exists(c) {
			return c, true
		}
	}
	return "", false
}

// List returns the template paths matching a doublestar pattern such as
// "frameworks/**/*.tmpl".
func (r *Renderer) List(pattern string) ([]string, error) {
	matches, err := doublestar.Glob(r.fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("listing templates %q: %w", pattern, err)
	}
	return matches, nil
}

// Check parses the named template without executing it.
func (r *Renderer) Check(name string) error {
	content, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	if _, err := template.New(name).Funcs(funcMap()).Parse(string(content)); err != nil {
		return fmt.Errorf("template parse %q: %w", name, err)
	}
	return nil
}

// Render executes the named template with strict key checking.
func (r *Renderer) Render(name string, data map[string]any) (string, error) {
	content, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	tmpl, err := template.New(name).
		Funcs(funcMap()).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("template parse %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		if strings.Contains(err.Error(), "map has no entry for key") {
			return "", fmt.Errorf("%w: %v", ErrMissingKey, err)
		}
		return "", fmt.Errorf("template execute %q: %w", name, err)
	}
	return buf.String(), nil
}

func funcMap() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["lowerName"] = domain.LowerName
	fm["kebab"] = domain.KebabName
	fm["camel"] = domain.CamelName
	fm["packagePath"] = domain.PackagePath
	fm["params"] = func(ps []domain.MethodParameter) string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.Type+" "+p.Name)
		}
		return strings.Join(out, ", ")
	}
	fm["args"] = func(ps []domain.MethodParameter) string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return strings.Join(out, ", ")
	}
	return fm
}
