package application

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/archgen/archgen/internal/domain"
	"github.com/archgen/archgen/internal/domain/merge"
)

// ApplicationConfigPath is where every adapter's configuration fragment is merged.
const ApplicationConfigPath = "src/main/resources/application.yml"

// GenerateOptions controls how rendered files reach the project.
type GenerateOptions struct {
	// Force overwrites files that already exist.
	Force bool
	// DryRun renders and reports without touching the project.
	DryRun bool
}

// output collects rendered files for one run and writes them in order.
// Nothing is written until every file has rendered.
type output struct {
	projectPath string
	files       domain.FileStore
	opts        GenerateOptions
	pending     []domain.GeneratedFile
}

func newOutput(projectPath string, files domain.FileStore, opts GenerateOptions) *output {
	return &output{projectPath: projectPath, files: files, opts: opts}
}

func (o *output) add(path string, kind domain.FileKind, content string) {
	o.pending = append(o.pending, domain.GeneratedFile{Path: path, Content: content, Kind: kind})
}

// flush writes pending files, skipping existing ones unless forced, and
// checks ctx before each file.
func (o *output) flush(ctx context.Context, report *domain.GenerationReport) error {
	for _, f := range o.pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		exists, err := o.files.Exists(o.projectPath, f.Path)
		if err != nil {
			return fmt.Errorf("checking %s: %w", f.Path, err)
		}
		if exists && !o.opts.Force {
			report.Skipped = append(report.Skipped, f.Path)
			continue
		}
		if !o.opts.DryRun {
			if err := o.files.Write(o.projectPath, f.Path, []byte(f.Content)); err != nil {
				return fmt.Errorf("writing %s: %w", f.Path, err)
			}
		}
		report.Files = append(report.Files, f)
	}
	return nil
}

// mergeYAMLFile merges overlay into the YAML document at relPath, the
// existing content acting as base. A missing file is created from overlay.
func mergeYAMLFile(files domain.FileStore, projectPath, relPath string, overlay map[string]any, dryRun bool) (domain.FileMerge, error) {
	fm := domain.FileMerge{Path: relPath}

	exists, err := files.Exists(projectPath, relPath)
	if err != nil {
		return fm, fmt.Errorf("checking %s: %w", relPath, err)
	}

	var base map[string]any
	if exists {
		data, err := files.Read(projectPath, relPath)
		if err != nil {
			return fm, fmt.Errorf("reading %s: %w", relPath, err)
		}
		if base, err = parseYAMLMap(data); err != nil {
			return fm, fmt.Errorf("parsing %s: %w", relPath, err)
		}
	} else {
		fm.Created = true
	}

	result := merge.MergeWithReport(base, overlay)
	fm.Conflicts = result.Conflicts
	fm.AddedKeys = result.AddedKeys

	if dryRun || (exists && len(result.AddedKeys) == 0) {
		return fm, nil
	}

	out, err := marshalYAML(result.Merged)
	if err != nil {
		return fm, fmt.Errorf("encoding %s: %w", relPath, err)
	}
	if err := files.Write(projectPath, relPath, out); err != nil {
		return fm, fmt.Errorf("writing %s: %w", relPath, err)
	}
	return fm, nil
}

// parseYAMLMap decodes a YAML mapping document. Empty or comment-only
// input yields an empty map.
func parseYAMLMap(data []byte) (map[string]any, error) {
	if strings.TrimSpace(string(data)) == "" {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

func marshalYAML(m map[string]any) ([]byte, error) {
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}
