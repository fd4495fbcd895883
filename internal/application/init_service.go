package application

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/archgen/archgen/internal/domain"
	"github.com/archgen/archgen/internal/domain/pathresolve"
	"github.com/archgen/archgen/internal/logger"
)

// ErrAlreadyInitialized is returned when .archgen.yaml exists and force is not set.
var ErrAlreadyInitialized = errors.New("project already initialized")

// ConfigFileName is the project configuration written by Initialize.
const ConfigFileName = ".archgen.yaml"

// InitService scaffolds a new project:
// validate options → render base files → merge application.yml → save config.
type InitService struct {
	provider domain.MetadataProvider
	renderer domain.TemplateRenderer
	files    domain.FileStore
	config   domain.ConfigStore
	history  domain.GenerationHistory
	log      logger.Logger
	version  string
	now      func() time.Time
}

func NewInitService(
	provider domain.MetadataProvider,
	renderer domain.TemplateRenderer,
	files domain.FileStore,
	config domain.ConfigStore,
	history domain.GenerationHistory,
	log logger.Logger,
	version string,
) *InitService {
	if log == nil {
		log = logger.Nop()
	}
	return &InitService{
		provider: provider,
		renderer: renderer,
		files:    files,
		config:   config,
		history:  history,
		log:      log,
		version:  version,
		now:      time.Now,
	}
}

// WithClock replaces the time source used for createdAt and report timestamps.
func (s *InitService) WithClock(now func() time.Time) *InitService {
	s.now = now
	return s
}

// Initialize validates opts, renders the project skeleton and writes
// .archgen.yaml. The returned config is the one that was saved.
func (s *InitService) Initialize(ctx context.Context, projectPath string, opts domain.ProjectOptions, genOpts GenerateOptions) (domain.ProjectConfig, *domain.GenerationReport, error) {
	// 1. Validate
	if opts.CreatedAt.IsZero() {
		opts.CreatedAt = s.now().UTC().Truncate(time.Second)
	}
	if opts.GeneratorVersion == "" {
		opts.GeneratorVersion = s.version
	}
	cfg, err := domain.NewProjectConfig(opts)
	if err != nil {
		return domain.ProjectConfig{}, nil, err
	}
	md, err := s.provider.MetadataFor(cfg.Architecture)
	if err != nil {
		return domain.ProjectConfig{}, nil, err
	}

	exists, err := s.files.Exists(projectPath, ConfigFileName)
	if err != nil {
		return domain.ProjectConfig{}, nil, fmt.Errorf("checking %s: %w", ConfigFileName, err)
	}
	if exists && !genOpts.Force {
		return domain.ProjectConfig{}, nil, fmt.Errorf("%w: %s exists (use --force to overwrite)", ErrAlreadyInitialized, ConfigFileName)
	}

	report := &domain.GenerationReport{
		Project:      cfg.Name,
		Architecture: cfg.Architecture,
		Component:    "project " + cfg.Name,
		DryRun:       genOpts.DryRun,
		Timestamp:    s.now(),
	}

	// 2. Render base files
	data := map[string]any{
		"projectName":      cfg.Name,
		"basePackage":      cfg.BasePackage,
		"framework":        string(cfg.Framework),
		"paradigm":         string(cfg.Paradigm),
		"architecture":     string(cfg.Architecture),
		"modules":          md.Modules,
		"generatorVersion": cfg.GeneratorVersion,
		"applicationClass": ApplicationClassName(cfg.Name),
	}
	out := newOutput(projectPath, s.files, genOpts)
	base := []struct {
		tmpl, target string
		kind         domain.FileKind
	}{
		{"common/project/build.gradle.tmpl", "build.gradle", domain.FileKindBuild},
		{"common/project/settings.gradle.tmpl", "settings.gradle", domain.FileKindBuild},
		{"common/project/README.md.tmpl", "README.md", domain.FileKindConfig},
		{"common/project/gitignore.tmpl", ".gitignore", domain.FileKindConfig},
		{
			path.Join("frameworks", string(cfg.Framework), "project/Application.java.tmpl"),
			path.Join("src/main/java", domain.PackagePath(cfg.BasePackage), ApplicationClassName(cfg.Name)+".java"),
			domain.FileKindSource,
		},
	}
	for _, b := range base {
		content, err := s.renderer.Render(b.tmpl, data)
		if err != nil {
			return domain.ProjectConfig{}, nil, fmt.Errorf("rendering %s: %w", b.tmpl, err)
		}
		out.add(b.target, b.kind, content)
	}

	for _, m := range md.Modules {
		content, err := s.renderer.Render(tmplModuleBuild, map[string]any{"moduleName": m, "dependencies": []domain.Dependency(nil)})
		if err != nil {
			return domain.ProjectConfig{}, nil, fmt.Errorf("rendering module %s: %w", m, err)
		}
		out.add(path.Join(m, "build.gradle"), domain.FileKindBuild, content)
	}

	for _, pkg := range md.Packages {
		module, ok := packageModule(md, pkg)
		if !ok {
			continue
		}
		full := cfg.BasePackage + "." + pkg
		content, err := s.renderer.Render("common/project/package-info.java.tmpl", map[string]any{"packageName": full})
		if err != nil {
			return domain.ProjectConfig{}, nil, fmt.Errorf("rendering package %s: %w", full, err)
		}
		out.add(path.Join(module, "src/main/java", domain.PackagePath(full), "package-info.java"), domain.FileKindSource, content)
	}

	appConfig, err := s.renderer.Render("common/project/application.yml.tmpl", data)
	if err != nil {
		return domain.ProjectConfig{}, nil, fmt.Errorf("rendering application.yml: %w", err)
	}
	fragment, err := parseYAMLMap([]byte(appConfig))
	if err != nil {
		return domain.ProjectConfig{}, nil, fmt.Errorf("parsing application.yml template: %w", err)
	}

	// 3. Write
	if err := out.flush(ctx, report); err != nil {
		return domain.ProjectConfig{}, nil, err
	}
	if err := ctx.Err(); err != nil {
		return domain.ProjectConfig{}, nil, err
	}
	fm, err := mergeYAMLFile(s.files, projectPath, ApplicationConfigPath, fragment, genOpts.DryRun)
	if err != nil {
		return domain.ProjectConfig{}, nil, err
	}
	report.Merges = append(report.Merges, fm)

	// 4. Save config and history
	if genOpts.DryRun {
		return cfg, report, nil
	}
	if err := s.config.Save(projectPath, cfg); err != nil {
		return domain.ProjectConfig{}, nil, fmt.Errorf("saving %s: %w", ConfigFileName, err)
	}
	if s.history != nil {
		entry := domain.HistoryEntry{
			Timestamp:    report.Timestamp,
			Component:    report.Component,
			Architecture: cfg.Architecture,
			Files:        append(report.Paths(), ApplicationConfigPath, ConfigFileName),
			Version:      s.version,
		}
		if err := s.history.Save(projectPath, entry); err != nil {
			s.log.Warn("could not record generation history", "err", err)
		}
	}
	s.log.Info("initialized project", "name", cfg.Name, "architecture", cfg.Architecture, "files", len(report.Files))
	return cfg, report, nil
}

// ApplicationClassName returns the main class name for a project, e.g.
// payment-service → PaymentServiceApplication.
func ApplicationClassName(projectName string) string {
	return domain.SuggestClassName(projectName) + "Application"
}

// packageModule returns the build module of the path template that owns a
// relative layout package: the template whose package shares the most
// leading segments with pkg. {name} segments are dropped, so per-adapter
// templates map to their parent module. Packages no template owns land in the
// root project of single-module layouts and are skipped otherwise.
func packageModule(md domain.StructureMetadata, pkg string) (string, bool) {
	best, bestScore := "", 0
	for _, dir := range md.Directions() {
		tmpl := dropNameSegments(md.PathTemplates[dir])
		owner, ok := pathresolve.PackageFromPath(tmpl)
		if !ok {
			continue
		}
		owner = strings.TrimPrefix(strings.TrimPrefix(owner, "{basePackage}"), ".")
		if score := sharedSegments(owner, pkg); score > bestScore {
			best, bestScore = pathresolve.ModuleFromPath(tmpl), score
		}
	}
	if !md.IsMultiModule() {
		return "", true
	}
	if bestScore == 0 || !slices.Contains(md.Modules, best) {
		return "", false
	}
	return best, true
}

func dropNameSegments(tmpl string) string {
	segs := strings.Split(tmpl, "/")
	kept := segs[:0]
	for _, seg := range segs {
		if seg != domain.NamePlaceholder {
			kept = append(kept, seg)
		}
	}
	return strings.Join(kept, "/")
}

// sharedSegments counts the leading dotted segments a and b have in common.
func sharedSegments(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	n := 0
	for n < len(as) && n < len(bs) && as[n] == bs[n] && as[n] != "" {
		n++
	}
	return n
}
