package application

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/archgen/archgen/internal/domain"
	"github.com/archgen/archgen/internal/domain/pathresolve"
	"github.com/archgen/archgen/internal/logger"
)

// Adapter template files. Only Adapter.java is required; the others are
// rendered when the selected template directory provides them.
const (
	tmplAdapter      = "Adapter.java.tmpl"
	tmplMapper       = "Mapper.java.tmpl"
	tmplData         = "Data.java.tmpl"
	tmplAppConfig    = "application.yml.tmpl"
	tmplDependencies = "dependencies.yml.tmpl"
	tmplModuleBuild  = "common/module/build.gradle.tmpl"
	settingsFile     = "settings.gradle"
)

// GenerateService orchestrates component generation:
// resolve path → select templates → render → merge config → write → record history.
type GenerateService struct {
	provider domain.MetadataProvider
	resolver *pathresolve.Resolver
	renderer domain.TemplateRenderer
	files    domain.FileStore
	history  domain.GenerationHistory
	git      domain.GitInfo
	log      logger.Logger
	version  string
	now      func() time.Time
}

func NewGenerateService(
	provider domain.MetadataProvider,
	renderer domain.TemplateRenderer,
	files domain.FileStore,
	history domain.GenerationHistory,
	git domain.GitInfo,
	log logger.Logger,
	version string,
) *GenerateService {
	if log == nil {
		log = logger.Nop()
	}
	return &GenerateService{
		provider: provider,
		resolver: pathresolve.New(provider),
		renderer: renderer,
		files:    files,
		history:  history,
		git:      git,
		log:      log,
		version:  version,
		now:      time.Now,
	}
}

// WithClock replaces the time source used for report and history timestamps.
func (s *GenerateService) WithClock(now func() time.Time) *GenerateService {
	s.now = now
	return s
}

// DefaultPackage derives the Java package for a component from its resolved
// directory, for callers that do not supply one.
func (s *GenerateService) DefaultPackage(cfg domain.ProjectConfig, direction, name string) (string, error) {
	dir, err := s.resolver.ResolveAdapterPath(cfg.Architecture, direction, name, cfg.PathContext())
	if err != nil {
		return "", err
	}
	pkg, ok := pathresolve.PackageFromPath(dir)
	if !ok {
		return cfg.BasePackage, nil
	}
	return pkg, nil
}

// GenerateAdapter renders an adapter, its optional mapper and data classes,
// its build module when adapters are modules, and merges its configuration
// fragment into the project's application.yml.
func (s *GenerateService) GenerateAdapter(ctx context.Context, projectPath string, cfg domain.ProjectConfig, adapter domain.AdapterConfig, opts GenerateOptions) (*domain.GenerationReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 1. Metadata and target directory
	md, err := s.provider.MetadataFor(cfg.Architecture)
	if err != nil {
		return nil, err
	}
	direction := string(adapter.Direction)
	dir, err := s.resolver.ResolveAdapterPath(cfg.Architecture, direction, adapter.Name, cfg.PathContext())
	if err != nil {
		return nil, fmt.Errorf("resolving adapter path: %w", err)
	}
	moduleDir := pathresolve.ModuleFromPath(dir)
	perAdapterModule := strings.HasSuffix(moduleDir, "/"+domain.LowerName(adapter.Name))
	if cfg.AdaptersAsModules && moduleDir == "" {
		moduleDir = path.Join("adapters", direction, domain.KebabName(adapter.Name))
		dir = path.Join(moduleDir, dir)
		perAdapterModule = true
	}

	report := s.newReport(cfg, "adapter "+adapter.Name, opts)
	report.Warnings = append(report.Warnings, packageWarning(adapter.PackageName, dir)...)
	if cfg.AdaptersAsModules && !perAdapterModule {
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"adaptersAsModules ignored: %s places adapters in the shared module %s", cfg.Architecture, moduleDir))
	}

	// 2. Template data
	className := decorate(md, direction, adapter.Name)
	entityName := adapter.EntityName
	if entityName == "" {
		entityName = adapter.Name
	}
	data := map[string]any{
		"projectName":   cfg.Name,
		"basePackage":   cfg.BasePackage,
		"packageName":   adapter.PackageName,
		"className":     className,
		"name":          adapter.Name,
		"kind":          adapter.Kind,
		"direction":     direction,
		"framework":     string(cfg.Framework),
		"paradigm":      string(cfg.Paradigm),
		"entityName":    entityName,
		"entityPackage": s.packageFor(cfg, domain.DirectionModel, entityName),
		"dataName":      entityName + "Data",
		"mapperName":    adapter.Name + "Mapper",
		"methods":       adapter.Methods,
	}

	// 3. Render source files
	candidates := adapterTemplateDirs(cfg, adapter)
	out := newOutput(projectPath, s.files, opts)

	adapterTmpl, ok := s.first(candidates, tmplAdapter)
	if !ok {
		return nil, fmt.Errorf("no adapter template for %s/%s/%s %s", cfg.Framework, cfg.Paradigm, direction, adapter.Kind)
	}
	s.log.Debug("selected template", "template", adapterTmpl, "adapter", adapter.Name)
	if err := s.renderInto(out, adapterTmpl, path.Join(dir, className+".java"), domain.FileKindSource, data); err != nil {
		return nil, err
	}
	if t, ok := s.first(candidates, tmplMapper); ok {
		if err := s.renderInto(out, t, path.Join(dir, adapter.Name+"Mapper.java"), domain.FileKindSource, data); err != nil {
			return nil, err
		}
	}
	if t, ok := s.first(candidates, tmplData); ok {
		if err := s.renderInto(out, t, path.Join(dir, entityName+"Data.java"), domain.FileKindSource, data); err != nil {
			return nil, err
		}
	}

	// 4. Dependencies
	var deps []domain.Dependency
	if t, ok := s.first(candidates, tmplDependencies); ok {
		if deps, err = s.renderDependencies(t, data); err != nil {
			return nil, err
		}
		deps = domain.ApplyVersionOverrides(deps, cfg.DependencyOverrides)
		report.Dependencies = deps
		report.Warnings = append(report.Warnings, domain.DetectFrameworkConflicts(cfg.Framework, deps)...)
		report.Warnings = append(report.Warnings, domain.DetectVersionConflicts(s.recordedDependencies(projectPath), deps)...)
	}

	// 5. Per-adapter build module
	if perAdapterModule {
		build, err := s.renderer.Render(tmplModuleBuild, map[string]any{
			"moduleName":   moduleDir,
			"dependencies": deps,
		})
		if err != nil {
			return nil, fmt.Errorf("rendering module build file: %w", err)
		}
		out.add(path.Join(moduleDir, "build.gradle"), domain.FileKindBuild, build)
	} else if len(deps) > 0 {
		report.Warnings = append(report.Warnings, "add the reported dependencies to "+moduleBuildFile(dir))
	}

	// 6. Configuration fragment
	var fragment map[string]any
	if t, ok := s.first(candidates, tmplAppConfig); ok {
		rendered, err := s.renderer.Render(t, data)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", t, err)
		}
		if fragment, err = parseYAMLMap([]byte(rendered)); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", t, err)
		}
	}

	// 7. Write
	if err := out.flush(ctx, report); err != nil {
		return nil, err
	}
	if perAdapterModule && !opts.DryRun {
		if err := s.includeModule(projectPath, moduleDir, report); err != nil {
			return nil, err
		}
	}
	if len(fragment) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fm, err := mergeYAMLFile(s.files, projectPath, ApplicationConfigPath, fragment, opts.DryRun)
		if err != nil {
			return nil, err
		}
		report.Merges = append(report.Merges, fm)
		for _, c := range fm.Conflicts {
			s.log.Warn("configuration value kept", "path", c.Path, "existing", c.Existing, "generated", c.Generated)
		}
	}

	return s.finish(projectPath, cfg, report)
}

// GenerateUseCase renders an application use case class.
func (s *GenerateService) GenerateUseCase(ctx context.Context, projectPath string, cfg domain.ProjectConfig, uc domain.UseCaseConfig, opts GenerateOptions) (*domain.GenerationReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	md, err := s.provider.MetadataFor(cfg.Architecture)
	if err != nil {
		return nil, err
	}
	dir, err := s.resolver.ResolveAdapterPath(cfg.Architecture, domain.DirectionUseCase, uc.Name, cfg.PathContext())
	if err != nil {
		return nil, fmt.Errorf("resolving use case path: %w", err)
	}

	report := s.newReport(cfg, "usecase "+uc.Name, opts)
	report.Warnings = append(report.Warnings, packageWarning(uc.PackageName, dir)...)

	name, found := s.firstOf(
		path.Join("frameworks", string(cfg.Framework), string(cfg.Paradigm), "usecase/UseCase.java.tmpl"),
		"common/usecase/UseCase.java.tmpl",
	)
	if !found {
		return nil, fmt.Errorf("no use case template for %s/%s", cfg.Framework, cfg.Paradigm)
	}

	className := decorate(md, domain.DirectionUseCase, uc.Name)
	out := newOutput(projectPath, s.files, opts)
	if err := s.renderInto(out, name, path.Join(dir, className+".java"), domain.FileKindSource, map[string]any{
		"projectName": cfg.Name,
		"basePackage": cfg.BasePackage,
		"packageName": uc.PackageName,
		"className":   className,
		"name":        uc.Name,
		"methods":     uc.Methods,
		"paradigm":    string(cfg.Paradigm),
	}); err != nil {
		return nil, err
	}
	if err := out.flush(ctx, report); err != nil {
		return nil, err
	}
	return s.finish(projectPath, cfg, report)
}

// GenerateEntity renders a domain entity and, when withPort is set, the
// outbound port that persists it.
func (s *GenerateService) GenerateEntity(ctx context.Context, projectPath string, cfg domain.ProjectConfig, entity domain.EntityConfig, withPort bool, opts GenerateOptions) (*domain.GenerationReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	md, err := s.provider.MetadataFor(cfg.Architecture)
	if err != nil {
		return nil, err
	}
	dir, err := s.resolver.ResolveAdapterPath(cfg.Architecture, domain.DirectionModel, entity.Name, cfg.PathContext())
	if err != nil {
		return nil, fmt.Errorf("resolving model path: %w", err)
	}

	report := s.newReport(cfg, "entity "+entity.Name, opts)
	report.Warnings = append(report.Warnings, packageWarning(entity.PackageName, dir)...)

	out := newOutput(projectPath, s.files, opts)
	if err := s.renderInto(out, "common/model/Entity.java.tmpl", path.Join(dir, entity.Name+".java"), domain.FileKindSource, map[string]any{
		"packageName": entity.PackageName,
		"className":   entity.Name,
		"fields":      entity.Fields,
		"hasId":       entity.HasID,
	}); err != nil {
		return nil, err
	}

	if withPort {
		portDir, err := s.resolver.ResolveAdapterPath(cfg.Architecture, domain.DirectionPort, entity.Name, cfg.PathContext())
		if err != nil {
			return nil, fmt.Errorf("resolving port path: %w", err)
		}
		portPkg, ok := pathresolve.PackageFromPath(portDir)
		if !ok {
			portPkg = entity.PackageName
		}
		portName := decorate(md, domain.DirectionPort, entity.Name)
		if err := s.renderInto(out, "common/port/Port.java.tmpl", path.Join(portDir, portName+".java"), domain.FileKindSource, map[string]any{
			"packageName":   portPkg,
			"className":     portName,
			"entityName":    entity.Name,
			"entityPackage": entity.PackageName,
			"paradigm":      string(cfg.Paradigm),
		}); err != nil {
			return nil, err
		}
	}

	if err := out.flush(ctx, report); err != nil {
		return nil, err
	}
	return s.finish(projectPath, cfg, report)
}

func (s *GenerateService) newReport(cfg domain.ProjectConfig, component string, opts GenerateOptions) *domain.GenerationReport {
	return &domain.GenerationReport{
		Project:      cfg.Name,
		Architecture: cfg.Architecture,
		Component:    component,
		DryRun:       opts.DryRun,
		Timestamp:    s.now(),
	}
}

// finish adds provenance and safety warnings and records history.
func (s *GenerateService) finish(projectPath string, cfg domain.ProjectConfig, report *domain.GenerationReport) (*domain.GenerationReport, error) {
	report.Warnings = append(report.Warnings, versionWarning(cfg.GeneratorVersion, s.version)...)

	if s.git != nil {
		if local := cfg.Templates.LocalPath; local != "" && s.git.IsGitRepo(local) {
			if hash, err := s.git.CommitHash(local); err == nil {
				report.TemplateCommit = hash
			} else {
				s.log.Debug("template commit unavailable", "dir", local, "err", err)
			}
		}
		if s.git.IsGitRepo(projectPath) {
			if clean, err := s.git.IsClean(projectPath); err == nil && !clean {
				report.Warnings = append(report.Warnings, "working tree has uncommitted changes")
			}
		}
	}

	if report.DryRun || s.history == nil || len(report.Files)+len(report.Merges) == 0 {
		return report, nil
	}
	paths := report.Paths()
	for _, m := range report.Merges {
		paths = append(paths, m.Path)
	}
	entry := domain.HistoryEntry{
		Timestamp:    report.Timestamp,
		Component:    report.Component,
		Architecture: report.Architecture,
		Files:        paths,
		Dependencies: report.Dependencies,
		Version:      s.version,
	}
	if err := s.history.Save(projectPath, entry); err != nil {
		s.log.Warn("could not record generation history", "err", err)
		report.Warnings = append(report.Warnings, "generation history not recorded: "+err.Error())
	}
	s.log.Info("generated", "component", report.Component, "files", len(report.Files), "skipped", len(report.Skipped))
	return report, nil
}

func (s *GenerateService) renderInto(out *output, tmpl, target string, kind domain.FileKind, data map[string]any) error {
	content, err := s.renderer.Render(tmpl, data)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", tmpl, err)
	}
	out.add(target, kind, content)
	return nil
}

func (s *GenerateService) renderDependencies(tmpl string, data map[string]any) ([]domain.Dependency, error) {
	rendered, err := s.renderer.Render(tmpl, data)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", tmpl, err)
	}
	var deps []domain.Dependency
	if err := yaml.Unmarshal([]byte(rendered), &deps); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", tmpl, err)
	}
	for i, d := range deps {
		if d.Group == "" || d.Artifact == "" {
			return nil, fmt.Errorf("%s: dependency %d needs group and artifact", tmpl, i)
		}
	}
	return deps, nil
}

// recordedDependencies returns the dependencies earlier runs contributed.
func (s *GenerateService) recordedDependencies(projectPath string) []domain.Dependency {
	if s.history == nil {
		return nil
	}
	entries, err := s.history.Load(projectPath)
	if err != nil {
		s.log.Debug("generation history unavailable", "err", err)
		return nil
	}
	var deps []domain.Dependency
	for _, e := range entries {
		deps = append(deps, e.Dependencies...)
	}
	return deps
}

// includeModule appends an include line for moduleDir to settings.gradle
// when the root project has one and does not list the module yet.
func (s *GenerateService) includeModule(projectPath, moduleDir string, report *domain.GenerationReport) error {
	exists, err := s.files.Exists(projectPath, settingsFile)
	if err != nil || !exists {
		return err
	}
	data, err := s.files.Read(projectPath, settingsFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", settingsFile, err)
	}
	line := "include '" + strings.ReplaceAll(moduleDir, "/", ":") + "'"
	if strings.Contains(string(data), line) {
		return nil
	}
	content := strings.TrimRight(string(data), "\n") + "\n" + line + "\n"
	if err := s.files.Write(projectPath, settingsFile, []byte(content)); err != nil {
		return fmt.Errorf("writing %s: %w", settingsFile, err)
	}
	report.Files = append(report.Files, domain.GeneratedFile{Path: settingsFile, Content: content, Kind: domain.FileKindBuild})
	return nil
}

func (s *GenerateService) packageFor(cfg domain.ProjectConfig, direction, name string) string {
	pkg, err := s.DefaultPackage(cfg, direction, name)
	if err != nil {
		return cfg.BasePackage
	}
	return pkg
}

func (s *GenerateService) first(dirs []string, file string) (string, bool) {
	candidates := make([]string, len(dirs))
	for i, d := range dirs {
		candidates[i] = path.Join(d, file)
	}
	return s.firstOf(candidates...)
}

func (s *GenerateService) firstOf(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if s.renderer.Exists(c) {
			return c, true
		}
	}
	return "", false
}

// adapterTemplateDirs lists template directories from most to least specific.
func adapterTemplateDirs(cfg domain.ProjectConfig, adapter domain.AdapterConfig) []string {
	fw := path.Join("frameworks", string(cfg.Framework), string(cfg.Paradigm), "adapters", string(adapter.Direction))
	common := path.Join("common", "adapters", string(adapter.Direction))
	dirs := []string{path.Join(fw, adapter.Kind)}
	if adapter.Kind != "generic" {
		dirs = append(dirs, path.Join(fw, "generic"), path.Join(common, adapter.Kind))
	}
	return append(dirs, path.Join(common, "generic"))
}

// decorate applies naming conventions unless name already carries the suffix.
func decorate(md domain.StructureMetadata, componentType, name string) string {
	if md.NamingConventions == nil {
		return name
	}
	suffix := md.NamingConventions.Suffixes[componentType]
	prefix := md.NamingConventions.Prefixes[componentType]
	if suffix != "" && strings.HasSuffix(name, suffix) {
		suffix = ""
	}
	if prefix != "" && strings.HasPrefix(name, prefix) {
		prefix = ""
	}
	return prefix + name + suffix
}

func packageWarning(pkg, dir string) []string {
	if pkg == "" {
		return nil
	}
	if derived, ok := pathresolve.PackageFromPath(dir); ok && derived != pkg {
		return []string{fmt.Sprintf("package %s does not match directory %s (expected %s)", pkg, dir, derived)}
	}
	return nil
}

func versionWarning(recorded, running string) []string {
	want, err := semver.NewVersion(recorded)
	if err != nil {
		return nil
	}
	have, err := semver.NewVersion(running)
	if err != nil {
		return nil
	}
	if want.GreaterThan(have) {
		return []string{fmt.Sprintf("project was generated with archgen %s, newer than running %s", want, have)}
	}
	return nil
}

func moduleBuildFile(dir string) string {
	if m := pathresolve.ModuleFromPath(dir); m != "" {
		return path.Join(m, "build.gradle")
	}
	return "build.gradle"
}
