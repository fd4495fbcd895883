package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/archgen/archgen/internal/domain"
)

// FileName is the project configuration file written by init.
const FileName = ".archgen.yaml"

// ErrConfigNotFound is returned by Load when the project has no .archgen.yaml.
var ErrConfigNotFound = errors.New(FileName + " not found; run 'archgen init' first")

// YAMLLoader implements domain.ConfigStore by reading and writing .archgen.yaml.
type YAMLLoader struct {
	fs afero.Fs
}

// New creates a YAMLLoader on the OS filesystem.
func New() *YAMLLoader { return NewWithFs(afero.NewOsFs()) }

func NewWithFs(fs afero.Fs) *YAMLLoader { return &YAMLLoader{fs: fs} }

// fileLayout is the on-disk shape of .archgen.yaml.
type fileLayout struct {
	Project struct {
		Name             string    `yaml:"name"`
		BasePackage      string    `yaml:"basePackage"`
		GeneratorVersion string    `yaml:"generatorVersion,omitempty"`
		CreatedAt        time.Time `yaml:"createdAt,omitempty"`
	} `yaml:"project"`
	Architecture struct {
		Type              string `yaml:"type"`
		Framework         string `yaml:"framework,omitempty"`
		Paradigm          string `yaml:"paradigm,omitempty"`
		AdaptersAsModules bool   `yaml:"adaptersAsModules"`
	} `yaml:"architecture"`
	Templates struct {
		LocalPath string `yaml:"localPath,omitempty"`
	} `yaml:"templates,omitempty"`
	DependencyOverrides map[string]string `yaml:"dependencyOverrides,omitempty"`
}

// Load reads .archgen.yaml from projectPath and validates it.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := afero.ReadFile(l.fs, filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ProjectConfig{}, ErrConfigNotFound
		}
		return domain.ProjectConfig{}, err
	}

	var raw fileLayout
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	cfg, err := domain.NewProjectConfig(domain.ProjectOptions{
		Name:                raw.Project.Name,
		BasePackage:         raw.Project.BasePackage,
		Architecture:        raw.Architecture.Type,
		Framework:           raw.Architecture.Framework,
		Paradigm:            raw.Architecture.Paradigm,
		GeneratorVersion:    raw.Project.GeneratorVersion,
		CreatedAt:           raw.Project.CreatedAt,
		AdaptersAsModules:   raw.Architecture.AdaptersAsModules,
		DependencyOverrides: raw.DependencyOverrides,
		TemplatesLocalPath:  raw.Templates.LocalPath,
	})
	if err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}

// Save writes cfg to projectPath/.archgen.yaml, replacing any existing file.
func (l *YAMLLoader) Save(projectPath string, cfg domain.ProjectConfig) error {
	var raw fileLayout
	raw.Project.Name = cfg.Name
	raw.Project.BasePackage = cfg.BasePackage
	raw.Project.GeneratorVersion = cfg.GeneratorVersion
	raw.Project.CreatedAt = cfg.CreatedAt
	raw.Architecture.Type = string(cfg.Architecture)
	raw.Architecture.Framework = string(cfg.Framework)
	raw.Architecture.Paradigm = string(cfg.Paradigm)
	raw.Architecture.AdaptersAsModules = cfg.AdaptersAsModules
	raw.Templates.LocalPath = cfg.Templates.LocalPath
	raw.DependencyOverrides = cfg.DependencyOverrides

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("encoding %s: %w", FileName, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding %s: %w", FileName, err)
	}

	if err := l.fs.MkdirAll(projectPath, 0o755); err != nil {
		return err
	}
	return afero.WriteFile(l.fs, filepath.Join(projectPath, FileName), buf.Bytes(), 0o644)
}
