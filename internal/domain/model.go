package domain

import (
	"fmt"
	"strings"
	"time"
)

// FileKind classifies a generated file.
type FileKind string

const (
	FileKindSource FileKind = "source"
	FileKindConfig FileKind = "config"
	FileKindBuild  FileKind = "build"
)

// GeneratedFile is a rendered file addressed by a slash-separated path
// relative to the project root.
type GeneratedFile struct {
	Path    string   `json:"path"`
	Content string   `json:"-"`
	Kind    FileKind `json:"kind"`
}

// Conflict records a generated value that was not applied because the
// existing configuration already held a different one.
type Conflict struct {
	Path      string `json:"path"`
	Existing  any    `json:"existing"`
	Generated any    `json:"generated"`
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s: keeping %v (generated %v)", c.Path, c.Existing, c.Generated)
}

// MergeResult is the outcome of a reported configuration merge.
type MergeResult struct {
	Merged    map[string]any `json:"merged"`
	Conflicts []Conflict     `json:"conflicts,omitempty"`
	AddedKeys []string       `json:"added_keys,omitempty"`
}

func (r MergeResult) HasConflicts() bool { return len(r.Conflicts) > 0 }

// FileMerge pairs a merged configuration file with its merge outcome.
type FileMerge struct {
	Path      string     `json:"path"`
	Conflicts []Conflict `json:"conflicts,omitempty"`
	AddedKeys []string   `json:"added_keys,omitempty"`
	Created   bool       `json:"created"`
}

// GenerationReport summarises one generation run.
type GenerationReport struct {
	Project        string           `json:"project"`
	Architecture   ArchitectureType `json:"architecture"`
	Component      string           `json:"component"`
	Files          []GeneratedFile  `json:"files"`
	Skipped        []string         `json:"skipped,omitempty"`
	Merges         []FileMerge      `json:"merges,omitempty"`
	TemplateCommit string           `json:"template_commit,omitempty"`
	Dependencies   []Dependency     `json:"dependencies,omitempty"`
	Warnings       []string         `json:"warnings,omitempty"`
	DryRun         bool             `json:"dry_run"`
	Timestamp      time.Time        `json:"timestamp"`
}

// Paths returns the relative paths of all generated files.
func (r GenerationReport) Paths() []string {
	out := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		out = append(out, f.Path)
	}
	return out
}

// HistoryEntry is one persisted line of generation history.
type HistoryEntry struct {
	Timestamp    time.Time        `json:"timestamp"`
	Component    string           `json:"component"`
	Architecture ArchitectureType `json:"architecture"`
	Files        []string         `json:"files"`
	Dependencies []Dependency     `json:"dependencies,omitempty"`
	Version      string           `json:"version"`
}

// Dependency is a build artifact coordinate contributed by an adapter.
type Dependency struct {
	Group    string `yaml:"group"    json:"group"`
	Artifact string `yaml:"artifact" json:"artifact"`
	Version  string `yaml:"version"  json:"version,omitempty"`
	Scope    string `yaml:"scope"    json:"scope,omitempty"`
}

// Coordinate returns group:artifact.
func (d Dependency) Coordinate() string { return d.Group + ":" + d.Artifact }

func (d Dependency) String() string {
	if d.Version == "" {
		return d.Coordinate()
	}
	return d.Coordinate() + ":" + d.Version
}

// ApplyVersionOverrides replaces versions for coordinates present in overrides.
func ApplyVersionOverrides(deps []Dependency, overrides map[string]string) []Dependency {
	out := make([]Dependency, 0, len(deps))
	for _, d := range deps {
		if v, ok := overrides[d.Coordinate()]; ok && v != "" {
			d.Version = v
		}
		out = append(out, d)
	}
	return out
}

// DetectVersionConflicts lists coordinates declared in both slices with different versions.
func DetectVersionConflicts(existing, incoming []Dependency) []string {
	versions := make(map[string]string, len(existing))
	for _, d := range existing {
		versions[d.Coordinate()] = d.Version
	}
	var conflicts []string
	for _, d := range incoming {
		if v, ok := versions[d.Coordinate()]; ok && v != d.Version {
			conflicts = append(conflicts, fmt.Sprintf("version conflict for %s: existing %s, new %s", d.Coordinate(), v, d.Version))
		}
	}
	return conflicts
}

// frameworkIncompatibleGroups lists dependency groups known to clash with a framework.
var frameworkIncompatibleGroups = map[Framework][]string{
	FrameworkSpring:  {"javax.enterprise", "io.quarkus"},
	FrameworkQuarkus: {"org.springframework", "org.springframework.boot"},
}

// DetectFrameworkConflicts warns about dependencies whose group clashes with the framework.
func DetectFrameworkConflicts(fw Framework, deps []Dependency) []string {
	var conflicts []string
	for _, d := range deps {
		for _, g := range frameworkIncompatibleGroups[fw] {
			if d.Group == g || strings.HasPrefix(d.Group, g+".") {
				conflicts = append(conflicts, fmt.Sprintf("framework conflict: %s may be incompatible with %s", d.Coordinate(), fw))
				break
			}
		}
	}
	return conflicts
}

// TemplateValidation is the outcome of checking a local template directory.
type TemplateValidation struct {
	Dir       string             `json:"dir"`
	Commit    string             `json:"commit,omitempty"`
	Loaded    []ArchitectureType `json:"loaded"`
	Missing   []ArchitectureType `json:"missing,omitempty"`
	Templates []string           `json:"templates"`
	Errors    []string           `json:"errors,omitempty"`
}

// Valid reports whether no errors were found. Missing architectures fall
// back to built-in metadata and are not errors.
func (v TemplateValidation) Valid() bool { return len(v.Errors) == 0 }
