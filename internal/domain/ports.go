package domain

// MetadataProvider returns the structure metadata for an architecture.
type MetadataProvider interface {
	MetadataFor(arch ArchitectureType) (StructureMetadata, error)
}

// TemplateRenderer turns a named template plus data into file content.
type TemplateRenderer interface {
	Render(name string, data map[string]any) (string, error)
	Exists(name string) bool
}

// FileStore reads and writes files addressed by a project root plus a
// slash-separated path relative to it.
type FileStore interface {
	Exists(projectPath, relPath string) (bool, error)
	Read(projectPath, relPath string) ([]byte, error)
	Write(projectPath, relPath string, content []byte) error
}

// ConfigStore loads and saves the project's .archgen.yaml.
type ConfigStore interface {
	Load(projectPath string) (ProjectConfig, error)
	Save(projectPath string, cfg ProjectConfig) error
}

// GitInfo provides repository facts for provenance and safety warnings.
type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
	IsClean(path string) (bool, error)
}

// GenerationHistory persists a log of generation runs.
type GenerationHistory interface {
	Save(projectPath string, entry HistoryEntry) error
	Load(projectPath string) ([]HistoryEntry, error)
}
