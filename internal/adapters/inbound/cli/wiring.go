package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/archgen/archgen/internal/adapters/outbound/config"
	"github.com/archgen/archgen/internal/adapters/outbound/filesystem"
	"github.com/archgen/archgen/internal/adapters/outbound/gitinfo"
	"github.com/archgen/archgen/internal/adapters/outbound/history"
	"github.com/archgen/archgen/internal/adapters/outbound/structure"
	"github.com/archgen/archgen/internal/application"
	"github.com/archgen/archgen/internal/domain"
	"github.com/archgen/archgen/internal/logger"
)

// loadTemplates selects the template source for a project and logs local
// overrides.
func loadTemplates(projectPath, localPath string, log logger.Logger) (structure.Source, error) {
	src, err := structure.Load(projectPath, localPath)
	if err != nil {
		return structure.Source{}, err
	}
	if src.Dir != "" {
		log.Debug("using local templates", "dir", src.Dir, "architectures", src.Overridden)
	}
	return src, nil
}

// loadProject resolves path and reads its .archgen.yaml.
func loadProject(path string) (string, domain.ProjectConfig, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", domain.ProjectConfig{}, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.New().Load(absPath)
	if err != nil {
		return "", domain.ProjectConfig{}, err
	}
	return absPath, cfg, nil
}

// newGenerateService wires a GenerateService for the project and returns the
// config with its template directory made absolute.
func newGenerateService(cmd *cobra.Command, projectPath string, cfg domain.ProjectConfig) (*application.GenerateService, domain.ProjectConfig, error) {
	log := logger.FromContext(cmd.Context())
	src, err := loadTemplates(projectPath, cfg.Templates.LocalPath, log)
	if err != nil {
		return nil, cfg, err
	}
	if src.Dir != "" {
		cfg.Templates.LocalPath = src.Dir
	}
	svc := application.NewGenerateService(
		src.Provider,
		src.Renderer,
		filesystem.New(),
		history.New(),
		gitinfo.New(),
		log,
		version,
	)
	return svc, cfg, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
