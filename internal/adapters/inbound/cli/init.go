package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/archgen/archgen/internal/adapters/outbound/config"
	"github.com/archgen/archgen/internal/adapters/outbound/filesystem"
	"github.com/archgen/archgen/internal/adapters/outbound/history"
	"github.com/archgen/archgen/internal/adapters/outbound/tui"
	"github.com/archgen/archgen/internal/application"
	"github.com/archgen/archgen/internal/domain"
	"github.com/archgen/archgen/internal/logger"
)

func newInitCmd() *cobra.Command {
	var (
		opts       domain.ProjectOptions
		overrides  map[string]string
		force      bool
		dryRun     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create a new project and its .archgen.yaml",
		Long:  "Render the project skeleton (build files, main class, application.yml, package layout) for the chosen architecture and record the settings in .archgen.yaml.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			if opts.Name == "" {
				opts.Name = domain.SuggestProjectName(filepath.Base(absPath))
			}
			opts.DependencyOverrides = overrides

			log := logger.FromContext(cmd.Context())
			src, err := loadTemplates(absPath, opts.TemplatesLocalPath, log)
			if err != nil {
				return err
			}

			svc := application.NewInitService(
				src.Provider,
				src.Renderer,
				filesystem.New(),
				config.New(),
				history.New(),
				log,
				version,
			)
			_, report, err := svc.Initialize(cmd.Context(), absPath, opts, application.GenerateOptions{Force: force, DryRun: dryRun})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, report)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderGenerationReport(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Project name in kebab-case (defaults to the directory name)")
	cmd.Flags().StringVar(&opts.BasePackage, "package", "", "Base Java package, e.g. com.company.orders")
	cmd.Flags().StringVar(&opts.Architecture, "arch", string(domain.ArchHexagonalSingle), "Architecture type")
	cmd.Flags().StringVar(&opts.Framework, "framework", string(domain.FrameworkSpring), "Framework (spring, quarkus)")
	cmd.Flags().StringVar(&opts.Paradigm, "paradigm", string(domain.ParadigmReactive), "Paradigm (reactive, imperative)")
	cmd.Flags().BoolVar(&opts.AdaptersAsModules, "adapters-as-modules", false, "Generate every adapter as its own build module")
	cmd.Flags().StringVar(&opts.TemplatesLocalPath, "templates", "", "Local template directory replacing the embedded pack")
	cmd.Flags().StringToStringVar(&overrides, "override", nil, "Dependency version override, group:artifact=version")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing project")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be generated without writing")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")
	_ = cmd.MarkFlagRequired("package")

	return cmd
}
