package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archgen/archgen/internal/adapters/outbound/tui"
	"github.com/archgen/archgen/internal/application"
	"github.com/archgen/archgen/internal/domain"
)

// generateFlags are shared by every generate subcommand.
type generateFlags struct {
	path       string
	pkg        string
	methods    []string
	force      bool
	dryRun     bool
	jsonOutput bool
}

func (f *generateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "path", ".", "Project root containing .archgen.yaml")
	cmd.Flags().StringVar(&f.pkg, "package", "", "Java package (derived from the resolved directory when empty)")
	cmd.Flags().BoolVar(&f.force, "force", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Show what would be generated without writing")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "Output report as JSON")
}

func (f *generateFlags) registerMethods(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.methods, "method", nil, `Method signature, e.g. "Mono<User> findById(String id)" (repeatable)`)
}

func (f *generateFlags) options() application.GenerateOptions {
	return application.GenerateOptions{Force: f.force, DryRun: f.dryRun}
}

func (f *generateFlags) report(cmd *cobra.Command, r *domain.GenerationReport) error {
	if f.jsonOutput {
		return writeJSON(cmd, r)
	}
	fmt.Fprint(cmd.OutOrStdout(), tui.RenderGenerationReport(r))
	return nil
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"g"},
		Short:   "Generate adapters, use cases and entities",
	}
	cmd.AddCommand(newGenerateAdapterCmd())
	cmd.AddCommand(newGenerateUseCaseCmd())
	cmd.AddCommand(newGenerateEntityCmd())
	return cmd
}

func newGenerateAdapterCmd() *cobra.Command {
	var (
		flags     generateFlags
		direction string
		kind      string
		entity    string
	)

	cmd := &cobra.Command{
		Use:   "adapter <Name>",
		Short: "Generate a driven or driving adapter",
		Long:  "Resolve the adapter's directory from the project's architecture, render its classes and merge its configuration into application.yml.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectPath, cfg, err := loadProject(flags.path)
			if err != nil {
				return err
			}
			svc, cfg, err := newGenerateService(cmd, projectPath, cfg)
			if err != nil {
				return err
			}

			dir, err := domain.ParseAdapterDirection(direction)
			if err != nil {
				return err
			}
			methods, err := domain.ParseMethodSignatures(flags.methods)
			if err != nil {
				return err
			}
			pkg := flags.pkg
			if pkg == "" {
				if pkg, err = svc.DefaultPackage(cfg, string(dir), args[0]); err != nil {
					return err
				}
			}
			adapter, err := domain.NewAdapterConfig(args[0], pkg, dir, kind, entity, methods)
			if err != nil {
				return err
			}

			report, err := svc.GenerateAdapter(cmd.Context(), projectPath, cfg, adapter, flags.options())
			if err != nil {
				return err
			}
			return flags.report(cmd, report)
		},
	}

	flags.register(cmd)
	flags.registerMethods(cmd)
	cmd.Flags().StringVarP(&direction, "direction", "d", string(domain.Driven), "Adapter direction (driven, driving)")
	cmd.Flags().StringVarP(&kind, "kind", "k", "generic", "Adapter kind selecting templates, e.g. redis, mongodb, postgresql, rest")
	cmd.Flags().StringVar(&entity, "entity", "", "Domain entity the adapter handles (defaults to the adapter name)")

	return cmd
}

func newGenerateUseCaseCmd() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "usecase <Name>",
		Short: "Generate an application use case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectPath, cfg, err := loadProject(flags.path)
			if err != nil {
				return err
			}
			svc, cfg, err := newGenerateService(cmd, projectPath, cfg)
			if err != nil {
				return err
			}

			methods, err := domain.ParseMethodSignatures(flags.methods)
			if err != nil {
				return err
			}
			pkg := flags.pkg
			if pkg == "" {
				if pkg, err = svc.DefaultPackage(cfg, domain.DirectionUseCase, args[0]); err != nil {
					return err
				}
			}
			uc, err := domain.NewUseCaseConfig(args[0], pkg, methods)
			if err != nil {
				return err
			}

			report, err := svc.GenerateUseCase(cmd.Context(), projectPath, cfg, uc, flags.options())
			if err != nil {
				return err
			}
			return flags.report(cmd, report)
		},
	}

	flags.register(cmd)
	flags.registerMethods(cmd)
	return cmd
}

func newGenerateEntityCmd() *cobra.Command {
	var (
		flags    generateFlags
		fields   []string
		hasID    bool
		withPort bool
	)

	cmd := &cobra.Command{
		Use:   "entity <Name>",
		Short: "Generate a domain entity and optionally its port",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectPath, cfg, err := loadProject(flags.path)
			if err != nil {
				return err
			}
			svc, cfg, err := newGenerateService(cmd, projectPath, cfg)
			if err != nil {
				return err
			}

			parsed, err := parseFields(fields)
			if err != nil {
				return err
			}
			pkg := flags.pkg
			if pkg == "" {
				if pkg, err = svc.DefaultPackage(cfg, domain.DirectionModel, args[0]); err != nil {
					return err
				}
			}
			entity, err := domain.NewEntityConfig(args[0], pkg, parsed, hasID)
			if err != nil {
				return err
			}

			report, err := svc.GenerateEntity(cmd.Context(), projectPath, cfg, entity, withPort, flags.options())
			if err != nil {
				return err
			}
			return flags.report(cmd, report)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringArrayVar(&fields, "field", nil, "Field as name:Type (repeatable)")
	cmd.Flags().BoolVar(&hasID, "id", true, "Add a String id field")
	cmd.Flags().BoolVar(&withPort, "port", false, "Also generate the outbound port for the entity")

	return cmd
}

func parseFields(raw []string) ([]domain.EntityField, error) {
	fields := make([]domain.EntityField, 0, len(raw))
	for _, r := range raw {
		f, err := domain.ParseField(r)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}
