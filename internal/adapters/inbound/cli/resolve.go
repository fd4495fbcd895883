package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/archgen/archgen/internal/adapters/outbound/config"
	"github.com/archgen/archgen/internal/domain"
	"github.com/archgen/archgen/internal/domain/pathresolve"
	"github.com/archgen/archgen/internal/logger"
)

func newResolveCmd() *cobra.Command {
	var (
		projectPath string
		arch        string
		basePackage string
		direction   string
		templates   string
		values      map[string]string
		check       bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <Name>",
		Short: "Print the directory a component would be generated in",
		Long:  "Resolve a component path from structure metadata. Architecture and base package default to the project's .archgen.yaml when present.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(projectPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg, err := config.New().Load(absPath)
			switch {
			case errors.Is(err, config.ErrConfigNotFound):
			case err != nil:
				return err
			default:
				if arch == "" {
					arch = string(cfg.Architecture)
				}
				if basePackage == "" {
					basePackage = cfg.BasePackage
				}
				if templates == "" {
					templates = cfg.Templates.LocalPath
				}
			}
			if arch == "" {
				return fmt.Errorf("no architecture: pass --arch or run inside an initialized project")
			}
			at, err := domain.ParseArchitectureType(arch)
			if err != nil {
				return err
			}

			src, err := loadTemplates(absPath, templates, logger.FromContext(cmd.Context()))
			if err != nil {
				return err
			}
			ctx := map[string]string{"basePackage": basePackage}
			for k, v := range values {
				ctx[k] = v
			}

			resolver := pathresolve.New(src.Provider)
			p, err := resolver.ResolveAdapterPath(at, direction, args[0], ctx)
			if err != nil {
				return err
			}
			if check {
				if err := resolver.ValidatePath(p, at); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project root")
	cmd.Flags().StringVar(&arch, "arch", "", "Architecture type")
	cmd.Flags().StringVar(&basePackage, "package", "", "Base Java package")
	cmd.Flags().StringVarP(&direction, "direction", "d", string(domain.Driven), "Component direction (driven, driving, usecase, model, port)")
	cmd.Flags().StringVar(&templates, "templates", "", "Local template directory with structure metadata")
	cmd.Flags().StringToStringVar(&values, "set", nil, "Extra placeholder value, key=value (repeatable)")
	cmd.Flags().BoolVar(&check, "check", false, "Also check the path against the layer rules")

	return cmd
}
