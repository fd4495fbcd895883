package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archgen/archgen/internal/adapters/outbound/gitinfo"
	"github.com/archgen/archgen/internal/adapters/outbound/render"
	"github.com/archgen/archgen/internal/adapters/outbound/structure"
	"github.com/archgen/archgen/internal/adapters/outbound/tui"
	"github.com/archgen/archgen/internal/application"
	"github.com/archgen/archgen/internal/logger"
)

func newValidateTemplatesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "validate-templates <dir>",
		Short: "Check a local template directory",
		Long:  "Parse every architectures/<type>/structure.yml and every template in the directory. Architectures the directory does not define fall back to built-in metadata.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := render.Dir(args[0])
			if err != nil {
				return err
			}

			svc := application.NewValidateTemplatesService(gitinfo.New(), logger.FromContext(cmd.Context()))
			v, err := svc.Validate(cmd.Context(), args[0], structure.New(r.FS()), r)
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := writeJSON(cmd, v); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderTemplateValidation(v))
			}
			if !v.Valid() {
				return fmt.Errorf("template directory %s has %d errors", args[0], len(v.Errors))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output result as JSON")

	return cmd
}
