package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archgen/archgen/internal/adapters/outbound/tui"
	"github.com/archgen/archgen/internal/domain"
	"github.com/archgen/archgen/internal/logger"
)

func newArchitecturesCmd() *cobra.Command {
	var (
		templates  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "architectures",
		Aliases: []string{"archs"},
		Short:   "List supported architectures and their layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadTemplates(".", templates, logger.FromContext(cmd.Context()))
			if err != nil {
				return err
			}
			records := make([]domain.StructureMetadata, 0, len(domain.ValidArchitectures))
			for _, a := range src.Provider.Architectures() {
				md, err := src.Provider.MetadataFor(a)
				if err != nil {
					return err
				}
				records = append(records, md)
			}

			if jsonOutput {
				return writeJSON(cmd, records)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderArchitectures(records))
			return nil
		},
	}

	cmd.Flags().StringVar(&templates, "templates", "", "Local template directory overriding built-in metadata")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output metadata as JSON")

	return cmd
}
