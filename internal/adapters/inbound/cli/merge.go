package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/archgen/archgen/internal/adapters/outbound/filesystem"
	"github.com/archgen/archgen/internal/adapters/outbound/tui"
	"github.com/archgen/archgen/internal/application"
	"github.com/archgen/archgen/internal/logger"
)

func newMergeCmd() *cobra.Command {
	var (
		projectPath string
		dryRun      bool
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "merge <target.yml> <overlay.yml|->",
		Short: "Merge a YAML fragment into a project configuration file",
		Long:  "Merge the overlay into the target, keeping every value the target already defines. Values the overlay could not apply are reported as conflicts.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(projectPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			var overlay []byte
			if args[1] == "-" {
				overlay, err = io.ReadAll(cmd.InOrStdin())
			} else {
				overlay, err = os.ReadFile(args[1])
			}
			if err != nil {
				return fmt.Errorf("reading overlay: %w", err)
			}

			svc := application.NewMergeService(filesystem.New(), logger.FromContext(cmd.Context()))
			fm, err := svc.MergeFile(cmd.Context(), absPath, args[0], overlay, dryRun)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, fm)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFileMerge(fm))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project root the target is relative to")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report the merge without writing")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output result as JSON")

	return cmd
}
