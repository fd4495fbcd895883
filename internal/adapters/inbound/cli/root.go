package cli

import (
	"github.com/spf13/cobra"

	"github.com/archgen/archgen/internal/logger"
)

var (
	version = "0.3.0"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "archgen",
		Short: "Scaffold architecture-aware Java services",
		Long: "archgen generates Spring and Quarkus projects laid out as hexagonal, onion, clean or layered " +
			"architectures, and adds adapters, use cases and entities in the right place.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := logger.DefaultConfig()
			if logLevel != "" {
				cfg.Level = logger.ParseLevel(logLevel)
			}
			cfg.Output = cmd.ErrOrStderr()
			cmd.SetContext(logger.ContextWithLogger(cmd.Context(), logger.New(cfg)))
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to $"+logger.EnvLevel+" or warn")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newMergeCmd())
	cmd.AddCommand(newResolveCmd())
	cmd.AddCommand(newArchitecturesCmd())
	cmd.AddCommand(newValidateTemplatesCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
