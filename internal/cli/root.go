package cli

import "github.com/spf13/cobra"

// NewRootCmd builds the sitebuilder root command tree.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sitebuilder",
		Short:         "Build small business websites from a structured draft",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().String("config", "", "Path to config file (default ~/.sitebuilder/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Override the configured log level (debug|info|warn|error)")
	cmd.PersistentFlags().String("format", "table", "Output format (table|json|yaml)")

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newPageCmd())
	cmd.AddCommand(newSectionCmd())
	cmd.AddCommand(newGlobalCmd())
	cmd.AddCommand(newSEOCmd())
	cmd.AddCommand(newThemeCmd())
	cmd.AddCommand(newDomainCmd())
	cmd.AddCommand(newPublishCmd())
	cmd.AddCommand(newVersionsCmd())
	cmd.AddCommand(newApplyCmd())
	cmd.AddCommand(newDiffCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newLogCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd(version))

	return cmd
}

// runOp applies one operation and prints its result.
func runOp(cmd *cobra.Command, op operation) error {
	return withRuntime(cmd, func(rt *runtime) error {
		res, err := apply(rt.store, op)
		if err != nil {
			return err
		}
		return writeResults(cmd, []opResult{res})
	})
}
