package cli

import (
	"fmt"

	"github.com/benedict2310/sitebuilder/internal/config"
	"github.com/benedict2310/sitebuilder/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}
	cmd.AddCommand(newConfigViewCmd())
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

func newConfigViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Print the config after file, environment and flag overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(&cfg)
			if err != nil {
				return fmt.Errorf("marshal config output: %w", err)
			}
			if len(out) == 0 || out[len(out)-1] != '\n' {
				out = append(out, '\n')
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where config, storage and deployments live",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			explicit, _ := cmd.Flags().GetString("config")
			configPath, _, err := config.ResolvePath(explicit)
			if err != nil {
				return err
			}
			storagePath, err := cfg.StoragePath()
			if err != nil {
				return err
			}
			deployRoot, err := cfg.DeployRoot()
			if err != nil {
				return err
			}
			paths := map[string]string{
				"config":  configPath,
				"storage": storagePath,
				"deploy":  deployRoot,
				"export":  cfg.Export.Output,
			}
			return writeView(cmd, paths, func() error {
				rows := [][]string{
					{"config", configPath},
					{"storage (" + cfg.Storage.Driver + ")", storagePath},
					{"deploy", deployRoot},
					{"export", cfg.Export.Output},
				}
				return output.WriteTable(cmd.OutOrStdout(), []string{"WHAT", "PATH"}, rows)
			})
		},
	}
}
