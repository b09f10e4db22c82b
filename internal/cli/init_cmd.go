package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/benedict2310/sitebuilder/internal/config"
	"github.com/benedict2310/sitebuilder/internal/storage"
	"github.com/benedict2310/sitebuilder/internal/store"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var force bool
	var writeConfig bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the starter project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			p, err := openPersistence(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closePersistence(p)

			_, err = p.persister.LoadDraft(ctx)
			switch {
			case err == nil && !force:
				fmt.Fprintf(cmd.OutOrStdout(), "Project already exists at %s (use --force to reset it)\n", p.path)
				return nil
			case err != nil && !errors.Is(err, storage.ErrNotFound) && !errors.Is(err, storage.ErrCorrupt):
				return fmt.Errorf("read stored project: %w", err)
			}
			if err := p.persister.SaveDraft(ctx, store.Starter(time.Now())); err != nil {
				return fmt.Errorf("write starter project: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized starter project at %s\n", p.path)

			if writeConfig {
				explicit, _ := cmd.Flags().GetString("config")
				path, _, err := config.ResolvePath(explicit)
				if err != nil {
					return err
				}
				if _, err := os.Stat(path); err == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Config %s already exists\n", path)
					return nil
				}
				if err := config.Save(path, cfg); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote config %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing draft with the starter project")
	cmd.Flags().BoolVar(&writeConfig, "write-config", false, "Also write the effective config file if none exists")
	return cmd
}
