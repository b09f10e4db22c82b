package cli

import (
	"github.com/benedict2310/sitebuilder/internal/output"
	"github.com/benedict2310/sitebuilder/pkg/theme"
	"github.com/spf13/cobra"
)

func newGlobalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "global",
		Short: "Edit the header and footer shared by every page",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set header|footer <field> <value>",
		Short: "Set one field of the global header or footer",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, operation{Op: opGlobalSet, Section: args[0], Field: args[1], Value: args[2]})
		},
	})
	return cmd
}

func newSEOCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seo",
		Short: "Edit site-wide SEO settings",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set titleSuffix|defaultDescription <value>",
		Short: "Set the title suffix or the fallback description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, operation{Op: opSEOSet, Field: args[0], Value: args[1]})
		},
	})
	return cmd
}

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "List or select theme presets",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the available presets",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				all := theme.All()
				return writeView(cmd, map[string]any{"presets": all}, func() error {
					rows := make([][]string, 0, len(all))
					for _, info := range all {
						v, _ := theme.Lookup(info.Name)
						rows = append(rows, []string{info.Name, info.Title, v.PrimaryColor, v.AccentColor, output.Truncate(info.Description, 48)})
					}
					return output.WriteTable(cmd.OutOrStdout(), []string{"PRESET", "TITLE", "PRIMARY", "ACCENT", "DESCRIPTION"}, rows)
				})
			},
		},
		&cobra.Command{
			Use:   "set <preset>",
			Short: "Switch the theme preset",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOp(cmd, operation{Op: opThemeSet, Value: args[0]})
			},
		},
	)
	return cmd
}

func newDomainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domain",
		Short: "Configure the custom domain used in sitemap and robots.txt",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <domain>",
		Short: "Set the custom domain; an empty value clears it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(cmd, operation{Op: opDomainSet, Value: args[0]})
		},
	})
	return cmd
}
