package cli

import (
	"github.com/benedict2310/sitebuilder/internal/output"
	"github.com/spf13/cobra"
)

func newPageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Manage pages",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List pages in navigation order",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withRuntime(cmd, func(rt *runtime) error {
					doc := rt.store.Draft()
					return writeView(cmd, map[string]any{"pages": doc.SortedPages()}, func() error {
						headers, rows := output.PagesTable(doc)
						return output.WriteTable(cmd.OutOrStdout(), headers, rows)
					})
				})
			},
		},
		&cobra.Command{
			Use:   "add",
			Short: "Add a page with a hero section",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOp(cmd, operation{Op: opPageAdd})
			},
		},
		&cobra.Command{
			Use:   "remove <page>",
			Short: "Remove a page (never the home page)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOp(cmd, operation{Op: opPageRemove, Page: args[0]})
			},
		},
		&cobra.Command{
			Use:   "move <page> up|down",
			Short: "Move a page in the navigation",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOp(cmd, operation{Op: opPageMove, Page: args[0], Direction: args[1]})
			},
		},
		&cobra.Command{
			Use:   "title <page> <title>",
			Short: "Rename a page",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOp(cmd, operation{Op: opPageTitle, Page: args[0], Value: args[1]})
			},
		},
		&cobra.Command{
			Use:   "slug <page> <slug>",
			Short: "Change a page slug; the value is normalized and made unique",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOp(cmd, operation{Op: opPageSlug, Page: args[0], Value: args[1]})
			},
		},
		&cobra.Command{
			Use:   "seo <page> title|description <value>",
			Short: "Set a page's SEO title or description",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOp(cmd, operation{Op: opPageSEO, Page: args[0], Field: args[1], Value: args[2]})
			},
		},
		&cobra.Command{
			Use:   "noindex <page> true|false",
			Short: "Hide a page from search engines",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOp(cmd, operation{Op: opPageNoIndex, Page: args[0], Value: args[1]})
			},
		},
	)
	return cmd
}
