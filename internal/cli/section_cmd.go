package cli

import (
	"strings"

	"github.com/benedict2310/sitebuilder/internal/output"
	"github.com/benedict2310/sitebuilder/pkg/model"
	"github.com/spf13/cobra"
)

func newSectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "section",
		Short: "Manage the sections of a page",
		Long:  "Sections are addressed by id, by 1-based position or as \"last\".",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list <page>",
			Short: "List a page's sections",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withRuntime(cmd, func(rt *runtime) error {
					page, err := resolvePage(rt.store, args[0])
					if err != nil {
						return err
					}
					return writeView(cmd, map[string]any{"sections": page.Sections}, func() error {
						headers, rows := output.SectionsTable(page)
						return output.WriteTable(cmd.OutOrStdout(), headers, rows)
					})
				})
			},
		},
		&cobra.Command{
			Use:   "types",
			Short: "List section types and their fields",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				types := model.SectionTypes()
				payload := make(map[string][]string, len(types))
				rows := make([][]string, 0, len(types))
				for _, t := range types {
					payload[string(t)] = model.FieldNames(t)
					rows = append(rows, []string{string(t), strings.Join(model.FieldNames(t), ", ")})
				}
				return writeView(cmd, payload, func() error {
					return output.WriteTable(cmd.OutOrStdout(), []string{"TYPE", "FIELDS"}, rows)
				})
			},
		},
		&cobra.Command{
			Use:   "add <page> <type>",
			Short: "Append a section with default content",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOp(cmd, operation{Op: opSectionAdd, Page: args[0], Type: args[1]})
			},
		},
		&cobra.Command{
			Use:   "remove <page> <section>",
			Short: "Remove a section (a page keeps at least one)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOp(cmd, operation{Op: opSectionRemove, Page: args[0], Section: args[1]})
			},
		},
		&cobra.Command{
			Use:   "move <page> <section> up|down",
			Short: "Move a section within its page",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOp(cmd, operation{Op: opSectionMove, Page: args[0], Section: args[1], Direction: args[2]})
			},
		},
		&cobra.Command{
			Use:   "set <page> <section> <field> <value>",
			Short: "Set one content field of a section",
			Args:  cobra.ExactArgs(4),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOp(cmd, operation{Op: opSectionSet, Page: args[0], Section: args[1], Field: args[2], Value: args[3]})
			},
		},
	)
	return cmd
}
