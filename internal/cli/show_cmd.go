package cli

import (
	"fmt"

	"github.com/benedict2310/sitebuilder/internal/output"
	"github.com/benedict2310/sitebuilder/pkg/theme"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [page]",
		Short: "Show the draft, or one page with its sections",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(rt *runtime) error {
				if len(args) == 1 {
					page, err := resolvePage(rt.store, args[0])
					if err != nil {
						return err
					}
					return writeView(cmd, page, func() error {
						out := cmd.OutOrStdout()
						fmt.Fprintf(out, "Page:  %s (%s)\n", page.Title, page.ID)
						fmt.Fprintf(out, "Slug:  %s\n", page.Slug)
						if page.SEO != nil {
							fmt.Fprintf(out, "SEO:   title=%s description=%s noindex=%t\n",
								output.OrNone(page.SEO.Title), output.OrNone(output.Truncate(page.SEO.Description, 48)), page.SEO.NoIndex)
						}
						fmt.Fprintln(out)
						headers, rows := output.SectionsTable(page)
						return output.WriteTable(out, headers, rows)
					})
				}

				doc := rt.store.Draft()
				return writeView(cmd, doc, func() error {
					out := cmd.OutOrStdout()
					name, _ := theme.Resolve(doc.Theme.Preset)
					fmt.Fprintf(out, "Header:  %s\n", output.OrNone(doc.GlobalSections.Header.Content["logoText"]))
					fmt.Fprintf(out, "Footer:  %s\n", output.OrNone(doc.GlobalSections.Footer.Content["copyright"]))
					fmt.Fprintf(out, "Theme:   %s\n", name)
					fmt.Fprintf(out, "Domain:  %s\n", output.OrNone(doc.CustomDomain()))
					fmt.Fprintf(out, "SEO:     suffix=%s\n", output.OrNone(doc.GlobalSEO.TitleSuffix))
					fmt.Fprintf(out, "Saved:   %s\n", output.Ago(rt.store.LastSavedAt(), rt.now()))
					if v, ok := rt.store.LatestPublished(); ok {
						fmt.Fprintf(out, "Live:    %s (%s)\n", v.ID, output.Ago(v.PublishedAt, rt.now()))
					} else {
						fmt.Fprintln(out, "Live:    <none>")
					}
					fmt.Fprintln(out)
					headers, rows := output.PagesTable(doc)
					return output.WriteTable(out, headers, rows)
				})
			})
		},
	}
}
