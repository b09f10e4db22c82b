package cli

import (
	"errors"

	"github.com/benedict2310/sitebuilder/internal/bundle"
	diffpkg "github.com/benedict2310/sitebuilder/internal/diff"
	"github.com/spf13/cobra"
)

var errDiffHasChanges = errors.New("diff detected changes")

// siteManifest builds the manifest of ref. "draft" is the working draft,
// "latest" the newest published version (empty when nothing is published).
func siteManifest(cmd *cobra.Command, rt *runtime, ref string) (bundle.Manifest, string, error) {
	if ref == "latest" {
		if _, ok := rt.store.LatestPublished(); !ok {
			return bundle.Manifest{}, "(nothing published)", nil
		}
	}
	if ref == "draft" {
		ref = ""
	}
	doc, label, err := selectDocument(rt, ref)
	if err != nil {
		return bundle.Manifest{}, "", err
	}
	m, err := rt.packager.Manifest(cmd.Context(), doc)
	if err != nil {
		return bundle.Manifest{}, "", err
	}
	return m, label, nil
}

func newDiffCmd() *cobra.Command {
	var from, to string
	var exitCode bool

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show which generated files differ between two site states",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(rt *runtime) error {
				old, fromLabel, err := siteManifest(cmd, rt, from)
				if err != nil {
					return err
				}
				next, toLabel, err := siteManifest(cmd, rt, to)
				if err != nil {
					return err
				}
				report := diffpkg.Report{From: fromLabel, To: toLabel, Result: diffpkg.Compare(old, next)}

				err = writeView(cmd, report, func() error {
					return diffpkg.WriteTable(cmd.OutOrStdout(), report, diffpkg.DisplayOptions{
						Color: diffpkg.AutoColor(cmd.OutOrStdout()),
					})
				})
				if err != nil {
					return err
				}
				if exitCode && report.Result.HasChanges() {
					return exitCodeError(1, errDiffHasChanges)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "latest", "Base state: latest, draft or a version id")
	cmd.Flags().StringVar(&to, "to", "draft", "Compared state: latest, draft or a version id")
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "Exit with status 1 when there are changes")
	return cmd
}
