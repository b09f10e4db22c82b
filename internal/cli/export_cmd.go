package cli

import (
	"fmt"
	"os"

	"github.com/benedict2310/sitebuilder/internal/audit"
	"github.com/benedict2310/sitebuilder/internal/bundle"
	"github.com/benedict2310/sitebuilder/internal/output"
	"github.com/benedict2310/sitebuilder/pkg/model"
	"github.com/spf13/cobra"
)

type exportResult struct {
	Source   string          `json:"source" yaml:"source"`
	Path     string          `json:"path" yaml:"path"`
	Size     int64           `json:"size" yaml:"size"`
	Manifest bundle.Manifest `json:"manifest" yaml:"manifest"`
}

// selectDocument picks the draft, the latest published version ("latest")
// or a version by id.
func selectDocument(rt *runtime, version string) (model.ProjectData, string, error) {
	switch version {
	case "":
		return rt.store.Draft(), "draft", nil
	case "latest":
		v, ok := rt.store.LatestPublished()
		if !ok {
			return model.ProjectData{}, "", notFoundf("nothing published yet")
		}
		return v.Data, v.ID, nil
	default:
		v, ok := rt.store.Version(version)
		if !ok {
			return model.ProjectData{}, "", notFoundf("version %q not found", version)
		}
		return v.Data, v.ID, nil
	}
}

func writeManifest(cmd *cobra.Command, res exportResult, verb string, showFiles bool) error {
	return writeView(cmd, res, func() error {
		out := cmd.OutOrStdout()
		if showFiles {
			headers, rows := output.ManifestTable(res.Manifest)
			if err := output.WriteTable(out, headers, rows); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "%s %d file(s) from %s to %s", verb, len(res.Manifest.Files), res.Source, res.Path)
		if res.Size > 0 {
			fmt.Fprintf(out, " (%s)", output.Size(res.Size))
		}
		fmt.Fprintln(out)
		return nil
	})
}

func newExportCmd() *cobra.Command {
	var path string
	var version string
	var showFiles bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Package the site as a zip archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(rt *runtime) error {
				if path == "" {
					path = rt.cfg.Export.Output
				}
				doc, source, err := selectDocument(rt, version)
				if err != nil {
					return err
				}
				manifest, err := rt.packager.ExportFile(cmd.Context(), doc, path)
				if err != nil {
					return packagingError(err)
				}
				res := exportResult{Source: source, Path: path, Manifest: manifest}
				if info, err := os.Stat(path); err == nil {
					res.Size = info.Size()
				}
				rt.store.Record(audit.OperationExport, path, map[string]any{"source": source, "files": len(manifest.Files), "bytes": res.Size})
				return writeManifest(cmd, res, "Exported", showFiles)
			})
		},
	}

	cmd.Flags().StringVarP(&path, "output", "o", "", "Archive path (default from config, website.zip)")
	cmd.Flags().StringVar(&version, "version", "", "Export a published version id, or latest, instead of the draft")
	cmd.Flags().BoolVar(&showFiles, "files", false, "Print the manifest of the archive")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var version string
	var showFiles bool

	cmd := &cobra.Command{
		Use:   "render <dir>",
		Short: "Write the generated site into a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(rt *runtime) error {
				doc, source, err := selectDocument(rt, version)
				if err != nil {
					return err
				}
				manifest, err := rt.packager.RenderDir(cmd.Context(), doc, args[0])
				if err != nil {
					return packagingError(err)
				}
				return writeManifest(cmd, exportResult{Source: source, Path: args[0], Manifest: manifest}, "Rendered", showFiles)
			})
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "Render a published version id, or latest, instead of the draft")
	cmd.Flags().BoolVar(&showFiles, "files", false, "Print the generated files")
	return cmd
}
