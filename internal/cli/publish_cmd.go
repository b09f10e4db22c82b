package cli

import (
	"errors"
	"fmt"

	"github.com/benedict2310/sitebuilder/internal/audit"
	"github.com/benedict2310/sitebuilder/internal/bundle"
	"github.com/benedict2310/sitebuilder/internal/export"
	"github.com/benedict2310/sitebuilder/internal/output"
	"github.com/benedict2310/sitebuilder/internal/release"
	"github.com/benedict2310/sitebuilder/pkg/model"
	"github.com/spf13/cobra"
)

type deployResult struct {
	Version  string          `json:"version" yaml:"version"`
	Root     string          `json:"root" yaml:"root"`
	Manifest bundle.Manifest `json:"manifest" yaml:"manifest"`
}

// packagingError maps export failures to exit codes.
func packagingError(err error) error {
	if errors.Is(err, export.ErrExportInProgress) {
		return exitCodeError(ExitBusy, err)
	}
	return err
}

func deployVersion(cmd *cobra.Command, rt *runtime, v model.PublishedVersion) (deployResult, error) {
	root, err := rt.cfg.DeployRoot()
	if err != nil {
		return deployResult{}, err
	}
	manifest, err := rt.packager.Deploy(cmd.Context(), v, root)
	if err != nil {
		return deployResult{}, packagingError(err)
	}
	rt.store.Record(audit.OperationDeploy, v.ID, map[string]any{"root": root, "files": len(manifest.Files)})
	return deployResult{Version: v.ID, Root: root, Manifest: manifest}, nil
}

func newPublishCmd() *cobra.Command {
	var deploy bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Freeze the draft as a new published version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(rt *runtime) error {
				res, err := apply(rt.store, operation{Op: opPublish})
				if err != nil {
					return err
				}
				if !deploy {
					return writeResults(cmd, []opResult{res})
				}
				v, _ := rt.store.Version(res.Target)
				dep, err := deployVersion(cmd, rt, v)
				if err != nil {
					return err
				}
				return writeView(cmd, dep, func() error {
					fmt.Fprintln(cmd.OutOrStdout(), res.Message)
					fmt.Fprintf(cmd.OutOrStdout(), "Deployed %d file(s) to %s\n", len(dep.Manifest.Files), release.ReleaseDir(dep.Root, dep.Version))
					return nil
				})
			})
		},
	}
	cmd.Flags().BoolVar(&deploy, "deploy", false, "Also deploy the new version to the configured deploy root")
	return cmd
}

func newVersionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List, restore or deploy published versions",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List published versions, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withRuntime(cmd, func(rt *runtime) error {
					versions := rt.store.PublishedVersions()
					current := ""
					if root, err := rt.cfg.DeployRoot(); err == nil {
						if id, ok, err := release.CurrentVersion(root); err == nil && ok {
							current = id
						}
					}
					payload := map[string]any{"versions": versions, "deployed": current}
					return writeView(cmd, payload, func() error {
						if len(versions) == 0 {
							fmt.Fprintln(cmd.OutOrStdout(), "Nothing published yet.")
							return nil
						}
						headers, rows := output.VersionsTable(versions, current, rt.now())
						return output.WriteTable(cmd.OutOrStdout(), headers, rows)
					})
				})
			},
		},
		&cobra.Command{
			Use:   "restore <version>",
			Short: "Replace the draft with a published version; clears undo history",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOp(cmd, operation{Op: opRestore, Version: args[0]})
			},
		},
		&cobra.Command{
			Use:   "deploy <version>",
			Short: "Deploy a published version, re-activating it if already deployed",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withRuntime(cmd, func(rt *runtime) error {
					v, ok := rt.store.Version(args[0])
					if !ok {
						return notFoundf("version %q not found", args[0])
					}
					dep, err := deployVersion(cmd, rt, v)
					if err != nil {
						return err
					}
					return writeView(cmd, dep, func() error {
						fmt.Fprintf(cmd.OutOrStdout(), "Version %s is live at %s\n", dep.Version, release.ReleaseDir(dep.Root, dep.Version))
						return nil
					})
				})
			},
		},
	)
	return cmd
}
