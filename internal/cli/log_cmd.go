package cli

import (
	"fmt"
	"time"

	"github.com/benedict2310/sitebuilder/internal/audit"
	"github.com/benedict2310/sitebuilder/internal/config"
	"github.com/benedict2310/sitebuilder/internal/output"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	var limit int
	var offset int
	var operation string
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the activity journal, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(rt *runtime) error {
				if rt.cfg.Storage.Driver == config.DriverFile {
					fmt.Fprintln(cmd.ErrOrStderr(), "note: the file storage driver does not keep an activity journal")
				}
				filter := audit.Filter{Operation: operation, Limit: limit, Offset: offset}
				if since > 0 {
					from := rt.now().Add(-since)
					filter.Since = &from
				}
				res, err := rt.persist.journal.Query(cmd.Context(), filter)
				if err != nil {
					return err
				}
				return writeView(cmd, res, func() error {
					if len(res.Entries) == 0 {
						fmt.Fprintln(cmd.OutOrStdout(), "No activity recorded.")
						return nil
					}
					headers, rows := output.ActivityTable(res.Entries, rt.now())
					if err := output.WriteTable(cmd.OutOrStdout(), headers, rows); err != nil {
						return err
					}
					if res.Total > len(res.Entries) {
						fmt.Fprintf(cmd.OutOrStdout(), "(%d of %d entries)\n", len(res.Entries), res.Total)
					}
					return nil
				})
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of newest entries to skip")
	cmd.Flags().StringVar(&operation, "operation", "", "Only show one operation, e.g. publish")
	cmd.Flags().DurationVar(&since, "since", 0, "Only show entries newer than this, e.g. 24h")
	return cmd
}
