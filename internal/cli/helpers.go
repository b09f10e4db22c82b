package cli

import (
	"fmt"

	"github.com/benedict2310/sitebuilder/internal/output"
	"github.com/spf13/cobra"
)

func outputFormat(cmd *cobra.Command) (output.Format, error) {
	v, _ := cmd.Flags().GetString("format")
	f, err := output.ParseFormat(v)
	if err != nil {
		return "", exitCodeError(ExitInvalid, err)
	}
	return f, nil
}

func writeResults(cmd *cobra.Command, results []opResult) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	if format.Structured() {
		return output.WriteStructured(cmd.OutOrStdout(), format, map[string]any{"results": results})
	}
	for _, r := range results {
		fmt.Fprintln(cmd.OutOrStdout(), r.Message)
	}
	return nil
}

// writeView prints payload as json/yaml, or calls table for the table format.
func writeView(cmd *cobra.Command, payload any, table func() error) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	if format.Structured() {
		return output.WriteStructured(cmd.OutOrStdout(), format, payload)
	}
	return table()
}
