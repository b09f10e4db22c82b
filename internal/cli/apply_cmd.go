package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benedict2310/sitebuilder/internal/storage"
	"github.com/benedict2310/sitebuilder/internal/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// script is a batch of operations applied in order within one session, so
// undo can revert earlier steps of the same script.
type script struct {
	Ops []operation `yaml:"ops"`
}

func parseScript(r io.Reader) (script, error) {
	var s script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return s, invalidf("script is empty")
		}
		return s, invalidf("parse script: %v", err)
	}
	if len(s.Ops) == 0 {
		return s, invalidf("script has no ops")
	}
	for i, op := range s.Ops {
		if strings.TrimSpace(op.Op) == "" {
			return s, invalidf("ops[%d]: op is required", i)
		}
	}
	return s, nil
}

func readScript(cmd *cobra.Command, from string) (script, error) {
	if from == "-" {
		return parseScript(cmd.InOrStdin())
	}
	raw, err := os.ReadFile(from)
	if err != nil {
		return script{}, fmt.Errorf("read script %s: %w", from, err)
	}
	return parseScript(bytes.NewReader(raw))
}

func runScript(st *store.Store, s script) ([]opResult, error) {
	results := make([]opResult, 0, len(s.Ops))
	for i, op := range s.Ops {
		res, err := apply(st, op)
		if err != nil {
			return results, fmt.Errorf("ops[%d] %s: %w", i, op.Op, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// scratchStore copies the draft and versions of st into a throwaway store.
func scratchStore(ctx context.Context, rt *runtime) (*store.Store, error) {
	mem := storage.NewMemory()
	if err := mem.SaveDraft(ctx, rt.store.Draft()); err != nil {
		return nil, err
	}
	for _, v := range rt.store.PublishedVersions() {
		if err := mem.SaveVersion(ctx, v); err != nil {
			return nil, err
		}
	}
	return store.Open(ctx, mem, store.WithLogger(rt.logger))
}

func newApplyCmd() *cobra.Command {
	var from string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply -f <script.yaml>",
		Short: "Apply a YAML script of draft operations",
		Long: `Applies every entry of "ops" in order and stops at the first failure.

  ops:
    - op: page.add
    - op: page.title
      page: current
      value: Team
    - op: section.set
      page: index
      section: 1
      field: headline
      value: Willkommen
    - op: undo
    - op: publish`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(from) == "" {
				fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
				return invalidf("required flag(s) \"file\" not set")
			}
			s, err := readScript(cmd, from)
			if err != nil {
				return err
			}
			return withRuntime(cmd, func(rt *runtime) error {
				st := rt.store
				if dryRun {
					scratch, err := scratchStore(cmd.Context(), rt)
					if err != nil {
						return err
					}
					st = scratch
				}
				results, err := runScript(st, s)
				if werr := writeResults(cmd, results); werr != nil && err == nil {
					err = werr
				}
				if err != nil {
					return err
				}
				if dryRun {
					fmt.Fprintln(cmd.ErrOrStderr(), "Dry run: no changes saved")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&from, "file", "f", "", "Script file, or - for stdin")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run the script against a copy of the draft")
	return cmd
}
