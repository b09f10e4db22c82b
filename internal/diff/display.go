package diff

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/benedict2310/sitebuilder/internal/output"
)

type DisplayOptions struct {
	Color bool
}

// AutoColor reports whether w is a terminal that should get ANSI colors.
// NO_COLOR disables color.
func AutoColor(w io.Writer) bool {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func WriteTable(w io.Writer, report Report, opts DisplayOptions) error {
	result := report.Result
	fmt.Fprintf(w, "Comparing %s -> %s\n", report.From, report.To)

	grouped := map[Kind][]FileChange{}
	for _, change := range result.Changes {
		grouped[change.Kind] = append(grouped[change.Kind], change)
	}

	printedAny := false
	for _, kind := range kindOrder {
		changes := grouped[kind]
		if len(changes) == 0 {
			continue
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s:\n", strings.ToUpper(string(kind)))
		rows := make([][]string, 0, len(changes))
		for _, change := range changes {
			rows = append(rows, []string{
				colorize(string(change.ChangeType), change.ChangeType, opts.Color),
				change.Path,
				shortHash(change.OldHash),
				shortHash(change.NewHash),
				sizeDelta(change.SizeDelta),
			})
		}
		if err := output.WriteTable(w, []string{"CHANGE", "PATH", "OLD", "NEW", "SIZE"}, rows); err != nil {
			return err
		}
		printedAny = true
	}

	if !printedAny {
		fmt.Fprintln(w, "No changes detected.")
	} else {
		fmt.Fprintln(w)
	}
	_, err := fmt.Fprintf(
		w,
		"%d added, %d modified, %d removed, %d unchanged\n",
		result.Summary.Added,
		result.Summary.Modified,
		result.Summary.Removed,
		result.Summary.Unchanged,
	)
	return err
}

func sizeDelta(n int64) string {
	switch {
	case n > 0:
		return "+" + output.Size(n)
	case n < 0:
		return "-" + output.Size(-n)
	default:
		return "0 B"
	}
}

func shortHash(hash string) string {
	v := strings.TrimSpace(hash)
	if v == "" {
		return "-"
	}
	v = strings.TrimPrefix(strings.ToLower(v), "sha256:")
	if len(v) > 8 {
		return v[:8]
	}
	return v
}

func colorize(v string, changeType ChangeType, enabled bool) string {
	if !enabled {
		return v
	}
	var color string
	switch changeType {
	case ChangeAdded:
		color = "32"
	case ChangeModified:
		color = "33"
	case ChangeRemoved:
		color = "31"
	default:
		return v
	}
	return "\x1b[" + color + "m" + v + "\x1b[0m"
}
