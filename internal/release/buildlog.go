package release

import (
	"fmt"
	"strings"
)

// buildLog collects one line per build step. Lines carry no timestamps so
// identical documents produce identical logs.
type buildLog struct {
	lines    []string
	warnings int
}

func newBuildLog() *buildLog {
	return &buildLog{}
}

func (l *buildLog) Addf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *buildLog) Warnf(format string, args ...any) {
	l.warnings++
	l.Addf("warning: "+format, args...)
}

// String renders the log followed by a summary line.
func (l *buildLog) String() string {
	if len(l.lines) == 0 {
		return ""
	}
	var b strings.Builder
	for _, line := range l.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%d step(s), %d warning(s)\n", len(l.lines), l.warnings)
	return b.String()
}
