package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/benedict2310/sitebuilder/internal/cli"
)

func TestRunVersion(t *testing.T) {
	out := &bytes.Buffer{}
	if err := run(context.Background(), []string{"version"}, out, &bytes.Buffer{}); err != nil {
		t.Fatalf("run(version) error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "sitebuilder dev") {
		t.Fatalf("unexpected version output %q", out.String())
	}
}

func TestRunApplyMissingFile(t *testing.T) {
	err := run(context.Background(), []string{"apply"}, &bytes.Buffer{}, &bytes.Buffer{})
	if err == nil {
		t.Fatalf("expected apply to fail without --file")
	}
	if got := cli.ExitCode(err); got != cli.ExitInvalid {
		t.Fatalf("ExitCode() = %d, want %d", got, cli.ExitInvalid)
	}
}
