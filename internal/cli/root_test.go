package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testEnv struct {
	dir        string
	configPath string
	deployRoot string
}

// newTestEnv writes a config that keeps all state below a temp dir.
func newTestEnv(t *testing.T, driver string) testEnv {
	t.Helper()
	for _, name := range []string{
		"SITEBUILDER_CONFIG",
		"SITEBUILDER_LOG_LEVEL",
		"SITEBUILDER_STORAGE_DRIVER",
		"SITEBUILDER_STORAGE_PATH",
		"SITEBUILDER_STORAGE_WAL",
		"SITEBUILDER_EXPORT_OUTPUT",
		"SITEBUILDER_EXPORT_SOCIAL_CARDS",
		"SITEBUILDER_DEPLOY_ROOT",
		"SITEBUILDER_SERVE_BIND",
		"SITEBUILDER_SERVE_PORT",
	} {
		t.Setenv(name, "")
	}
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	storagePath := filepath.Join(dir, "site.db")
	if driver == "file" {
		storagePath = filepath.Join(dir, "data")
	}
	env := testEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "config.yaml"),
		deployRoot: filepath.Join(dir, "deploy"),
	}
	content := "logLevel: error\n" +
		"storage:\n  driver: " + driver + "\n  path: " + storagePath + "\n  wal: false\n" +
		"export:\n  output: " + filepath.Join(dir, "website.zip") + "\n  deployRoot: " + env.deployRoot + "\n"
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func (e testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd("test")
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func (e testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, errOut, err := e.run(t, args...)
	if err != nil {
		t.Fatalf("%v error = %v\nstdout: %s\nstderr: %s", args, err, out, errOut)
	}
	return out
}

func TestRootCommandNoArgsPrintsUsage(t *testing.T) {
	cmd := NewRootCmd("test")
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	help := out.String()
	if !strings.Contains(help, "Usage:") {
		t.Fatalf("expected usage output, got: %s", help)
	}
	for _, sub := range []string{"init", "page", "section", "publish", "versions", "apply", "export", "render", "serve", "log", "version"} {
		if !strings.Contains(help, sub) {
			t.Fatalf("expected help output to include %q", sub)
		}
	}
}

func TestVersionCommandPrintsVersion(t *testing.T) {
	cmd := NewRootCmd("1.2.3")
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(out.String(), "sitebuilder 1.2.3 (") {
		t.Fatalf("version output = %q", out.String())
	}
}

func TestInvalidFormatIsRejected(t *testing.T) {
	env := newTestEnv(t, "sqlite")
	_, _, err := env.run(t, "--format", "xml", "theme", "list")
	if err == nil || ExitCode(err) != ExitInvalid {
		t.Fatalf("expected invalid format error, got %v", err)
	}
}
