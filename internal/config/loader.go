package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DataDir returns ~/.sitebuilder.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home directory: %w", err)
	}
	home = strings.TrimSpace(home)
	if home == "" {
		return "", fmt.Errorf("resolve user home directory: empty path")
	}
	return filepath.Join(home, defaultDataDir), nil
}

// DefaultPath returns the default config path under the user's home directory.
func DefaultPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ResolvePath resolves the config path from explicit input, env var, or
// default. required reports whether the file must exist.
func ResolvePath(explicit string) (path string, required bool, err error) {
	if p := strings.TrimSpace(explicit); p != "" {
		return p, true, nil
	}
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, true, nil
	}
	p, err := DefaultPath()
	return p, false, err
}

// Load reads the resolved config file, applies SITEBUILDER_* overrides and
// validates the result. A missing default file yields the defaults.
func Load(explicitPath string) (Config, string, error) {
	path, required, err := ResolvePath(explicitPath)
	if err != nil {
		return Config{}, "", err
	}
	cfg, err := LoadFromPath(path, required)
	if err != nil {
		return cfg, path, err
	}
	return cfg, path, nil
}

func LoadFromPath(path string, required bool) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
	case errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("config file not found at %s (create it or unset %s)", path, EnvConfigPath)
	default:
		return cfg, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate config file %s: %w", path, err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv("SITEBUILDER_LOG_LEVEL")); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("SITEBUILDER_STORAGE_DRIVER")); v != "" {
		cfg.Storage.Driver = v
	}
	if v := strings.TrimSpace(os.Getenv("SITEBUILDER_STORAGE_PATH")); v != "" {
		cfg.Storage.Path = v
	}
	if err := envBool("SITEBUILDER_STORAGE_WAL", &cfg.Storage.WAL); err != nil {
		return err
	}
	if v := strings.TrimSpace(os.Getenv("SITEBUILDER_EXPORT_OUTPUT")); v != "" {
		cfg.Export.Output = v
	}
	if err := envBool("SITEBUILDER_EXPORT_SOCIAL_CARDS", &cfg.Export.SocialCards); err != nil {
		return err
	}
	if v := strings.TrimSpace(os.Getenv("SITEBUILDER_DEPLOY_ROOT")); v != "" {
		cfg.Export.DeployRoot = v
	}
	if v := strings.TrimSpace(os.Getenv("SITEBUILDER_SERVE_BIND")); v != "" {
		cfg.Serve.Bind = v
	}
	if v := strings.TrimSpace(os.Getenv("SITEBUILDER_SERVE_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse SITEBUILDER_SERVE_PORT=%q: %w", v, err)
		}
		cfg.Serve.Port = port
	}
	return nil
}

func envBool(name string, dst *bool) error {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("parse %s=%q: %w", name, v, err)
	}
	*dst = parsed
	return nil
}

// StoragePath resolves the storage location, defaulting below DataDir.
func (c Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if c.Storage.Driver == DriverFile {
		return filepath.Join(dir, defaultFileStore), nil
	}
	return filepath.Join(dir, defaultDBFile), nil
}

// DeployRoot resolves where published versions are deployed.
func (c Config) DeployRoot() (string, error) {
	if p := strings.TrimSpace(c.Export.DeployRoot); p != "" {
		return p, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultDeployDir), nil
}

// Save writes config back to path, replacing the file atomically.
func Save(path string, cfg Config) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("config path is required")
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config file %s: %w", path, err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config file %s: %w", path, err)
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp config in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp config %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp config %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace config file %s: %w", path, err)
	}
	cleanup = false
	return nil
}
