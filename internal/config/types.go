package config

import (
	"fmt"
	"strings"
)

const (
	EnvConfigPath = "SITEBUILDER_CONFIG"

	DriverSQLite = "sqlite"
	DriverFile   = "file"

	DefaultLogLevel  = "info"
	DefaultBindAddr  = "127.0.0.1"
	DefaultPort      = 8080
	DefaultOutput    = "website.zip"
	defaultDataDir   = ".sitebuilder"
	defaultDBFile    = "site.db"
	defaultFileStore = "data"
	defaultDeployDir = "deploy"
)

// Config is the sitebuilder configuration file structure.
type Config struct {
	LogLevel string        `yaml:"logLevel"`
	Storage  StorageConfig `yaml:"storage"`
	Export   ExportConfig  `yaml:"export"`
	Serve    ServeConfig   `yaml:"serve"`
}

type StorageConfig struct {
	// Driver is "sqlite" or "file".
	Driver string `yaml:"driver"`
	// Path is the database file for sqlite or the directory for file.
	// Empty means a default below the data directory.
	Path string `yaml:"path,omitempty"`
	WAL  bool   `yaml:"wal"`
	// Key overrides the document key; tests and multi-site setups only.
	Key string `yaml:"key,omitempty"`
}

type ExportConfig struct {
	Output      string `yaml:"output"`
	SocialCards bool   `yaml:"socialCards"`
	DeployRoot  string `yaml:"deployRoot,omitempty"`
}

type ServeConfig struct {
	Bind           string   `yaml:"bind"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
	Watch          bool     `yaml:"watch"`
}

func Default() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		Storage:  StorageConfig{Driver: DriverSQLite, WAL: true},
		Export:   ExportConfig{Output: DefaultOutput},
		Serve:    ServeConfig{Bind: DefaultBindAddr, Port: DefaultPort, Watch: true},
	}
}

func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverSQLite
	}
	c.Storage.Path = strings.TrimSpace(c.Storage.Path)
	if strings.TrimSpace(c.Export.Output) == "" {
		c.Export.Output = DefaultOutput
	}
	if strings.TrimSpace(c.Serve.Bind) == "" {
		c.Serve.Bind = DefaultBindAddr
	}
}

// Validate checks config invariants that must hold for the file to be usable.
func (c Config) Validate() error {
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Storage.Driver {
	case DriverSQLite, DriverFile:
	default:
		return fmt.Errorf("storage.driver must be %s or %s, got %q", DriverSQLite, DriverFile, c.Storage.Driver)
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port must be in range 0..65535")
	}
	for i, origin := range c.Serve.AllowedOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("serve.allowedOrigins[%d] is empty", i)
		}
	}
	return nil
}

func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Serve.Bind, c.Serve.Port)
}
