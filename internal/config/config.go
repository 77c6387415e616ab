// Package config loads deskboard settings from defaults, an optional YAML
// file and DESKBOARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g. DESKBOARD_LOG_LEVEL
const EnvPrefix = "DESKBOARD"

// Config represents the application configuration
type Config struct {
	Server      ServerConfig `mapstructure:"server" yaml:"server"`
	Client      ClientConfig `mapstructure:"client" yaml:"client"`
	Log         LogConfig    `mapstructure:"log" yaml:"log"`
	KeyMappings KeyMappings  `mapstructure:"key_mappings" yaml:"key_mappings"`
	Theme       Theme        `mapstructure:"theme" yaml:"theme"`
}

// ServerConfig says where the server listens and keeps its data
type ServerConfig struct {
	Socket string `mapstructure:"socket" yaml:"socket"`
	Addr   string `mapstructure:"addr" yaml:"addr,omitempty"`
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

// ClientConfig tunes the board client's calls to the server
type ClientConfig struct {
	// Server overrides Server.Socket with an http(s) base URL
	Server         string        `mapstructure:"server" yaml:"server,omitempty"`
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
	FetchRetries   int           `mapstructure:"fetch_retries" yaml:"fetch_retries"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay" yaml:"retry_base_delay"`
}

// LogConfig selects log verbosity and destination. File "-" logs to stderr.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	dir := dataDir()
	return &Config{
		Server: ServerConfig{
			Socket: filepath.Join(dir, "deskboard.sock"),
			DBPath: filepath.Join(dir, "tickets.db"),
		},
		Client: ClientConfig{
			Timeout:        5 * time.Second,
			FetchRetries:   3,
			RetryBaseDelay: 50 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "logs", "deskboard.log"),
		},
		KeyMappings: DefaultKeyMappings(),
		Theme:       *DefaultTheme(),
	}
}

// dataDir is ~/.deskboard, or a relative .deskboard when there is no home
func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".deskboard"
	}
	return filepath.Join(home, ".deskboard")
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.socket", d.Server.Socket)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.db_path", d.Server.DBPath)
	v.SetDefault("client.server", d.Client.Server)
	v.SetDefault("client.timeout", d.Client.Timeout)
	v.SetDefault("client.fetch_retries", d.Client.FetchRetries)
	v.SetDefault("client.retry_base_delay", d.Client.RetryBaseDelay)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("theme.preset", d.Theme.Preset)
}

// Load loads config from the user's config directory, then applies
// environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		path = ""
	}
	return LoadFile(path)
}

// LoadFile is Load with an explicit config file path. An empty path skips
// the file.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Load theme from DESKBOARD_THEME_FILE if set
	loadThemeFile(&cfg)

	// Fill in any missing values with defaults
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no component can run with
func (c *Config) Validate() error {
	var problems []string
	if c.Server.Socket == "" && c.Server.Addr == "" {
		problems = append(problems, "server.socket or server.addr must be set")
	}
	if c.Client.Timeout <= 0 {
		problems = append(problems, "client.timeout must be positive")
	}
	if c.Client.FetchRetries < 1 {
		problems = append(problems, "client.fetch_retries must be at least 1")
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		problems = append(problems, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func parseLevel(level string) (string, bool) {
	switch l := strings.ToLower(level); l {
	case "debug", "info", "warn", "error":
		return l, true
	}
	return "", false
}

// loadThemeFile merges the theme section of DESKBOARD_THEME_FILE over cfg
func loadThemeFile(cfg *Config) {
	themeFile := os.Getenv(EnvPrefix + "_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme Theme `yaml:"theme"`
	}
	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		cfg.Theme.MergeFrom(themeConfig.Theme)
	}
}

// Save writes the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the config as YAML to path, creating its directory
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// Path returns the path to the config file
func Path() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "deskboard", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "deskboard", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	c.KeyMappings.applyDefaults()
	c.Theme.ApplyDefaults()
}
