package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

// Link styles accepted in link_style
const (
	LinkStyleCosma  = "cosma"
	LinkStyleZettlr = "zettlr"
)

// EnvPrefix prefixes environment overrides, e.g. ORGROAM2COSMA_LINK_STYLE
const EnvPrefix = "ORGROAM2COSMA"

// Config represents the orgroam2cosma defaults. Command line flags override
// every field.
type Config struct {
	LinkStyle    string `mapstructure:"link_style"`
	CreationDate bool   `mapstructure:"creation_date"`
	Verbose      bool   `mapstructure:"verbose"`
	LogFile      string `mapstructure:"log_file"`
	IndexFile    string `mapstructure:"index_file"`
	ReuseIDs     bool   `mapstructure:"reuse_ids"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		LinkStyle:    LinkStyleCosma,
		CreationDate: false,
		Verbose:      false,
		LogFile:      "",
		IndexFile:    "_title2id.csv",
		ReuseIDs:     false,
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to XDG if home dir unavailable
		return filepath.Join(xdg.ConfigHome, "orgroam2cosma", "config.json")
	}
	return filepath.Join(home, ".config", "orgroam2cosma", "config.json")
}

// Load reads configuration from ConfigPath
func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads configuration from path. A missing file yields the defaults;
// environment variables override file values.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if !isNotExist(err) {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Expand paths
	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to ConfigPath
func (c *Config) Save() error {
	return c.SaveFile(ConfigPath())
}

// SaveFile writes configuration as JSON to path
func (c *Config) SaveFile(path string) error {
	configDir := filepath.Dir(path)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.Set("link_style", c.LinkStyle)
	v.Set("creation_date", c.CreationDate)
	v.Set("verbose", c.Verbose)
	v.Set("log_file", c.LogFile)
	v.Set("index_file", c.IndexFile)
	v.Set("reuse_ids", c.ReuseIDs)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LinkStyle, validation.Required, validation.In(LinkStyleCosma, LinkStyleZettlr)),
		validation.Field(&c.IndexFile, validation.Required, validation.By(plainFilename)),
	)
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.LogFile, err = ExpandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// ExpandPath expands ~ to home directory and converts to absolute path
func ExpandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	// Convert to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")

	defaults := DefaultConfig()
	v.SetDefault("link_style", defaults.LinkStyle)
	v.SetDefault("creation_date", defaults.CreationDate)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("index_file", defaults.IndexFile)
	v.SetDefault("reuse_ids", defaults.ReuseIDs)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	return v
}

// plainFilename rejects index file names that would escape the output directory
func plainFilename(value interface{}) error {
	name, _ := value.(string)
	if name != filepath.Base(name) {
		return errors.New("must be a file name without directories")
	}
	return nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}
