package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/fosrl/posture/internal/logger"
	"github.com/fosrl/posture/internal/osquery"
	"github.com/fosrl/posture/internal/platform"
	"github.com/spf13/viper"
)

// Output formats accepted by the check command.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

type Config struct {
	// All operations must happen to the configuration file,
	// so they must operate on separate Viper instances.
	v *viper.Viper

	LogLevel   logger.LogLevel `mapstructure:"log_level" json:"log_level"`
	EnginePath string          `mapstructure:"engine_path" json:"engine_path"`
	Timeout    time.Duration   `mapstructure:"timeout" json:"timeout"`
	Parallel   bool            `mapstructure:"parallel" json:"parallel"`
	Output     string          `mapstructure:"output" json:"output"`
	Platform   string          `mapstructure:"platform" json:"platform"`
}

func newConfigViper(dir string) *viper.Viper {
	v := viper.New()

	// Bind to environment variables of the same name
	v.SetEnvPrefix("POSTURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configFile := filepath.Join(dir, "config.json")
	v.SetConfigFile(configFile)
	v.SetConfigType("json")

	// Defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("engine_path", osquery.DefaultEngine)
	v.SetDefault("timeout", "0s")
	v.SetDefault("parallel", false)
	v.SetDefault("output", OutputText)
	v.SetDefault("platform", "")

	return v
}

// LoadConfig reads config.json from the posture config directory. A
// missing file yields the defaults.
func LoadConfig() (*Config, error) {
	dir, err := GetPostureConfigDir()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(dir)
}

// LoadConfigFrom reads config.json from dir.
func LoadConfigFrom(dir string) (*Config, error) {
	v := newConfigViper(dir)

	cfg := Config{v: v}

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Output = strings.ToLower(cfg.Output)

	return &cfg, nil
}

// Validate checks every field and normalizes the log level.
func (c *Config) Validate() error {
	level, err := logger.ParseLogLevel(string(c.LogLevel))
	if err != nil {
		return err
	}
	c.LogLevel = level

	if err := ValidateOutput(c.Output); err != nil {
		return err
	}

	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout: %v", c.Timeout)
	}

	if c.Platform != "" {
		if _, err := platform.Parse(c.Platform); err != nil {
			return err
		}
	}

	return nil
}

// ValidateOutput checks an output format name.
func ValidateOutput(output string) error {
	switch output {
	case OutputText, OutputJSON, OutputYAML:
		return nil
	default:
		return fmt.Errorf("invalid output format: %q (valid: text, json, yaml)", output)
	}
}

// GetPostureConfigDir returns the path to the posture config directory
func GetPostureConfigDir() (string, error) {
	homeDir, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "posture"), nil
}

// userHomeDir returns the home directory of the original user
// (the user who invoked the command, not the effective user when running with sudo).
// osquery often needs root to read every table, so config must resolve the same
// way with and without sudo.
func userHomeDir() (string, error) {
	// Check if we're running under sudo - SUDO_USER contains the original user
	sudoUser := os.Getenv("SUDO_USER")
	if sudoUser != "" {
		u, err := user.Lookup(sudoUser)
		if err != nil {
			return "", fmt.Errorf("failed to lookup original user %s: %w", sudoUser, err)
		}
		return u.HomeDir, nil
	}

	return os.UserHomeDir()
}
