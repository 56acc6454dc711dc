package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"streamcompanion/tracker"
)

const (
	DefaultConfigFile = "companion.yaml"
	DefaultEnvFile    = ".env"
	DefaultWebAddr    = "127.0.0.1:8080"
	DefaultLogLevel   = "info"
)

// Environment variables that override values from the config file.
const (
	EnvStatsFile = "COMPANION_STATS_FILE"
	EnvWebAddr   = "COMPANION_WEB_ADDR"
	EnvLogLevel  = "COMPANION_LOG_LEVEL"
)

type Config struct {
	StatsFile string `yaml:"statsFile"`
	WebAddr   string `yaml:"webAddr"`
	LogLevel  string `yaml:"logLevel"`
}

func Default() Config {
	return Config{
		StatsFile: tracker.DefaultStatsFile,
		WebAddr:   DefaultWebAddr,
		LogLevel:  DefaultLogLevel,
	}
}

// Load builds the configuration from defaults, then the YAML file at
// configPath, then the environment. The env file is loaded into the process
// environment first without overriding variables that are already set.
// Missing files are not errors.
func Load(configPath, envPath string) (Config, error) {
	if envPath != "" {
		if err := loadEnvFile(envPath); err != nil {
			return Config{}, err
		}
	}

	cfg := Default()
	if configPath != "" {
		if err := cfg.mergeFile(configPath); err != nil {
			return Config{}, err
		}
	}
	cfg.mergeEnv()
	return cfg, nil
}

func loadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrap(err, fmt.Sprintf("Error loading env file [%s]", path))
	}
	return nil
}

func (c *Config) mergeFile(path string) error {
	bytes, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("Error reading config file [%s]", path))
	}

	var data Config
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return errors.Wrap(err, fmt.Sprintf("Error parsing config YAML file [%s]", path))
	}

	if data.StatsFile != "" {
		c.StatsFile = data.StatsFile
	}
	if data.WebAddr != "" {
		c.WebAddr = data.WebAddr
	}
	if data.LogLevel != "" {
		c.LogLevel = data.LogLevel
	}
	return nil
}

func (c *Config) mergeEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvStatsFile)); v != "" {
		c.StatsFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvWebAddr)); v != "" {
		c.WebAddr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
}
