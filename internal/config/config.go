package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"kundli/internal/domain"
)

const (
	EnvPrefix       = "KUNDLI"
	DefaultProvider = "meeus"
	DefaultTimezone = "+05:30"
)

// Provider names accepted by the provider key
var Providers = []string{"meeus", "swetest", "static"}

// Config holds runtime configuration shared by the CLI, TUI and MCP server.
// Values are populated from .kundli.yaml, KUNDLI_* env vars, and CLI flags.
type Config struct {
	Provider    string        `mapstructure:"provider"`
	Ayanamsa    string        `mapstructure:"ayanamsa"`
	Timezone    string        `mapstructure:"timezone"`
	HouseSystem string        `mapstructure:"house_system"`
	SwetestPath string        `mapstructure:"swetest_path"`
	EphePath    string        `mapstructure:"ephe_path"`
	StaticFile  string        `mapstructure:"static_file"`
	DBPath      string        `mapstructure:"db_path"`
	ExportDir   string        `mapstructure:"export_dir"`
	Cache       bool          `mapstructure:"cache"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Verbose     bool          `mapstructure:"verbose"`
}

// Init points viper at the config file and environment. An empty cfgFile
// searches for .kundli.yaml in the working directory and then $HOME.
// A missing config file is not an error.
func Init(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".kundli")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("provider", DefaultProvider)
	viper.SetDefault("ayanamsa", string(domain.AyanamsaLahiri))
	viper.SetDefault("timezone", DefaultTimezone)
	viper.SetDefault("house_system", string(domain.HouseSystemWholeSign))
	viper.SetDefault("swetest_path", "swetest")
	viper.SetDefault("ephe_path", "")
	viper.SetDefault("static_file", "")
	viper.SetDefault("db_path", "")
	viper.SetDefault("export_dir", "")
	viper.SetDefault("cache", true)
	viper.SetDefault("timeout", 10*time.Second)
	viper.SetDefault("verbose", false)
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	setDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings
func (c Config) Validate() error {
	known := false
	for _, p := range Providers {
		if c.Provider == p {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown provider %q (want one of %s)", c.Provider, strings.Join(Providers, ", "))
	}
	if c.Provider == "static" && c.StaticFile == "" {
		return fmt.Errorf("provider static requires static_file")
	}
	if _, err := domain.ParseAyanamsa(c.Ayanamsa); err != nil {
		return err
	}
	switch domain.HouseSystem(strings.ToUpper(c.HouseSystem)) {
	case domain.HouseSystemWholeSign, domain.HouseSystemPlacidus, domain.HouseSystemEqual:
	default:
		return fmt.Errorf("unknown house system %q", c.HouseSystem)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}
