package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. EVE_CHARACTER_NAME
const EnvPrefix = "EVE"

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Character CharacterConfig `mapstructure:"character"`
	API       APIConfig       `mapstructure:"api"`
	Report    ReportConfig    `mapstructure:"report"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`

	// File is the config file that was read, empty if none was found
	File string `mapstructure:"-"`
}

// Override sets a single key after file and environment were applied.
// Used for command-line flags.
type Override struct {
	Key   string
	Value interface{}
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Overrides (command-line flags)
// 2. Environment variables (EVE_ prefix, .env file loaded first)
// 3. Config file (config.yaml)
// 4. Defaults (lowest priority)
func LoadConfig(configPath string, overrides ...Override) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".eve-wallet"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so AutomaticEnv can see it during Unmarshal
	registerDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - we'll use env vars and defaults
	}

	for _, o := range overrides {
		v.Set(o.Key, o.Value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	// Apply defaults for any values explicitly set to empty
	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
