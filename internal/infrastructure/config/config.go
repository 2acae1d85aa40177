package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override (HS_SERVER_ADDRESS, HS_GAME_ADMIN, ...)
const EnvPrefix = "HS"

// Config is the process configuration: where state lives and how the server, logs and
// metrics behave. Game rules live in the tuning document, not here.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
	Server   ServerConfig   `mapstructure:"server"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// LoadConfig resolves the configuration. Precedence, highest first: HS_* environment
// variables (and DATABASE_URL), the config file, built-in defaults. An explicit path must
// exist; without one a missing config.yaml is fine.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, dir := range searchPaths {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	if url, ok := os.LookupEnv("DATABASE_URL"); ok && url != "" {
		v.Set("database.url", url)
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadConfigOrDefault is LoadConfig for commands that can run without a usable config:
// any error yields the built-in defaults.
func LoadConfigOrDefault(configPath string) *Config {
	if cfg, err := LoadConfig(configPath); err == nil {
		return cfg
	}
	return Defaults()
}

// Defaults returns the configuration used when nothing is configured
func Defaults() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		panic(fmt.Sprintf("built-in config defaults do not decode: %v", err))
	}
	return cfg
}

var searchPaths = []string{".", "./configs", "/etc/homestead"}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
