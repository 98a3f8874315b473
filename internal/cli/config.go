// Package cli carries the configuration and presentation glue shared by the
// pinion commands.
package cli

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/pinionworks/pinion/internal/filings"
)

// Config holds the pipeline settings.
type Config struct {
	// UserAgent identifies the caller to EDGAR. Required for live fetches.
	UserAgent string `mapstructure:"user_agent"`

	// BaseURL overrides the EDGAR host (tests, mirrors).
	BaseURL string `mapstructure:"base_url"`

	// StepLimit caps machine loop iterations.
	StepLimit int `mapstructure:"step_limit"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	Redis RedisConfig `mapstructure:"redis"`

	// Rules is the extraction rule set; DefaultRules applies when empty.
	Rules filings.RuleSet `mapstructure:"-"`
}

// RedisConfig locates the fact store.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Load reads configuration from an optional YAML file and PINION_* env vars.
func Load(path string) (Config, error) {
	v := viper.New()

	// Every key needs a default: AutomaticEnv only resolves keys viper
	// already knows about, so a default-less key could not be set from the
	// environment.
	v.SetDefault("user_agent", "")
	v.SetDefault("base_url", "")
	v.SetDefault("step_limit", 64)
	v.SetDefault("log_level", "info")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetEnvPrefix("PINION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	// Rules carry regexp patterns; decode them strictly so a typoed key
	// fails loudly instead of silently dropping a rule.
	if raw := v.Get("rules"); raw != nil {
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &cfg.Rules,
			ErrorUnused: true,
		})
		if err != nil {
			return Config{}, err
		}
		if err := dec.Decode(raw); err != nil {
			return Config{}, fmt.Errorf("invalid rules in config: %w", err)
		}
		if err := cfg.Rules.Validate(); err != nil {
			return Config{}, fmt.Errorf("invalid rules in config: %w", err)
		}
	}

	if len(cfg.Rules) == 0 {
		cfg.Rules = filings.DefaultRules()
	}

	return cfg, nil
}
