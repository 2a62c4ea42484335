// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable override, e.g. RESUME_BUILDER_SERVER_PORT
const EnvPrefix = "RESUME_BUILDER"

// Config is the full application configuration. Values come from, in increasing
// precedence: defaults, an optional config file, environment variables, and CLI flags.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Document  DocumentConfig  `mapstructure:"document"`
	Export    ExportConfig    `mapstructure:"export"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"min=1,max=65535"`
}

// LLMConfig selects the chat model provider
type LLMConfig struct {
	Provider string `mapstructure:"provider" validate:"oneof=gemini anthropic"`
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url" validate:"omitempty,url"`
}

// AssistantConfig configures assistant turns
type AssistantConfig struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// DocumentConfig selects the starting document
type DocumentConfig struct {
	Seed       string `mapstructure:"seed" validate:"oneof=empty example"`
	Path       string `mapstructure:"path"`
	Template   string `mapstructure:"template" validate:"omitempty,oneof=modern classic"`
	ThemeColor string `mapstructure:"theme_color" validate:"omitempty,hexcolor"`
}

// ExportConfig selects the print engine
type ExportConfig struct {
	Engine     string        `mapstructure:"engine" validate:"oneof=pdf browser"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gt=0"`
	ChromePath string        `mapstructure:"chrome_path"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// RateLimitConfig throttles assistant requests per client
type RateLimitConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	ChatPerMinute int  `mapstructure:"chat_per_minute" validate:"gte=0"`
	Burst         int  `mapstructure:"burst" validate:"gte=0"`
}

// SetDefaults registers every key with its default so environment overrides
// are picked up by Unmarshal
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("assistant.timeout", 60*time.Second)
	v.SetDefault("document.seed", "example")
	v.SetDefault("document.path", "")
	v.SetDefault("document.template", "")
	v.SetDefault("document.theme_color", "")
	v.SetDefault("export.engine", "pdf")
	v.SetDefault("export.timeout", 30*time.Second)
	v.SetDefault("export.chrome_path", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.chat_per_minute", 10)
	v.SetDefault("ratelimit.burst", 3)
}

// Load reads configuration into v. An empty path looks for resume-builder.yaml
// in the current directory and tolerates its absence; an explicit path must exist.
// A nil v uses a fresh viper instance.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("resume-builder")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("'%s' failed '%s'", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Document.Path != "" {
		if _, err := os.Stat(c.Document.Path); os.IsNotExist(err) {
			return fmt.Errorf("config error: document file not found: %s", c.Document.Path)
		}
	}
	return nil
}

// ResolveAPIKey returns the configured key, falling back to the provider's
// conventional environment variable
func (c *Config) ResolveAPIKey() string {
	if key := strings.TrimSpace(c.LLM.APIKey); key != "" {
		return key
	}
	switch c.LLM.Provider {
	case "anthropic":
		return strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	default:
		return strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
}
