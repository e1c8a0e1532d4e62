// Package config handles configuration loading for HyperTask. It supports
// XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for HyperTask.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Policy    PolicyConfig    `mapstructure:"policy"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Image     ImageConfig     `mapstructure:"image"`
	// CatalogPath optionally points at a capability catalog YAML file.
	CatalogPath string `mapstructure:"catalog_path"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// StoreConfig selects the conversation store backend.
type StoreConfig struct {
	// Backend is "memory" or "sqlite".
	Backend string `mapstructure:"backend"`
	// Path is the SQLite database path when Backend is "sqlite".
	Path string `mapstructure:"path"`
}

// PolicyConfig holds dialogue policy tunables.
type PolicyConfig struct {
	// BrandAskAfter is the user-message threshold before the policy asks
	// for the brand name outright.
	BrandAskAfter int `mapstructure:"brand_ask_after"`
}

// EngineConfig holds execution engine limits.
type EngineConfig struct {
	Workers        int           `mapstructure:"workers"`
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout"`
	WarmupDelay    time.Duration `mapstructure:"warmup_delay"`
}

// AnthropicConfig holds primary text back-end settings.
type AnthropicConfig struct {
	APIKey        string `mapstructure:"api_key"`
	Model         string `mapstructure:"model"`
	UseAWSBedrock bool   `mapstructure:"use_aws_bedrock"`
	AWSRegion     string `mapstructure:"aws_region"`
	AWSProfile    string `mapstructure:"aws_profile"`
}

// OpenAIConfig holds secondary text back-end settings.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// ImageConfig holds image back-end settings. Model names come from the
// capability catalog; only the endpoint and token live here.
type ImageConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Token    string `mapstructure:"token"`
}

// Load loads configuration.
// Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY, OPENAI_API_KEY, HF_API_TOKEN)
// 2. Project config (.hypertask.yaml in current directory or a parent)
// 3. User config (~/.config/hypertask/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("image.token", "HF_API_TOKEN")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)
	cfg.OpenAI.APIKey = os.ExpandEnv(cfg.OpenAI.APIKey)
	cfg.Image.Token = os.ExpandEnv(cfg.Image.Token)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific file.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the user config file.
func Save(cfg *Config) error {
	dir := getUserConfigDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, "config.yaml"))

	v.Set("server.port", cfg.Server.Port)
	v.Set("store.backend", cfg.Store.Backend)
	v.Set("store.path", cfg.Store.Path)
	v.Set("policy.brand_ask_after", cfg.Policy.BrandAskAfter)
	v.Set("engine.workers", cfg.Engine.Workers)
	v.Set("engine.attempt_timeout", cfg.Engine.AttemptTimeout.String())
	v.Set("engine.warmup_delay", cfg.Engine.WarmupDelay.String())
	v.Set("anthropic.api_key", cfg.Anthropic.APIKey)
	v.Set("anthropic.model", cfg.Anthropic.Model)
	v.Set("anthropic.use_aws_bedrock", cfg.Anthropic.UseAWSBedrock)
	v.Set("anthropic.aws_region", cfg.Anthropic.AWSRegion)
	v.Set("anthropic.aws_profile", cfg.Anthropic.AWSProfile)
	v.Set("openai.api_key", cfg.OpenAI.APIKey)
	v.Set("openai.model", cfg.OpenAI.Model)
	v.Set("openai.base_url", cfg.OpenAI.BaseURL)
	v.Set("image.endpoint", cfg.Image.Endpoint)
	v.Set("image.token", cfg.Image.Token)
	v.Set("catalog_path", cfg.CatalogPath)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)

	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.path", "")

	v.SetDefault("policy.brand_ask_after", 2)

	v.SetDefault("engine.workers", 4)
	v.SetDefault("engine.attempt_timeout", "45s")
	v.SetDefault("engine.warmup_delay", "2s")

	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "")
	v.SetDefault("anthropic.use_aws_bedrock", false)

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "")
	v.SetDefault("openai.base_url", "")

	v.SetDefault("image.endpoint", "https://api-inference.huggingface.co/models")
	v.SetDefault("image.token", "")

	v.SetDefault("catalog_path", "")
}

// getUserConfigDir returns the XDG config directory for HyperTask.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "hypertask")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "hypertask")
	}
	return filepath.Join(home, ".config", "hypertask")
}

// findProjectConfig searches for .hypertask.yaml in the current directory
// and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		configPath := filepath.Join(cwd, ".hypertask.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}
	return ""
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8000},
		Store:  StoreConfig{Backend: "memory"},
		Policy: PolicyConfig{BrandAskAfter: 2},
		Engine: EngineConfig{
			Workers:        4,
			AttemptTimeout: 45 * time.Second,
			WarmupDelay:    2 * time.Second,
		},
		Image: ImageConfig{Endpoint: "https://api-inference.huggingface.co/models"},
	}
}
