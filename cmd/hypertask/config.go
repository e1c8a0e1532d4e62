package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/hypertask-ai/hypertask/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify HyperTask configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/hypertask/config.yaml
Project-specific overrides can be placed in .hypertask.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	fmt.Printf("server.port: %d\n", cfg.Server.Port)
	fmt.Printf("store.backend: %s\n", cfg.Store.Backend)
	fmt.Printf("store.path: %s\n", cfg.Store.Path)
	fmt.Printf("policy.brand_ask_after: %d\n", cfg.Policy.BrandAskAfter)
	fmt.Printf("engine.workers: %d\n", cfg.Engine.Workers)
	fmt.Printf("engine.attempt_timeout: %s\n", cfg.Engine.AttemptTimeout)
	fmt.Printf("engine.warmup_delay: %s\n", cfg.Engine.WarmupDelay)
	fmt.Printf("anthropic.api_key: %s\n", maskKey(cfg.Anthropic.APIKey))
	fmt.Printf("anthropic.model: %s\n", cfg.Anthropic.Model)
	fmt.Printf("anthropic.use_aws_bedrock: %t\n", cfg.Anthropic.UseAWSBedrock)
	fmt.Printf("openai.api_key: %s\n", maskKey(cfg.OpenAI.APIKey))
	fmt.Printf("openai.model: %s\n", cfg.OpenAI.Model)
	fmt.Printf("image.endpoint: %s\n", cfg.Image.Endpoint)
	fmt.Printf("image.token: %s\n", maskKey(cfg.Image.Token))
	fmt.Printf("catalog_path: %s\n", cfg.CatalogPath)
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	return "****"
}

// displayConfigKey prints the value for a single key.
func displayConfigKey(cfg *config.Config, key string) {
	switch key {
	case "server.port":
		fmt.Println(cfg.Server.Port)
	case "store.backend":
		fmt.Println(cfg.Store.Backend)
	case "store.path":
		fmt.Println(cfg.Store.Path)
	case "policy.brand_ask_after":
		fmt.Println(cfg.Policy.BrandAskAfter)
	case "engine.workers":
		fmt.Println(cfg.Engine.Workers)
	case "engine.attempt_timeout":
		fmt.Println(cfg.Engine.AttemptTimeout)
	case "engine.warmup_delay":
		fmt.Println(cfg.Engine.WarmupDelay)
	case "anthropic.model":
		fmt.Println(cfg.Anthropic.Model)
	case "openai.model":
		fmt.Println(cfg.OpenAI.Model)
	case "image.endpoint":
		fmt.Println(cfg.Image.Endpoint)
	case "catalog_path":
		fmt.Println(cfg.CatalogPath)
	default:
		fmt.Fprintf(os.Stderr, "Unknown config key: %s\n", key)
		os.Exit(1)
	}
}

// setConfigKey updates a single key and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	var err error
	switch key {
	case "server.port":
		cfg.Server.Port, err = strconv.Atoi(value)
	case "store.backend":
		cfg.Store.Backend = value
	case "store.path":
		cfg.Store.Path = value
	case "policy.brand_ask_after":
		cfg.Policy.BrandAskAfter, err = strconv.Atoi(value)
	case "engine.workers":
		cfg.Engine.Workers, err = strconv.Atoi(value)
	case "engine.attempt_timeout":
		cfg.Engine.AttemptTimeout, err = time.ParseDuration(value)
	case "engine.warmup_delay":
		cfg.Engine.WarmupDelay, err = time.ParseDuration(value)
	case "anthropic.api_key":
		cfg.Anthropic.APIKey = value
	case "anthropic.model":
		cfg.Anthropic.Model = value
	case "openai.api_key":
		cfg.OpenAI.APIKey = value
	case "openai.model":
		cfg.OpenAI.Model = value
	case "image.endpoint":
		cfg.Image.Endpoint = value
	case "image.token":
		cfg.Image.Token = value
	case "catalog_path":
		cfg.CatalogPath = value
	default:
		fmt.Fprintf(os.Stderr, "Unknown config key: %s\n", key)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid value for %s: %v\n", key, err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Set %s = %s\n", key, value)
}
