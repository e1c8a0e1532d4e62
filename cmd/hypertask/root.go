package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hypertask-ai/hypertask/internal/backend"
	"github.com/hypertask-ai/hypertask/internal/config"
	"github.com/hypertask-ai/hypertask/internal/convstore"
	"github.com/hypertask-ai/hypertask/internal/engine"
	"github.com/hypertask-ai/hypertask/internal/orchestrator"
	"github.com/hypertask-ai/hypertask/internal/policy"
)

var rootCmd = &cobra.Command{
	Use:   "hypertask",
	Short: "Conversational task orchestrator for brand deliverables",
	Long: `HyperTask turns free-text requests into planned, billable work items
and executes them against generation back-ends with automatic fallback.

With no arguments, launches an interactive chat session. Describe what you
need (a logo, slogan, landing page, or pitch deck), answer any clarifying
questions, and execute the plan when it's ready.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// buildOrchestrator wires the full core from configuration. The returned
// cleanup function closes the conversation store.
func buildOrchestrator(cfg *config.Config) (*orchestrator.Orchestrator, func(), error) {
	store, err := buildStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	catalog := backend.DefaultCatalog()
	if cfg.CatalogPath != "" {
		catalog, err = backend.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
	}

	registry := backend.NewRegistry(catalog, buildClients(cfg, catalog))

	policyCfg := policy.Config{BrandAskAfter: cfg.Policy.BrandAskAfter}
	engineCfg := engine.Config{
		Workers:        cfg.Engine.Workers,
		AttemptTimeout: cfg.Engine.AttemptTimeout,
		WarmupDelay:    cfg.Engine.WarmupDelay,
	}

	orch := orchestrator.New(store, registry, policyCfg, engineCfg)
	return orch, func() { store.Close() }, nil
}

func buildStore(cfg *config.Config) (convstore.Store, error) {
	switch cfg.Store.Backend {
	case "", "memory":
		return convstore.NewMemory(), nil
	case "sqlite":
		path := cfg.Store.Path
		if path == "" {
			return nil, fmt.Errorf("store.path is required for the sqlite backend")
		}
		return convstore.Open(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q (want memory or sqlite)", cfg.Store.Backend)
	}
}

// buildClients creates the remote clients that are configured; tiers
// without credentials stay unconfigured and the engine falls through to
// the next tier.
func buildClients(cfg *config.Config, catalog *backend.Catalog) backend.Clients {
	var clients backend.Clients

	textModel := cfg.Anthropic.Model
	if textModel == "" {
		textModel = catalog.Entry("copy").PrimaryModel
	}
	if cfg.Anthropic.APIKey != "" || cfg.Anthropic.UseAWSBedrock || os.Getenv("ANTHROPIC_API_KEY") != "" {
		anthropic, err := backend.NewAnthropicText(backend.AnthropicConfig{
			Model:         textModel,
			APIKey:        cfg.Anthropic.APIKey,
			UseAWSBedrock: cfg.Anthropic.UseAWSBedrock,
			AWSRegion:     cfg.Anthropic.AWSRegion,
			AWSProfile:    cfg.Anthropic.AWSProfile,
		})
		if err == nil {
			clients.PrimaryText = anthropic
		}
	}

	openaiModel := cfg.OpenAI.Model
	if openaiModel == "" {
		openaiModel = catalog.Entry("copy").SecondaryModel
	}
	if cfg.OpenAI.APIKey != "" || os.Getenv("OPENAI_API_KEY") != "" {
		openai, err := backend.NewOpenAIText(backend.OpenAIConfig{
			Model:   openaiModel,
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
		})
		if err == nil {
			clients.SecondaryText = openai
		}
	}

	if cfg.Image.Endpoint != "" {
		logo := catalog.Entry("logo")
		clients.PrimaryImage = backend.NewImageClient(backend.ImageConfig{
			Endpoint: cfg.Image.Endpoint,
			Model:    logo.PrimaryModel,
			Token:    cfg.Image.Token,
		})
		clients.SecondaryImage = backend.NewImageClient(backend.ImageConfig{
			Endpoint: cfg.Image.Endpoint,
			Model:    logo.SecondaryModel,
			Token:    cfg.Image.Token,
		})
	}

	return clients
}
