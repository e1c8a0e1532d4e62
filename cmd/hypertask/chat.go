package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hypertask-ai/hypertask/internal/config"
	"github.com/hypertask-ai/hypertask/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func runChat() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	orch, cleanup, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.Anthropic.APIKey == "" && !cfg.Anthropic.UseAWSBedrock && os.Getenv("ANTHROPIC_API_KEY") == "" {
		color.Yellow("No remote credentials configured; deliverables will use local templates.")
	}

	return tui.Run(orch)
}
