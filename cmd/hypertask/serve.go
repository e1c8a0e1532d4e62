package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hypertask-ai/hypertask/internal/config"
	"github.com/hypertask-ai/hypertask/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		orch, cleanup, err := buildOrchestrator(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		// Log config file changes; a restart applies them.
		if path := config.GetUserConfigPath(); fileExists(path) {
			w, err := config.Watch(path, func(*config.Config) {
				log.Printf("[serve] config file changed; restart to apply")
			})
			if err == nil {
				defer w.Close()
			}
		}

		color.Green("HyperTask API listening on port %d", cfg.Server.Port)
		return server.New(orch).ListenAndServe(cfg.Server.Port)
	},
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides config)")
}
