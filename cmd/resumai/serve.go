package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thanush/resumai/internal/config"
	"github.com/thanush/resumai/internal/server"
	"github.com/thanush/resumai/internal/storage"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Start the ResumAI HTTP API server",
	Long:  "Starts the REST API for auth and analysis history. Uses PostgreSQL when DATABASE_URL is set and reachable, an in-memory store otherwise.",
	RunE:  runServeCmd,
}

var servePort int

func init() {
	serveCommand.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (defaults to PORT env var or 4000)")
	rootCmd.AddCommand(serveCommand)
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	if servePort != 0 {
		cfg.Port = servePort
	}

	databaseURL := ""
	if cfg.HasDatabase() {
		databaseURL = cfg.DatabaseURL
	}
	store := storage.Open(context.Background(), databaseURL)
	defer store.Close()

	srv, err := server.New(server.Config{Port: cfg.Port, Store: store})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
