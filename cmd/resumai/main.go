// Package main provides the entry point for the ResumAI CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumai",
	Short: "ResumAI resume analysis service and CLI",
	Long:  "ResumAI extracts text from resume files, runs an AI recruiter audit over it, and keeps per-user history behind a REST API with a local fallback store.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
