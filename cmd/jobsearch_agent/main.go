// Package main provides the entry point for the job-search assistant.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobsearch_agent",
	Short: "Personal job-search assistant",
	Long:  "Job-search assistant that scores postings against a candidate profile, drafts application documents, and ingests new postings from the web.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
