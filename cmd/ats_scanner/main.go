// Package main provides the entry point for the ATS Scanner CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ats_scanner",
	Short: "ATS Scanner resume scoring service",
	Long:  "ATS Scanner assesses extracted resume text for quality, optionally acquires a job description from a posting URL, and scores the resume against it via the Gemini API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
