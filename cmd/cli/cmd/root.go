package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	apiKey  string
)

var rootCmd = &cobra.Command{
	Use:   "sw",
	Short: "sandwatch CLI - Inspect the supervised sandbox from the command line",
	Long: `sandwatch CLI (sw) talks to a running sandwatch server.

It provides commands to check the storage mount, list the sandbox's
process table, and fetch the gateway worker's logs.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", getEnvOrDefault("SANDWATCH_API_URL", "http://localhost:8080"), "sandwatch API base URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", os.Getenv("SANDWATCH_API_KEY"), "sandwatch API key")
}

func getEnvOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func checkAPIKey() error {
	if apiKey == "" {
		return fmt.Errorf("API key is required. Set SANDWATCH_API_KEY environment variable or use --api-key flag")
	}
	return nil
}
