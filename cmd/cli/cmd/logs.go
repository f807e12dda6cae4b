package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandwatch/sandwatch/pkg/client"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Fetch the gateway worker's logs",
	Long: `Locate the gateway worker process in the sandbox and print its
current stdout/stderr snapshot.
Example: sw logs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkAPIKey(); err != nil {
			return err
		}

		c := client.NewClient(baseURL, apiKey)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		answer, err := c.GatewayLogs(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch gateway logs: %w", err)
		}

		if !answer.Found {
			fmt.Println("no gateway process")
			return nil
		}
		if answer.LogsError != "" {
			return fmt.Errorf("gateway process %s found but logs unavailable: %s",
				answer.Process.ID, answer.LogsError)
		}

		if answer.Stdout != "" {
			fmt.Print(answer.Stdout)
		}
		if answer.Stderr != "" {
			fmt.Fprint(cmd.ErrOrStderr(), answer.Stderr)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
}
