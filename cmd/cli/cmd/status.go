package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandwatch/sandwatch/pkg/client"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the storage mount inside the sandbox",
	Long: `Check whether the expected filesystem is mounted at the expected
path inside the supervised sandbox.
Example: sw status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkAPIKey(); err != nil {
			return err
		}

		c := client.NewClient(baseURL, apiKey)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		status, err := c.MountStatus(ctx)
		if err != nil {
			return fmt.Errorf("failed to check mount status: %w", err)
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			data, _ := json.MarshalIndent(status, "", "  ")
			fmt.Println(string(data))
			return nil
		}

		if status.Mounted {
			fmt.Printf("mounted: %s\n", status.Detail)
			return nil
		}
		fmt.Printf("not mounted (%s): %s\n", status.Error, status.Detail)
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("json", false, "Output raw JSON")
	rootCmd.AddCommand(statusCmd)
}
