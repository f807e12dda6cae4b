package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandwatch/sandwatch/pkg/client"
)

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List processes in the sandbox",
	Long: `List the sandbox's process table in display order: running first,
then starting, completed, and failed; newest first within each status.
Example: sw ps --logs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkAPIKey(); err != nil {
			return err
		}

		includeLogs, _ := cmd.Flags().GetBool("logs")

		c := client.NewClient(baseURL, apiKey)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		list, err := c.Processes(ctx, includeLogs)
		if err != nil {
			return fmt.Errorf("failed to list processes: %w", err)
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			data, _ := json.MarshalIndent(list, "", "  ")
			fmt.Println(string(data))
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tSTARTED\tCOMMAND")
		for _, p := range list.Processes {
			started := p.StartTime
			if started == "" {
				started = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Status, started, p.Command)
		}
		return w.Flush()
	},
}

func init() {
	psCmd.Flags().Bool("logs", false, "Include stdout/stderr per process")
	psCmd.Flags().Bool("json", false, "Output raw JSON")
	rootCmd.AddCommand(psCmd)
}
