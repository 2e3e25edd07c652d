package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"clipflow/internal/api"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show coordinator status",
		RunE: func(cmd *cobra.Command, args []string) error {
			baseURL, err := ctx.baseURL()
			if err != nil {
				return err
			}
			client, err := ctx.httpClient()
			if err != nil {
				return err
			}

			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, baseURL+"/api/status", nil)
			if err != nil {
				return err
			}
			resp, err := client.Do(req)
			if err != nil {
				return fmt.Errorf("fetch status: %w", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return decodeAPIError(resp)
			}

			var status api.StatusResponse
			if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSONOutput(out, status)
			}

			fmt.Fprintf(out, "Coordinator: running (pid %d)\n", status.PID)
			fmt.Fprintf(out, "Channel:     %s\n", status.Channel)
			fmt.Fprintf(out, "Observers:   %d\n", status.Observers)
			fmt.Fprintf(out, "Videos:      %d total, %d pending, %d partial, %d complete\n",
				status.Registry.Total, status.Registry.Pending, status.Registry.Partial, status.Registry.Complete)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit raw JSON")
	return cmd
}
