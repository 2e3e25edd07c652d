package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"clipflow/internal/api"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream status events as they happen",
		RunE: func(cmd *cobra.Command, args []string) error {
			baseURL, err := ctx.baseURL()
			if err != nil {
				return err
			}

			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, baseURL+"/events", nil)
			if err != nil {
				return err
			}
			req.Header.Set("Accept", "text/event-stream")

			// The stream stays open until interrupted, so no client timeout.
			resp, err := (&http.Client{}).Do(req)
			if err != nil {
				return fmt.Errorf("connect event stream: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return decodeAPIError(resp)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Watching for status events (Ctrl+C to stop)...")

			scanner := bufio.NewScanner(resp.Body)
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			for scanner.Scan() {
				line := scanner.Text()
				if !strings.HasPrefix(line, "data: ") {
					continue
				}

				var event api.Event
				if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event); err != nil {
					fmt.Fprintf(out, "unparseable event: %s\n", line)
					continue
				}
				printEvent(out, event)
			}
			if err := scanner.Err(); err != nil && cmd.Context().Err() == nil {
				return fmt.Errorf("event stream: %w", err)
			}
			return nil
		},
	}
}

func printEvent(out io.Writer, event api.Event) {
	switch event.Status {
	case api.StatusMetadataExtracted:
		fmt.Fprintf(out, "%-14s %s %s\n", event.Status, event.Filename, formatDescriptor(event.Metadata))
	default:
		fmt.Fprintf(out, "%-14s %s\n", event.Status, event.Filename)
	}
}

func formatDescriptor(descriptor api.Descriptor) string {
	if len(descriptor) == 0 {
		return ""
	}
	parts := make([]string, 0, len(descriptor))
	for _, key := range []string{"resolution", "fps", "duration"} {
		if value, ok := descriptor[key]; ok {
			parts = append(parts, fmt.Sprintf("%s=%v", key, value))
		}
	}
	if len(parts) == 0 {
		encoded, err := json.Marshal(descriptor)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
	return strings.Join(parts, " ")
}
