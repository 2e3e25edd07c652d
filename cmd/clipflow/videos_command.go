package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"clipflow/internal/api"
)

func newVideosCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "videos [name]",
		Short: "List tracked videos or show one entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			baseURL, err := ctx.baseURL()
			if err != nil {
				return err
			}
			client, err := ctx.httpClient()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				return showVideo(cmd, client, baseURL, args[0], jsonOutput)
			}
			return listVideos(cmd, client, baseURL, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit raw JSON")
	return cmd
}

func listVideos(cmd *cobra.Command, client *http.Client, baseURL string, jsonOutput bool) error {
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, baseURL+"/api/videos", nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("list videos: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}

	var list api.VideoListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSONOutput(out, list)
	}
	if len(list.Videos) == 0 {
		fmt.Fprintln(out, "No videos tracked yet.")
		return nil
	}

	rows := make([][]string, 0, len(list.Videos))
	for _, video := range list.Videos {
		rows = append(rows, []string{
			video.Name,
			flagMark(video.Enhanced),
			flagMark(video.MetadataComplete),
			videoSummary(video),
		})
	}

	if isTerminal() {
		fmt.Fprintln(out, renderTable(
			[]string{"Name", "Enhanced", "Metadata", "Details"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
		))
		return nil
	}
	for _, row := range rows {
		fmt.Fprintln(out, strings.Join(row, "\t"))
	}
	return nil
}

func showVideo(cmd *cobra.Command, client *http.Client, baseURL, name string, jsonOutput bool) error {
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, baseURL+"/api/videos/"+name, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch video: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}

	var single api.VideoResponse
	if err := json.NewDecoder(resp.Body).Decode(&single); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSONOutput(out, single)
	}

	video := single.Video
	fmt.Fprintf(out, "Name:      %s\n", video.Name)
	fmt.Fprintf(out, "Enhanced:  %s\n", flagMark(video.Enhanced))
	fmt.Fprintf(out, "Metadata:  %s\n", flagMark(video.MetadataComplete))
	if summary := videoSummary(video); summary != "" {
		fmt.Fprintf(out, "Details:   %s\n", summary)
	}
	if video.CreatedAt != "" {
		fmt.Fprintf(out, "Created:   %s\n", video.CreatedAt)
	}
	if video.UpdatedAt != "" {
		fmt.Fprintf(out, "Updated:   %s\n", video.UpdatedAt)
	}
	return nil
}

func videoSummary(video api.Video) string {
	return formatDescriptor(video.Metadata)
}

func flagMark(set bool) string {
	if set {
		return "yes"
	}
	return "-"
}

func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
