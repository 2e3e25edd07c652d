package main

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"clipflow/internal/api"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a video for processing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			baseURL, err := ctx.baseURL()
			if err != nil {
				return err
			}
			client, err := ctx.httpClient()
			if err != nil {
				return err
			}
			// Uploads stream the whole file; the callback timeout is too tight.
			client.Timeout = 0

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open video: %w", err)
			}
			defer file.Close()

			body, contentType := multipartBody(filepath.Base(args[0]), file)
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, baseURL+"/upload/", body)
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", contentType)

			resp, err := client.Do(req)
			if err != nil {
				return fmt.Errorf("upload: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return decodeAPIError(resp)
			}

			var ack api.UploadResponse
			if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", ack.Message, ack.Filename)
			return nil
		},
	}
}

// multipartBody streams the file through a pipe so large uploads are not
// buffered in memory.
func multipartBody(filename string, file io.Reader) (io.Reader, string) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	return pr, writer.FormDataContentType()
}

func decodeAPIError(resp *http.Response) error {
	var apiErr api.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
		return fmt.Errorf("%s: %s", resp.Status, apiErr.Error)
	}
	return fmt.Errorf("unexpected status %s", resp.Status)
}
