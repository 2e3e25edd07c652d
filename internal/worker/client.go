package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"clipflow/internal/api"
	"clipflow/internal/config"
)

const userAgent = "clipflow-worker/0.1.0"

// Client posts terminal completion callbacks to the coordinator. Callback
// failures are terminal for the task: callers log and drop, there is no local
// retry.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient builds a callback client from the coordinator settings.
func NewClient(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.Coordinator.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.Coordinator.BaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// ReportEnhancement notifies the coordinator that enhancement finished for the video.
func (c *Client) ReportEnhancement(ctx context.Context, videoName string) error {
	return c.post(ctx, "/internal/video-enhancement-status/", api.EnhancementReport{VideoName: videoName})
}

// ReportMetadata delivers the extracted descriptor to the coordinator.
func (c *Client) ReportMetadata(ctx context.Context, videoName string, descriptor api.Descriptor) error {
	return c.post(ctx, "/internal/metadata-extraction-status/", api.MetadataReport{VideoName: videoName, Metadata: descriptor})
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode callback: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build callback request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("callback %s: %w", path, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("callback %s: unexpected status %s", path, resp.Status)
	}
	return nil
}
