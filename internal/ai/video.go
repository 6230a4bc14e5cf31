package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrDisabled is returned by the video renderer when no endpoint is
// configured. The text helpers degrade to canned output instead.
var ErrDisabled = errors.New("ai features are not configured")

// ErrUnauthorized means the video API rejected the configured key.
var ErrUnauthorized = errors.New("video api rejected the configured key")

// VideoClient talks to the external text-to-video service used for product
// clips. Jobs are asynchronous: submit, then poll until the render finishes.
type VideoClient struct {
	baseURL string
	apiKey  string
	http    *http.Client

	// pollInterval is how often Generate checks a pending job.
	pollInterval time.Duration
}

// NewVideoClient builds a client. An empty base URL disables the feature;
// Generate then returns ErrDisabled.
func NewVideoClient(baseURL, apiKey string) *VideoClient {
	return &VideoClient{
		baseURL:      baseURL,
		apiKey:       apiKey,
		http:         &http.Client{Timeout: 30 * time.Second},
		pollInterval: 2 * time.Second,
	}
}

type videoJob struct {
	ID       string `json:"id"`
	Status   string `json:"status"` // queued, processing, done, failed
	VideoURL string `json:"video_url"`
	Error    string `json:"error"`
}

// Generate renders a short promotional clip for a product image and returns
// the hosted video URL. It blocks polling the job until completion or ctx
// cancellation; renders routinely take a minute or two.
func (c *VideoClient) Generate(ctx context.Context, productName, imageURL string) (string, error) {
	if c.baseURL == "" {
		return "", ErrDisabled
	}

	job, err := c.submit(ctx, productName, imageURL)
	if err != nil {
		return "", err
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		job, err = c.poll(ctx, job.ID)
		if err != nil {
			return "", err
		}
		switch job.Status {
		case "done":
			return job.VideoURL, nil
		case "failed":
			return "", fmt.Errorf("video render failed: %s", job.Error)
		}
	}
}

func (c *VideoClient) submit(ctx context.Context, productName, imageURL string) (*videoJob, error) {
	body, err := json.Marshal(map[string]string{
		"prompt":    fmt.Sprintf("Rotating studio showcase of the shoe %q on a neutral background", productName),
		"image_url": imageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("encode video job: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/jobs", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build video request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *VideoClient) poll(ctx context.Context, jobID string) (*videoJob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/jobs/"+jobID, nil)
	if err != nil {
		return nil, fmt.Errorf("build poll request: %w", err)
	}
	return c.do(req)
}

func (c *VideoClient) do(req *http.Request) (*videoJob, error) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("video api: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("video api: unexpected status %s", resp.Status)
	}

	var job videoJob
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return nil, fmt.Errorf("decode video job: %w", err)
	}
	return &job, nil
}
