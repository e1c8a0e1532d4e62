package backend

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ImageConfig configures an image-generation client for a
// Hugging-Face-style inference endpoint.
type ImageConfig struct {
	// Endpoint is the base inference URL; the model id is appended.
	Endpoint string
	// Model is the model id from the capability catalog.
	Model string
	// Token is the bearer token for the endpoint.
	Token string
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// ImageClient calls an HTTP inference endpoint that accepts a text prompt
// and returns raw image bytes. A 503 response is the endpoint's "model is
// still loading" signal and maps to FailureWarmingUp.
type ImageClient struct {
	url   string
	token string
	model string
	http  *http.Client
}

// NewImageClient creates an image client for the given endpoint and model.
func NewImageClient(cfg ImageConfig) *ImageClient {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &ImageClient{
		url:   cfg.Endpoint + "/" + cfg.Model,
		token: cfg.Token,
		model: cfg.Model,
		http:  client,
	}
}

// Generate submits the prompt and returns the image as a PNG data URI.
func (c *ImageClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(map[string]string{"inputs": prompt})
	if err != nil {
		return "", &Failure{Kind: FailureMalformed, Message: "image request encode", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", &Failure{Kind: FailureUnavailable, Message: "image request build", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", classify("image generation", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		return "", &Failure{Kind: FailureWarmingUp, Message: fmt.Sprintf("model %s is loading", c.model)}
	case resp.StatusCode != http.StatusOK:
		return "", &Failure{Kind: FailureUnavailable, Message: fmt.Sprintf("image endpoint returned %d", resp.StatusCode)}
	}

	img, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Failure{Kind: FailureMalformed, Message: "image body read", Err: err}
	}
	if len(img) == 0 {
		return "", &Failure{Kind: FailureMalformed, Message: "image endpoint returned empty body"}
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(img), nil
}

// Model returns the configured model identifier.
func (c *ImageClient) Model() string { return c.model }
