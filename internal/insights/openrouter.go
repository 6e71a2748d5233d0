// Package insights asks an OpenRouter-compatible chat-completions API for
// a marketing read of an ad creative.
package insights

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const requestTimeout = 90 * time.Second

const analysisPrompt = `You are an advertising analyst. Describe this ad creative:
the product or service being advertised, the visual style, the target audience
it seems aimed at, and one concrete suggestion to improve its impact.
Answer as a short plain-text report.`

// Client talks to an OpenRouter-compatible chat completions endpoint.
type Client struct {
	key     string
	model   string
	baseURL string
	client  *http.Client
}

// New builds a client. The base URL defaults to openrouter.ai and the model
// to a small vision-capable one.
func New(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = "openai/gpt-4o-mini"
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = "https://openrouter.ai"
	}
	return &Client{key: apiKey, model: model, baseURL: baseURL, client: &http.Client{Timeout: 2 * time.Minute}}
}

// AnalyzeImage sends the image inline as a data URL and returns the model's
// plain-text report.
func (c *Client) AnalyzeImage(ctx context.Context, imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	payload := map[string]any{
		"model":  c.model,
		"stream": false,
		"messages": []map[string]any{
			{
				"role": "user",
				"content": []map[string]any{
					{"type": "text", "text": analysisPrompt},
					{"type": "image_url", "image_url": map[string]any{
						"url": dataURL(imagePath, data),
					}},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	url := c.baseURL + "/api/v1/chat/completions"

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("insights request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("insights API returned %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("insights API returned no content")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// dataURL inlines image bytes with a mime type guessed from the extension.
func dataURL(path string, data []byte) string {
	mime := "image/png"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		mime = "image/jpeg"
	case ".gif":
		mime = "image/gif"
	case ".webp":
		mime = "image/webp"
	case ".bmp":
		mime = "image/bmp"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
