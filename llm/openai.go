// Package llm is a lightweight OpenAI-compatible chat client used to write
// the optional executive summary for detailed reports. It uses net/http
// directly — no third-party SDK needed.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rankscore-ai/rankscore/config"
	"github.com/rankscore-ai/rankscore/models"
)

// Client calls an OpenAI-compatible chat completion endpoint. A nil Client
// means the summary feature is disabled.
type Client struct {
	httpClient *http.Client
	cfg        config.LLMConfig
}

// New creates a Client, or nil when no API key is configured. Pass a nil
// httpClient to use a default client.
func New(cfg config.LLMConfig, httpClient *http.Client) *Client {
	if cfg.APIKey == "" {
		return nil
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{httpClient: httpClient, cfg: cfg}
}

const systemPrompt = `You are an AEO (answer engine optimization) consultant writing the executive summary of a site audit.

Rules:
- Write 3-5 plain sentences, no markdown, no lists.
- Lead with the overall state of the page, then the highest-value fixes in order.
- Mention concrete numbers from the audit where they help.
- Do not invent findings that are not in the audit data.`

// chatRequest is the OpenAI chat completion request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the minimal chat completion response we need.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chatErrorResponse captures an API error from the LLM provider.
type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Summarize turns one scan's results into a short plain-text executive
// summary for the detailed report.
func (c *Client) Summarize(ctx context.Context, facts *models.PageFacts, breakdown models.ScoreBreakdown, issues []models.Issue) (string, error) {
	audit := map[string]any{
		"url":             facts.URL,
		"total_score":     breakdown.Total,
		"components":      breakdown.Components,
		"facts":           facts,
		"recommendations": issues,
	}
	auditJSON, err := json.Marshal(audit)
	if err != nil {
		return "", fmt.Errorf("llm: marshal audit: %w", err)
	}

	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: string(auditJSON)},
		},
		Temperature: 0,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("llm: marshal request: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("llm: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", models.NewScanError(models.ErrCodeLLMFailure, "LLM request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", models.NewScanError(models.ErrCodeLLMFailure, "failed to read LLM response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyLLMError(resp.StatusCode, respBody)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", models.NewScanError(models.ErrCodeLLMFailure, "failed to parse LLM response", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", models.NewScanError(models.ErrCodeLLMFailure, "LLM returned no choices", nil)
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// classifyLLMError maps HTTP status codes to appropriate error codes.
func classifyLLMError(statusCode int, body []byte) *models.ScanError {
	var errResp chatErrorResponse
	msg := "LLM API error"
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		msg = errResp.Error.Message
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return models.NewScanError(models.ErrCodeLLMAuthFailure, msg, nil)
	case statusCode == http.StatusTooManyRequests:
		return models.NewScanError(models.ErrCodeLLMRateLimited, msg, nil)
	default:
		return models.NewScanError(models.ErrCodeLLMFailure, fmt.Sprintf("LLM API returned %d: %s", statusCode, msg), nil)
	}
}
