package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// issue mirrors one entry of the RankScore recommendation list.
type issue struct {
	Type     string `json:"type"`
	Fix      string `json:"fix"`
	Priority int    `json:"priority"`
	Effort   string `json:"effort"`
	Points   int    `json:"points"`
	Example  string `json:"example,omitempty"`
}

// scoreResponse mirrors the RankScore free-score API response.
type scoreResponse struct {
	Success    bool    `json:"success"`
	URL        string  `json:"url"`
	Score      int     `json:"score"`
	Assessment string  `json:"assessment"`
	QuickWins  []issue `json:"quick_wins"`
	Warning    string  `json:"warning"`
	Error      *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// analyzeResponse mirrors the RankScore analyze API response.
type analyzeResponse struct {
	Success bool `json:"success"`
	Score   *struct {
		Total            int `json:"total"`
		ContentStructure int `json:"content_structure"`
		Technical        int `json:"technical"`
		Metadata         int `json:"metadata"`
		Accessibility    int `json:"accessibility"`
	} `json:"score"`
	Assessment      string  `json:"assessment"`
	Recommendations []issue `json:"recommendations"`
	Saved           bool    `json:"saved"`
	Error           *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// progressResponse mirrors the RankScore progress API response.
type progressResponse struct {
	Success  bool `json:"success"`
	Progress *struct {
		URL                  string `json:"url"`
		InitialScore         int    `json:"initial_score"`
		CurrentScore         int    `json:"current_score"`
		TotalImprovement     int    `json:"total_improvement"`
		ScanCount            int    `json:"scan_count"`
		ImplementedCount     int    `json:"implemented_count"`
		PendingCount         int    `json:"pending_count"`
		ImplementationImpact int    `json:"implementation_impact"`
		ContentChanged       bool   `json:"content_changed"`
	} `json:"progress"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// historyResponse mirrors the RankScore history API response.
type historyResponse struct {
	Success bool `json:"success"`
	Scans   []struct {
		ScanDate   string `json:"scan_date"`
		TotalScore int    `json:"total_score"`
	} `json:"scans"`
	Recommendations []struct {
		ID              int64  `json:"id"`
		Type            string `json:"type"`
		Description     string `json:"description"`
		Priority        int    `json:"priority"`
		PointsPotential int    `json:"points_potential"`
		Status          string `json:"status"`
	} `json:"recommendations"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// updateResponse mirrors the RankScore recommendation-update API response.
type updateResponse struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
	Status  string `json:"status"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("RANKSCORE_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	// Session token unlocks the pro tools; quick_score works without it.
	token := os.Getenv("RANKSCORE_SESSION_TOKEN")
	defaultEmail := os.Getenv("RANKSCORE_EMAIL")

	s := server.NewMCPServer(
		"rankscore",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	quickScoreTool := mcp.NewTool("quick_score",
		mcp.WithDescription("Get a free AI-visibility teaser score (0-100) for a web page, with up to three quick-win recommendations. No session token required."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the page to score"),
		),
		mcp.WithString("email",
			mcp.Description("Contact email for the score (falls back to RANKSCORE_EMAIL)"),
		),
	)
	s.AddTool(quickScoreTool, handleQuickScore(apiURL, defaultEmail))

	analyzeTool := mcp.NewTool("analyze_url",
		mcp.WithDescription("Run a full AEO audit of a web page: weighted score breakdown, every extracted signal, and the complete prioritized recommendation list. The scan is saved to history. Requires a session token."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the page to analyze"),
		),
	)
	s.AddTool(analyzeTool, handleAnalyze(apiURL, token))

	progressTool := mcp.NewTool("get_progress",
		mcp.WithDescription("Summarize a URL's score trajectory: first vs current score, scans run, recommendations implemented vs pending. Requires a session token."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL whose progress to summarize"),
		),
	)
	s.AddTool(progressTool, handleProgress(apiURL, token))

	historyTool := mcp.NewTool("get_history",
		mcp.WithDescription("List all recorded scans and recommendations for a URL, most urgent recommendation first. Requires a session token."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL whose history to list"),
		),
	)
	s.AddTool(historyTool, handleHistory(apiURL, token))

	updateTool := mcp.NewTool("update_recommendation",
		mcp.WithDescription("Update the status of a recommendation (pending, in_progress, implemented, deferred). Requires a session token."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("The recommendation ID from get_history"),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("New status"),
			mcp.Enum("pending", "in_progress", "implemented", "deferred"),
		),
		mcp.WithString("notes",
			mcp.Description("Free-text notes attached to the recommendation"),
		),
	)
	s.AddTool(updateTool, handleUpdateRecommendation(apiURL, token))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// apiPost sends a POST request to the RankScore API and returns the response body.
func apiPost(ctx context.Context, client *http.Client, apiURL, token, path string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// apiGet sends a GET request to the RankScore API and returns the response body.
func apiGet(ctx context.Context, client *http.Client, apiURL, token, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func formatIssues(issues []issue) string {
	var sb strings.Builder
	for i, iss := range issues {
		sb.WriteString(fmt.Sprintf("%d. [P%d, %s effort, +%d pts] %s\n", i+1, iss.Priority, iss.Effort, iss.Points, iss.Fix))
		if iss.Example != "" {
			sb.WriteString("   Example: " + iss.Example + "\n")
		}
	}
	return sb.String()
}

func handleQuickScore(apiURL, defaultEmail string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		email := request.GetString("email", defaultEmail)
		if email == "" {
			return mcp.NewToolResultError("email is required (or set RANKSCORE_EMAIL)"), nil
		}

		respBody, err := apiPost(ctx, client, apiURL, "", "/api/v1/score",
			map[string]string{"email": email, "url": url})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("score request failed: %v", err)), nil
		}

		var resp scoreResponse
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !resp.Success {
			errMsg := "score failed"
			if resp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", resp.Error.Code, resp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("RankScore for %s: %d/100 (%s)\n", resp.URL, resp.Score, resp.Assessment))
		if resp.Warning != "" {
			sb.WriteString("Warning: " + resp.Warning + "\n")
		}
		if len(resp.QuickWins) > 0 {
			sb.WriteString("\nQuick wins:\n" + formatIssues(resp.QuickWins))
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}

func handleAnalyze(apiURL, token string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}
		if token == "" {
			return mcp.NewToolResultError("RANKSCORE_SESSION_TOKEN is required for analyze_url"), nil
		}

		respBody, err := apiPost(ctx, client, apiURL, token, "/api/v1/analyze",
			map[string]string{"url": url})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("analyze request failed: %v", err)), nil
		}

		var resp analyzeResponse
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !resp.Success {
			errMsg := "analysis failed"
			if resp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", resp.Error.Code, resp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		var sb strings.Builder
		if resp.Score != nil {
			sb.WriteString(fmt.Sprintf("Total score: %d/100 (%s)\n", resp.Score.Total, resp.Assessment))
			sb.WriteString(fmt.Sprintf("  Content structure: %d\n", resp.Score.ContentStructure))
			sb.WriteString(fmt.Sprintf("  Technical:         %d\n", resp.Score.Technical))
			sb.WriteString(fmt.Sprintf("  Metadata:          %d\n", resp.Score.Metadata))
			sb.WriteString(fmt.Sprintf("  Accessibility:     %d\n", resp.Score.Accessibility))
		}
		if resp.Saved {
			sb.WriteString("Scan saved to history.\n")
		}
		if len(resp.Recommendations) > 0 {
			sb.WriteString("\nRecommendations:\n" + formatIssues(resp.Recommendations))
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}

func handleProgress(apiURL, token string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 30 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rawURL, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}
		if token == "" {
			return mcp.NewToolResultError("RANKSCORE_SESSION_TOKEN is required for get_progress"), nil
		}

		respBody, err := apiGet(ctx, client, apiURL, token, "/api/v1/progress?url="+url.QueryEscape(rawURL))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("progress request failed: %v", err)), nil
		}

		var resp progressResponse
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !resp.Success || resp.Progress == nil {
			errMsg := "no progress data"
			if resp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", resp.Error.Code, resp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		p := resp.Progress
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Progress for %s\n", p.URL))
		sb.WriteString(fmt.Sprintf("Score: %d → %d (%+d) over %d scans\n", p.InitialScore, p.CurrentScore, p.TotalImprovement, p.ScanCount))
		sb.WriteString(fmt.Sprintf("Recommendations: %d implemented (+%d pts potential), %d pending\n", p.ImplementedCount, p.ImplementationImpact, p.PendingCount))
		if p.ContentChanged {
			sb.WriteString("Page content changed significantly since the previous scan.\n")
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}

func handleHistory(apiURL, token string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 30 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rawURL, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}
		if token == "" {
			return mcp.NewToolResultError("RANKSCORE_SESSION_TOKEN is required for get_history"), nil
		}

		respBody, err := apiGet(ctx, client, apiURL, token, "/api/v1/history?url="+url.QueryEscape(rawURL))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("history request failed: %v", err)), nil
		}

		var resp historyResponse
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !resp.Success {
			errMsg := "history failed"
			if resp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", resp.Error.Code, resp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Scans (%d):\n", len(resp.Scans)))
		for _, s := range resp.Scans {
			sb.WriteString(fmt.Sprintf("  %s — %d/100\n", s.ScanDate, s.TotalScore))
		}
		sb.WriteString(fmt.Sprintf("\nRecommendations (%d):\n", len(resp.Recommendations)))
		for _, r := range resp.Recommendations {
			sb.WriteString(fmt.Sprintf("  #%d [P%d, +%d pts, %s] %s: %s\n",
				r.ID, r.Priority, r.PointsPotential, r.Status, r.Type, r.Description))
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}

func handleUpdateRecommendation(apiURL, token string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 30 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireInt("id")
		if err != nil {
			return mcp.NewToolResultError("id is required"), nil
		}
		status, err := request.RequireString("status")
		if err != nil {
			return mcp.NewToolResultError("status is required"), nil
		}
		if token == "" {
			return mcp.NewToolResultError("RANKSCORE_SESSION_TOKEN is required for update_recommendation"), nil
		}

		payload := map[string]string{"status": status}
		if notes := request.GetString("notes", ""); notes != "" {
			payload["notes"] = notes
		}

		body, err := json.Marshal(payload)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshal request: %v", err)), nil
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPatch,
			fmt.Sprintf("%s/api/v1/recommendations/%d", apiURL, id), bytes.NewReader(body))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("create request: %v", err)), nil
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		httpResp, err := client.Do(req)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("update request failed: %v", err)), nil
		}
		respBody, err := io.ReadAll(httpResp.Body)
		httpResp.Body.Close()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("read response: %v", err)), nil
		}

		var resp updateResponse
		if err := json.Unmarshal(respBody, &resp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !resp.Success {
			errMsg := "update failed"
			if resp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", resp.Error.Code, resp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Recommendation #%d is now %q.", resp.ID, resp.Status)), nil
	}
}
