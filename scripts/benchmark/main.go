package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"
)

// CLI flags
var (
	apiURL = flag.String("api-url", "http://localhost:8080", "RankScore API base URL")
	email  = flag.String("email", "benchmark@rankscore.ai", "Lead email sent with each score request")
	runs   = flag.Int("runs", 3, "Number of runs per URL for averaging")
	output = flag.String("output", "benchmark-results.json", "JSON output file path")
)

// Test URLs covering 5 site types.
var testURLs = []struct {
	Label string
	URL   string
}{
	{"Static", "https://example.com"},
	{"Blog", "https://go.dev/blog/go1.21"},
	{"Docs", "https://go.dev/doc/effective_go"},
	{"News", "https://www.bbc.com/news"},
	{"Complex", "https://github.com/go-rod/rod"},
}

// --- Request / Response types (mirrors models package) ---

type scoreRequest struct {
	Email string `json:"email"`
	URL   string `json:"url"`
}

type scoreResponse struct {
	Success    bool         `json:"success"`
	URL        string       `json:"url"`
	Score      int          `json:"score"`
	Assessment string       `json:"assessment"`
	QuickWins  []issue      `json:"quick_wins"`
	Warning    string       `json:"warning"`
	Timing     timingInfo   `json:"timing"`
	Error      *errorDetail `json:"error,omitempty"`
}

type issue struct {
	Type string `json:"type"`
}

type timingInfo struct {
	TotalMs int64 `json:"total_ms"`
	FetchMs int64 `json:"fetch_ms"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// --- Benchmark result types ---

type runResult struct {
	Run        int    `json:"run"`
	TotalMs    int64  `json:"total_ms"`
	FetchMs    int64  `json:"fetch_ms"`
	Score      int    `json:"score"`
	Assessment string `json:"assessment"`
	QuickWins  int    `json:"quick_wins"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

type urlAverages struct {
	TotalMs float64 `json:"total_ms"`
	FetchMs float64 `json:"fetch_ms"`
	Score   float64 `json:"score"`
}

type urlResult struct {
	URL      string       `json:"url"`
	Label    string       `json:"label"`
	Runs     []runResult  `json:"runs"`
	Averages *urlAverages `json:"averages,omitempty"`
}

type benchmarkReport struct {
	Timestamp  string      `json:"timestamp"`
	APIURL     string      `json:"api_url"`
	RunsPerURL int         `json:"runs_per_url"`
	Results    []urlResult `json:"results"`
}

func main() {
	flag.Parse()

	fmt.Println("=== RankScore Benchmark Suite ===")
	fmt.Printf("API URL:   %s\n", *apiURL)
	fmt.Printf("Runs/URL:  %d\n", *runs)
	fmt.Printf("Output:    %s\n", *output)
	fmt.Println()

	// Quick connectivity check.
	if err := checkAPI(*apiURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot reach API at %s: %v\n", *apiURL, err)
		fmt.Fprintf(os.Stderr, "Make sure RankScore is running (e.g. make run)\n")
		os.Exit(1)
	}

	report := benchmarkReport{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		APIURL:     *apiURL,
		RunsPerURL: *runs,
	}

	for _, t := range testURLs {
		fmt.Printf("Benchmarking [%s] %s ...\n", t.Label, t.URL)
		ur := urlResult{URL: t.URL, Label: t.Label}

		for i := 1; i <= *runs; i++ {
			fmt.Printf("  Run %d/%d ... ", i, *runs)
			rr := benchmarkURL(t.URL, i)
			if rr.Success {
				fmt.Printf("OK  %dms  score %d (%s)\n", rr.TotalMs, rr.Score, rr.Assessment)
			} else {
				fmt.Printf("FAILED: %s\n", rr.Error)
			}
			ur.Runs = append(ur.Runs, rr)
		}

		ur.Averages = computeAverages(ur.Runs)
		report.Results = append(report.Results, ur)
		fmt.Println()
	}

	// Print summary table.
	printTable(report.Results)

	// Write JSON report.
	if err := writeJSON(*output, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing JSON output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nDetailed results written to %s\n", *output)
}

func checkAPI(baseURL string) error {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(baseURL + "/api/v1/health")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func benchmarkURL(url string, run int) runResult {
	rr := runResult{Run: run}

	bodyBytes, err := json.Marshal(scoreRequest{Email: *email, URL: url})
	if err != nil {
		rr.Error = fmt.Sprintf("marshal error: %v", err)
		return rr
	}

	req, err := http.NewRequest("POST", *apiURL+"/api/v1/score", bytes.NewReader(bodyBytes))
	if err != nil {
		rr.Error = fmt.Sprintf("request error: %v", err)
		return rr
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 90 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		rr.Error = fmt.Sprintf("request failed: %v", err)
		return rr
	}
	defer resp.Body.Close()

	var sr scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		rr.Error = fmt.Sprintf("decode error: %v", err)
		return rr
	}

	if !sr.Success {
		if sr.Error != nil {
			rr.Error = fmt.Sprintf("[%s] %s", sr.Error.Code, sr.Error.Message)
		} else {
			rr.Error = "unknown error"
		}
		return rr
	}
	if sr.Warning != "" {
		rr.Error = sr.Warning
	}

	rr.Success = true
	rr.TotalMs = sr.Timing.TotalMs
	rr.FetchMs = sr.Timing.FetchMs
	rr.Score = sr.Score
	rr.Assessment = sr.Assessment
	rr.QuickWins = len(sr.QuickWins)
	return rr
}

func computeAverages(rs []runResult) *urlAverages {
	var okRuns []runResult
	for _, r := range rs {
		if r.Success {
			okRuns = append(okRuns, r)
		}
	}
	if len(okRuns) == 0 {
		return nil
	}

	avg := &urlAverages{}
	for _, r := range okRuns {
		avg.TotalMs += float64(r.TotalMs)
		avg.FetchMs += float64(r.FetchMs)
		avg.Score += float64(r.Score)
	}
	n := float64(len(okRuns))
	avg.TotalMs /= n
	avg.FetchMs /= n
	avg.Score /= n
	return avg
}

func printTable(results []urlResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LABEL\tURL\tAVG TOTAL\tAVG FETCH\tAVG SCORE")
	for _, r := range results {
		if r.Averages == nil {
			fmt.Fprintf(w, "%s\t%s\tFAILED\t-\t-\n", r.Label, r.URL)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%.0fms\t%.0fms\t%.1f\n",
			r.Label, r.URL, r.Averages.TotalMs, r.Averages.FetchMs, r.Averages.Score)
	}
	w.Flush()
}

func writeJSON(path string, report benchmarkReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
