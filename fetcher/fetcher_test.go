package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rankscore-ai/rankscore/config"
	"github.com/rankscore-ai/rankscore/models"
)

func testConfig() config.FetchConfig {
	return config.FetchConfig{
		Timeout:      5 * time.Second,
		ProbeTimeout: 2 * time.Second,
	}
}

func TestFetch_ReturnsBodyAndTiming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><title>ok</title></html>"))
	}))
	defer srv.Close()

	f := New(testConfig())
	res, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", res.StatusCode)
	}
	if string(res.Body) != "<html><title>ok</title></html>" {
		t.Errorf("unexpected body: %q", res.Body)
	}
	if res.TTFB <= 0 {
		t.Errorf("TTFB = %v, want > 0", res.TTFB)
	}
}

func TestFetch_NonOKStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := New(testConfig())
	res, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch on 404: %v", err)
	}
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", res.StatusCode)
	}
}

func TestFetch_FollowsRedirects(t *testing.T) {
	var finalURL string
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/landed", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/landed", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("landed"))
	})
	finalURL = srv.URL + "/landed"

	f := New(testConfig())
	res, err := f.Fetch(context.Background(), srv.URL+"/start")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.FinalURL != finalURL {
		t.Errorf("FinalURL = %q, want %q", res.FinalURL, finalURL)
	}
}

func TestFetch_TimeoutYieldsTypedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Timeout = 50 * time.Millisecond
	f := New(cfg)

	_, err := f.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	var scanErr *models.ScanError
	if !errors.As(err, &scanErr) {
		t.Fatalf("error is %T, want *models.ScanError", err)
	}
	if scanErr.Code != models.ErrCodeFetchTimeout {
		t.Errorf("Code = %q, want %q", scanErr.Code, models.ErrCodeFetchTimeout)
	}
}

func TestFetch_ConnectionRefusedYieldsFetchError(t *testing.T) {
	f := New(testConfig())
	// Reserved port that nothing listens on.
	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1/")
	if err == nil {
		t.Fatal("expected connection error")
	}
	var scanErr *models.ScanError
	if !errors.As(err, &scanErr) {
		t.Fatalf("error is %T, want *models.ScanError", err)
	}
	if scanErr.Code != models.ErrCodeFetch {
		t.Errorf("Code = %q, want %q", scanErr.Code, models.ErrCodeFetch)
	}
}

func TestProbe_ReadsContentLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("probe used method %s, want HEAD", r.Method)
		}
		w.Header().Set("Content-Length", "12345")
	}))
	defer srv.Close()

	f := New(testConfig())
	size, err := f.Probe(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if size != 12345 {
		t.Errorf("size = %d, want 12345", size)
	}
}

func TestProbe_MissingContentLengthIsZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Chunked response: no Content-Length header.
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := New(testConfig())
	size, err := f.Probe(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if size != 0 {
		t.Errorf("size = %d, want 0", size)
	}
}
