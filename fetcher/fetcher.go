package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	tls "github.com/refraction-networking/utls"

	"github.com/rankscore-ai/rankscore/config"
	"github.com/rankscore-ai/rankscore/models"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// maxBodyBytes caps how much of a page body is read into memory.
const maxBodyBytes = 10 << 20 // 10 MB

// chromeH1Spec is a Chrome-like TLS ClientHello with ALPN forced to http/1.1
// only. Computed once at init time and reused for every connection.
var chromeH1Spec tls.ClientHelloSpec

func init() {
	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		// Fallback: if spec generation fails the dial path below falls back
		// to HelloChrome_Auto as-is.
		return
	}
	// Replace h2 with http/1.1 only in the ALPN extension so the server
	// never negotiates HTTP/2 (which Go's http.Transport cannot handle
	// over a utls connection).
	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}
	chromeH1Spec = spec
}

// Result is one fetched page. A non-2xx status is a Result, not an error:
// the page that answers is the page that gets scored.
type Result struct {
	// Body is the decoded response body, capped at 10 MB.
	Body []byte

	// StatusCode is the final HTTP status after redirects.
	StatusCode int

	// FinalURL is the URL that actually answered (after redirects).
	FinalURL string

	// TTFB is the time from sending the request until response headers
	// arrived.
	TTFB time.Duration
}

// Fetcher retrieves pages with a Chrome TLS fingerprint (utls) and probes
// linked resources with lightweight HEAD requests.
type Fetcher struct {
	client *http.Client
	cfg    config.FetchConfig
}

// New creates a Fetcher from the fetch configuration.
func New(cfg config.FetchConfig) *Fetcher {
	transport := &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialTLSChrome(ctx, network, addr)
		},
		ForceAttemptHTTP2: false,
	}
	if cfg.Proxy != "" {
		if proxyURL, err := url.Parse(cfg.Proxy); err == nil && (proxyURL.Scheme == "http" || proxyURL.Scheme == "https") {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &Fetcher{
		client: &http.Client{
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		cfg: cfg,
	}
}

// Fetch retrieves the URL and records time-to-first-byte. Network and
// timeout failures return a *models.ScanError; HTTP error statuses do not.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, models.NewScanError(models.ErrCodeInvalidInput, "invalid URL", err)
	}
	setBrowserHeaders(req)

	start := time.Now()
	resp, err := f.client.Do(req)
	ttfb := time.Since(start)
	if err != nil {
		return nil, classifyFetchError(targetURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classifyFetchError(targetURL, err)
	}

	return &Result{
		Body:       body,
		StatusCode: resp.StatusCode,
		FinalURL:   resp.Request.URL.String(),
		TTFB:       ttfb,
	}, nil
}

// Probe issues a header-only HEAD request and returns the advertised
// Content-Length. Servers that omit the header yield 0, not an error.
func (f *Fetcher) Probe(ctx context.Context, targetURL string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return 0, fmt.Errorf("fetcher: build probe: %w", err)
	}
	req.Header.Set("User-Agent", chromeUA)

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetcher: probe %s: %w", targetURL, err)
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()

	if resp.ContentLength < 0 {
		return 0, nil
	}
	return resp.ContentLength, nil
}

// setBrowserHeaders applies Chrome-like request headers. Accept-Encoding is
// deliberately left to the transport so responses arrive decoded.
func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
}

// classifyFetchError distinguishes deadline expiry from other network
// failures so the handler layer can answer 504 vs 502.
func classifyFetchError(targetURL string, err error) *models.ScanError {
	if errors.Is(err, context.DeadlineExceeded) {
		return models.NewScanError(models.ErrCodeFetchTimeout, fmt.Sprintf("fetching %s timed out", targetURL), err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.NewScanError(models.ErrCodeFetchTimeout, fmt.Sprintf("fetching %s timed out", targetURL), err)
	}
	return models.NewScanError(models.ErrCodeFetch, fmt.Sprintf("could not fetch %s", targetURL), err)
}

// dialTLSChrome establishes a TLS connection presenting the Chrome
// fingerprint with ALPN locked to http/1.1.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	rawConn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	host, _, _ := net.SplitHostPort(addr)
	if len(chromeH1Spec.Extensions) == 0 {
		tlsConn := tls.UClient(rawConn, &tls.Config{ServerName: host}, tls.HelloChrome_Auto)
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			rawConn.Close()
			return nil, err
		}
		return tlsConn, nil
	}

	tlsConn := tls.UClient(rawConn, &tls.Config{ServerName: host}, tls.HelloCustom)
	if err := tlsConn.ApplyPreset(&chromeH1Spec); err != nil {
		rawConn.Close()
		return nil, fmt.Errorf("fetcher: apply tls spec: %w", err)
	}
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, err
	}
	return tlsConn, nil
}
