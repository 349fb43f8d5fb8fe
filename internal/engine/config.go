package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	YtdlpPath         string        // empty = resolve yt-dlp from PATH
	FetchTimeout      time.Duration // default per-request HTTP timeout
	SubprocessTimeout time.Duration // yt-dlp invocation timeout

	HTTPClient    *http.Client
	BrowserClient *BrowserClient // nil = scraping falls back to HTTPClient
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources, report).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 20 * time.Second
	}
	if c.SubprocessTimeout <= 0 {
		c.SubprocessTimeout = 90 * time.Second
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	cfg = c
	Cfg = &cfg
}
