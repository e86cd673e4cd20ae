package ingestion

import (
	"context"
	"log"
	"time"

	"github.com/jonathan/ats-scanner/internal/fetch"
)

// WebExtractor is the default Extractor implementation. It fetches the page
// over HTTP, applies platform-aware selectors, and optionally falls back to
// headless browser rendering for client-rendered job boards.
type WebExtractor struct {
	Timeout    time.Duration
	UseBrowser bool
	Verbose    bool
}

// NewWebExtractor returns a WebExtractor with the given request timeout.
func NewWebExtractor(timeout time.Duration, useBrowser bool, verbose bool) *WebExtractor {
	if timeout <= 0 {
		timeout = fetch.DefaultTimeout
	}
	return &WebExtractor{
		Timeout:    timeout,
		UseBrowser: useBrowser,
		Verbose:    verbose,
	}
}

// ExtractText fetches the posting page and reduces it to plain text.
func (w *WebExtractor) ExtractText(ctx context.Context, urlStr string) (string, error) {
	platform := fetch.DetectPlatform(urlStr)
	if w.Verbose {
		log.Printf("[VERBOSE] Detected platform: %s", platform)
	}

	opts := fetch.DefaultOptions()
	opts.Timeout = w.Timeout

	page, err := fetch.URL(ctx, urlStr, opts)
	if err != nil {
		return "", err
	}
	if w.Verbose {
		log.Printf("[VERBOSE] Fetched HTML: %d bytes", len(page.HTML))
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(page.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", err
	}

	// SPA job boards serve an empty shell over plain HTTP; render with a
	// browser and re-extract when the first pass came back too thin
	if w.UseBrowser && fetch.ShouldUseBrowser(text) {
		if w.Verbose {
			log.Printf("[VERBOSE] Content too short (%d chars), falling back to browser rendering", len(text))
		}
		browserHTML, browserErr := fetch.WithBrowser(ctx, urlStr, w.Timeout, w.Verbose)
		if browserErr != nil {
			if w.Verbose {
				log.Printf("[VERBOSE] Browser rendering failed: %v, keeping HTTP content", browserErr)
			}
			return text, nil
		}
		rendered, extractErr := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...)
		if extractErr == nil && len(rendered) > len(text) {
			text = rendered
		}
	}

	return text, nil
}
