// Package ingestion acquires job posting text from user-supplied URLs for
// use as optional scoring context.
package ingestion

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/jonathan/ats-scanner/internal/types"
)

// Extractor turns a job posting URL into plain text. Implementations make
// remote calls; the default is the fetch-backed WebExtractor.
type Extractor interface {
	ExtractText(ctx context.Context, url string) (string, error)
}

// AcquireJobDescription validates the URL and invokes the extractor,
// normalizing any failure into an AcquisitionError. Validation failures are
// resolved locally: a bad URL never triggers a network call.
func AcquireJobDescription(ctx context.Context, urlStr string, extractor Extractor) (*types.JobPosting, error) {
	if err := validateURL(urlStr); err != nil {
		return nil, err
	}

	text, err := extractor.ExtractText(ctx, urlStr)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &AcquisitionError{
				Kind:    KindTimeout,
				URL:     urlStr,
				Message: "extraction exceeded deadline",
				Cause:   err,
			}
		}
		return nil, &AcquisitionError{
			Kind:    KindExtractionFailed,
			URL:     urlStr,
			Message: "web extractor failed",
			Cause:   err,
		}
	}

	if strings.TrimSpace(text) == "" {
		return nil, &AcquisitionError{
			Kind:    KindNoContentFound,
			URL:     urlStr,
			Message: "extractor returned no text",
		}
	}

	return &types.JobPosting{
		URL:  urlStr,
		Text: text,
	}, nil
}

// validateURL requires an absolute http or https URL with a host.
func validateURL(urlStr string) error {
	parsed, err := url.Parse(strings.TrimSpace(urlStr))
	if err != nil {
		return &AcquisitionError{
			Kind:    KindInvalidURL,
			URL:     urlStr,
			Message: "URL does not parse",
			Cause:   err,
		}
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return &AcquisitionError{
			Kind:    KindInvalidURL,
			URL:     urlStr,
			Message: "scheme must be http or https",
		}
	}

	if parsed.Host == "" {
		return &AcquisitionError{
			Kind:    KindInvalidURL,
			URL:     urlStr,
			Message: "URL has no host",
		}
	}

	return nil
}
