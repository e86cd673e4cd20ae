package ingestion

import "fmt"

// AcquisitionKind classifies a job-description acquisition failure.
type AcquisitionKind string

const (
	// KindInvalidURL means the URL failed validation; no network call was made
	KindInvalidURL AcquisitionKind = "invalid-url"
	// KindNoContentFound means extraction succeeded but produced no text
	KindNoContentFound AcquisitionKind = "no-content-found"
	// KindExtractionFailed means the web extractor failed
	KindExtractionFailed AcquisitionKind = "extraction-failed"
	// KindTimeout means the extraction exceeded its deadline; retryable
	KindTimeout AcquisitionKind = "timeout"
)

// AcquisitionError reports a job-description acquisition failure.
// Kind drives caller behavior; Cause retains the upstream message.
type AcquisitionError struct {
	Kind    AcquisitionKind
	URL     string
	Message string
	Cause   error
}

func (e *AcquisitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("acquisition failed (%s) for %s: %s: %v", e.Kind, e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("acquisition failed (%s) for %s: %s", e.Kind, e.URL, e.Message)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether the failure is worth retrying with the same URL.
func (e *AcquisitionError) Retryable() bool {
	return e.Kind == KindTimeout
}
