// Package sanitize decides whether extracted resume text may proceed to
// scoring and produces the final text to submit.
package sanitize

import (
	"github.com/jonathan/ats-scanner/internal/quality"
)

// SanitizedContent is extracted resume text that passed quality assessment.
// Confidence is carried for observability only; it does not affect scoring.
type SanitizedContent struct {
	Text       string
	Confidence int
}

// Sanitize assesses raw extracted text and either returns the cleaned content
// or rejects it with a QualityError. Rejection happens locally: no remote
// call is ever spent on unusable text.
func Sanitize(raw string) (*SanitizedContent, error) {
	report := quality.AssessQuality(raw)

	if !report.IsValid {
		return nil, &QualityError{
			Confidence: report.Confidence,
			Issues:     report.Issues,
		}
	}

	return &SanitizedContent{
		Text:       report.CleanedContent,
		Confidence: report.Confidence,
	}, nil
}
