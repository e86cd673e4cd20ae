package types

import "fmt"

// Severity levels for optimization suggestions.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// ScoringRequest is the payload submitted to the scoring service.
// ResumeText must always be the cleaned content of a valid quality report,
// never raw extractor output.
type ScoringRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description,omitempty"`
	Industry       string `json:"industry"`
}

// Suggestion is one concrete edit recommended by the scoring service.
// The orchestrator validates its shape but never invents content.
type Suggestion struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// ScoringResult is the terminal artifact of a scoring call.
type ScoringResult struct {
	ATSScore             int          `json:"ats_score"` // 0-100
	ContentOptimizations []Suggestion `json:"content_optimizations"`
	FormatOptimizations  []Suggestion `json:"format_optimizations"`
	// Truncated is set when the resume text exceeded the service maximum
	// and only a prefix was analyzed.
	Truncated bool `json:"truncated,omitempty"`
}

// JobPosting holds the text extracted from a job posting URL.
type JobPosting struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// ValidSeverity reports whether s is one of the known severity levels.
func ValidSeverity(s string) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// ValidateScoringResult checks the structural invariants of a scoring response.
// It returns a descriptive error for the first violation found.
func ValidateScoringResult(result *ScoringResult) error {
	if result == nil {
		return fmt.Errorf("result is nil")
	}
	if result.ATSScore < 0 || result.ATSScore > 100 {
		return fmt.Errorf("ats_score %d out of range [0,100]", result.ATSScore)
	}
	if result.ContentOptimizations == nil {
		return fmt.Errorf("content_optimizations array is missing")
	}
	if result.FormatOptimizations == nil {
		return fmt.Errorf("format_optimizations array is missing")
	}
	for i, s := range result.ContentOptimizations {
		if err := validateSuggestion(s); err != nil {
			return fmt.Errorf("content_optimizations[%d]: %w", i, err)
		}
	}
	for i, s := range result.FormatOptimizations {
		if err := validateSuggestion(s); err != nil {
			return fmt.Errorf("format_optimizations[%d]: %w", i, err)
		}
	}
	return nil
}

func validateSuggestion(s Suggestion) error {
	if s.Description == "" {
		return fmt.Errorf("description is empty")
	}
	if !ValidSeverity(s.Severity) {
		return fmt.Errorf("unknown severity %q", s.Severity)
	}
	return nil
}
