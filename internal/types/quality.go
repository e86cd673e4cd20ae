// Package types defines the shared data structures exchanged between pipeline stages.
package types

// IssueTag identifies a detected content-quality problem in extracted resume text.
type IssueTag string

// Issue tags form a closed set; ordering in a report reflects detection order,
// not severity.
const (
	// IssueInsufficientLength indicates the trimmed text is too short to analyze
	IssueInsufficientLength IssueTag = "insufficient-length"
	// IssueExcessiveControlChars indicates too many non-printable characters
	IssueExcessiveControlChars IssueTag = "excessive-control-chars"
	// IssueMojibakeSequence indicates a corrupted-encoding artifact family was found
	IssueMojibakeSequence IssueTag = "mojibake-sequence"
	// IssueLowWordDensity indicates the text is mostly symbols or whitespace
	IssueLowWordDensity IssueTag = "low-word-density"
	// IssueMissingSectionStructure indicates no recognizable resume section header
	IssueMissingSectionStructure IssueTag = "missing-section-structure"
)

// ContentQualityReport is the outcome of assessing one extraction attempt.
// It is created once per attempt and never mutated afterwards.
type ContentQualityReport struct {
	IsValid        bool       `json:"is_valid"`
	Confidence     int        `json:"confidence"` // 0-100
	Issues         []IssueTag `json:"issues"`
	CleanedContent string     `json:"cleaned_content"`
}

// HasIssue reports whether the given tag was recorded during assessment.
func (r *ContentQualityReport) HasIssue(tag IssueTag) bool {
	for _, issue := range r.Issues {
		if issue == tag {
			return true
		}
	}
	return false
}
