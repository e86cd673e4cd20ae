package pipeline

import (
	"github.com/jonathan/ats-scanner/internal/ingestion"
	"github.com/jonathan/ats-scanner/internal/scoring"
	"github.com/jonathan/ats-scanner/internal/types"
)

// Status discriminates the terminal result of a pipeline run.
type Status string

const (
	// StatusSuccess means a fully validated scoring result was produced
	StatusSuccess Status = "success"
	// StatusRejectedForQuality means the resume text failed quality assessment
	// and no scoring call was spent on it
	StatusRejectedForQuality Status = "rejected-for-quality"
	// StatusScoringFailed means the scoring call failed or returned a
	// contract-violating response
	StatusScoringFailed Status = "scoring-failed"
)

// Outcome is the single immutable report returned to the caller.
// Exactly one of Result, QualityIssues, or ScoringErr is meaningful,
// selected by Status. AcquisitionErr is carried independently because
// job-description acquisition failures are non-fatal.
type Outcome struct {
	Status Status `json:"status"`

	// Success
	Result     *types.ScoringResult `json:"result,omitempty"`
	Confidence int                  `json:"confidence,omitempty"`

	// RejectedForQuality
	QualityIssues []types.IssueTag `json:"quality_issues,omitempty"`

	// ScoringFailed
	ScoringErr *scoring.Error `json:"-"`

	// Non-fatal: recorded whenever a job URL was supplied but acquisition failed
	JobPosting     *types.JobPosting           `json:"job_posting,omitempty"`
	AcquisitionErr *ingestion.AcquisitionError `json:"-"`
}
