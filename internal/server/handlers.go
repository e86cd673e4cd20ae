package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/ats-scanner/internal/pipeline"
	"github.com/jonathan/ats-scanner/internal/types"
)

// ScanRequest is the request body for POST /scan.
// Exactly one of JobURL and JobText may be supplied; both are optional.
type ScanRequest struct {
	ResumeText string `json:"resume_text" validate:"required"`
	JobURL     string `json:"job_url" validate:"omitempty,url"`
	JobText    string `json:"job_text" validate:"omitempty,excluded_with=JobURL"`
	Industry   string `json:"industry" validate:"omitempty,max=100"`
}

// ScanResponse is the response body for POST /scan. Which fields are
// populated depends on Status.
type ScanResponse struct {
	ScanID string          `json:"scan_id"`
	Status pipeline.Status `json:"status"`

	Result     *types.ScoringResult `json:"result,omitempty"`
	Confidence int                  `json:"confidence,omitempty"`

	QualityIssues []types.IssueTag `json:"quality_issues,omitempty"`

	ScoringError     *ScanError `json:"scoring_error,omitempty"`
	AcquisitionError *ScanError `json:"acquisition_error,omitempty"`
}

// ScanError is the wire form of a classified pipeline failure.
type ScanError struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

// handleScan runs one scan synchronously and returns its outcome.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	scanID := uuid.New().String()

	outcome := pipeline.Run(r.Context(), pipeline.Options{
		RawText:            req.ResumeText,
		JobURL:             req.JobURL,
		JobText:            req.JobText,
		Industry:           req.Industry,
		Scorer:             s.scorer,
		Extractor:          s.extractor,
		ScoringTimeout:     s.scoringTimeout,
		AcquisitionTimeout: s.acquisitionTimeout,
		Verbose:            s.verbose,
	})

	resp := ScanResponse{
		ScanID:        scanID,
		Status:        outcome.Status,
		Result:        outcome.Result,
		Confidence:    outcome.Confidence,
		QualityIssues: outcome.QualityIssues,
	}
	if outcome.ScoringErr != nil {
		resp.ScoringError = &ScanError{
			Kind:      string(outcome.ScoringErr.Kind),
			Message:   outcome.ScoringErr.Message,
			Retryable: outcome.ScoringErr.Retryable(),
		}
	}
	if outcome.AcquisitionErr != nil {
		resp.AcquisitionError = &ScanError{
			Kind:      string(outcome.AcquisitionErr.Kind),
			Message:   outcome.AcquisitionErr.Message,
			Retryable: outcome.AcquisitionErr.Retryable(),
		}
	}

	s.jsonResponse(w, outcomeStatusCode(outcome), resp)
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
