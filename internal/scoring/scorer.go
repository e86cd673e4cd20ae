// Package scoring builds scoring requests, invokes the hosted scoring
// service, and normalizes its response into the canonical result shape.
package scoring

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/jonathan/ats-scanner/internal/llm"
	"github.com/jonathan/ats-scanner/internal/prompts"
	"github.com/jonathan/ats-scanner/internal/sanitize"
	"github.com/jonathan/ats-scanner/internal/schemas"
	"github.com/jonathan/ats-scanner/internal/types"
)

//go:embed scoring_result.schema.json
var resultSchema string

// DefaultMaxResumeChars is the largest resume text submitted for scoring.
// Longer content is truncated to a prefix and flagged on the result.
const DefaultMaxResumeChars = 20000

// Scorer orchestrates scoring calls against an llm.Client.
// Exactly one remote call is made per ScoreResume invocation; retries are
// the caller's decision, driven by Error.Retryable.
type Scorer struct {
	client         llm.Client
	maxResumeChars int
}

// NewScorer creates a Scorer. maxResumeChars <= 0 selects the default.
func NewScorer(client llm.Client, maxResumeChars int) *Scorer {
	if maxResumeChars <= 0 {
		maxResumeChars = DefaultMaxResumeChars
	}
	return &Scorer{
		client:         client,
		maxResumeChars: maxResumeChars,
	}
}

// ScoreResume submits sanitized resume text for scoring and validates the
// response. sanitized must come from a successful sanitize.Sanitize call;
// raw extractor output must never reach this method.
func (s *Scorer) ScoreResume(ctx context.Context, sanitized *sanitize.SanitizedContent, jobDescription string, industry string) (*types.ScoringResult, error) {
	if sanitized == nil || sanitized.Text == "" {
		return nil, &Error{
			Kind:    KindInvalidRequest,
			Message: "sanitized content is required",
		}
	}

	request := types.ScoringRequest{
		ResumeText:     sanitized.Text,
		JobDescription: jobDescription,
		Industry:       industry,
	}

	truncated := false
	if len(request.ResumeText) > s.maxResumeChars {
		request.ResumeText = truncateAtRune(request.ResumeText, s.maxResumeChars)
		truncated = true
	}

	prompt := buildScoringPrompt(&request)

	raw, err := s.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, classifyCallError(err)
	}

	result, err := parseScoringResponse(raw)
	if err != nil {
		return nil, err
	}

	result.Truncated = truncated
	return result, nil
}

// buildScoringPrompt assembles the scoring prompt from embedded templates.
func buildScoringPrompt(request *types.ScoringRequest) string {
	jobSection := ""
	if request.JobDescription != "" {
		jobSection = prompts.Format(
			prompts.MustGet("scoring.json", "job-description-section"),
			map[string]string{"JobDescription": request.JobDescription},
		)
	}

	template := prompts.MustGet("scoring.json", "score-resume")
	return prompts.Format(template, map[string]string{
		"Industry":              request.Industry,
		"JobDescriptionSection": jobSection,
		"ResumeText":            request.ResumeText,
	})
}

// parseScoringResponse validates the raw response against the result schema
// and decodes it. Any contract violation becomes a malformed-response error;
// an out-of-range score or missing array is never forwarded.
func parseScoringResponse(raw string) (*types.ScoringResult, error) {
	if err := schemas.ValidateJSONString(resultSchema, raw); err != nil {
		return nil, &Error{
			Kind:    KindMalformedResponse,
			Message: "response violates result schema",
			Cause:   err,
		}
	}

	var result types.ScoringResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, &Error{
			Kind:    KindMalformedResponse,
			Message: "response is not valid JSON",
			Cause:   err,
		}
	}

	if err := types.ValidateScoringResult(&result); err != nil {
		return nil, &Error{
			Kind:    KindMalformedResponse,
			Message: "response violates result invariants",
			Cause:   err,
		}
	}

	return &result, nil
}

// classifyCallError maps a transport failure into the closed taxonomy.
func classifyCallError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{
			Kind:    KindTimeout,
			Message: "scoring call exceeded deadline",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &Error{
			Kind:    KindCanceled,
			Message: "scoring call canceled by the caller",
			Cause:   err,
		}
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code >= 400 && apiErr.Code < 500 && apiErr.Code != http.StatusTooManyRequests {
			return &Error{
				Kind:    KindInvalidRequest,
				Message: "scoring service rejected the request",
				Cause:   err,
			}
		}
	}

	return &Error{
		Kind:    KindServiceUnavailable,
		Message: "scoring service call failed",
		Cause:   err,
	}
}

// truncateAtRune cuts s to at most max bytes without splitting a rune.
func truncateAtRune(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
