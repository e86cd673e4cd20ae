package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-scanner/internal/ingestion"
	"github.com/jonathan/ats-scanner/internal/sanitize"
	"github.com/jonathan/ats-scanner/internal/scoring"
	"github.com/jonathan/ats-scanner/internal/types"
)

// spyScorer records calls and returns a canned result.
type spyScorer struct {
	calls              int
	lastJobDescription string
	lastIndustry       string
	result             *types.ScoringResult
	err                error
	delay              time.Duration
}

func (s *spyScorer) ScoreResume(ctx context.Context, sanitized *sanitize.SanitizedContent, jobDescription string, industry string) (*types.ScoringResult, error) {
	s.calls++
	s.lastJobDescription = jobDescription
	s.lastIndustry = industry
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.result, s.err
}

// spyExtractor records calls and returns canned posting text.
type spyExtractor struct {
	calls int
	text  string
	err   error
}

func (s *spyExtractor) ExtractText(ctx context.Context, url string) (string, error) {
	s.calls++
	return s.text, s.err
}

func cleanResumeText() string {
	var sb strings.Builder
	sb.WriteString("Jane Doe\nSenior Software Engineer\n\nExperience\n")
	for sb.Len() < 2000 {
		sb.WriteString("Designed and operated distributed ingestion services in Go at scale. ")
	}
	sb.WriteString("\n\nEducation\nBS Computer Science\n\nSkills\nGo, Kubernetes, PostgreSQL\n")
	return sb.String()
}

func successResult() *types.ScoringResult {
	return &types.ScoringResult{
		ATSScore: 82,
		ContentOptimizations: []types.Suggestion{
			{Category: "keywords", Description: "Add cloud keywords", Severity: "high"},
			{Category: "quantification", Description: "Quantify outcomes", Severity: "medium"},
			{Category: "relevance", Description: "Trim older roles", Severity: "low"},
		},
		FormatOptimizations: []types.Suggestion{
			{Category: "sections", Description: "Standard Skills header", Severity: "medium"},
		},
	}
}

func TestRun_RejectsShortContent(t *testing.T) {
	scorer := &spyScorer{result: successResult()}

	outcome := Run(context.Background(), Options{
		RawText:  "x9$k2m@pQ7w!eR4tY6u#iO8zW1vB5n", // 30 printable chars of noise
		Industry: "Technology",
		Scorer:   scorer,
	})

	assert.Equal(t, StatusRejectedForQuality, outcome.Status)
	assert.Contains(t, outcome.QualityIssues, types.IssueInsufficientLength)
	assert.Nil(t, outcome.Result)
	assert.Equal(t, 0, scorer.calls, "rejected content must never reach scoring")
}

func TestRun_SuccessWithoutJobURL(t *testing.T) {
	scorer := &spyScorer{result: successResult()}

	outcome := Run(context.Background(), Options{
		RawText:  cleanResumeText(),
		Industry: "Technology",
		Scorer:   scorer,
	})

	require.Equal(t, StatusSuccess, outcome.Status)
	require.NotNil(t, outcome.Result)
	assert.Equal(t, 82, outcome.Result.ATSScore)
	assert.Len(t, outcome.Result.ContentOptimizations, 3)
	assert.Len(t, outcome.Result.FormatOptimizations, 1)
	assert.Equal(t, successResult(), outcome.Result, "result fields pass through unchanged")
	assert.Equal(t, 100, outcome.Confidence)
	assert.Equal(t, "Technology", scorer.lastIndustry)
	assert.Empty(t, scorer.lastJobDescription)
	assert.Equal(t, 1, scorer.calls)
}

func TestRun_InvalidJobURLIsNonFatal(t *testing.T) {
	scorer := &spyScorer{result: successResult()}
	extractor := &spyExtractor{text: "should not be fetched"}

	outcome := Run(context.Background(), Options{
		RawText:   cleanResumeText(),
		JobURL:    "javascript:alert(1)",
		Industry:  "Technology",
		Scorer:    scorer,
		Extractor: extractor,
	})

	require.Equal(t, StatusSuccess, outcome.Status, "scoring proceeds without a job description")
	require.NotNil(t, outcome.AcquisitionErr)
	assert.Equal(t, ingestion.KindInvalidURL, outcome.AcquisitionErr.Kind)
	assert.Equal(t, 0, extractor.calls, "invalid URL must not trigger a network call")
	assert.Empty(t, scorer.lastJobDescription)
}

func TestRun_JobDescriptionFeedsScoring(t *testing.T) {
	scorer := &spyScorer{result: successResult()}
	extractor := &spyExtractor{text: "We need a senior Go engineer with Kubernetes experience."}

	outcome := Run(context.Background(), Options{
		RawText:   cleanResumeText(),
		JobURL:    "https://boards.greenhouse.io/acme/jobs/1",
		Industry:  "Technology",
		Scorer:    scorer,
		Extractor: extractor,
	})

	require.Equal(t, StatusSuccess, outcome.Status)
	assert.Equal(t, 1, extractor.calls)
	assert.Equal(t, extractor.text, scorer.lastJobDescription)
	require.NotNil(t, outcome.JobPosting)
	assert.Equal(t, "https://boards.greenhouse.io/acme/jobs/1", outcome.JobPosting.URL)
	assert.Nil(t, outcome.AcquisitionErr)
}

func TestRun_JobTextSkipsAcquisition(t *testing.T) {
	scorer := &spyScorer{result: successResult()}
	extractor := &spyExtractor{text: "fetched text"}

	outcome := Run(context.Background(), Options{
		RawText:   cleanResumeText(),
		JobURL:    "https://example.com/jobs/1",
		JobText:   "Pasted job description text",
		Industry:  "Technology",
		Scorer:    scorer,
		Extractor: extractor,
	})

	require.Equal(t, StatusSuccess, outcome.Status)
	assert.Equal(t, 0, extractor.calls, "supplied text makes acquisition unnecessary")
	assert.Equal(t, "Pasted job description text", scorer.lastJobDescription)
}

func TestRun_ScoringTimeout(t *testing.T) {
	scorer := &spyScorer{result: successResult(), delay: 5 * time.Second}

	outcome := Run(context.Background(), Options{
		RawText:        cleanResumeText(),
		Industry:       "Technology",
		Scorer:         scorer,
		ScoringTimeout: 50 * time.Millisecond,
	})

	require.Equal(t, StatusScoringFailed, outcome.Status)
	require.NotNil(t, outcome.ScoringErr)
	assert.Equal(t, scoring.KindTimeout, outcome.ScoringErr.Kind)
	assert.Nil(t, outcome.Result, "no partial result is ever constructed")
}

func TestRun_ScoringFailurePropagatesKind(t *testing.T) {
	scorer := &spyScorer{err: &scoring.Error{
		Kind:    scoring.KindMalformedResponse,
		Message: "response violates result schema",
	}}

	outcome := Run(context.Background(), Options{
		RawText:  cleanResumeText(),
		Industry: "Technology",
		Scorer:   scorer,
	})

	require.Equal(t, StatusScoringFailed, outcome.Status)
	assert.Equal(t, scoring.KindMalformedResponse, outcome.ScoringErr.Kind)
	assert.False(t, outcome.ScoringErr.Retryable())
}

func TestRun_UnclassifiedScorerErrorIsNormalized(t *testing.T) {
	scorer := &spyScorer{err: fmt.Errorf("socket closed")}

	outcome := Run(context.Background(), Options{
		RawText:  cleanResumeText(),
		Industry: "Technology",
		Scorer:   scorer,
	})

	require.Equal(t, StatusScoringFailed, outcome.Status)
	assert.Equal(t, scoring.KindServiceUnavailable, outcome.ScoringErr.Kind)
}

func TestRun_NoScorerConfigured(t *testing.T) {
	outcome := Run(context.Background(), Options{
		RawText:  cleanResumeText(),
		Industry: "Technology",
	})

	require.Equal(t, StatusScoringFailed, outcome.Status)
	assert.Equal(t, scoring.KindInvalidRequest, outcome.ScoringErr.Kind)
}

func TestRun_RejectionReportedEvenWithAcquisitionFailure(t *testing.T) {
	scorer := &spyScorer{result: successResult()}
	extractor := &spyExtractor{err: fmt.Errorf("connection refused")}

	outcome := Run(context.Background(), Options{
		RawText:   "too short",
		JobURL:    "https://example.com/jobs/1",
		Industry:  "Technology",
		Scorer:    scorer,
		Extractor: extractor,
	})

	assert.Equal(t, StatusRejectedForQuality, outcome.Status)
	require.NotNil(t, outcome.AcquisitionErr)
	assert.Equal(t, ingestion.KindExtractionFailed, outcome.AcquisitionErr.Kind)
	assert.Equal(t, 0, scorer.calls)
}

func TestRun_EmitsProgressEvents(t *testing.T) {
	scorer := &spyScorer{result: successResult()}
	var steps []string

	Run(context.Background(), Options{
		RawText:  cleanResumeText(),
		Industry: "Technology",
		Scorer:   scorer,
		OnProgress: func(event ProgressEvent) {
			steps = append(steps, event.Step)
		},
	})

	assert.Contains(t, steps, StepSanitize)
	assert.Contains(t, steps, StepScoring)
}

func TestRun_CallerCancellation(t *testing.T) {
	scorer := &spyScorer{result: successResult(), delay: 5 * time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	done := make(chan *Outcome, 1)
	go func() {
		done <- Run(ctx, Options{
			RawText:  cleanResumeText(),
			Industry: "Technology",
			Scorer:   scorer,
		})
	}()

	select {
	case outcome := <-done:
		assert.Equal(t, StatusScoringFailed, outcome.Status)
		require.NotNil(t, outcome.ScoringErr)
		assert.Equal(t, scoring.KindCanceled, outcome.ScoringErr.Kind)
		assert.False(t, outcome.ScoringErr.Retryable())
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline did not abandon the in-flight call after cancellation")
	}
}
