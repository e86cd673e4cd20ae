// Package pipeline provides the high-level orchestration for one ATS scan:
// sanitize the extracted resume text, optionally acquire a job description,
// score, and package the terminal outcome.
package pipeline

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-scanner/internal/ingestion"
	"github.com/jonathan/ats-scanner/internal/sanitize"
	"github.com/jonathan/ats-scanner/internal/scoring"
	"github.com/jonathan/ats-scanner/internal/types"
)

// Default timeouts for the two remote calls. Both are overridable through
// Options; they are never hard-coded deeper in the pipeline.
const (
	DefaultScoringTimeout     = 30 * time.Second
	DefaultAcquisitionTimeout = 30 * time.Second
)

// Scorer is the scoring dependency of the pipeline. The production
// implementation is *scoring.Scorer.
type Scorer interface {
	ScoreResume(ctx context.Context, sanitized *sanitize.SanitizedContent, jobDescription string, industry string) (*types.ScoringResult, error)
}

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Pipeline step names reported through ProgressCallback.
const (
	StepSanitize    = "sanitize"
	StepAcquisition = "job-description"
	StepScoring     = "scoring"
)

// Options holds configuration for running the pipeline
type Options struct {
	// RawText is the extracted resume text from the upstream document extractor
	RawText string
	// JobURL optionally points at a posting to acquire as scoring context
	JobURL string
	// JobText optionally supplies posting text directly, skipping acquisition
	JobText  string
	Industry string

	Scorer    Scorer
	Extractor ingestion.Extractor

	ScoringTimeout     time.Duration
	AcquisitionTimeout time.Duration

	Verbose    bool
	OnProgress ProgressCallback
}

func (o *Options) emitProgress(step, message string) {
	if o.OnProgress != nil {
		o.OnProgress(ProgressEvent{Step: step, Message: message})
	}
}

// Run executes one scan and always returns a typed outcome; no failure
// escapes as a panic or a bare error. The sanitization and acquisition
// branches are independent and run concurrently; both settle before the
// scoring request is built.
func Run(ctx context.Context, opts Options) *Outcome {
	scoringTimeout := opts.ScoringTimeout
	if scoringTimeout <= 0 {
		scoringTimeout = DefaultScoringTimeout
	}
	acquisitionTimeout := opts.AcquisitionTimeout
	if acquisitionTimeout <= 0 {
		acquisitionTimeout = DefaultAcquisitionTimeout
	}

	var (
		sanitized   *sanitize.SanitizedContent
		sanitizeErr error

		posting        *types.JobPosting
		acquisitionErr *ingestion.AcquisitionError
	)

	g, gCtx := errgroup.WithContext(ctx)

	// Sanitization branch: pure CPU work, no suspension points
	g.Go(func() error {
		sanitized, sanitizeErr = sanitize.Sanitize(opts.RawText)
		if sanitizeErr == nil {
			opts.emitProgress(StepSanitize, "resume content passed quality assessment")
		}
		return nil
	})

	// Acquisition branch: only when a URL was supplied without posting text
	if opts.JobURL != "" && opts.JobText == "" && opts.Extractor != nil {
		g.Go(func() error {
			acquireCtx, cancel := context.WithTimeout(gCtx, acquisitionTimeout)
			defer cancel()

			result, err := ingestion.AcquireJobDescription(acquireCtx, opts.JobURL, opts.Extractor)
			if err != nil {
				// Non-fatal: scoring proceeds without a job description
				var aerr *ingestion.AcquisitionError
				if errors.As(err, &aerr) {
					acquisitionErr = aerr
				} else {
					acquisitionErr = &ingestion.AcquisitionError{
						Kind:    ingestion.KindExtractionFailed,
						URL:     opts.JobURL,
						Message: "acquisition failed",
						Cause:   err,
					}
				}
				if opts.Verbose {
					log.Printf("[VERBOSE] Job description acquisition failed: %v", err)
				}
				return nil
			}
			posting = result
			opts.emitProgress(StepAcquisition, "acquired job description")
			return nil
		})
	}

	_ = g.Wait()

	if sanitizeErr != nil {
		outcome := &Outcome{
			Status:         StatusRejectedForQuality,
			AcquisitionErr: acquisitionErr,
		}
		var qerr *sanitize.QualityError
		if errors.As(sanitizeErr, &qerr) {
			outcome.QualityIssues = qerr.Issues
		}
		return outcome
	}

	if opts.Scorer == nil {
		return &Outcome{
			Status: StatusScoringFailed,
			ScoringErr: &scoring.Error{
				Kind:    scoring.KindInvalidRequest,
				Message: "no scorer configured",
			},
			AcquisitionErr: acquisitionErr,
		}
	}

	jobDescription := opts.JobText
	if jobDescription == "" && posting != nil {
		jobDescription = posting.Text
	}

	if opts.Verbose {
		log.Printf("[VERBOSE] Scoring %d chars of resume text (job description: %d chars)",
			len(sanitized.Text), len(jobDescription))
	}

	scoreCtx, cancel := context.WithTimeout(ctx, scoringTimeout)
	defer cancel()

	result, err := opts.Scorer.ScoreResume(scoreCtx, sanitized, jobDescription, opts.Industry)
	if err != nil {
		return &Outcome{
			Status:         StatusScoringFailed,
			ScoringErr:     asScoringError(err),
			JobPosting:     posting,
			AcquisitionErr: acquisitionErr,
		}
	}

	opts.emitProgress(StepScoring, "scoring complete")

	return &Outcome{
		Status:         StatusSuccess,
		Result:         result,
		Confidence:     sanitized.Confidence,
		JobPosting:     posting,
		AcquisitionErr: acquisitionErr,
	}
}

// asScoringError normalizes any scorer failure into the closed taxonomy.
func asScoringError(err error) *scoring.Error {
	var serr *scoring.Error
	if errors.As(err, &serr) {
		return serr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &scoring.Error{
			Kind:    scoring.KindTimeout,
			Message: "scoring call exceeded deadline",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &scoring.Error{
			Kind:    scoring.KindCanceled,
			Message: "scoring call canceled by the caller",
			Cause:   err,
		}
	}
	return &scoring.Error{
		Kind:    scoring.KindServiceUnavailable,
		Message: "scoring call failed",
		Cause:   err,
	}
}
