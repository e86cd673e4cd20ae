package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-scanner/internal/config"
	"github.com/jonathan/ats-scanner/internal/ingestion"
	"github.com/jonathan/ats-scanner/internal/llm"
	"github.com/jonathan/ats-scanner/internal/observability"
	"github.com/jonathan/ats-scanner/internal/pipeline"
	"github.com/jonathan/ats-scanner/internal/scoring"
)

var scanCommand = &cobra.Command{
	Use:   "scan",
	Short: "Run one resume scan end-to-end",
	Long: `Runs the full scan pipeline: quality assessment -> sanitization -> optional job description acquisition -> scoring.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runScanCmd,
}

var (
	scanConfigPath         string
	scanResume             string
	scanJob                string
	scanJobURL             string
	scanIndustry           string
	scanMaxResumeChars     int
	scanScoringTimeout     int
	scanAcquisitionTimeout int
	scanAPIKey             string
	scanUseBrowser         bool
	scanVerbose            bool
)

func init() {
	// Config file flag (processed first)
	scanCommand.Flags().StringVar(&scanConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	scanCommand.Flags().StringVarP(&scanResume, "resume", "r", "", "Path to extracted resume text file")
	scanCommand.Flags().StringVarP(&scanJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	scanCommand.Flags().StringVar(&scanJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	scanCommand.Flags().StringVarP(&scanIndustry, "industry", "i", "", "Target industry for scoring")
	scanCommand.Flags().IntVar(&scanMaxResumeChars, "max-resume-chars", 0, "Maximum resume characters submitted for scoring")
	scanCommand.Flags().IntVar(&scanScoringTimeout, "scoring-timeout", 0, "Scoring call deadline in seconds")
	scanCommand.Flags().IntVar(&scanAcquisitionTimeout, "acquisition-timeout", 0, "Job posting fetch deadline in seconds")
	scanCommand.Flags().BoolVar(&scanUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	scanCommand.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	scanCommand.Flags().StringVar(&scanAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(scanCommand)
}

func runScanCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := buildScanConfig(cmd)
	if err != nil {
		return err
	}

	rawText, err := os.ReadFile(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to read resume file %s: %w", cfg.Resume, err)
	}

	var jobText string
	if cfg.Job != "" {
		data, err := os.ReadFile(cfg.Job)
		if err != nil {
			return fmt.Errorf("failed to read job file %s: %w", cfg.Job, err)
		}
		jobText = string(data)
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create scoring client: %w", err)
	}
	defer func() { _ = client.Close() }()

	opts := pipeline.Options{
		RawText:            string(rawText),
		JobURL:             cfg.JobURL,
		JobText:            jobText,
		Industry:           cfg.Industry,
		Scorer:             scoring.NewScorer(client, cfg.MaxResumeChars),
		Extractor:          ingestion.NewWebExtractor(cfg.AcquisitionTimeout(), cfg.UseBrowser, cfg.Verbose),
		ScoringTimeout:     cfg.ScoringTimeout(),
		AcquisitionTimeout: cfg.AcquisitionTimeout(),
		Verbose:            cfg.Verbose,
	}
	if cfg.Verbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", event.Step, event.Message)
		}
	}

	outcome := pipeline.Run(ctx, opts)

	return reportOutcome(outcome, cfg.Verbose)
}

// buildScanConfig loads the optional config file, applies CLI overrides and
// defaults, and validates the result.
func buildScanConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if scanConfigPath != "" {
		loadedCfg, err := config.LoadConfig(scanConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loadedCfg
		if scanVerbose {
			fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", scanConfigPath)
		}
	}

	// CLI overrides; only applied when the flag was explicitly set
	if cmd.Flags().Changed("resume") {
		cfg.Resume = scanResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = scanJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = scanJobURL
	}
	if cmd.Flags().Changed("industry") {
		cfg.Industry = scanIndustry
	}
	if cmd.Flags().Changed("max-resume-chars") {
		cfg.MaxResumeChars = scanMaxResumeChars
	}
	if cmd.Flags().Changed("scoring-timeout") {
		cfg.ScoringTimeoutSec = scanScoringTimeout
	}
	if cmd.Flags().Changed("acquisition-timeout") {
		cfg.AcquisitionTimeoutSec = scanAcquisitionTimeout
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = scanAPIKey
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = scanUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = scanVerbose
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		Industry:       config.DefaultIndustry,
		MaxResumeChars: scoring.DefaultMaxResumeChars,
	})

	if cfg.Resume == "" {
		return cfg, fmt.Errorf("--resume is required (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return cfg, fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return cfg, fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	return cfg, nil
}

// reportOutcome prints the scan outcome and maps it to the process exit status.
func reportOutcome(outcome *pipeline.Outcome, verbose bool) error {
	if verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintJobPosting(outcome.JobPosting)
		printer.PrintScoringResult(outcome.Result)
	}

	switch outcome.Status {
	case pipeline.StatusSuccess:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(outcome); err != nil {
			return fmt.Errorf("failed to encode outcome: %w", err)
		}
		if outcome.AcquisitionErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: job description unavailable: %v\n", outcome.AcquisitionErr)
		}
		return nil

	case pipeline.StatusRejectedForQuality:
		fmt.Fprintln(os.Stderr, "Resume content rejected for quality:")
		for _, issue := range outcome.QualityIssues {
			fmt.Fprintf(os.Stderr, "  - %s\n", issue)
		}
		return fmt.Errorf("resume content failed quality assessment")

	case pipeline.StatusScoringFailed:
		if outcome.ScoringErr != nil && outcome.ScoringErr.Retryable() {
			fmt.Fprintln(os.Stderr, "The failure is transient; retrying may succeed.")
		}
		return fmt.Errorf("scoring failed: %v", outcome.ScoringErr)

	default:
		return fmt.Errorf("unexpected outcome status %q", outcome.Status)
	}
}
