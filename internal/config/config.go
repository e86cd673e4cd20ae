// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags.
type Config struct {
	// Inputs
	Resume   string `json:"resume,omitempty"`   // Path to extracted resume text file
	Job      string `json:"job,omitempty"`      // Path to job posting text file
	JobURL   string `json:"job_url,omitempty"`  // URL to fetch job posting from
	Industry string `json:"industry,omitempty"` // Target industry for scoring

	// Limits
	MaxResumeChars        int `json:"max_resume_chars,omitempty"`        // Maximum resume chars submitted for scoring
	ScoringTimeoutSec     int `json:"scoring_timeout_sec,omitempty"`     // Scoring call deadline in seconds
	AcquisitionTimeoutSec int `json:"acquisition_timeout_sec,omitempty"` // Job posting fetch deadline in seconds

	// Behavior
	APIKey     string `json:"api_key,omitempty"`     // Scoring service API key
	UseBrowser bool   `json:"use_browser,omitempty"` // Use headless browser for SPA job boards
	Verbose    bool   `json:"verbose,omitempty"`     // Print detailed debug information
}

// DefaultIndustry is used when neither config nor flags name an industry.
const DefaultIndustry = "General"

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.MaxResumeChars < 0 {
		return fmt.Errorf("config error: 'max_resume_chars' must be non-negative")
	}
	if c.ScoringTimeoutSec < 0 {
		return fmt.Errorf("config error: 'scoring_timeout_sec' must be non-negative")
	}
	if c.AcquisitionTimeoutSec < 0 {
		return fmt.Errorf("config error: 'acquisition_timeout_sec' must be non-negative")
	}

	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags; bool flags always win, since unset cannot be distinguished from
// false.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.Industry == "" {
		result.Industry = defaults.Industry
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}

	if result.MaxResumeChars == 0 {
		result.MaxResumeChars = defaults.MaxResumeChars
	}
	if result.ScoringTimeoutSec == 0 {
		result.ScoringTimeoutSec = defaults.ScoringTimeoutSec
	}
	if result.AcquisitionTimeoutSec == 0 {
		result.AcquisitionTimeoutSec = defaults.AcquisitionTimeoutSec
	}

	if result.Industry == "" {
		result.Industry = DefaultIndustry
	}

	return result
}

// ScoringTimeout returns the scoring deadline as a duration; zero means
// the pipeline default applies.
func (c *Config) ScoringTimeout() time.Duration {
	return time.Duration(c.ScoringTimeoutSec) * time.Second
}

// AcquisitionTimeout returns the fetch deadline as a duration; zero means
// the pipeline default applies.
func (c *Config) AcquisitionTimeout() time.Duration {
	return time.Duration(c.AcquisitionTimeoutSec) * time.Second
}
