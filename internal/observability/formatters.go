// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/ats-scanner/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintQualityReport outputs a human-readable summary of a quality assessment.
func (p *Printer) PrintQualityReport(report *types.ContentQualityReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Valid:      %t\n", report.IsValid))
	sb.WriteString(fmt.Sprintf("Confidence: %d/100\n", report.Confidence))
	if len(report.Issues) == 0 {
		sb.WriteString("Issues:     none")
	} else {
		sb.WriteString("Issues:")
		for _, issue := range report.Issues {
			sb.WriteString(fmt.Sprintf("\n  - %s", issue))
		}
	}

	p.printBox("Content Quality", sb.String())
}

// PrintScoringResult outputs a human-readable summary of a scoring result.
func (p *Printer) PrintScoringResult(result *types.ScoringResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ATS Score: %d/100\n", result.ATSScore))
	if result.Truncated {
		sb.WriteString("Note: only a prefix of the resume was analyzed\n")
	}
	sb.WriteString("\n")
	writeSuggestions(&sb, "Content Optimizations", result.ContentOptimizations)
	sb.WriteString("\n")
	writeSuggestions(&sb, "Format Optimizations", result.FormatOptimizations)

	p.printBox("Scoring Result", sb.String())
}

// PrintJobPosting outputs a short summary of an acquired job posting.
func (p *Printer) PrintJobPosting(posting *types.JobPosting) {
	if posting == nil {
		return
	}

	content := fmt.Sprintf("URL:  %s\nText: %d chars", posting.URL, len(posting.Text))
	p.printBox("Job Posting", content)
}

func writeSuggestions(sb *strings.Builder, title string, suggestions []types.Suggestion) {
	sb.WriteString(fmt.Sprintf("%s (%d):", title, len(suggestions)))
	for i, s := range suggestions {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("\n  ... and %d more", len(suggestions)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("\n  [%s] %s: %s", s.Severity, s.Category, s.Description))
	}
}
