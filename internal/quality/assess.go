// Package quality provides deterministic heuristics for deciding whether
// extracted resume text is trustworthy enough to score.
package quality

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/ats-scanner/internal/types"
)

const (
	// MinContentLength is the minimum trimmed length worth assessing.
	MinContentLength = 50

	// controlCharRatioThreshold is the tolerated fraction of control characters.
	controlCharRatioThreshold = 0.02

	// wordDensityThreshold is the minimum alphabetic-word count per 100 characters.
	wordDensityThreshold = 8.0

	// validConfidenceThreshold is the confidence below which content is rejected.
	validConfidenceThreshold = 50
)

// Penalty weights subtracted from the starting confidence of 100.
// The exact values are tuned against extraction samples; the relative
// ordering (control chars > density > mojibake > structure) is the contract.
const (
	penaltyControlChars     = 30
	penaltyLowWordDensity   = 25
	penaltyMojibakeFamily   = 15
	penaltySectionStructure = 10

	// penaltyNoAlphaWords forces rejection: text without a single
	// alphabetic word has nothing scoreable left after cleanup.
	penaltyNoAlphaWords = 100
)

// artifactFamily is one known class of encoding corruption.
type artifactFamily struct {
	name    string
	pattern *regexp.Regexp
}

// artifactFamilies lists the corruption classes scanned for during assessment.
// Each family found records one mojibake-sequence issue.
var artifactFamilies = []artifactFamily{
	{name: "windows1252", pattern: regexp.MustCompile("â€")},
	{name: "null-bytes", pattern: regexp.MustCompile("\x00")},
	{name: "replacement-char", pattern: regexp.MustCompile("�")},
	{name: "ooxml-markup", pattern: regexp.MustCompile(`</?[a-z]+:[A-Za-z][^>]*>`)},
}

// sectionKeywords are resume section headers used as a soft structure signal.
var sectionKeywords = []string{
	"experience",
	"education",
	"skills",
	"employment",
	"work history",
}

var alphaWordRe = regexp.MustCompile(`[a-zA-Z]{2,}`)

// AssessQuality inspects raw extracted text and computes a corruption report
// with a cleaned variant. It is pure and total: it never fails, and identical
// input always yields an identical report.
func AssessQuality(raw string) *types.ContentQualityReport {
	report := &types.ContentQualityReport{
		Issues: []types.IssueTag{},
	}

	// Length gate: too short to say anything meaningful.
	// Counted in runes so multi-byte scripts are not over-measured.
	if utf8.RuneCountInString(strings.TrimSpace(raw)) < MinContentLength {
		report.Issues = append(report.Issues, types.IssueInsufficientLength)
		return report
	}

	penalties := 0

	// Control-character ratio
	if controlCharRatio(raw) > controlCharRatioThreshold {
		report.Issues = append(report.Issues, types.IssueExcessiveControlChars)
		penalties += penaltyControlChars
	}

	// Encoding-artifact families
	for _, family := range artifactFamilies {
		if family.pattern.MatchString(raw) {
			report.Issues = append(report.Issues, types.IssueMojibakeSequence)
			penalties += penaltyMojibakeFamily
		}
	}

	// Word density
	if wordDensity(raw) < wordDensityThreshold {
		report.Issues = append(report.Issues, types.IssueLowWordDensity)
		if alphaWordRe.MatchString(raw) {
			penalties += penaltyLowWordDensity
		} else {
			penalties += penaltyNoAlphaWords
		}
	}

	// Section-structure signal (soft: some resumes use non-standard headers)
	if !hasSectionKeyword(raw) {
		report.Issues = append(report.Issues, types.IssueMissingSectionStructure)
		penalties += penaltySectionStructure
	}

	report.CleanedContent = CleanText(raw)
	report.Confidence = clampConfidence(100 - penalties)
	report.IsValid = report.Confidence >= validConfidenceThreshold
	return report
}

// controlCharRatio returns the fraction of control characters over total
// length, excluding newline, carriage return, and tab.
func controlCharRatio(text string) float64 {
	if text == "" {
		return 0
	}
	total := 0
	control := 0
	for _, r := range text {
		total++
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if unicode.IsControl(r) {
			control++
		}
	}
	return float64(control) / float64(total)
}

// wordDensity returns the count of alphabetic words per 100 characters.
func wordDensity(text string) float64 {
	length := len([]rune(text))
	if length == 0 {
		return 0
	}
	words := len(alphaWordRe.FindAllString(text, -1))
	return float64(words) / float64(length) * 100
}

func hasSectionKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range sectionKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func clampConfidence(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
