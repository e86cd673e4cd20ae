package quality

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-scanner/internal/types"
)

// cleanResume is a representative well-extracted resume fragment.
const cleanResume = `Jane Doe
Senior Software Engineer

Experience
Acme Corp, 2019-2024
Led a team of five engineers building distributed ingestion services in Go.
Reduced p99 latency by 40 percent through connection pooling and caching.

Education
BS Computer Science, State University

Skills
Go, PostgreSQL, Kubernetes, Terraform`

func TestAssessQuality_ShortInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t  \n  "},
		{"under fifty chars", "John Doe, Engineer"},
		{"padded under fifty", "   John Doe, Engineer at Acme    \n\n"},
		{"multibyte under fifty runes", strings.Repeat("résumé ", 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := AssessQuality(tt.input)

			assert.False(t, report.IsValid)
			assert.Equal(t, 0, report.Confidence)
			assert.Equal(t, []types.IssueTag{types.IssueInsufficientLength}, report.Issues)
			assert.Empty(t, report.CleanedContent)
		})
	}
}

func TestAssessQuality_CleanText(t *testing.T) {
	report := AssessQuality(cleanResume)

	assert.True(t, report.IsValid)
	assert.Equal(t, 100, report.Confidence)
	assert.Empty(t, report.Issues)
	assert.NotEmpty(t, report.CleanedContent)
}

func TestAssessQuality_ExcessiveControlChars(t *testing.T) {
	corrupted := cleanResume + strings.Repeat("\x01\x02\x03", 20)
	report := AssessQuality(corrupted)

	assert.True(t, report.HasIssue(types.IssueExcessiveControlChars))
	assert.Less(t, report.Confidence, 100)
	assert.NotContains(t, report.CleanedContent, "\x01")
}

func TestAssessQuality_MojibakeFamilies(t *testing.T) {
	corrupted := cleanResume + "\nLed the teamâ€™s migration � effort"
	report := AssessQuality(corrupted)

	// Two distinct families: windows-1252 sequences and replacement chars
	count := 0
	for _, issue := range report.Issues {
		if issue == types.IssueMojibakeSequence {
			count++
		}
	}
	assert.Equal(t, 2, count)
	assert.NotContains(t, report.CleanedContent, "â€")
	assert.NotContains(t, report.CleanedContent, "�")
}

func TestAssessQuality_OOXMLLeakage(t *testing.T) {
	corrupted := cleanResume + "\n<w:p><w:t>leaked run</w:t></w:p>"
	report := AssessQuality(corrupted)

	assert.True(t, report.HasIssue(types.IssueMojibakeSequence))
	assert.NotContains(t, report.CleanedContent, "<w:p>")
}

func TestAssessQuality_LowWordDensity(t *testing.T) {
	t.Run("symbol-only text is rejected outright", func(t *testing.T) {
		// Pure symbols: a failed extraction artifact with no words at all
		input := strings.Repeat("### @@@ |||| ---- ", 10)
		report := AssessQuality(input)

		assert.True(t, report.HasIssue(types.IssueLowWordDensity))
		assert.Equal(t, 0, report.Confidence)
		assert.False(t, report.IsValid)
	})

	t.Run("sparse but wordy text takes the soft penalty", func(t *testing.T) {
		// Divider-heavy layout with real words: density is low, not absent
		input := "Experience at Acme Corporation\n" + strings.Repeat("==== ---- ", 30)
		report := AssessQuality(input)

		assert.True(t, report.HasIssue(types.IssueLowWordDensity))
		assert.Equal(t, 75, report.Confidence)
		assert.True(t, report.IsValid)
	})
}

func TestAssessQuality_MissingSectionStructure(t *testing.T) {
	input := "Jane Doe wrote software for many years at several companies and enjoyed doing so very much indeed."
	report := AssessQuality(input)

	assert.True(t, report.HasIssue(types.IssueMissingSectionStructure))
	// Soft signal only: text is otherwise clean, so it stays valid
	assert.True(t, report.IsValid)
	assert.Equal(t, 90, report.Confidence)
}

func TestAssessQuality_Deterministic(t *testing.T) {
	input := cleanResume + "â€™\x00"
	first := AssessQuality(input)
	second := AssessQuality(input)

	assert.Equal(t, first, second)
}

func TestAssessQuality_MonotonicPenalties(t *testing.T) {
	base := AssessQuality(cleanResume)

	// Each added artifact family can only lower confidence
	withOne := AssessQuality(cleanResume + "â€™")
	withTwo := AssessQuality(cleanResume + "â€™\x00")

	assert.GreaterOrEqual(t, base.Confidence, withOne.Confidence)
	assert.GreaterOrEqual(t, withOne.Confidence, withTwo.Confidence)
}

func TestAssessQuality_CleanedContentFixedPoint(t *testing.T) {
	report := AssessQuality(cleanResume)
	require.True(t, report.IsValid)

	again := AssessQuality(report.CleanedContent)
	assert.GreaterOrEqual(t, again.Confidence, report.Confidence)
	assert.Equal(t, report.CleanedContent, again.CleanedContent)
}

func TestAssessQuality_IssueDetectionOrder(t *testing.T) {
	corrupted := cleanResume + strings.Repeat("\x01", 40) + "â€œ"
	report := AssessQuality(corrupted)

	require.GreaterOrEqual(t, len(report.Issues), 2)
	assert.Equal(t, types.IssueExcessiveControlChars, report.Issues[0])
	assert.Equal(t, types.IssueMojibakeSequence, report.Issues[1])
}

func TestAssessQuality_ConfidenceClampedAtZero(t *testing.T) {
	// Stack every penalty at once
	corrupted := strings.Repeat("@#$ ", 30) +
		strings.Repeat("\x01", 20) +
		"â€™ \x00 � <w:t>x</w:t>"
	report := AssessQuality(corrupted)

	assert.Equal(t, 0, report.Confidence)
	assert.False(t, report.IsValid)
}
