package sanitize

import (
	"fmt"
	"strings"

	"github.com/jonathan/ats-scanner/internal/types"
)

// QualityError reports that content was rejected before scoring.
// Issues preserve detection order for a human-readable explanation.
type QualityError struct {
	Confidence int
	Issues     []types.IssueTag
}

func (e *QualityError) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("content rejected: confidence %d below threshold", e.Confidence)
	}
	tags := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		tags = append(tags, string(issue))
	}
	return fmt.Sprintf("content rejected: confidence %d, issues: %s",
		e.Confidence, strings.Join(tags, ", "))
}
