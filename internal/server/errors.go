package server

import (
	"net/http"

	"github.com/jonathan/ats-scanner/internal/pipeline"
	"github.com/jonathan/ats-scanner/internal/scoring"
)

// outcomeStatusCode maps a pipeline outcome to an HTTP status code.
// Quality rejection is the client's problem (the content is unusable),
// scoring failures are split by who has to act: the client for request
// problems, the operator or a retry for everything upstream.
func outcomeStatusCode(outcome *pipeline.Outcome) int {
	switch outcome.Status {
	case pipeline.StatusSuccess:
		return http.StatusOK
	case pipeline.StatusRejectedForQuality:
		return http.StatusUnprocessableEntity
	case pipeline.StatusScoringFailed:
		if outcome.ScoringErr == nil {
			return http.StatusBadGateway
		}
		switch outcome.ScoringErr.Kind {
		case scoring.KindInvalidRequest:
			return http.StatusBadRequest
		case scoring.KindTimeout:
			return http.StatusGatewayTimeout
		default:
			// service-unavailable, malformed-response
			return http.StatusBadGateway
		}
	default:
		return http.StatusInternalServerError
	}
}
