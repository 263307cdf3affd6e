package apimachinery

import (
	"encoding/json"
	"net/http"
)

// OutcomeKind enumerates the ways a non-success API response is handled.
type OutcomeKind int

const (
	// OutcomeUnauthorized means the credential was rejected. The session is
	// over regardless of which call discovered it.
	OutcomeUnauthorized OutcomeKind = iota
	// OutcomeServerError means the API server failed internally.
	OutcomeServerError
	// OutcomeClientDetail means a client error whose body carried a
	// human-readable detail field.
	OutcomeClientDetail
	// OutcomeOther is everything else; such failures propagate to the caller
	// without any user-facing side effect.
	OutcomeOther
)

// Outcome is a pure classification of a non-success response. Performing any
// side effect it implies is the Gateway's job, which keeps this testable
// without a UI.
type Outcome struct {
	Kind    OutcomeKind
	Message string
}

type errorEnvelope struct {
	Detail string `json:"detail"`
}

func classifyOutcome(statusCode int, body []byte) Outcome {
	switch {
	case statusCode == http.StatusUnauthorized:
		// An unauthorized response may still explain itself, e.g. a login
		// rejection; the message rides along for callers that can use it.
		envelope := errorEnvelope{}
		json.Unmarshal(body, &envelope) // nolint: errcheck
		return Outcome{Kind: OutcomeUnauthorized, Message: envelope.Detail}
	case statusCode >= 500:
		return Outcome{
			Kind:    OutcomeServerError,
			Message: "The server encountered an error. Please try again later.",
		}
	}
	envelope := errorEnvelope{}
	if err := json.Unmarshal(body, &envelope); err == nil &&
		envelope.Detail != "" {
		return Outcome{
			Kind:    OutcomeClientDetail,
			Message: envelope.Detail,
		}
	}
	return Outcome{Kind: OutcomeOther}
}
