package scoring

import (
	"errors"
	"fmt"

	"github.com/Veraticus/credit-risk-console/internal/model"
)

// Outcome is the result of one Predict call. It is exactly one of Success,
// Rejected or TransportFailure.
type Outcome interface {
	outcome()
}

// Success carries the record produced by an accepted scoring request.
type Success struct {
	Record model.PredictionRecord
}

// Rejected means the service answered but reported a non-success status,
// typically because it refused the profile. Message is the service's text
// and may be empty.
type Rejected struct {
	Message string
}

// TransportFailure means the service could not be reached or answered with
// something other than a well-formed 2xx response.
type TransportFailure struct {
	Cause error
}

func (Success) outcome()          {}
func (Rejected) outcome()         {}
func (TransportFailure) outcome() {}

// ErrMalformedResponse is wrapped by TransportError when a 2xx body cannot be
// understood.
var ErrMalformedResponse = errors.New("malformed response")

// TransportError describes a failed exchange with the scoring service.
// StatusCode is zero when no HTTP response was received.
type TransportError struct {
	Err        error
	Op         string
	StatusCode int
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("scoring %s: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("scoring %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
