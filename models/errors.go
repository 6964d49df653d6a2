package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")
)

// Offer evaluation related errors.
//
// The pipeline is best-effort by contract: a malformed offer or feature is
// defaulted and logged, never propagated. The errors below are the few cases
// where a whole evaluation cannot produce a result at all.
var (
	// execution
	ErrUnknownStrategy         = errors.Wrap(BadParameterError, "unknown scoring strategy")
	ErrNoDynamicEngagement     = errors.Wrap(BadParameterError, "dynamic_engagement corpora not configured")
	ErrMissingUsageFeatures    = errors.New("feature snapshot does not contain daily usage averages")
	ErrPanicInOfferEvaluation  = errors.New("panic during offer evaluation")
	ErrNoNetworkConfig         = errors.Wrap(BadParameterError, "network corpora has no config type assigned")
	ErrUnknownBusinessFunction = errors.Wrap(NotFoundError, "unknown business logic function")
)

// MissingFieldError marks a recoverable lookup miss: the caller substitutes a
// documented default and continues.
type MissingFieldError struct {
	Key string
}

func (e MissingFieldError) Error() string {
	return "missing field: " + e.Key
}

// MalformedValueError marks a value that is present but not convertible to
// the expected type (non-numeric string, NaN, wrong kind).
type MalformedValueError struct {
	Key string
}

func (e MalformedValueError) Error() string {
	return "malformed value for field: " + e.Key
}
