package generator

import (
	"errors"
	"net/http"
	"strings"
)

// ValidationError carries every rule the request violated.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

// ErrorKind classifies generation failures.
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation_error"
	KindConfig          ErrorKind = "config_error"
	KindRateLimited     ErrorKind = "rate_limited"
	KindUnavailable     ErrorKind = "unavailable"
	KindMalformedOutput ErrorKind = "malformed_output"
	KindUnknown         ErrorKind = "unknown"
)

// GenerationError is an unrecoverable failure of the text-generation call.
// Error() never includes the provider's message; use Unwrap for logs.
type GenerationError struct {
	Kind ErrorKind
	Err  error
}

func (e *GenerationError) Error() string {
	switch e.Kind {
	case KindConfig:
		return "text generation service is not configured correctly"
	case KindRateLimited:
		return "text generation rate limit exceeded"
	case KindUnavailable:
		return "text generation service is temporarily unavailable"
	case KindMalformedOutput:
		return "text generation returned an unusable response"
	default:
		return "text generation failed"
	}
}

func (e *GenerationError) Unwrap() error { return e.Err }

func newGenerationError(kind ErrorKind, err error) *GenerationError {
	return &GenerationError{Kind: kind, Err: err}
}

// Failure is the categorised error returned by Agent.Handle.
type Failure struct {
	Status  int
	Kind    ErrorKind
	Message string
	Details []string
	Err     error
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Err }

// toFailure maps validation and generation errors onto response categories.
func toFailure(err error) *Failure {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return &Failure{
			Status:  http.StatusBadRequest,
			Kind:    KindValidation,
			Message: "Validation failed",
			Details: verr.Details,
			Err:     err,
		}
	}

	var gerr *GenerationError
	if !errors.As(err, &gerr) {
		gerr = newGenerationError(KindUnknown, err)
	}
	f := &Failure{Kind: gerr.Kind, Details: []string{gerr.Error()}, Err: err}
	switch gerr.Kind {
	case KindConfig:
		f.Status = http.StatusInternalServerError
		f.Message = "Server configuration error"
	case KindRateLimited:
		f.Status = http.StatusTooManyRequests
		f.Message = "Rate limit exceeded, please try again shortly"
	default:
		f.Status = http.StatusInternalServerError
		f.Message = "Failed to generate posts"
	}
	return f
}
