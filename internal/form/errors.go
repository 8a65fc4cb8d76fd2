package form

import (
	"errors"

	"github.com/jackzampolin/langextract/internal/api"
	"github.com/jackzampolin/langextract/internal/schema"
)

var (
	// ErrSubmitInFlight is returned when a request is already outstanding.
	ErrSubmitInFlight = errors.New("a request is already in progress")

	// ErrSubmitDisabled is returned when text or schema is empty.
	ErrSubmitDisabled = errors.New("text and schema are required")
)

// ErrorKind classifies a stored failure. The page renders all kinds the
// same way; callers that need to tell them apart use the kind.
type ErrorKind string

const (
	ErrorKindNone        ErrorKind = ""
	ErrorKindSchemaParse ErrorKind = "schema_parse"
	ErrorKindInput       ErrorKind = "input"
	ErrorKindAPI         ErrorKind = "api"
	ErrorKindTransport   ErrorKind = "transport"
	ErrorKindDecode      ErrorKind = "decode"
	ErrorKindUnknown     ErrorKind = "unknown"
)

// InputError reports an optional form field that could not be parsed.
type InputError struct {
	Field string
	Err   error
}

func (e *InputError) Error() string {
	return "invalid " + e.Field + ": " + e.Err.Error()
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// KindOf classifies err.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ErrorKindNone
	}

	var (
		parseErr     *schema.ParseError
		inputErr     *InputError
		apiErr       *api.APIError
		transportErr *api.TransportError
		decodeErr    *api.DecodeError
	)
	switch {
	case errors.As(err, &parseErr):
		return ErrorKindSchemaParse
	case errors.As(err, &inputErr):
		return ErrorKindInput
	case errors.As(err, &apiErr):
		return ErrorKindAPI
	case errors.As(err, &transportErr):
		return ErrorKindTransport
	case errors.As(err, &decodeErr):
		return ErrorKindDecode
	default:
		return ErrorKindUnknown
	}
}

// message reduces err to the string shown in the error panel.
func message(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "An error occurred"
}
