package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for consistent error handling across the client.

// ErrConfig indicates missing or invalid local configuration.
type ErrConfig struct {
	Message string
}

func (e *ErrConfig) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// ErrTimeout indicates a request exceeded its deadline.
type ErrTimeout struct {
	Operation string
}

func (e *ErrTimeout) Error() string {
	if e.Operation == "" {
		return "timeout"
	}
	return fmt.Sprintf("operation timed out: %s", e.Operation)
}

// ErrNetwork indicates a transport failure other than a timeout.
// Message never contains the request URL.
type ErrNetwork struct {
	Message string
	Err     error
}

func (e *ErrNetwork) Error() string {
	return fmt.Sprintf("network error: %s", e.Message)
}

func (e *ErrNetwork) Unwrap() error {
	return e.Err
}

// ErrUnauthorized indicates the bearer token was rejected (401).
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrForbidden indicates the token lacks permission (403).
type ErrForbidden struct {
	Action string
}

func (e *ErrForbidden) Error() string {
	if e.Action == "" {
		return "forbidden"
	}
	return fmt.Sprintf("forbidden: %s", e.Action)
}

// ErrNotFound indicates the remote resource does not exist (404).
type ErrNotFound struct {
	Resource string
}

func (e *ErrNotFound) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("not found: %s", e.Resource)
}

// ErrTooManyRequests indicates the caller is rate limited (429).
type ErrTooManyRequests struct{}

func (e *ErrTooManyRequests) Error() string {
	return "too many requests"
}

// ErrServer carries a 5xx response body.
type ErrServer struct {
	Status int
	Body   string
}

func (e *ErrServer) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Status, e.Body)
}

// ErrAPI carries any other non-2xx response body.
type ErrAPI struct {
	Status int
	Body   string
}

func (e *ErrAPI) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Body)
}

// ErrDeserialize reports a 2xx body that did not match the expected schema.
type ErrDeserialize struct {
	Path    string
	Message string
	Raw     string
}

func (e *ErrDeserialize) Error() string {
	return fmt.Sprintf("deserialization error at %s: %s\nraw body: %s", e.Path, e.Message, e.Raw)
}

// ErrTokenDecode indicates a webhook token failed verification or decoding.
type ErrTokenDecode struct {
	Err error
}

func (e *ErrTokenDecode) Error() string {
	return fmt.Sprintf("token decode error: %v", e.Err)
}

func (e *ErrTokenDecode) Unwrap() error {
	return e.Err
}

// ErrValidation indicates a field failed a local constraint.
// Rule names the failed check, e.g. phone_length or tax_pattern.
type ErrValidation struct {
	Field   string
	Rule    string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ValidationErrors aggregates per-field failures of one payload.
type ValidationErrors []*ErrValidation

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// ErrorKind is a stable label for an error class, used in logs and metrics.
type ErrorKind string

const (
	KindNone            ErrorKind = "ok"
	KindConfig          ErrorKind = "config"
	KindTimeout         ErrorKind = "timeout"
	KindNetwork         ErrorKind = "network"
	KindUnauthorized    ErrorKind = "unauthorized"
	KindForbidden       ErrorKind = "forbidden"
	KindNotFound        ErrorKind = "not_found"
	KindTooManyRequests ErrorKind = "too_many_requests"
	KindServer          ErrorKind = "server"
	KindAPI             ErrorKind = "api"
	KindDeserialize     ErrorKind = "deserialize"
	KindTokenDecode     ErrorKind = "token_decode"
	KindValidation      ErrorKind = "validation"
	KindUnknown         ErrorKind = "unknown"
)

// KindOf classifies err by walking its wrap chain.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var (
		cfgErr      *ErrConfig
		timeoutErr  *ErrTimeout
		netErr      *ErrNetwork
		unauthErr   *ErrUnauthorized
		forbidErr   *ErrForbidden
		notFoundErr *ErrNotFound
		rateErr     *ErrTooManyRequests
		serverErr   *ErrServer
		apiErr      *ErrAPI
		decodeErr   *ErrDeserialize
		tokenErr    *ErrTokenDecode
		valErr      *ErrValidation
		valErrs     ValidationErrors
	)

	switch {
	case errors.As(err, &cfgErr):
		return KindConfig
	case errors.As(err, &timeoutErr):
		return KindTimeout
	case errors.As(err, &netErr):
		return KindNetwork
	case errors.As(err, &unauthErr):
		return KindUnauthorized
	case errors.As(err, &forbidErr):
		return KindForbidden
	case errors.As(err, &notFoundErr):
		return KindNotFound
	case errors.As(err, &rateErr):
		return KindTooManyRequests
	case errors.As(err, &serverErr):
		return KindServer
	case errors.As(err, &apiErr):
		return KindAPI
	case errors.As(err, &tokenErr):
		return KindTokenDecode
	case errors.As(err, &decodeErr):
		return KindDeserialize
	case errors.As(err, &valErr), errors.As(err, &valErrs):
		return KindValidation
	default:
		return KindUnknown
	}
}
