package errors

import (
	"fmt"
	"net/http"
)

// Kind classifies an upstream Storefront API failure.
type Kind int

const (
	// KindHTTPStatus means the upstream responded with a non-success HTTP status.
	KindHTTPStatus Kind = iota
	// KindInvalidPayload means the upstream body could not be parsed as JSON.
	KindInvalidPayload
	// KindGraphQLError means the envelope carried a non-empty errors list.
	KindGraphQLError
	// KindEmptyResponse means the envelope had no data field.
	KindEmptyResponse
)

func (k Kind) String() string {
	switch k {
	case KindHTTPStatus:
		return "http_status"
	case KindInvalidPayload:
		return "invalid_payload"
	case KindGraphQLError:
		return "graphql_error"
	case KindEmptyResponse:
		return "empty_response"
	}
	return "unknown"
}

// UpstreamError is returned for every Storefront API failure. Status is set
// at the point the failure is observed, so handlers never have to infer a
// status code from message text.
type UpstreamError struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Kind == KindHTTPStatus {
		return fmt.Sprintf("upstream %s: status %d", e.Kind, e.Status)
	}
	if e.Message != "" {
		return fmt.Sprintf("upstream %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("upstream %s", e.Kind)
}

// HTTPStatus maps the error to the status code the route layer should
// respond with. Forbidden, not-found and rate-limit statuses pass through;
// everything else is an internal error.
func (e *UpstreamError) HTTPStatus() int {
	switch e.Status {
	case http.StatusForbidden, http.StatusNotFound, http.StatusTooManyRequests:
		return e.Status
	}
	return http.StatusInternalServerError
}

// NewHTTPStatus reports a non-success upstream HTTP status.
func NewHTTPStatus(status int) *UpstreamError {
	return &UpstreamError{Kind: KindHTTPStatus, Status: status}
}

// NewInvalidPayload reports an unparseable upstream body.
func NewInvalidPayload(err error) *UpstreamError {
	return &UpstreamError{Kind: KindInvalidPayload, Message: err.Error()}
}

// NewGraphQLError reports the first message of the envelope errors list.
func NewGraphQLError(message string) *UpstreamError {
	return &UpstreamError{Kind: KindGraphQLError, Message: message}
}

// NewEmptyResponse reports an envelope with no data field.
func NewEmptyResponse() *UpstreamError {
	return &UpstreamError{Kind: KindEmptyResponse}
}

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}
