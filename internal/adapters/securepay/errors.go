package securepay

import (
	"fmt"
)

// TransportError means the request never produced a usable response:
// the endpoint was malformed, the connection failed, or the server replied
// with a non-2xx HTTP status.
type TransportError struct {
	URL        string
	HTTPStatus int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("securepay transport: %s returned HTTP %d", e.URL, e.HTTPStatus)
	}
	return fmt.Sprintf("securepay transport: %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError means an expected response field was absent or malformed.
// Body holds the full response for diagnosis.
type ParseError struct {
	Field string
	Body  string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("securepay response: field %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("securepay response: field %s not found", e.Field)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// GatewayError means the envelope statusCode was non-zero; the message was
// not accepted for processing and no business outcome exists.
type GatewayError struct {
	StatusCode  int
	Description string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("securepay gateway: status %d: %s", e.StatusCode, e.Description)
}
