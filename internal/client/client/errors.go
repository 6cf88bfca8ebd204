package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/clinicadmin/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = common.ErrorUnauthorized
	ErrNotFound     = common.ErrorNotFound
	ErrNoToken      = common.ErrNoToken
	ErrNoCipher     = errors.New("encrypted call without a payload cipher")
	ErrBadEnvelope  = errors.New("unrecognised response envelope")
)

// APIError is a non-2xx reply. It unwraps to the sentinel for its status
// class, if any.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

func newAPIError(status int, message string) *APIError {
	e := &APIError{StatusCode: status, Message: message}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.kind = ErrUnauthorized
	case status == http.StatusNotFound:
		e.kind = ErrNotFound
	case status >= http.StatusInternalServerError:
		e.kind = ErrUnavailable
	}
	return e
}
