package spreadsheet

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingKey      = errors.New("spreadsheet key is required")
	ErrUnauthorized    = errors.New("invalid authorization key")
	ErrRequestFailed   = errors.New("feed request failed")
	ErrPrivateResource = errors.New("sheet is private - use authentication or make it public")
	ErrEmptyResponse   = errors.New("empty response")
	ErrNotEditable     = errors.New("entry cannot be edited")
	ErrAuthTransition  = errors.New("invalid authentication mode change")
	ErrAnonymous       = errors.New("operation requires credentials")
	ErrInvalidColumn   = errors.New("column name is not a valid XML name")
)

// ResponseError is returned for feed responses that were classified as failures. It
// unwraps to ErrUnauthorized, ErrRequestFailed or ErrPrivateResource.
type ResponseError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ResponseError) Error() string {
	switch {
	case errors.Is(e.Err, ErrPrivateResource):
		return e.Err.Error()

	case e.Body == "":
		return fmt.Sprintf("%v (HTTP %d %s)", e.Err, e.StatusCode, http.StatusText(e.StatusCode))

	default:
		return fmt.Sprintf("%v (HTTP %d %s) %s", e.Err, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
	}
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

func noResponse(op string) error {
	return fmt.Errorf("no response to %s call (%w)", op, ErrEmptyResponse)
}
