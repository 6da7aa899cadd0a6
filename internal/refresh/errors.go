package refresh

import (
	"errors"
	"fmt"
)

// ErrInvalidPayload is returned by the validation stage when the body is not well-formed JSON.
var ErrInvalidPayload = errors.New("payload is not valid JSON")

// StatusError is returned when RejectNonSuccess is set and the source answered with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.URL, e.StatusCode)
}
