package swapi

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a well-formed upstream response whose result set
// was empty: the API answered, the name just matched nothing.
var ErrNotFound = errors.New("no matching records found")

// UpstreamError reports a non-200 status from the upstream API.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("could not reach api: status code %d", e.StatusCode)
}
