package api

import "fmt"

// StatusError is a non-2xx reply to the initial request, reported before
// any stream was available.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("api status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("api status %d", e.Status)
}
