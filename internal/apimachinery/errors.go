package apimachinery

import "fmt"

// ErrSessionExpired is returned for any request the API server rejected as
// unauthenticated. By the time a caller sees this error the Gateway has
// already cleared any durable credential and pointed the user back at the
// login entry point.
type ErrSessionExpired struct {
	// Detail is the server's own explanation, when its response carried one.
	Detail string
}

func (e *ErrSessionExpired) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "the API server rejected the session credential"
}

// ErrServer is returned when the API server failed internally (5xx).
type ErrServer struct {
	StatusCode int
}

func (e *ErrServer) Error() string {
	return fmt.Sprintf("the API server returned %d", e.StatusCode)
}

// ErrDetail is returned for structured client errors whose response body
// carried a human-readable detail field.
type ErrDetail struct {
	StatusCode int
	Detail     string
}

func (e *ErrDetail) Error() string {
	return e.Detail
}
