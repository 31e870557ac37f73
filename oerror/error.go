package oerror

import "fmt"

// OomphError is the error type returned when configuration or world data is rejected.
type OomphError struct {
	Err string
}

// New formats an error message and wraps it in an OomphError.
func New(format string, args ...any) *OomphError {
	return &OomphError{Err: fmt.Sprintf(format, args...)}
}

func (e *OomphError) Error() string {
	return e.Err
}
