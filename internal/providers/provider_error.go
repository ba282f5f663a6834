package providers

import (
	"errors"
	"fmt"
)

// ProviderError describes a failed call to the flight backend
type ProviderError struct {
	Code       string
	Message    string
	StatusCode int
	Details    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ErrorCode extracts the ProviderError code from err, or "" when err is not one.
func ErrorCode(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
