package constants

// Backend error codes, carried by providers.ProviderError
const (
	ErrCodeNetworkError   = "NETWORK_ERROR"
	ErrCodeUnexpectedCode = "UNEXPECTED_STATUS"
	ErrCodeDecodeError    = "DECODE_ERROR"
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeNotFound       = "RESOURCE_NOT_FOUND"
)

var backendErrorMessages = map[string]string{
	ErrCodeNetworkError:   "Unable to reach the flight backend",
	ErrCodeUnexpectedCode: "Flight backend returned an unexpected status",
	ErrCodeDecodeError:    "Flight backend returned a malformed body",
	ErrCodeInvalidInput:   "Invalid request",
	ErrCodeNotFound:       "Resource not found",
}

// GetErrorMessage returns the user-facing message for an error code
func GetErrorMessage(code string) string {
	if msg, ok := backendErrorMessages[code]; ok {
		return msg
	}
	return "Unknown backend error"
}
