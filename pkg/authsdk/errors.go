package authsdk

import "fmt"

// ErrorResponse is the standard error body returned by the service.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// APIError is returned by the SDK when the service responds with a
// non-success status.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("authsdk: %s (%d): %s", e.Code, e.StatusCode, e.Description)
	}
	return fmt.Sprintf("authsdk: %s (%d)", e.Code, e.StatusCode)
}
