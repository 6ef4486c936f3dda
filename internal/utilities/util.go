// Package utilities contain utility code that use across the package
package utilities

import "github.com/google/uuid"

// ErrorResponse type for error payloads
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse type for informational payloads
type MessageResponse struct {
	Message string `json:"message"`
}

// SuccessResponse type for delete acknowledgements
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ParseID parses a uuid from its string form. Empty input yields uuid.Nil
// without an error so optional id query params can pass through.
func ParseID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}
