// Package errors provides the coded error variants services return across
// transport boundaries.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an error that carries no code.
	CodeUnknown Code = "UNKNOWN"

	// CodeConfigurationMissing means a required setting (store URL or key) is absent.
	CodeConfigurationMissing Code = "CONFIGURATION_MISSING"
	// CodeStoreOperationFailed covers any failure while talking to the store.
	CodeStoreOperationFailed Code = "STORE_OPERATION_FAILED"
	// CodeInvalidPayload marks a request body that failed structural validation.
	CodeInvalidPayload Code = "INVALID_PAYLOAD"
)

// HTTPStatus maps a code to the status written at the HTTP boundary.
//
// Configuration and store failures share 500 so callers see one flat failure
// shape; only the message text tells them apart.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidPayload:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
