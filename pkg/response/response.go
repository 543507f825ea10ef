// Package response writes the API's JSON wire format.
//
// Successful responses are bare records (the front end consumes field names
// directly, no envelope). Errors are {"message": "..."} with the status code
// carrying the classification.
package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as the response body with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Message sends {"message": msg} with the given status.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Unauthorized sends a 401. Used for missing, malformed, or expired credentials.
func Unauthorized(w http.ResponseWriter) {
	Message(w, http.StatusUnauthorized, "unauthorized access")
}

// Forbidden sends a 403. Used for role and ownership mismatches.
func Forbidden(w http.ResponseWriter) {
	Message(w, http.StatusForbidden, "forbidden access")
}

// BadRequest sends a 400 with the given message.
func BadRequest(w http.ResponseWriter, msg string) {
	Message(w, http.StatusBadRequest, msg)
}

// Internal sends a 500. Upstream failures (store, payment processor) are not
// classified further on the wire.
func Internal(w http.ResponseWriter, msg string) {
	Message(w, http.StatusInternalServerError, msg)
}

// ValidationError sends a 422 with a field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"message": "Validation failed",
		"errors":  errs,
	})
}
