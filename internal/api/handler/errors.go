package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/lobby-accounts/internal/api/apierr"
)

// maxBodyBytes bounds request bodies; account and registry forms are tiny
const maxBodyBytes = 64 << 10

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) error {
	return apierr.NewForbiddenError(message)
}

// decodeBody reads the JSON body into v. On failure it writes the 400
// response itself and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		WriteError(w, NewInvalidRequestError("request body too large"))
	} else {
		WriteError(w, NewInvalidRequestError("invalid request body"))
	}
	return false
}
