package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"FINTRACK_BACK-END/internal/apperrors"
	"FINTRACK_BACK-END/internal/dto"
)

const maxBodyBytes = 1 << 20

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes an error body. message is optional detail.
func WriteErrorResponse(w http.ResponseWriter, status int, errMsg, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{Error: errMsg, Message: message})
}

// WriteAppError maps err onto its HTTP status and client-safe message.
func WriteAppError(w http.ResponseWriter, err error) {
	WriteJSONResponse(w, apperrors.Status(err), dto.ErrorResponse{Error: apperrors.Message(err)})
}

// DecodeJSONRequest decodes the request body into v. Failures come back as
// validation errors.
func DecodeJSONRequest(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return apperrors.Validation("Request body is required")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Validation("Request body is required")
		}
		return apperrors.Wrap(apperrors.ErrValidation, "Invalid request body", fmt.Errorf("decode: %w", err))
	}
	return nil
}
