package handlers

import (
	"net/http"

	"github.com/goccy/go-json"

	"dinepick/logging"
	"dinepick/recommend"
)

// Error codes returned in the "error.code" field.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeInvalidJSON = "INVALID_JSON"
	CodeNotFound    = "NOT_FOUND"
	CodeInternal    = "INTERNAL_ERROR"
)

type apiError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Fields  []recommend.FieldError `json:"fields,omitempty"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("encode response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, r, status, errorResponse{Error: apiError{Code: code, Message: message}})
}

func respondValidation(w http.ResponseWriter, r *http.Request, ve *recommend.ValidationError) {
	respondJSON(w, r, http.StatusBadRequest, errorResponse{Error: apiError{
		Code:    CodeValidation,
		Message: ve.Error(),
		Fields:  ve.Fields,
	}})
}
