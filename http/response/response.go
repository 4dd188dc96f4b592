package response

import (
	"encoding/json"
	"net/http"

	"career-guide/errors"
	"career-guide/logger"
	"career-guide/utils"
)

// MessageResponse is the body of every non-validation error.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationResponse itemizes failed validation rules.
type ValidationResponse struct {
	Errors []utils.FieldError `json:"errors"`
}

// SendJSON encodes and sends a JSON response
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Error encoding JSON response: %v", err)
	}
}

// Message sends {"message": msg}.
func Message(w http.ResponseWriter, statusCode int, msg string) {
	SendJSON(w, statusCode, MessageResponse{Message: msg})
}

// Validation sends 400 with the itemized rule failures.
func Validation(w http.ResponseWriter, errs []utils.FieldError) {
	SendJSON(w, http.StatusBadRequest, ValidationResponse{Errors: errs})
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(k errors.Kind) int {
	switch k {
	case errors.Invalid:
		return http.StatusBadRequest
	case errors.Unauthorized:
		return http.StatusUnauthorized
	case errors.Forbidden:
		return http.StatusForbidden
	case errors.NotFound:
		return http.StatusNotFound
	case errors.Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FromError answers with the status of err's kind. Internal and
// unclassified errors are logged and answered with a generic message.
func FromError(w http.ResponseWriter, err error) {
	status := StatusOf(errors.KindOf(err))
	if status == http.StatusInternalServerError {
		logger.Error("Server error: %v", err)
		Message(w, status, "Server error")
		return
	}
	Message(w, status, errors.MessageOf(err))
}

// MethodNotAllowed answers 405.
func MethodNotAllowed(w http.ResponseWriter) {
	Message(w, http.StatusMethodNotAllowed, "Method not allowed")
}
