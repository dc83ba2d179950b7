package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// RespondError writes a standardized error response to the HTTP response writer
func RespondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   status,
		Message: message,
		Code:    code,
	})
}

// RespondBadRequest writes a bad request error response
func RespondBadRequest(w http.ResponseWriter, code string) {
	RespondError(w, http.StatusBadRequest, code, MessageBadRequest)
}

// RespondNotFound writes a not found error response
func RespondNotFound(w http.ResponseWriter, code string) {
	RespondError(w, http.StatusNotFound, code, MessageNotFound)
}

// RespondUnprocessable writes an unprocessable entity error response
func RespondUnprocessable(w http.ResponseWriter, code string) {
	RespondError(w, http.StatusUnprocessableEntity, code, MessageUnprocessable)
}

// RespondMethodNotAllowed writes a method not allowed error response
func RespondMethodNotAllowed(w http.ResponseWriter) {
	RespondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, MessageMethodNotAllowed)
}

// RespondInternalError writes an internal server error response
func RespondInternalError(w http.ResponseWriter, code string) {
	RespondError(w, http.StatusInternalServerError, code, MessageInternalError)
}
