package response

import (
	"net/http"
	"time"
)

// ErrorResponse is the wire shape for every non-2xx body that carries
// one. Direct-lookup misses (404) send no body at all.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

func New(status int, message, path string) ErrorResponse {
	return ErrorResponse{
		Timestamp: time.Now(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      path,
	}
}

func BadRequest(message, path string) ErrorResponse {
	return New(http.StatusBadRequest, message, path)
}

func Conflict(message, path string) ErrorResponse {
	return New(http.StatusConflict, message, path)
}

func InternalError(message, path string) ErrorResponse {
	return New(http.StatusInternalServerError, message, path)
}
