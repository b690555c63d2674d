package internal

import "net/http"

// AppError is a domain error that already knows which HTTP status it
// should surface as. Anything else bubbling out of a service is a 500.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

// NewConflict signals a uniqueness violation (duplicate username/email).
func NewConflict(msg string) *AppError {
	return NewAppError(http.StatusConflict, msg)
}

// NewInvalidArgument signals malformed input. A missing user reference on
// sleep-log creation is reported through this kind as well, so it
// surfaces as 400 rather than 404.
func NewInvalidArgument(msg string) *AppError {
	return NewAppError(http.StatusBadRequest, msg)
}
