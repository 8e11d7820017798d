package apperror

import "net/http"

// AppError carries the HTTP status a failure maps to. Services return these;
// the server's error handler middleware renders the {error, message} body.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func Validation(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

func Duplicate(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

func InvalidCredentials(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

func Unauthorized(message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: message}
}

// NotFound deliberately covers both "does not exist" and "owned by someone
// else" so responses never leak whether another user's note id is real.
func NotFound(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: message}
}

func Internal(message string) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: message}
}
