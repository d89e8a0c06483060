package utils

import "net/http"

// HTTPError is the error signal handlers pass to middleware.ErrorHandler.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func HandleError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// InternalError wraps a store or library failure as a 500 carrying its message.
func InternalError(err error) *HTTPError {
	return HandleError(http.StatusInternalServerError, err.Error())
}
