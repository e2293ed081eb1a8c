package pkg

import "net/http"

// HTTPError is the JSON body returned to clients on failure.
type HTTPError struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Details  []string `json:"details,omitempty"`
	StartURL string   `json:"start_url,omitempty"`
}

// AppError carries the user-facing representation of a failure together with
// the internal cause, which is never serialized.
type AppError struct {
	Code       string
	Message    string
	Details    []string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewDomainError(code, message string, err error, status int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: status}
}

func NewDomainErrorSimple(code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// NewValidationError reports caller input problems, one message per problem.
func NewValidationError(details []string) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    "Please review the submitted data",
		Details:    details,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// StartOverURL is where the customer is sent back after any failure.
var StartOverURL = "/"

func (e *AppError) ToHTTPError() HTTPError {
	out := HTTPError{Code: e.Code, Message: e.Message, Details: e.Details}
	if e.HTTPStatus >= http.StatusInternalServerError {
		out.StartURL = StartOverURL
	}
	return out
}
