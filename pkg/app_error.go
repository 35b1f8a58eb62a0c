package pkg

import "fmt"

// AppError is the error shape returned by HTTP handlers.
//
// Message is always safe to show to the caller. Err keeps the underlying cause
// for logging and is never serialized.
type AppError struct {
	Code       string
	Message    string
	Action     string
	HTTPStatus int
	Err        error
}

// HTTPError is the JSON body written for every failed request.
type HTTPError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Action  string `json:"action,omitempty"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithAction attaches the recovery hint shown next to the message.
func (e *AppError) WithAction(action string) *AppError {
	e.Action = action
	return e
}

func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{Message: e.Message, Code: e.Code, Action: e.Action}
}

func NewDomainError(code, message string, err error, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: httpStatus}
}

func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}
