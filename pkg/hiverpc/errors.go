package hiverpc

import (
	"fmt"
)

// Error represents a JSON-RPC 2.0 error object embedded into a failed response.
type Error struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

// NewError is an Error constructor that takes Error contents from its parameters.
func NewError(code int64, message string, data string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Data) == 0 {
		return fmt.Sprintf("RPC error: %s (code: %d)", e.Message, e.Code)
	}
	return fmt.Sprintf("RPC error: %s (code: %d) - %s", e.Message, e.Code, e.Data)
}

// Is denotes whether the error matches the target one. Errors are matched by
// their codes, the message and data are ignored.
func (e *Error) Is(target error) bool {
	clTarget, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == clTarget.Code
}
