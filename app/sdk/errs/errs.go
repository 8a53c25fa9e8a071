// Package errs provides types and support related to web error functionality.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// Error represents an error in the system.
type Error struct {
	Code     ErrCode
	Message  string
	Fields   FieldErrors
	FuncName string
	FileName string
	Stack    string
}

// New constructs an error based on an app error. Field errors found in the
// chain are kept so the client sees every failing field.
func New(code ErrCode, err error) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	e := Error{
		Code:     code,
		Message:  err.Error(),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}

	var fe FieldErrors
	var inner *Error

	switch {
	case errors.As(err, &fe):
		e.Fields = fe
		e.Message = fe.Message()

	case errors.As(err, &inner):
		e.Fields = inner.Fields
	}

	return &e
}

// Errorf constructs an error based on an error message.
func Errorf(code ErrCode, format string, v ...any) *Error {
	pc, filename, line, _ := runtime.Caller(1)

	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(format, v...),
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Encode implements the encoder interface. Failures share the response
// envelope with successful calls.
func (e *Error) Encode() ([]byte, string, error) {
	resp := struct {
		Success bool        `json:"success"`
		Error   string      `json:"error"`
		Fields  FieldErrors `json:"fields,omitempty"`
		Stack   string      `json:"stack,omitempty"`
	}{
		Success: false,
		Error:   e.Message,
		Fields:  e.Fields,
		Stack:   e.Stack,
	}

	data, err := json.Marshal(resp)
	return data, "application/json", err
}

// HTTPStatus implements the web package httpStatus interface so the
// web framework can use the correct http status.
func (e *Error) HTTPStatus() int {
	status, ok := httpStatus[e.Code]
	if !ok {
		return http.StatusInternalServerError
	}

	return status
}

// Equal provides support for the go-cmp package and testing.
func (e *Error) Equal(e2 *Error) bool {
	return e.Code == e2.Code && e.Message == e2.Message
}

// Location returns the source file and function that created the error.
func (e *Error) Location() string {
	var b strings.Builder
	b.WriteString(e.FileName)
	if e.FuncName != "" {
		b.WriteString(" ")
		b.WriteString(e.FuncName)
	}
	return b.String()
}

// =============================================================================

// IsError tests the concrete error is of the Error type.
func IsError(err error) bool {
	var er *Error
	return errors.As(err, &er)
}

// GetError returns a copy of the Error pointer.
func GetError(err error) *Error {
	var er *Error
	if !errors.As(err, &er) {
		return nil
	}
	return er
}
