package errs

import (
	"fmt"
	"net/http"
)

// ErrCode represents an error code in the system.
type ErrCode struct {
	value int
}

// Value returns the integer value of the error code.
func (ec ErrCode) Value() int {
	return ec.value
}

// String returns the string representation of the error code.
func (ec ErrCode) String() string {
	return codeNames[ec]
}

// UnmarshalText implement the unmarshal interface for JSON conversions.
func (ec *ErrCode) UnmarshalText(data []byte) error {
	errName := string(data)

	v, exists := codeNumbers[errName]
	if !exists {
		return fmt.Errorf("err code %q does not exist", errName)
	}

	*ec = v

	return nil
}

// MarshalText implement the marshal interface for JSON conversions.
func (ec ErrCode) MarshalText() ([]byte, error) {
	return []byte(ec.String()), nil
}

// Equal provides support for the go-cmp package and testing.
func (ec ErrCode) Equal(ec2 ErrCode) bool {
	return ec.value == ec2.value
}

// =============================================================================

// The set of error codes the application layer understands.
var (
	OK                 = ErrCode{value: 0}
	InvalidArgument    = ErrCode{value: 3}
	NotFound           = ErrCode{value: 5}
	AlreadyExists      = ErrCode{value: 6}
	PermissionDenied   = ErrCode{value: 7}
	FailedPrecondition = ErrCode{value: 9}
	Internal           = ErrCode{value: 13}
	Unauthenticated    = ErrCode{value: 16}
	InternalOnlyLog    = ErrCode{value: 17}
)

var codeNumbers = map[string]ErrCode{
	"ok":                  OK,
	"invalid_argument":    InvalidArgument,
	"not_found":           NotFound,
	"already_exists":      AlreadyExists,
	"permission_denied":   PermissionDenied,
	"failed_precondition": FailedPrecondition,
	"internal":            Internal,
	"unauthenticated":     Unauthenticated,
	"internal_only_log":   InternalOnlyLog,
}

var codeNames map[ErrCode]string

func init() {
	codeNames = make(map[ErrCode]string, len(codeNumbers))
	for k, v := range codeNumbers {
		codeNames[v] = k
	}
}

// httpStatus maps every error code to the status the API responds with.
// Uniqueness violations are reported as bad requests.
var httpStatus = map[ErrCode]int{
	OK:                 http.StatusOK,
	InvalidArgument:    http.StatusBadRequest,
	NotFound:           http.StatusNotFound,
	AlreadyExists:      http.StatusBadRequest,
	PermissionDenied:   http.StatusForbidden,
	FailedPrecondition: http.StatusBadRequest,
	Internal:           http.StatusInternalServerError,
	Unauthenticated:    http.StatusUnauthorized,
	InternalOnlyLog:    http.StatusInternalServerError,
}
