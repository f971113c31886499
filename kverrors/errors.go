package kverrors

import "fmt"

// kvError is the concrete type behind every error this package constructs.
// It is unexported so callers are forced through IsKVError/ErrorCode/
// IsCode rather than type-asserting directly, mirroring yarpcerrors' own
// private error type.
type kvError struct {
	code    Code
	message string
}

func (e *kvError) Error() string {
	if e.message == "" {
		return e.code.String()
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

// newf builds a kvError with the given code and a formatted message.
func newf(code Code, format string, args ...interface{}) error {
	return &kvError{code: code, message: fmt.Sprintf(format, args...)}
}

// NotFoundErrorf returns an error with code NotFound.
func NotFoundErrorf(format string, args ...interface{}) error {
	return newf(NotFound, format, args...)
}

// AlreadyExistsErrorf returns an error with code AlreadyExists.
func AlreadyExistsErrorf(format string, args ...interface{}) error {
	return newf(AlreadyExists, format, args...)
}

// FailedPreconditionErrorf returns an error with code FailedPrecondition.
func FailedPreconditionErrorf(format string, args ...interface{}) error {
	return newf(FailedPrecondition, format, args...)
}

// InternalErrorf returns an error with code Internal.
func InternalErrorf(format string, args ...interface{}) error {
	return newf(Internal, format, args...)
}

// IsKVError returns true if err is a non-nil error produced by this package.
func IsKVError(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*kvError)
	return ok
}

// ErrorCode returns the Code carried by err, or None if err is nil or was
// not produced by this package.
func ErrorCode(err error) Code {
	if err == nil {
		return None
	}
	kv, ok := err.(*kvError)
	if !ok {
		return None
	}
	return kv.code
}

// IsCode reports whether err is a kverrors error with exactly the given
// code.
func IsCode(err error, code Code) bool {
	return ErrorCode(err) == code
}
