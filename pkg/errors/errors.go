// Package errors defines the coded errors shared by libsgen's packages and
// its CLI.
//
// Every failure that reaches the user carries a [Code]. Codes group into
// families that decide the process exit status (see [ExitCode]):
//
//	INVALID_*, CONFIGURATION    the input or configuration is wrong
//	FILE_NOT_FOUND              a POM, config or libraries file is missing
//	RESOLUTION_FAILED, DEPENDENCY_CYCLE, NETWORK_ERROR
//	                            the dependency tree could not be walked
//	INTERNAL_ERROR, UNSUPPORTED everything else
//
// Packages with richer error types, such as the walker's resolution and
// cycle errors, join in by implementing a Code() method:
//
//	if errors.Is(err, errors.ErrCodeDependencyCycle) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error class.
type Code string

const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidCoordinate Code = "INVALID_COORDINATE"
	ErrCodeInvalidRule       Code = "INVALID_RULE"
	ErrCodeInvalidManifest   Code = "INVALID_MANIFEST"
	ErrCodeInvalidPOM        Code = "INVALID_POM"
	ErrCodeConfiguration     Code = "CONFIGURATION"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeResolution      Code = "RESOLUTION_FAILED"
	ErrCodeDependencyCycle Code = "DEPENDENCY_CYCLE"
	ErrCodeNetwork         Code = "NETWORK_ERROR"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Exit statuses returned by [ExitCode].
const (
	ExitFailure    = 1
	ExitUsage      = 2
	ExitResolution = 3
)

// Error pairs a Code with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

type coder interface {
	error
	Code() Code
}

// GetCode returns the code of the outermost coded error in err's chain, or
// "" if there is none.
func GetCode(err error) Code {
	for ; err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(*Error); ok {
			return e.Code
		}
		if c, ok := err.(coder); ok {
			return c.Code()
		}
	}
	return ""
}

// Is reports whether the outermost coded error in err's chain has code.
func Is(err error, code Code) bool {
	return code != "" && GetCode(err) == code
}

// UserMessage renders err for the terminal: the message of an *Error
// without its code prefix, or err.Error() for anything else.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

// ExitCode maps err to the status the libsgen command exits with.
func ExitCode(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidCoordinate, ErrCodeInvalidRule,
		ErrCodeInvalidManifest, ErrCodeInvalidPOM, ErrCodeConfiguration,
		ErrCodeFileNotFound:
		return ExitUsage
	case ErrCodeResolution, ErrCodeDependencyCycle, ErrCodeNetwork:
		return ExitResolution
	default:
		return ExitFailure
	}
}
