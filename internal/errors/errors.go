package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes returned by the ccprops CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a problem the user can fix: a malformed properties
	// file, an unknown configuration name, a bad flag.
	ExitUser = 1

	// ExitSystem indicates an I/O or environment failure.
	ExitSystem = 2
)

// Sentinel errors shared across packages.
var (
	// ErrNotFound indicates the requested configuration or file was not found.
	ErrNotFound = crdb.New("not found")

	// ErrInvalidConfig indicates the properties document failed validation.
	ErrInvalidConfig = crdb.New("invalid configuration")

	// ErrIndexOutOfRange indicates a configuration index outside the document.
	ErrIndexOutOfRange = crdb.New("configuration index out of range")

	// ErrNoPropertiesFile indicates the workspace has no properties file yet.
	ErrNoPropertiesFile = crdb.New("no c_cpp_properties.json in workspace")
)

// Thin aliases so callers importing this package get the cockroachdb
// constructors without a second import.
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Unwrap = crdb.UnwrapOnce
)

// ExitError wraps an error with an exit code and optional suggestion.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable hint printed after the error.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

// NewConfigError reports a broken properties file and points at the validator.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: ccprops validate",
	}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}
