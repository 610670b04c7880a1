// Package errors holds the error conventions of the ccprops CLI.
//
// It re-exports the github.com/cockroachdb/errors constructors, defines the
// sentinels shared between packages, and provides [ExitError] which carries
// a process exit code and an optional suggestion:
//
//	err := ccerrors.NewUserError(ccerrors.ErrIndexOutOfRange, "Run: ccprops list")
//	var exitErr *ccerrors.ExitError
//	if ccerrors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
//
// Exit codes follow the usual split: ExitUser (1) for problems in the
// properties file or arguments, ExitSystem (2) for I/O failures.
package errors
