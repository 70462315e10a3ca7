package model

import "errors"

// ErrorKind classifies a failed download for front ends. Classification is
// best-effort from the external tool's exit status and output text.
type ErrorKind string

const (
	ErrDependencyMissing ErrorKind = "DEPENDENCY_MISSING"
	ErrURLInvalid        ErrorKind = "URL_INVALID"
	ErrNetworkFailure    ErrorKind = "NETWORK_FAILURE"
	ErrPermissionDenied  ErrorKind = "PERMISSION_DENIED"
	ErrTranscodeFailure  ErrorKind = "TRANSCODE_FAILURE"
	ErrCancelled         ErrorKind = "CANCELLED"
	ErrUnknownFailure    ErrorKind = "UNKNOWN_FAILURE"
)

// String returns the string representation of ErrorKind.
func (k ErrorKind) String() string {
	return string(k)
}

// ExitCode maps an error kind to a distinct process exit code for the CLI.
func (k ErrorKind) ExitCode() int {
	switch k {
	case ErrDependencyMissing:
		return 2
	case ErrURLInvalid:
		return 3
	case ErrNetworkFailure:
		return 4
	case ErrPermissionDenied:
		return 5
	case ErrTranscodeFailure:
		return 6
	case ErrCancelled:
		return 7
	default:
		return 1
	}
}

// KindError is an error carrying its classification.
type KindError struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *KindError) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Message
}

// KindOf extracts the error kind from err, or ErrUnknownFailure when none
// is attached.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var ke *KindError
	if errors.As(err, &ke) {
		return ke.Kind
	}
	return ErrUnknownFailure
}
