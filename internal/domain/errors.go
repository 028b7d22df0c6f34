package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across layers.
var (
	ErrNotFound = errors.New("not found")
)

// FailureKind classifies a failed operation so the UI can present it
// correctly. Upload failures are kept distinct from generic network
// failures so the user understands the recipe save did not proceed.
type FailureKind int

const (
	// FailNetwork means a remote request could not complete.
	FailNetwork FailureKind = iota
	// FailValidation means a local precondition was unmet; no request
	// was issued.
	FailValidation
	// FailUpload means the image upload step failed.
	FailUpload
	// FailNotFound means the requested recipe does not exist remotely.
	FailNotFound
)

// String returns a short label for the kind.
func (k FailureKind) String() string {
	switch k {
	case FailNetwork:
		return "network"
	case FailValidation:
		return "validation"
	case FailUpload:
		return "upload"
	case FailNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Failure is an operation error with a kind and a human-readable
// reason. It wraps the underlying cause, if any.
type Failure struct {
	Kind   FailureKind
	Reason string
	Err    error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Reason, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Reason)
}

// Unwrap exposes the cause for errors.Is / errors.As.
func (f *Failure) Unwrap() error { return f.Err }

// NewFailure creates a failure of the given kind.
func NewFailure(kind FailureKind, reason string, err error) *Failure {
	return &Failure{Kind: kind, Reason: reason, Err: err}
}

// Validation is shorthand for a local precondition failure.
func Validation(reason string) *Failure {
	return &Failure{Kind: FailValidation, Reason: reason}
}

// KindOf extracts the failure kind from an error chain. Falls back to
// FailNetwork for plain errors, since every unexpected error at an
// operation boundary is some flavor of request failure.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	if errors.Is(err, ErrNotFound) {
		return FailNotFound
	}
	return FailNetwork
}
