// Package apperrors defines the error taxonomy the prediction engine raises
// to its callers, distinguishing construction-time failures from per-call
// failures as described in the engine's error handling design.
package apperrors

import "fmt"

// Kind classifies an Error by where and how it can surface.
type Kind string

const (
	// KindConfiguration covers invalid file paths, unreadable files,
	// malformed metadata blobs, unknown token flags and model load
	// failures. Raised only at engine construction.
	KindConfiguration Kind = "configuration"

	// KindArgument covers feature-matrix size mismatches. Raised at the
	// call site. (An unknown name group in a template token is rejected
	// at load time as KindConfiguration.)
	KindArgument Kind = "argument"

	// KindMissingDomain is raised by Predict when no explicit domain was
	// supplied and either no domain resolver is configured or the resolver
	// found no domain for the firm.
	KindMissingDomain Kind = "missing_domain"
)

// Error is the single error type returned across package boundaries in this
// module. Code is a short machine-matchable token; Message is human
// readable.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Configuration builds a KindConfiguration error.
func Configuration(code, message string, cause error) *Error {
	return &Error{Kind: KindConfiguration, Code: code, Message: message, Err: cause}
}

// Argument builds a KindArgument error.
func Argument(code, message string) *Error {
	return &Error{Kind: KindArgument, Code: code, Message: message}
}

// MissingDomain builds the one KindMissingDomain error raised by Predict.
func MissingDomain(firmName string) *Error {
	return &Error{
		Kind:    KindMissingDomain,
		Code:    "MISSING_DOMAIN",
		Message: fmt.Sprintf("no domain supplied and none could be resolved for firm %q", firmName),
	}
}

// Is lets errors.Is match on Kind+Code, ignoring Message/Err, so callers can
// write `errors.Is(err, apperrors.MissingDomain(""))`-style sentinels if
// they prefer not to type-assert.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}
