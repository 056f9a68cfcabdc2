package domain

import "go.trai.ch/zerr"

var (
	// ErrReservedFragment is returned when caller code tries to replace the definition of a reserved fragment.
	ErrReservedFragment = zerr.New("definition is owned by the core framework")

	// ErrFragmentNotRegistered is returned when a fragment is resolved before any definition or configuration was set.
	ErrFragmentNotRegistered = zerr.New("fragment not registered")

	// ErrEmptyFragmentID is returned when a fragment handle is requested for an empty identifier.
	ErrEmptyFragmentID = zerr.New("fragment identifier must not be empty")

	// ErrInvalidModuleConfig is returned when a module configuration does not satisfy its declared schema.
	ErrInvalidModuleConfig = zerr.New("schema validation failed")

	// ErrUnresolvedPlaceholder is returned when a placeholder has no explicit, stored or default value.
	ErrUnresolvedPlaceholder = zerr.New("unresolved placeholder")

	// ErrFetchFailed is returned when a remote document cannot be retrieved.
	ErrFetchFailed = zerr.New("fetch failed")

	// ErrMalformedDocument is returned when fetched text cannot be decoded into a document.
	ErrMalformedDocument = zerr.New("malformed document")

	// ErrManifestInvalid is returned when the fragment manifest is structurally wrong.
	ErrManifestInvalid = zerr.New("invalid fragment manifest")

	// ErrVarStoreFailed is returned when the placeholder variable store cannot be read or written.
	ErrVarStoreFailed = zerr.New("variable store failure")

	// ErrUnknownStoreDriver is returned when settings name a variable store driver that does not exist.
	ErrUnknownStoreDriver = zerr.New("unknown variable store driver")

	// ErrUndefinedFragment is returned by the bootstrap driver when a required fragment has no definition.
	ErrUndefinedFragment = zerr.New("fragment has no definition")

	// ErrBootstrapFailed is returned when at least one required fragment failed to resolve.
	ErrBootstrapFailed = zerr.New("bootstrap failed")
)

// causeError pairs a sentinel with the error that triggered it.
type causeError struct {
	kind  error
	cause error
}

func (e *causeError) Error() string {
	return e.cause.Error()
}

func (e *causeError) Unwrap() []error {
	return []error{e.cause, e.kind}
}

// WrapCause wraps cause with message and files it under kind, so errors.Is matches
// both the sentinel and the cause.
func WrapCause(kind, cause error, message string) error {
	if cause == nil {
		return zerr.Wrap(kind, message)
	}
	return zerr.Wrap(&causeError{kind: kind, cause: cause}, message)
}
