package resource

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by ObjectStore implementations when the
// requested key does not exist. The resolver treats it as absence of
// the remote tier, not as a storage fault.
var ErrKeyNotFound = errors.New("object key not found")

// NotFoundError is returned when no tier produced data for a resource.
type NotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.Path)
}

// MalformedDataError is returned when a document was located but does
// not parse as JSON. It is distinct from absence: a present-but-broken
// file never falls through to later tiers.
type MalformedDataError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("invalid JSON in %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *MalformedDataError) Unwrap() error { return e.Err }

// StorageAccessError is returned for remote backend faults other than
// a missing key.
type StorageAccessError struct {
	Key string
	Err error
}

// Error implements the error interface.
func (e *StorageAccessError) Error() string {
	return fmt.Sprintf("storage access failed for %s: %v", e.Key, e.Err)
}

// Unwrap returns the underlying backend error.
func (e *StorageAccessError) Unwrap() error { return e.Err }

// InvalidSourceError is returned when a caller-supplied data-source
// name fails validation before any path is built from it.
type InvalidSourceError struct {
	Name string
}

// Error implements the error interface.
func (e *InvalidSourceError) Error() string {
	return fmt.Sprintf("invalid data source name: %q", e.Name)
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsMalformedData returns true if the error is a MalformedDataError.
func IsMalformedData(err error) bool {
	var e *MalformedDataError
	return errors.As(err, &e)
}

// IsStorageAccess returns true if the error is a StorageAccessError.
func IsStorageAccess(err error) bool {
	var e *StorageAccessError
	return errors.As(err, &e)
}

// IsInvalidSource returns true if the error is an InvalidSourceError.
func IsInvalidSource(err error) bool {
	var e *InvalidSourceError
	return errors.As(err, &e)
}
