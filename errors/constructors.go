package errors

import (
	"fmt"
)

// FileTooLarge creates a validation error for an oversized file
func FileTooLarge(path string, size, limit int64) *EaselError {
	return New(ErrCodeFileTooLarge,
		fmt.Sprintf("file %s is %d bytes, limit is %d", path, size, limit)).
		WithDetail("path", path).
		WithDetail("size", size).
		WithDetail("limit", limit)
}

// InvalidJSON creates a validation error for unparseable JSON content
func InvalidJSON(path string, err error) *EaselError {
	return Wrap(err, ErrCodeInvalidJSON, fmt.Sprintf("invalid JSON in %s", path)).
		WithDetail("path", path)
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *EaselError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *EaselError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// HostUnreachable creates a network error for a failed connection to the host app
func HostUnreachable(url string, err error) *EaselError {
	return Wrap(err, ErrCodeHostUnreachable, fmt.Sprintf("host not reachable at %s", url)).
		WithDetail("url", url)
}

// BadStatus creates a network error for a non-success HTTP response
func BadStatus(method, url string, status int) *EaselError {
	return New(ErrCodeBadStatus,
		fmt.Sprintf("%s %s returned status %d", method, url, status)).
		WithDetail("method", method).
		WithDetail("url", url).
		WithDetail("status", status)
}

// ItemNotVisible creates a state-consistency warning for a selection that
// refers to an item no longer present in the filtered list.
func ItemNotVisible(id string) *EaselError {
	return New(ErrCodeItemNotVisible,
		fmt.Sprintf("item %q is not in the current filtered list", id)).
		WithDetail("id", id)
}
