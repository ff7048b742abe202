package errors

// Package errors provides sentinel errors for document scanning.
// Callers match them with errors.Is; the scanner wraps them with the failing path.

import "errors"

var (
	// ErrRootNotFound indicates the scan root does not exist.
	ErrRootNotFound = errors.New("scan root not found")

	// ErrRootNotDirectory indicates the scan root exists but is not a directory.
	ErrRootNotDirectory = errors.New("scan root is not a directory")

	// ErrWalkFailed indicates filesystem traversal below the root failed.
	ErrWalkFailed = errors.New("document directory walk failed")

	// ErrSentinelCheckFailed indicates checking for the ordering sentinel failed.
	ErrSentinelCheckFailed = errors.New("ordering sentinel check failed")

	// ErrInvalidRelativePath indicates calculating a path relative to the root failed.
	ErrInvalidRelativePath = errors.New("invalid relative path calculation")
)
