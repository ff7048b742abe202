// Package errors provides the classified error primitives used across docindex.
//
// A ClassifiedError carries a category (what kind of failure), a severity
// (how much of the run it affects), a human message, an optional cause, and
// structured context. The CLI maps categories to process exit codes through
// CLIErrorAdapter.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "write index").
//		WithContext("path", outPath).
//		Build()
package errors
