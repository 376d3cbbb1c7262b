package repofs

import (
	"errors"
	"strings"
)

// Sentinel errors for the entry tree.
// These enable callers to distinguish error kinds using errors.Is().
//
// Example usage:
//
//	data, err := entry.Read()
//	if errors.Is(err, repofs.ErrNotFound) {
//	    // No backing file yet
//	}
var (
	// ErrNotFound indicates a node has no backing file or directory.
	ErrNotFound = errors.New("not found")

	// ErrIOFailure indicates the underlying storage failed.
	ErrIOFailure = errors.New("i/o failure")

	// ErrDataFormat indicates malformed JSON or JSON rejected by a content handler.
	ErrDataFormat = errors.New("invalid data format")

	// ErrConfiguration indicates no content handler could be resolved for a node.
	// This is a setup mistake, not a data problem, and is never retried or swallowed.
	ErrConfiguration = errors.New("configuration error")

	// ErrAlreadyExists indicates a child could not be created because it exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrMustDeleteRecursively indicates a directory delete was requested without recursion.
	ErrMustDeleteRecursively = errors.New("directory must be deleted recursively")

	// ErrNotAdmitted indicates a name can never be a child of the node it was requested from.
	ErrNotAdmitted = errors.New("child not admitted")

	// ErrInvalidConfig indicates the repository configuration file is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidDocuments indicates a repository walk skipped one or more documents.
	ErrInvalidDocuments = errors.New("invalid documents")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrConfiguration):
		return ExitConfigError
	case errors.Is(err, ErrInvalidDocuments):
		return ExitInvalidDocuments
	case errors.Is(err, ErrDataFormat):
		return ExitDataFormatError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrIOFailure):
		return ExitIOFailure
	}

	// Cobra reports usage problems as plain errors
	errStr := err.Error()
	if strings.HasPrefix(errStr, "unknown command") ||
		strings.HasPrefix(errStr, "unknown flag") ||
		strings.HasPrefix(errStr, "unknown shorthand flag") ||
		strings.HasPrefix(errStr, "accepts ") ||
		strings.HasPrefix(errStr, "requires at least") ||
		strings.HasPrefix(errStr, "invalid argument") {
		return ExitUsageError
	}

	return ExitGeneralError
}
