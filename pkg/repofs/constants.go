package repofs

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // Command completed successfully
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid repofs.yaml or unresolvable content handler
	ExitNotFound         = 11 // Requested entry does not exist
	ExitIOFailure        = 12 // Storage read/write failed
	ExitDataFormatError  = 13 // Malformed or rejected JSON document
	ExitInvalidDocuments = 14 // Walk completed but skipped documents
)

const (
	// JSONSuffix is the file suffix of documents admitted into a content tree.
	JSONSuffix = ".json"

	// DefaultPrettyPrint is the pretty-print setting a root uses when none is configured.
	DefaultPrettyPrint = true

	// DefaultWorkers is the default number of concurrent inflations during a repository walk.
	DefaultWorkers = 4

	// MaxWorkers bounds the worker pool size accepted from configuration.
	MaxWorkers = 64

	// PrettyIndent is the indentation width of canonicalized documents.
	PrettyIndent = 2
)
