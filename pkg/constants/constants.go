// Package constants provides shared constants used throughout the docfold codebase.
// This includes merge policy defaults, timeouts, file permissions, and other
// configuration values that should be consistent across the application.
package constants

import "time"

// Merge policy constants define the defaults for capture reconciliation
const (
	// DefaultSimilarityThreshold is the minimum similarity ratio at which two
	// list entries are treated as the same real-world item. Re-reads of the
	// same name commonly differ by punctuation, a middle initial, or a single
	// misread character; 0.85 tolerates that noise while keeping distinct
	// names apart.
	DefaultSimilarityThreshold = 0.85

	// PositiveEnum is the affirmative literal used by Yes/No fields.
	PositiveEnum = "Yes"

	// NegativeEnum is the negative literal used by Yes/No fields.
	NegativeEnum = "No"

	// NotFound is the generic sentinel for a field no capture could read.
	NotFound = "N/A"

	// NotListed is the sentinel for fields the document legitimately omits.
	NotListed = "Not Listed"
)

// DefaultSentinels are the values that never count as an informative read,
// compared after trimming and lower-casing.
var DefaultSentinels = []string{"", "n/a", "not listed"}

// Extraction constants define defaults for the Gemini extraction client
const (
	// DefaultGeminiModel is the vision model used for document extraction
	DefaultGeminiModel = "gemini-2.0-flash"
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the
	// extraction service
	DefaultHTTPTimeout = 30 * time.Second

	// ExtractionTimeout is the timeout for a single extraction attempt
	ExtractionTimeout = 2 * time.Minute

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for sensitive files like API keys (rw-------)
	SecureFilePermissions = 0600
)

// Limit constants define various limits and capacities
const (
	// MaxFieldValueLength is the maximum length in bytes stored for a scalar
	// field value
	MaxFieldValueLength = 4096
)
