package services

import "errors"

// Error categories surfaced to the HTTP layer. Every failure is terminal
// for its request; there are no automatic retries.
var (
	// ErrToolMissing: neither extraction tool variant is usable
	ErrToolMissing = errors.New("no extraction tool available")

	// ErrExtractionFailed: metadata invocation timed out or exited non-zero
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrDownloadFailed: download invocation timed out or exited non-zero
	ErrDownloadFailed = errors.New("download failed")

	// ErrArtifactMissing: the tool exited zero but no output file matched
	// the reserved prefix. Internal inconsistency, not user error.
	ErrArtifactMissing = errors.New("no artifact found for reserved prefix")

	// ErrNotFound: requested staged file no longer on disk
	ErrNotFound = errors.New("file not found")
)
