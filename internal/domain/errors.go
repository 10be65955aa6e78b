package domain

import "errors"

// Error taxonomy shared across the ingestion pipeline and chat engine.
// Callers distinguish cases with errors.Is; wrapping preserves detail.
var (
	// ErrExtractionFailed means the source document was unreadable.
	// Fatal to the upload; nothing is persisted.
	ErrExtractionFailed = errors.New("document extraction failed")

	// ErrMalformedResponse means model output was unparsable or missing
	// required structure. Fatal to the stage that requested it.
	ErrMalformedResponse = errors.New("model response did not contain expected structure")

	// ErrCollaboratorUnavailable is a transient upstream failure
	// (network or process). Fail-open for course search, fail-closed
	// for CV parsing and chat.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")

	// ErrCollaboratorTimeout means the bounded call deadline elapsed.
	ErrCollaboratorTimeout = errors.New("collaborator timed out")

	// ErrNotFound means a referenced entity does not exist. Client
	// condition, never a server fault.
	ErrNotFound = errors.New("not found")
)
