// pkg/core/errors.go
package core

import "errors"

// Workflow error taxonomy. Callers wrap these with %w and add the
// handle/storage id and workflow stage so failures can be reconstructed
// from logs.
var (
	// ErrLinkNotFound means an identity lookup missed; the current
	// workflow aborts with a warning and no user-facing error.
	ErrLinkNotFound = errors.New("identity link not found")

	// ErrRecordNotFound means a storage record is missing despite a
	// resolved link; treated like ErrLinkNotFound but signals data drift.
	ErrRecordNotFound = errors.New("annotation record not found")

	// ErrCoordinateConversion means a pixel/coordinate conversion
	// failed; gesture handling for that event aborts.
	ErrCoordinateConversion = errors.New("coordinate conversion failed")

	// ErrStorageIO is fatal to the active workflow; any in-progress
	// visual change is rolled back where a snapshot exists.
	ErrStorageIO = errors.New("storage I/O failure")

	// ErrAssetLoad means icon bytes could not be loaded; fatal to
	// create/edit workflows, no partial marker is created.
	ErrAssetLoad = errors.New("asset load failure")
)
