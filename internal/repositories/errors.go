package repositories

import "errors"

var (
	// ErrDraftNotFound indicates no draft exists under the requested ID.
	ErrDraftNotFound = errors.New("draft repository: draft not found")
	// ErrMirrorNotFound indicates no cached payment section exists for the draft.
	ErrMirrorNotFound = errors.New("payment mirror: entry not found")
	// ErrMirrorCorrupt indicates the cached payment section could not be decoded.
	// Callers treat it as "no cached data" and continue with empty defaults.
	ErrMirrorCorrupt = errors.New("payment mirror: cached entry corrupt")
)
