package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, caches and upstream
// clients return these (optionally wrapped) so services can translate them
// into domain errors:
//   - ErrNotFound: record does not exist in the store or cache
//   - ErrConflict: a unique key (event id, ticket id) is already taken
//   - ErrUnavailable: upstream API or backing service cannot be reached
//   - ErrInvalidState: upstream answered but the resource is not usable yet
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidState = errors.New("invalid state")
)
