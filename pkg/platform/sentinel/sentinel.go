package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into coded domain errors without
// inspecting driver-specific failures.
//
// These represent factual states about records, not validation failures:
// - ErrNotFound: record does not exist at the given address
// - ErrConflict: a record already exists at the given address
// - ErrInvalidState: record exists but is in the wrong lifecycle state
// - ErrUnavailable: backing store temporarily unreachable
//
// For input validation use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
