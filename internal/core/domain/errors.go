package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPlaylistID marks a malformed playlist URL or ID. Terminal:
	// it is reported to the caller instead of degrading.
	ErrInvalidPlaylistID = errors.New("domain: invalid playlist identifier")

	// ErrEmptyPlaylist marks a playlist that resolved to zero usable
	// tracks. Terminal: the model is never consulted for an empty set.
	ErrEmptyPlaylist = errors.New("domain: playlist has no usable tracks")

	// ErrNotFound is returned by repositories for a missing session slot.
	ErrNotFound = errors.New("domain: not found")
)

// ErrExternalService is the sentinel matched by errors.Is for any
// ExternalServiceError, regardless of which service failed.
var ErrExternalService = errors.New("external service failure")

// ExternalServiceError reports a failed catalog or model call: network
// failure, auth failure, rate limiting, quota exhaustion, or a malformed
// provider response. It is non-terminal; the pipeline absorbs it and
// produces a degraded result rather than surfacing it.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Service, ErrExternalService)
	}
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func (e *ExternalServiceError) Is(target error) bool {
	return target == ErrExternalService
}
