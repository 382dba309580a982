package steam

import (
	"errors"
	"fmt"
)

// ErrPlayerNotFound means both resolution strategies came up empty: the input
// is neither a known vanity name nor a valid SteamID64. The resolver caches
// this outcome, so repeat lookups within the TTL fail without a round trip.
// Maps to HTTP 404 semantics.
var ErrPlayerNotFound = errors.New("steam: player with given ID does not exist")

// ErrPrivateProfile is returned when the Steam API refuses per-player game
// stats because the target profile is private.
var ErrPrivateProfile = errors.New("steam: cannot get stats for private profile")

// StatusError reports a non-success response from the Steam API: rate
// limiting, server errors, or an application-level error the API embeds in an
// otherwise successful body.
type StatusError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("steam: %s: %s", e.Endpoint, e.Message)
	}
	return fmt.Sprintf("steam: %s: received %d from Steam API", e.Endpoint, e.Status)
}

// DecodeError reports a response body that did not match the expected shape.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("steam: %s: invalid response format: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
