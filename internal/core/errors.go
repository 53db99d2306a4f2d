package core

import "errors"

// Fetch error kinds. Every failed worksheet fetch wraps exactly one of these so
// callers can branch without knowing about the Google API. All kinds are
// handled identically at the cache layer: the fetch aborts, any prior cache
// entry survives, and the message is surfaced to the UI.
var (
	ErrAuthentication    = errors.New("authentication failed")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrSheetNotFound     = errors.New("sheet not found")
	ErrTransient         = errors.New("transient network error")
	ErrMalformedResponse = errors.New("malformed response")
)
