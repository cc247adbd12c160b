package store

import "errors"

// ErrSessionNotFound is returned by [SessionStore.Load] when no usable prior
// session exists. Callers treat it identically to "never logged in".
var ErrSessionNotFound = errors.New("local session not found")
