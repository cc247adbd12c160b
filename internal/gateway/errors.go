package gateway

import (
	"errors"
	"fmt"
)

// ErrSessionExpired marks a ret "401" response: the sid was invalidated
// server-side (typically by a login from another device). It is the only
// application error the retry policy recovers from.
var ErrSessionExpired = errors.New("sid invalid")

// TransportError reports a non-2xx HTTP response. It is always fatal to the
// call; no automatic retry applies.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	// Body holds the response body truncated to bodySnippetLimit for
	// diagnosis.
	Body string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("http %d on %s %s: %s", e.StatusCode, e.Method, e.URL, e.Body)
}

// RetStateError reports a nonzero application ret code other than "401".
// It carries the remote envelope for diagnostics and is fatal to the call.
type RetStateError struct {
	Ret string
	Msg string
}

func (e *RetStateError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("response ret %s", e.Ret)
	}
	return fmt.Sprintf("response ret %s: %s", e.Ret, e.Msg)
}
