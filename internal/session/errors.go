package session

import "errors"

// ErrNoSMSCode indicates that the SMS-code login flow ended without a code
// to exchange (none configured, none entered).
var ErrNoSMSCode = errors.New("no sms code provided")
