package config

import "errors"

// Configuration errors. All of them surface before any network call is made.
var (
	// ErrNoAccounts indicates that the accounts list is empty.
	ErrNoAccounts = errors.New("no accounts configured")
	// ErrAccountIndexOutOfRange indicates an account selection outside the
	// configured list.
	ErrAccountIndexOutOfRange = errors.New("account index out of range")
	// ErrInvalidAccountConfigs indicates an account entry missing required
	// fields (student id or password).
	ErrInvalidAccountConfigs = errors.New("invalid account configuration")
	// ErrInvalidAPIConfigs indicates invalid API settings (for example,
	// missing base URL or a negative retry limit).
	ErrInvalidAPIConfigs = errors.New("invalid api configuration")
	// ErrPhoneNumberMissing indicates that the SMS-code login flow was
	// required but no phone number is available.
	ErrPhoneNumberMissing = errors.New("phone number missing")
)
