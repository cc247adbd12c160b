package models

// Identity is the authenticated session identity issued by the Joyrun API
// at login. A non-empty SID is only meaningful together with the UID it was
// issued for; both are adopted and replaced atomically by the session
// manager.
type Identity struct {
	// UID is the remote user identifier, 0 until the first successful login.
	UID int64 `json:"uid"`

	// SID is the remote session identifier. It is invalidated server-side
	// when the same account logs in from another device.
	SID string `json:"sid"`

	// UserName is the login name the session was issued for. A cached
	// identity whose UserName differs from the configured account must be
	// discarded entirely.
	UserName string `json:"userName"`
}

// Valid reports whether the identity carries a usable session pair.
func (i Identity) Valid() bool {
	return i.UID > 0 && i.SID != ""
}

// Credentials holds the immutable login material of one account, constructed
// once from configuration.
type Credentials struct {
	// UserName is the full login name (account identifier plus domain
	// suffix, e.g. "320180939@lzu.edu.cn").
	UserName string

	// Password is the plaintext password. It only ever leaves the process
	// as an uppercase hex MD5 digest.
	Password string

	// Phone is the optional phone number for the SMS-code login fallback.
	Phone string
}
