package models

import (
	"encoding/json"
	"strconv"
)

// Application-level ret codes shared by every Joyrun response envelope.
const (
	// RetOK marks a successful call.
	RetOK = "0"

	// RetSessionExpired is returned when the sid has been invalidated
	// server-side, typically by a login from another device. It is the only
	// nonzero code that is recoverable (by re-login).
	RetSessionExpired = "401"

	// RetNewDevice is returned by the credential login endpoint when the
	// account must be verified with a phone number and SMS code first.
	RetNewDevice = "41998"
)

// Envelope is the application-level wrapper of every Joyrun response.
// A call only yields usable data when the transport succeeded and Ret is
// RetOK.
type Envelope struct {
	Ret  string          `json:"ret"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// OK reports whether the envelope carries a successful application status.
func (e *Envelope) OK() bool {
	return e.Ret == RetOK
}

// DecodeData unmarshals the envelope's data block into v. An absent data
// block leaves v untouched.
func (e *Envelope) DecodeData(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}

// LoginData is the payload of a successful login envelope. The phone-code
// endpoint delivers the session id under "sessionId" and the uid either
// nested under "user" or at the top level, so both shapes are accepted.
type LoginData struct {
	SID       string    `json:"sid"`
	SessionID string    `json:"sessionId"`
	UID       FlexInt64 `json:"uid"`
	User      struct {
		UID FlexInt64 `json:"uid"`
	} `json:"user"`
}

// SessionSID returns the session id regardless of which field it arrived in.
func (d *LoginData) SessionSID() string {
	if d.SID != "" {
		return d.SID
	}
	return d.SessionID
}

// UserID returns the uid regardless of which field it arrived in.
func (d *LoginData) UserID() int64 {
	if d.User.UID != 0 {
		return int64(d.User.UID)
	}
	return int64(d.UID)
}

// FlexInt64 decodes JSON integers that some endpoints deliver as numbers and
// others as quoted strings.
type FlexInt64 int64

func (f *FlexInt64) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' {
		var err error
		s, err = strconv.Unquote(s)
		if err != nil {
			return err
		}
	}
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*f = FlexInt64(v)
	return nil
}
