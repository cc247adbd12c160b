package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope_OK(t *testing.T) {
	assert.True(t, (&Envelope{Ret: RetOK}).OK())
	assert.False(t, (&Envelope{Ret: RetSessionExpired}).OK())
	assert.False(t, (&Envelope{Ret: "12345"}).OK())
}

func TestEnvelope_DecodeData_Empty(t *testing.T) {
	var data LoginData
	err := (&Envelope{}).DecodeData(&data)
	require.NoError(t, err)
	assert.Zero(t, data)
}

// ── Login payload variants ───────────────────────────────────────────────────

func TestLoginData_CredentialLoginShape(t *testing.T) {
	raw := `{"ret":"0","data":{"sid":"abc123","user":{"uid":4201}}}`

	var envelope Envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &envelope))

	var data LoginData
	require.NoError(t, envelope.DecodeData(&data))

	assert.Equal(t, "abc123", data.SessionSID())
	assert.Equal(t, int64(4201), data.UserID())
}

func TestLoginData_PhoneCodeLoginShape(t *testing.T) {
	// The phone-code endpoint uses sessionId and a top-level uid, which it
	// sometimes quotes.
	raw := `{"ret":"0","data":{"sessionId":"xyz789","uid":"555"}}`

	var envelope Envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &envelope))

	var data LoginData
	require.NoError(t, envelope.DecodeData(&data))

	assert.Equal(t, "xyz789", data.SessionSID())
	assert.Equal(t, int64(555), data.UserID())
}

func TestLoginData_SIDPreferredOverSessionID(t *testing.T) {
	data := LoginData{SID: "primary", SessionID: "secondary"}
	assert.Equal(t, "primary", data.SessionSID())
}

func TestFlexInt64_Unmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int64
	}{
		{"number", `42`, 42},
		{"quoted", `"42"`, 42},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f FlexInt64
			require.NoError(t, json.Unmarshal([]byte(tc.in), &f))
			assert.Equal(t, tc.want, int64(f))
		})
	}

	var f FlexInt64
	assert.Error(t, json.Unmarshal([]byte(`"not a number"`), &f))
}

func TestIdentity_Valid(t *testing.T) {
	assert.True(t, Identity{UID: 1, SID: "s"}.Valid())
	assert.False(t, Identity{UID: 0, SID: "s"}.Valid())
	assert.False(t, Identity{UID: 1, SID: ""}.Valid())
	assert.False(t, Identity{}.Valid())
}
