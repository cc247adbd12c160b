package sign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMD5Upper_KnownDigest(t *testing.T) {
	// md5("abc") = 900150983cd24fb0d6963f7d28e17f72
	assert.Equal(t, "900150983CD24FB0D6963F7D28E17F72", MD5Upper("abc"))
	assert.Equal(t, "D41D8CD98F00B204E9800998ECF8427E", MD5Upper(""))
}

func TestToken_Deterministic(t *testing.T) {
	payload := map[string]string{"year": "0", "touid": "42"}

	first := Token(1001, "sid-value", payload)
	second := Token(1001, "sid-value", payload)

	require.Len(t, first, 32)
	assert.Equal(t, first, second)
}

func TestToken_KeyOrderIndependent(t *testing.T) {
	a := map[string]string{"b": "2", "a": "1", "c": "3"}
	b := map[string]string{"c": "3", "a": "1", "b": "2"}

	assert.Equal(t, Token(7, "s", a), Token(7, "s", b))
}

func TestToken_MatchesCanonicalForm(t *testing.T) {
	payload := map[string]string{"b": "2", "a": "1"}

	want := MD5Upper("a=1&b=2&sid=S&uid=5&salt=" + tokenSalt)
	assert.Equal(t, want, Token(5, "S", payload))
}

func TestToken_EmptyPayload(t *testing.T) {
	want := MD5Upper("sid=S&uid=5&salt=" + tokenSalt)
	assert.Equal(t, want, Token(5, "S", nil))
}

func TestToken_SensitiveToSession(t *testing.T) {
	payload := map[string]string{"a": "1"}

	assert.NotEqual(t, Token(1, "x", payload), Token(2, "x", payload))
	assert.NotEqual(t, Token(1, "x", payload), Token(1, "y", payload))
}
