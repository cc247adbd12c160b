// Package sign derives the per-request auth token every authenticated
// Joyrun endpoint requires.
//
// The token is a pure function of (uid, sid, payload): identical inputs
// always produce the same token, and the payload keys are canonicalised by
// sorting before hashing, so the token does not depend on map iteration or
// serialization order.
package sign

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// tokenSalt is the shared application salt mixed into every token.
const tokenSalt = "1fz9ipb2vhl3npnt4m9hnf0w84qx0g5k"

// Token computes the auth token for a request carrying payload under the
// session (uid, sid). An empty payload is valid and is used by session-less
// probe requests.
func Token(uid int64, sid string, payload map[string]string) string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(payload[k])
		b.WriteByte('&')
	}
	b.WriteString("sid=")
	b.WriteString(sid)
	b.WriteString("&uid=")
	b.WriteString(strconv.FormatInt(uid, 10))
	b.WriteString("&salt=")
	b.WriteString(tokenSalt)

	return MD5Upper(b.String())
}

// MD5Upper returns the uppercase hex MD5 digest of s. The login endpoint
// transports the account password in exactly this form.
func MD5Upper(s string) string {
	sum := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
