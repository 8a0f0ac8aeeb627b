package signature

import (
	"crypto/hmac"
	"crypto/sha1" // #nosec G505 -- CQHTTP mandates HMAC-SHA1 for X-Signature.
	"encoding/hex"
)

// Prefix is prepended to the hex digest in the X-Signature header value.
const Prefix = "sha1="

// Sign computes the X-Signature header value for a raw request body:
// "sha1=" + hex(HMAC-SHA1(secret, body)).
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(body)
	return Prefix + hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a supplied X-Signature header value against the raw,
// unparsed body bytes. The body must not be re-serialized before the check;
// any byte-level change breaks the digest.
func Verify(secret string, body []byte, supplied string) bool {
	return hmac.Equal([]byte(Sign(secret, body)), []byte(supplied))
}
