// Package fingerprint derives short opaque visitor tokens for click
// attribution. Tokens are deliberately lossy: they let analytics group
// repeat visits without storing a raw IP address.
package fingerprint

import (
	"encoding/base64"
	"fmt"
	"time"
)

// TokenLength is the fixed maximum length of a visitor token.
const TokenLength = 16

// FromIP derives a visitor token from a public IP address. The same IP
// always yields the same token.
func FromIP(ip string) string {
	return encode(ip)
}

// FromUserAgent derives a fallback token from the User-Agent string and the
// current time. Used when the IP could not be determined; the result is not
// a stable visitor identifier across requests.
func FromUserAgent(userAgent string, now time.Time) string {
	return encode(fmt.Sprintf("%s%d", userAgent, now.UnixMilli()))
}

func encode(s string) string {
	enc := base64.StdEncoding.EncodeToString([]byte(s))

	out := make([]byte, 0, TokenLength)
	for i := 0; i < len(enc) && len(out) < TokenLength; i++ {
		c := enc[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			out = append(out, c)
		}
	}
	return string(out)
}
