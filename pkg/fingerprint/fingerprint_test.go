package fingerprint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func isAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

func TestFromIP(t *testing.T) {
	t.Run("deterministic_for_same_ip", func(t *testing.T) {
		assert.Equal(t, FromIP("203.0.113.54"), FromIP("203.0.113.54"))
	})

	t.Run("different_ips_differ", func(t *testing.T) {
		assert.NotEqual(t, FromIP("203.0.113.54"), FromIP("203.0.113.55"))
	})

	t.Run("alphanumeric_and_bounded", func(t *testing.T) {
		token := FromIP("2001:db8::8a2e:370:7334")
		assert.True(t, isAlphanumeric(token))
		assert.LessOrEqual(t, len(token), TokenLength)
		assert.NotEmpty(t, token)
	})
}

func TestFromUserAgent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("always_produces_token", func(t *testing.T) {
		token := FromUserAgent("Mozilla/5.0 (Windows NT 10.0)", now)
		assert.True(t, isAlphanumeric(token))
		assert.LessOrEqual(t, len(token), TokenLength)
		assert.NotEmpty(t, token)
	})

	t.Run("time_sensitive", func(t *testing.T) {
		a := FromUserAgent("", now)
		b := FromUserAgent("", now.Add(time.Second))
		assert.NotEqual(t, a, b)
	})

	t.Run("empty_user_agent_still_produces_token", func(t *testing.T) {
		assert.NotEmpty(t, FromUserAgent("", now))
	})
}
