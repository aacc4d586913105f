package tracking

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	t.Run("carries_link_id_and_parts", func(t *testing.T) {
		id := NewID(42)

		parts := strings.SplitN(id, "-", 3)
		require.Len(t, parts, 3)
		assert.Equal(t, "42", parts[0])

		_, err := strconv.ParseInt(parts[1], 10, 64)
		assert.NoError(t, err)
		assert.Len(t, parts[2], 8)
	})

	t.Run("unique_per_attempt", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			id := NewID(7)
			assert.False(t, seen[id], "duplicate tracking id %s", id)
			seen[id] = true
		}
	})
}
