// Package tracking generates per-attempt tracking identifiers for click
// events. The identifier doubles as a server-side idempotency key: a click
// submitted twice under the same tracking ID is recorded once.
package tracking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID builds a tracking identifier from the short-link ID, the current
// timestamp and a random component.
func NewID(linkID int64) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%d-%s", linkID, time.Now().UnixMilli(), random)
}
