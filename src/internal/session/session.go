// FILE: src/internal/session/session.go
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID creates a session correlation identifier: a millisecond timestamp
// joined with a random suffix. Uniqueness is best-effort, not
// cryptographically guaranteed; the id is an opaque tag threaded through
// to transports, never parsed.
func NewID() string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix)
}
