package usecase

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateReference produces a payment reference unique enough for this
// scale: millisecond timestamp plus a random suffix. True collision
// freedom is enforced by the unique index on the payments table, which
// rejects the insert on the rare clash.
func GenerateReference() string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		// Fall back to nanosecond entropy; the unique index still guards.
		return fmt.Sprintf("HRH-%d-%d", time.Now().UnixMilli(), time.Now().UnixNano()%10000)
	}
	return fmt.Sprintf("HRH-%d-%s", time.Now().UnixMilli(), hex.EncodeToString(suffix))
}
