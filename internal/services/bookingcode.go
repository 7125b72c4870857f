package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewBookingCode produces a TRP-YYYYMMDD-XXXX code: local calendar date
// plus a 4-character random token, rendered uppercase. Uniqueness is
// probabilistic only; a repeated code is not a collision to reject, it
// attaches further passengers to the same trip.
func NewBookingCode(now time.Time) string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("TRP-%s-%s", now.Local().Format("20060102"), token)
}
