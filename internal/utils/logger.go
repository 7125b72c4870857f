package utils

import (
	"log"
	"strings"
)

// LogEvent writes one line per booking-flow event (bookings, route saves,
// snapshot transfers, deletions). The message is a short key=value
// summary; never put passenger personal data in it.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s %s", strings.ToUpper(module), action, req, message)
}
