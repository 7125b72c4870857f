package services

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestNewBookingCodeShape(t *testing.T) {
	pattern := regexp.MustCompile(`^TRP-\d{8}-[A-Z0-9]{4}$`)
	now := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)

	for i := 0; i < 20; i++ {
		code := NewBookingCode(now)
		if !pattern.MatchString(code) {
			t.Fatalf("code %q does not match TRP-YYYYMMDD-XXXX", code)
		}
		if !strings.HasPrefix(code, "TRP-"+now.Local().Format("20060102")) {
			t.Fatalf("code %q does not carry the booking date", code)
		}
	}
}
