package orders

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	now := time.Date(2025, 3, 7, 14, 30, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^ORD-\d{6}-\d{6}$`)

	for i := 0; i < 100; i++ {
		number := GenerateOrderNumber(now)
		if !pattern.MatchString(number) {
			t.Fatalf("order number %q does not match ORD-YYMMDD-NNNNNN", number)
		}
		if !strings.HasPrefix(number, "ORD-250307-") {
			t.Fatalf("order number %q does not carry the submission date", number)
		}
	}
}

func TestGenerateOrderNumberZeroPadding(t *testing.T) {
	now := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	// The random suffix is always exactly six digits, left-padded.
	for i := 0; i < 1000; i++ {
		number := GenerateOrderNumber(now)
		parts := strings.Split(number, "-")
		if len(parts) != 3 {
			t.Fatalf("order number %q has %d segments, want 3", number, len(parts))
		}
		if len(parts[2]) != 6 {
			t.Fatalf("order number suffix %q has length %d, want 6", parts[2], len(parts[2]))
		}
	}
}
