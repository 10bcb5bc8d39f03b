package sms

import (
	"strings"
)

// NormalizePhoneNumber converts a Korean domestic number to E.164.
// "010-1234-5678" becomes "+821012345678"; numbers already carrying
// the 82 country code just gain a "+". Anything that matches neither
// pattern is passed through unchanged and left for the gateway to
// reject.
func NormalizePhoneNumber(phoneNumber string) string {
	var b strings.Builder
	for _, r := range phoneNumber {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if strings.HasPrefix(digits, "0") {
		return "+82" + digits[1:]
	}
	if strings.HasPrefix(digits, "82") {
		return "+" + digits
	}
	return phoneNumber
}
