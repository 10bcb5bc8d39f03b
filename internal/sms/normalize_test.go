package sms

import (
	"testing"
)

func TestNormalizePhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"domestic with hyphens", "010-1234-5678", "+821012345678"},
		{"domestic without hyphens", "01012345678", "+821012345678"},
		{"domestic with spaces", "010 1234 5678", "+821012345678"},
		{"landline", "02-555-1234", "+8225551234"},
		{"already country coded", "821012345678", "+821012345678"},
		{"country coded with plus", "+82-10-1234-5678", "+821012345678"},
		{"foreign number passes through", "14155552671", "14155552671"},
		{"garbage passes through", "abc", "abc"},
		{"empty passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhoneNumber(tt.input); got != tt.want {
				t.Errorf("NormalizePhoneNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
