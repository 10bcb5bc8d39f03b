package orders

import (
	"testing"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusReceived, StatusPaymentConfirmed, true},
		{StatusReceived, StatusCancelled, true},
		{StatusReceived, StatusShipping, false},
		{StatusPaymentConfirmed, StatusPreparing, true},
		{StatusPaymentConfirmed, StatusDelivered, false},
		{StatusPreparing, StatusShipping, true},
		{StatusPreparing, StatusCancelled, true},
		{StatusShipping, StatusDelivered, true},
		{StatusShipping, StatusCancelled, false},
		{StatusDelivered, StatusReceived, false},
		{StatusDelivered, StatusShipping, false},
		{StatusCancelled, StatusReceived, false},
		{StatusReceived, StatusReceived, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestFullLifecycle(t *testing.T) {
	chain := []Status{StatusReceived, StatusPaymentConfirmed, StatusPreparing, StatusShipping, StatusDelivered}
	for i := 0; i < len(chain)-1; i++ {
		if !CanTransition(chain[i], chain[i+1]) {
			t.Errorf("expected %s -> %s to be legal", chain[i], chain[i+1])
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"received", "payment_confirmed", "preparing", "shipping", "delivered", "cancelled"} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "pending", "RECEIVED", "done"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true, want false", s)
		}
	}
}
