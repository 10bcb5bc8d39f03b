package orders

import (
	"fmt"
	"math/rand"
	"time"
)

const orderNumberPrefix = "ORD"

// GenerateOrderNumber builds the customer-facing order code:
// ORD-YYMMDD-NNNNNN with a random zero-padded 6-digit suffix. The
// orders table carries a unique constraint on it; callers retry once
// on conflict.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("%s-%s-%06d", orderNumberPrefix, now.Format("060102"), rand.Intn(1000000))
}
