package orders

// Status is the order lifecycle state. Admin updates must follow the
// transition table; there is no way to move a delivered or cancelled
// order back into the flow.
type Status string

const (
	StatusReceived         Status = "received"
	StatusPaymentConfirmed Status = "payment_confirmed"
	StatusPreparing        Status = "preparing"
	StatusShipping         Status = "shipping"
	StatusDelivered        Status = "delivered"
	StatusCancelled        Status = "cancelled"
)

var validNext = map[Status]map[Status]bool{
	StatusReceived:         {StatusPaymentConfirmed: true, StatusCancelled: true},
	StatusPaymentConfirmed: {StatusPreparing: true, StatusCancelled: true},
	StatusPreparing:        {StatusShipping: true, StatusCancelled: true},
	StatusShipping:         {StatusDelivered: true},
	StatusDelivered:        {},
	StatusCancelled:        {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

func ValidStatus(s string) bool {
	_, ok := validNext[Status(s)]
	return ok
}
