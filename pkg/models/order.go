package models

import (
	"time"
)

type Order struct {
	ID                  int64       `json:"id"`
	OrderNumber         string      `json:"order_number"`
	CustomerName        string      `json:"customer_name"`
	PhoneNumber         string      `json:"phone_number"`
	Email               string      `json:"email,omitempty"`
	Address             string      `json:"address"`
	AddressDetail       string      `json:"address_detail,omitempty"`
	Zipcode             string      `json:"zipcode,omitempty"`
	Items               []OrderItem `json:"items"`
	TotalPrice          int64       `json:"total_price"`
	ShippingFee         int64       `json:"shipping_fee"`
	Status              string      `json:"status"`
	SpecialInstructions string      `json:"special_instructions,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
}

type OrderItem struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
}

// OrderSummary is the checkout response payload. TotalPrice covers the
// line items only; AmountDue adds the shipping fee on top.
type OrderSummary struct {
	ID          int64     `json:"id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	TotalPrice  int64     `json:"total_price"`
	ShippingFee int64     `json:"shipping_fee"`
	AmountDue   int64     `json:"amount_due"`
	CreatedAt   time.Time `json:"created_at"`
}

type OrderResponse struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message,omitempty"`
	Order        *OrderSummary `json:"order,omitempty"`
	Notification string        `json:"notification,omitempty"`
}
