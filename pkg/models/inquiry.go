package models

import (
	"time"
)

const (
	InquiryStatusWaiting  = "waiting"
	InquiryStatusAnswered = "answered"
)

type Inquiry struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	CustomerName string     `json:"customer_name"`
	Phone        string     `json:"phone,omitempty"`
	Email        string     `json:"email,omitempty"`
	Status       string     `json:"status"`
	Response     string     `json:"response,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	AnsweredAt   *time.Time `json:"answered_at,omitempty"`
}
