package models

import (
	"time"
)

// Categories the merchant sells under. Admin product forms only accept
// these values.
var ProductCategories = []string{
	"고운 고춧가루",
	"굵은 고춧가루",
	"유기농",
	"세트 상품",
	"매운 고춧가루",
	"순한 고춧가루",
	"대용량",
}

func ValidCategory(category string) bool {
	for _, c := range ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Product struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Price        int64     `json:"price"`
	Category     string    `json:"category"`
	Weight       string    `json:"weight,omitempty"`
	Stock        int       `json:"stock"`
	Details      string    `json:"details,omitempty"`
	ShippingInfo string    `json:"shipping_info,omitempty"`
	Origin       string    `json:"origin,omitempty"`
	Storage      string    `json:"storage,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
