package postgres

import (
	"database/sql"
)

// Migrate creates the schema if it does not exist yet.
func Migrate(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			order_number VARCHAR(32) NOT NULL UNIQUE,
			customer_name VARCHAR(255) NOT NULL,
			phone_number VARCHAR(32) NOT NULL,
			email VARCHAR(255),
			address TEXT NOT NULL,
			address_detail TEXT,
			zipcode VARCHAR(16),
			total_price BIGINT NOT NULL,
			shipping_fee BIGINT NOT NULL,
			status VARCHAR(32) NOT NULL,
			special_instructions TEXT,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id BIGSERIAL PRIMARY KEY,
			order_id BIGINT NOT NULL REFERENCES orders(id),
			product_id BIGINT NOT NULL,
			product_name VARCHAR(255) NOT NULL,
			quantity INTEGER NOT NULL,
			unit_price BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			price BIGINT NOT NULL,
			category VARCHAR(64) NOT NULL,
			weight VARCHAR(64),
			stock INTEGER NOT NULL DEFAULT 0,
			details TEXT,
			shipping_info TEXT,
			origin TEXT,
			storage TEXT,
			image_url TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS inquiries (
			id BIGSERIAL PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			content TEXT NOT NULL,
			customer_name VARCHAR(255) NOT NULL,
			phone VARCHAR(32),
			email VARCHAR(255),
			status VARCHAR(32) NOT NULL,
			response TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			answered_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS admins (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(64) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(32) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_inquiries_status ON inquiries(status)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}
