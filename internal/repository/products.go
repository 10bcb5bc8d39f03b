package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmkang/pepper-shop/pkg/models"
)

type productRepo struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name required", ErrInvalidInput)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: product price cannot be negative", ErrInvalidInput)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: product stock cannot be negative", ErrInvalidInput)
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO products (name, description, price, category, weight, stock,
			details, shipping_info, origin, storage, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		p.Name, nullString(p.Description), p.Price, p.Category, nullString(p.Weight),
		p.Stock, nullString(p.Details), nullString(p.ShippingInfo), nullString(p.Origin),
		nullString(p.Storage), nullString(p.ImageURL), p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

const productColumns = `id, name, description, price, category, weight, stock,
	details, shipping_info, origin, storage, image_url, created_at, updated_at`

func (r *productRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return p, nil
}

func (r *productRepo) List(ctx context.Context) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepo) Update(ctx context.Context, p *models.Product) error {
	if p.ID <= 0 {
		return fmt.Errorf("%w: product id required", ErrInvalidInput)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: product name required", ErrInvalidInput)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: product price cannot be negative", ErrInvalidInput)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: product stock cannot be negative", ErrInvalidInput)
	}

	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, category = $4, weight = $5,
			stock = $6, details = $7, shipping_info = $8, origin = $9, storage = $10,
			image_url = $11, updated_at = $12
		WHERE id = $13
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		p.Name, nullString(p.Description), p.Price, p.Category, nullString(p.Weight),
		p.Stock, nullString(p.Details), nullString(p.ShippingInfo), nullString(p.Origin),
		nullString(p.Storage), nullString(p.ImageURL), time.Now(), p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update product %d: %w", p.ID, err)
	}
	return nil
}

func (r *productRepo) UpdateImageURL(ctx context.Context, id int64, imageURL string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE products SET image_url = $1, updated_at = $2 WHERE id = $3`,
		imageURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update product image: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func scanProduct(row rowScanner) (*models.Product, error) {
	p := &models.Product{}
	var description, weight, details, shippingInfo, origin, storage, imageURL sql.NullString
	err := row.Scan(
		&p.ID, &p.Name, &description, &p.Price, &p.Category, &weight, &p.Stock,
		&details, &shippingInfo, &origin, &storage, &imageURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	p.Weight = weight.String
	p.Details = details.String
	p.ShippingInfo = shippingInfo.String
	p.Origin = origin.String
	p.Storage = storage.String
	p.ImageURL = imageURL.String
	return p, nil
}
