package repository

import (
	"context"

	"github.com/jmkang/pepper-shop/pkg/models"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	// List returns orders newest first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	UpdateImageURL(ctx context.Context, id int64, imageURL string) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	GetByID(ctx context.Context, id int64) (*models.Inquiry, error)
	List(ctx context.Context) ([]*models.Inquiry, error)
	Respond(ctx context.Context, id int64, response string) error
	CountWaiting(ctx context.Context) (int, error)
}

type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
}
