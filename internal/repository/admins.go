package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/jmkang/pepper-shop/pkg/models"
)

type adminRepo struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	admin := &models.Admin{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, created_at FROM admins WHERE username = $1`,
		username,
	).Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.Role, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin %s: %w", username, err)
	}
	return admin, nil
}

func (r *adminRepo) Create(ctx context.Context, admin *models.Admin) error {
	if admin.Username == "" || admin.PasswordHash == "" {
		return fmt.Errorf("%w: username and password hash required", ErrInvalidInput)
	}
	if admin.Role == "" {
		admin.Role = models.RoleAdmin
	}
	admin.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO admins (username, password_hash, role, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		admin.Username, admin.PasswordHash, admin.Role, admin.CreatedAt,
	).Scan(&admin.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("%w: admin %s already exists", ErrConflict, admin.Username)
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}
