package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmkang/pepper-shop/pkg/models"
)

type inquiryRepo struct {
	db *sql.DB
}

func NewInquiryRepository(db *sql.DB) InquiryRepository {
	return &inquiryRepo{db: db}
}

func (r *inquiryRepo) Create(ctx context.Context, inq *models.Inquiry) error {
	if inq.Title == "" || inq.Content == "" || inq.CustomerName == "" {
		return fmt.Errorf("%w: title, content and customer name required", ErrInvalidInput)
	}

	inq.Status = models.InquiryStatusWaiting
	inq.CreatedAt = time.Now()

	query := `
		INSERT INTO inquiries (title, content, customer_name, phone, email, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		inq.Title, inq.Content, inq.CustomerName,
		nullString(inq.Phone), nullString(inq.Email), inq.Status, inq.CreatedAt,
	).Scan(&inq.ID)
	if err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}

const inquiryColumns = `id, title, content, customer_name, phone, email, status, response, created_at, answered_at`

func (r *inquiryRepo) GetByID(ctx context.Context, id int64) (*models.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries WHERE id = $1`
	inq, err := scanInquiry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get inquiry %d: %w", id, err)
	}
	return inq, nil
}

func (r *inquiryRepo) List(ctx context.Context) ([]*models.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	defer rows.Close()

	var inquiries []*models.Inquiry
	for rows.Next() {
		inq, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		inquiries = append(inquiries, inq)
	}
	return inquiries, rows.Err()
}

func (r *inquiryRepo) Respond(ctx context.Context, id int64, response string) error {
	if response == "" {
		return fmt.Errorf("%w: response required", ErrInvalidInput)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE inquiries SET response = $1, status = $2, answered_at = $3 WHERE id = $4`,
		response, models.InquiryStatusAnswered, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to respond to inquiry %d: %w", id, err)
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

func (r *inquiryRepo) CountWaiting(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inquiries WHERE status = $1`, models.InquiryStatusWaiting).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count waiting inquiries: %w", err)
	}
	return count, nil
}

func scanInquiry(row rowScanner) (*models.Inquiry, error) {
	inq := &models.Inquiry{}
	var phone, email, response sql.NullString
	var answeredAt sql.NullTime
	err := row.Scan(
		&inq.ID, &inq.Title, &inq.Content, &inq.CustomerName,
		&phone, &email, &inq.Status, &response, &inq.CreatedAt, &answeredAt,
	)
	if err != nil {
		return nil, err
	}
	inq.Phone = phone.String
	inq.Email = email.String
	inq.Response = response.String
	if answeredAt.Valid {
		inq.AnsweredAt = &answeredAt.Time
	}
	return inq, nil
}
