package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio/api/internal/models"
)

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Create(ctx context.Context, submission models.ContactSubmission) error {
	const query = `
		INSERT INTO contact_submissions (id, name, email, service, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		submission.ID,
		submission.Name,
		submission.Email,
		submission.Service,
		submission.Message,
		submission.CreatedAt,
	)
	return err
}

func (r *ContactRepository) List(ctx context.Context) ([]models.ContactSubmission, error) {
	const query = `
		SELECT id, name, email, service, message, created_at
		FROM contact_submissions
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := make([]models.ContactSubmission, 0)
	for rows.Next() {
		var submission models.ContactSubmission
		if err := rows.Scan(
			&submission.ID,
			&submission.Name,
			&submission.Email,
			&submission.Service,
			&submission.Message,
			&submission.CreatedAt,
		); err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}
	return submissions, rows.Err()
}
