package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio/api/internal/models"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) Create(ctx context.Context, category models.BlogCategory) error {
	const query = `
		INSERT INTO blog_categories (id, name, slug)
		VALUES ($1, $2, $3)
	`
	_, err := r.pool.Exec(ctx, query, category.ID, category.Name, category.Slug)
	if isUniqueViolation(err) {
		return ErrSlugTaken
	}
	return err
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (models.BlogCategory, error) {
	const query = `SELECT id, name, slug FROM blog_categories WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	var category models.BlogCategory
	if err := row.Scan(&category.ID, &category.Name, &category.Slug); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.BlogCategory{}, ErrCategoryNotFound
		}
		return models.BlogCategory{}, err
	}
	return category, nil
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (models.BlogCategory, error) {
	const query = `SELECT id, name, slug FROM blog_categories WHERE slug = $1`

	row := r.pool.QueryRow(ctx, query, slug)
	var category models.BlogCategory
	if err := row.Scan(&category.ID, &category.Name, &category.Slug); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.BlogCategory{}, ErrCategoryNotFound
		}
		return models.BlogCategory{}, err
	}
	return category, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.BlogCategory, error) {
	const query = `SELECT id, name, slug FROM blog_categories ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]models.BlogCategory, 0)
	for rows.Next() {
		var category models.BlogCategory
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, id string, update models.CategoryUpdate) (models.BlogCategory, error) {
	const query = `
		UPDATE blog_categories
		SET name = COALESCE($2, name),
		    slug = COALESCE($3, slug)
		WHERE id = $1
		RETURNING id, name, slug
	`

	row := r.pool.QueryRow(ctx, query, id, update.Name, update.Slug)
	var category models.BlogCategory
	if err := row.Scan(&category.ID, &category.Name, &category.Slug); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.BlogCategory{}, ErrCategoryNotFound
		}
		if isUniqueViolation(err) {
			return models.BlogCategory{}, ErrSlugTaken
		}
		return models.BlogCategory{}, err
	}
	return category, nil
}

// Delete removes the category and its post associations in one transaction,
// associations first. Returns false when no category had that id.
func (r *CategoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM blog_post_categories WHERE category_id = $1`, id); err != nil {
		return false, err
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM blog_categories WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	if cmd.RowsAffected() == 0 {
		return false, tx.Rollback(ctx)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
