package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio/api/internal/models"
)

const postColumns = `id, title, slug, summary, content, featured_image, author_id, published, created_at, updated_at`

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func scanPost(row pgx.Row) (models.BlogPost, error) {
	var post models.BlogPost
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Summary,
		&post.Content,
		&post.FeaturedImage,
		&post.AuthorID,
		&post.Published,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	return post, err
}

func collectPosts(rows pgx.Rows) ([]models.BlogPost, error) {
	defer rows.Close()

	posts := make([]models.BlogPost, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Create(ctx context.Context, post models.BlogPost) error {
	const query = `
		INSERT INTO blog_posts (
			id, title, slug, summary, content, featured_image, author_id, published, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.Title,
		post.Slug,
		post.Summary,
		post.Content,
		post.FeaturedImage,
		post.AuthorID,
		post.Published,
	)
	if isUniqueViolation(err) {
		return ErrSlugTaken
	}
	if isForeignKeyViolation(err) {
		return ErrAuthorNotFound
	}
	return err
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (models.BlogPost, error) {
	query := fmt.Sprintf(`SELECT %s FROM blog_posts WHERE id = $1`, postColumns)

	post, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.BlogPost{}, ErrPostNotFound
		}
		return models.BlogPost{}, err
	}
	return post, nil
}

func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (models.BlogPost, error) {
	query := fmt.Sprintf(`SELECT %s FROM blog_posts WHERE slug = $1`, postColumns)

	post, err := scanPost(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.BlogPost{}, ErrPostNotFound
		}
		return models.BlogPost{}, err
	}
	return post, nil
}

func (r *PostRepository) List(ctx context.Context, limit, offset int, publishedOnly bool) ([]models.BlogPost, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM blog_posts
		WHERE ($3 = FALSE OR published = TRUE)
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, postColumns)

	rows, err := r.pool.Query(ctx, query, limit, offset, publishedOnly)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

// Update merges the non-nil fields and always refreshes updated_at.
func (r *PostRepository) Update(ctx context.Context, id string, update models.PostUpdate) (models.BlogPost, error) {
	query := fmt.Sprintf(`
		UPDATE blog_posts
		SET title          = COALESCE($2, title),
		    slug           = COALESCE($3, slug),
		    summary        = COALESCE($4, summary),
		    content        = COALESCE($5, content),
		    featured_image = COALESCE($6, featured_image),
		    published      = COALESCE($7, published),
		    updated_at     = NOW()
		WHERE id = $1
		RETURNING %s
	`, postColumns)

	post, err := scanPost(r.pool.QueryRow(ctx, query,
		id,
		update.Title,
		update.Slug,
		update.Summary,
		update.Content,
		update.FeaturedImage,
		update.Published,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.BlogPost{}, ErrPostNotFound
		}
		if isUniqueViolation(err) {
			return models.BlogPost{}, ErrSlugTaken
		}
		return models.BlogPost{}, err
	}
	return post, nil
}

// Delete removes the post and its category associations in one transaction,
// associations first. Returns false when no post had that id.
func (r *PostRepository) Delete(ctx context.Context, id string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM blog_post_categories WHERE post_id = $1`, id); err != nil {
		return false, err
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
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

func (r *PostRepository) ListByCategory(ctx context.Context, categoryID string, limit, offset int) ([]models.BlogPost, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM blog_posts p
		JOIN blog_post_categories pc ON pc.post_id = p.id
		WHERE pc.category_id = $1 AND p.published = TRUE
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, prefixedPostColumns("p"))

	rows, err := r.pool.Query(ctx, query, categoryID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectPosts(rows)
}

// AddCategory is idempotent. Inserting an existing association is a no-op.
func (r *PostRepository) AddCategory(ctx context.Context, postID, categoryID string) error {
	const query = `
		INSERT INTO blog_post_categories (post_id, category_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, category_id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, postID, categoryID)
	return err
}

// RemoveCategory is idempotent. Removing an absent association is a no-op.
func (r *PostRepository) RemoveCategory(ctx context.Context, postID, categoryID string) error {
	const query = `
		DELETE FROM blog_post_categories
		WHERE post_id = $1 AND category_id = $2
	`
	_, err := r.pool.Exec(ctx, query, postID, categoryID)
	return err
}

func (r *PostRepository) CategoriesFor(ctx context.Context, postID string) ([]models.BlogCategory, error) {
	const query = `
		SELECT c.id, c.name, c.slug
		FROM blog_post_categories pc
		JOIN blog_categories c ON c.id = pc.category_id
		WHERE pc.post_id = $1
		ORDER BY c.name
	`

	rows, err := r.pool.Query(ctx, query, postID)
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

func prefixedPostColumns(alias string) string {
	return fmt.Sprintf(
		"%[1]s.id, %[1]s.title, %[1]s.slug, %[1]s.summary, %[1]s.content, %[1]s.featured_image, %[1]s.author_id, %[1]s.published, %[1]s.created_at, %[1]s.updated_at",
		alias,
	)
}
