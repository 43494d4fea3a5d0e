package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio/api/internal/models"
)

type MediaRepository struct {
	pool *pgxpool.Pool
}

func NewMediaRepository(pool *pgxpool.Pool) *MediaRepository {
	return &MediaRepository{pool: pool}
}

func (r *MediaRepository) Create(ctx context.Context, asset models.MediaAsset) error {
	const query = `
		INSERT INTO media_assets (id, bucket, object_key, content_type, size_bytes, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.pool.Exec(ctx, query,
		asset.ID,
		asset.Bucket,
		asset.ObjectKey,
		asset.ContentType,
		asset.SizeBytes,
		asset.UploadedBy,
	)
	return err
}
