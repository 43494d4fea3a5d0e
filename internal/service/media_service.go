package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"

	"portfolio/api/internal/config"
	"portfolio/api/internal/ids"
	"portfolio/api/internal/models"
)

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrEmptyUpload          = errors.New("empty upload")
)

// Extensions double as the upload allow list. Featured images only.
var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

type MediaStore interface {
	Create(ctx context.Context, asset models.MediaAsset) error
}

type ObjectStore interface {
	PutObject(ctx context.Context, bucket, objectKey string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	PublicURL(bucket, objectKey string) string
}

type UploadInput struct {
	File       multipart.File
	Header     *multipart.FileHeader
	UploadedBy string
}

type UploadResult struct {
	Asset models.MediaAsset
	URL   string
}

type MediaService struct {
	assets MediaStore
	store  ObjectStore
	cfg    *config.AppConfig
	log    zerolog.Logger
}

func NewMediaService(assets MediaStore, store ObjectStore, cfg *config.AppConfig, log zerolog.Logger) *MediaService {
	return &MediaService{
		assets: assets,
		store:  store,
		cfg:    cfg,
		log:    log,
	}
}

func (s *MediaService) Upload(ctx context.Context, input UploadInput) (UploadResult, error) {
	if input.File == nil || input.Header == nil {
		return UploadResult{}, errors.New("invalid file payload")
	}

	data, err := io.ReadAll(input.File)
	if err != nil {
		return UploadResult{}, fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return UploadResult{}, ErrEmptyUpload
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return UploadResult{}, ErrUnsupportedMediaType
	}

	assetID := ids.New()
	objectKey := s.buildObjectKey(assetID, ext)
	bucket := s.cfg.Storage.BucketUploads

	options := minio.PutObjectOptions{
		ContentType: contentType,
	}

	uploadInfo, err := s.store.PutObject(ctx, bucket, objectKey, bytes.NewReader(data), int64(len(data)), options)
	if err != nil {
		return UploadResult{}, fmt.Errorf("put object: %w", err)
	}

	uploadedBy := input.UploadedBy
	asset := models.MediaAsset{
		ID:          assetID,
		Bucket:      bucket,
		ObjectKey:   objectKey,
		ContentType: contentType,
		SizeBytes:   uploadInfo.Size,
		UploadedBy:  &uploadedBy,
	}
	asset.CreatedAt = time.Now().UTC()

	if err := s.assets.Create(ctx, asset); err != nil {
		return UploadResult{}, fmt.Errorf("save metadata: %w", err)
	}

	return UploadResult{
		Asset: asset,
		URL:   s.store.PublicURL(bucket, objectKey),
	}, nil
}

func (s *MediaService) buildObjectKey(assetID string, ext string) string {
	datePrefix := time.Now().UTC().Format("2006/01/02")
	return path.Join(datePrefix, fmt.Sprintf("%s.%s", assetID, ext))
}
