package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/minio/minio-go/v7"

	"portfolio/api/internal/models"
)

type StoredObject struct {
	Bucket      string
	Key         string
	ContentType string
	Data        []byte
}

// MemObjectStore records uploads instead of talking to an object storage
// backend.
type MemObjectStore struct {
	mu      sync.Mutex
	objects []StoredObject
}

func NewMemObjectStore() *MemObjectStore {
	return &MemObjectStore{}
}

func (s *MemObjectStore) PutObject(_ context.Context, bucket, objectKey string, reader io.Reader, _ int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = append(s.objects, StoredObject{
		Bucket:      bucket,
		Key:         objectKey,
		ContentType: opts.ContentType,
		Data:        data,
	})

	return minio.UploadInfo{
		Bucket: bucket,
		Key:    objectKey,
		Size:   int64(len(data)),
	}, nil
}

func (s *MemObjectStore) PublicURL(bucket, objectKey string) string {
	return fmt.Sprintf("https://cdn.test/%s/%s", bucket, objectKey)
}

// Objects returns a copy of everything stored so far.
func (s *MemObjectStore) Objects() []StoredObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StoredObject, len(s.objects))
	copy(out, s.objects)
	return out
}

type MemMediaStore struct {
	mu     sync.Mutex
	assets []models.MediaAsset
}

func NewMemMediaStore() *MemMediaStore {
	return &MemMediaStore{}
}

func (s *MemMediaStore) Create(_ context.Context, asset models.MediaAsset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = append(s.assets, asset)
	return nil
}

func (s *MemMediaStore) Assets() []models.MediaAsset {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.MediaAsset, len(s.assets))
	copy(out, s.assets)
	return out
}
