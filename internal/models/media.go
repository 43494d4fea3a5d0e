package models

import "time"

type MediaAsset struct {
	ID          string
	Bucket      string
	ObjectKey   string
	ContentType string
	SizeBytes   int64
	UploadedBy  *string
	CreatedAt   time.Time
}
