package storage

import (
	"context"
	"fmt"
)

type StorageType string

const (
	S3  StorageType = "s3"
	OSS StorageType = "oss"
)

// Uploader transfer a local file to a bucket/key location and return the
// canonical address of the uploaded object.
type Uploader interface {
	Upload(ctx context.Context, localPath, bucket, key string) (string, error)
}

// Address compose the canonical object address, e.g. s3://bucket/key.
func Address(storageType StorageType, bucket, key string) string {
	return fmt.Sprintf("%s://%s/%s", storageType, bucket, key)
}

type UploaderFactory struct{}

func (f *UploaderFactory) New(ctx context.Context, storageType StorageType) (Uploader, error) {
	switch storageType {
	case S3:
		return NewS3Uploader(ctx)
	case OSS:
		return NewOssUploader()
	default:
		return nil, fmt.Errorf("not support storage type=%s", storageType)
	}
}
