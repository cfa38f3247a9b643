package storage

import (
	"context"
	"fmt"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/devsapp/model-packager/pkg/config"
)

// OssUploader oss upload manager
type OssUploader struct {
	client *oss.Client
}

func NewOssUploader() (*OssUploader, error) {
	if config.ConfigGlobal.AccessKeyId == "" || config.ConfigGlobal.AccessKeySecret == "" {
		return nil, fmt.Errorf("not set %s || %s, please check", config.ACCESS_KEY_ID, config.ACCESS_KEY_SECRET)
	}
	client, err := oss.New(config.ConfigGlobal.OssEndpoint, config.ConfigGlobal.AccessKeyId,
		config.ConfigGlobal.AccessKeySecret)
	if err != nil {
		return nil, err
	}
	return &OssUploader{client: client}, nil
}

// Upload upload file to oss
func (o *OssUploader) Upload(ctx context.Context, localPath, bucket, key string) (string, error) {
	bkt, err := o.client.Bucket(bucket)
	if err != nil {
		return "", err
	}
	if err := bkt.PutObjectFromFile(key, localPath); err != nil {
		return "", err
	}
	return Address(OSS, bucket, key), nil
}
