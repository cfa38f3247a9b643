package packager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/devsapp/model-packager/pkg/archive"
	"github.com/devsapp/model-packager/pkg/config"
	"github.com/devsapp/model-packager/pkg/history"
	"github.com/devsapp/model-packager/pkg/storage"
	"github.com/devsapp/model-packager/pkg/utils"
	"github.com/sirupsen/logrus"
)

// ErrUploadFailed upload step failed after the package was built. Separate
// from the fatal I/O errors so the caller can tell the two apart: the local
// package exists and the command can simply be re-run.
var ErrUploadFailed = errors.New("upload model package fail")

type Options struct {
	ModelDir     string
	BucketName   string
	ModelName    string
	Requirements []string
	OutputDir    string // default current directory

	Uploader storage.Uploader
	History  history.Store // optional, nil disables the ledger
}

type Result struct {
	PackagePath string
	Address     string
}

// ArchiveName local package file name for a model name.
func ArchiveName(modelName string) string {
	return modelName + config.ArchiveSuffix
}

// ModelKey object storage key for a model name.
func ModelKey(modelName string) string {
	return config.ModelKeyPrefix + modelName + config.ArchiveSuffix
}

// Run one packaging pass: write the optional requirements manifest, build
// the archive, upload it and record the result. The manifest temp dir is
// removed whether the upload succeeded or not.
func Run(ctx context.Context, opts *Options) (*Result, error) {
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", outputDir, err)
	}
	packagePath := filepath.Join(outputDir, ArchiveName(opts.ModelName))

	requirementsPath := ""
	if len(opts.Requirements) > 0 {
		tmpDir, err := os.MkdirTemp("", "model-packager-")
		if err != nil {
			return nil, fmt.Errorf("create manifest dir: %w", err)
		}
		defer os.RemoveAll(tmpDir)
		requirementsPath, err = archive.WriteRequirements(tmpDir, opts.Requirements)
		if err != nil {
			return nil, err
		}
	}

	if err := archive.Build(opts.ModelDir, packagePath, requirementsPath); err != nil {
		return nil, err
	}

	key := ModelKey(opts.ModelName)
	logrus.Infof("uploading %s to bucket %s key %s", packagePath, opts.BucketName, key)
	address, err := opts.Uploader.Upload(ctx, packagePath, opts.BucketName, key)
	if err != nil {
		logrus.Errorf("error uploading model package: %v", err)
		return &Result{PackagePath: packagePath}, ErrUploadFailed
	}
	logrus.Infof("successfully uploaded to %s", address)

	if opts.History != nil {
		if err := opts.History.Put(newRecord(opts, packagePath, key, address)); err != nil {
			// best effort, the upload itself succeeded
			logrus.Warnf("record upload history fail: %v", err)
		}
	}
	return &Result{PackagePath: packagePath, Address: address}, nil
}

func newRecord(opts *Options, packagePath, key, address string) history.Record {
	digest, _ := utils.FileMD5(packagePath)
	size, _ := utils.FileSize(packagePath)
	return history.Record{
		ModelName:  opts.ModelName,
		Bucket:     opts.BucketName,
		Key:        key,
		Address:    address,
		LocalPath:  packagePath,
		Digest:     digest,
		SizeBytes:  size,
		CreateTime: time.Now().UTC().Format(time.RFC3339),
	}
}
