package packager

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/devsapp/model-packager/pkg/history"
	"github.com/devsapp/model-packager/pkg/storage"
	"github.com/stretchr/testify/assert"
)

// fakeUploader records the call and either returns the composed address or a
// client error, no network involved.
type fakeUploader struct {
	err       error
	localPath string
	bucket    string
	key       string
}

func (f *fakeUploader) Upload(ctx context.Context, localPath, bucket, key string) (string, error) {
	f.localPath = localPath
	f.bucket = bucket
	f.key = key
	if f.err != nil {
		return "", f.err
	}
	return storage.Address(storage.S3, bucket, key), nil
}

func archiveEntries(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	assert.NoError(t, err)
	defer f.Close()
	gr, err := gzip.NewReader(f)
	assert.NoError(t, err)
	tr := tar.NewReader(gr)
	names := []string{}
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		assert.NoError(t, err)
		names = append(names, header.Name)
	}
	return names
}

func newModelDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "model.pkl"), []byte("weights"), 0644))
	return dir
}

func TestModelKey(t *testing.T) {
	assert.Equal(t, "models/foo.tar.gz", ModelKey("foo"))
	assert.Equal(t, "foo.tar.gz", ArchiveName("foo"))
}

func TestRunSuccess(t *testing.T) {
	uploader := &fakeUploader{}
	outputDir := t.TempDir()
	result, err := Run(context.Background(), &Options{
		ModelDir:     newModelDir(t),
		BucketName:   "b",
		ModelName:    "demo",
		Requirements: []string{"numpy==1.2", "scikit-learn==1.0"},
		OutputDir:    outputDir,
		Uploader:     uploader,
	})
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(outputDir, "demo.tar.gz"), result.PackagePath)
	assert.Equal(t, "s3://b/models/demo.tar.gz", result.Address)
	assert.Equal(t, "models/demo.tar.gz", uploader.key)
	assert.Equal(t, result.PackagePath, uploader.localPath)

	names := archiveEntries(t, result.PackagePath)
	assert.Contains(t, names, "model/model.pkl")
	assert.Contains(t, names, "requirements.txt")
	assert.Contains(t, names, "inference.py")

	// manifest is scoped to a temp dir, nothing leaks into the output dir
	entries, err := os.ReadDir(outputDir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "demo.tar.gz", entries[0].Name())
}

func TestRunUploadFailure(t *testing.T) {
	uploader := &fakeUploader{err: errors.New("AccessDenied")}
	outputDir := t.TempDir()
	result, err := Run(context.Background(), &Options{
		ModelDir:     newModelDir(t),
		BucketName:   "b",
		ModelName:    "demo",
		Requirements: []string{"numpy==1.2"},
		OutputDir:    outputDir,
		Uploader:     uploader,
	})
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Equal(t, filepath.Join(outputDir, "demo.tar.gz"), result.PackagePath)
	assert.Empty(t, result.Address)

	// the package was still built and the manifest temp dir cleaned up
	names := archiveEntries(t, result.PackagePath)
	assert.Contains(t, names, "requirements.txt")
	entries, err := os.ReadDir(outputDir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRunNoRequirements(t *testing.T) {
	uploader := &fakeUploader{}
	outputDir := t.TempDir()
	result, err := Run(context.Background(), &Options{
		ModelDir:   newModelDir(t),
		BucketName: "b",
		ModelName:  "demo",
		OutputDir:  outputDir,
		Uploader:   uploader,
	})
	assert.NoError(t, err)
	assert.NotContains(t, archiveEntries(t, result.PackagePath), "requirements.txt")
}

func TestRunCreatesOutputDir(t *testing.T) {
	uploader := &fakeUploader{}
	outputDir := filepath.Join(t.TempDir(), "out", "nested")
	result, err := Run(context.Background(), &Options{
		ModelDir:   newModelDir(t),
		BucketName: "b",
		ModelName:  "demo",
		OutputDir:  outputDir,
		Uploader:   uploader,
	})
	assert.NoError(t, err)
	assert.FileExists(t, result.PackagePath)
}

func TestRunRecordsHistory(t *testing.T) {
	store, err := history.NewSQLiteStore(":memory:")
	assert.NoError(t, err)
	defer store.Close()

	uploader := &fakeUploader{}
	_, err = Run(context.Background(), &Options{
		ModelDir:   newModelDir(t),
		BucketName: "b",
		ModelName:  "demo",
		OutputDir:  t.TempDir(),
		Uploader:   uploader,
		History:    store,
	})
	assert.NoError(t, err)

	record, err := store.Get("demo")
	assert.NoError(t, err)
	assert.NotNil(t, record)
	assert.Equal(t, "s3://b/models/demo.tar.gz", record.Address)
	assert.Equal(t, "models/demo.tar.gz", record.Key)
	assert.Equal(t, 32, len(record.Digest))
	assert.Greater(t, record.SizeBytes, int64(0))
}

func TestRunUploadFailureSkipsHistory(t *testing.T) {
	store, err := history.NewSQLiteStore(":memory:")
	assert.NoError(t, err)
	defer store.Close()

	uploader := &fakeUploader{err: errors.New("NoSuchBucket")}
	_, err = Run(context.Background(), &Options{
		ModelDir:   newModelDir(t),
		BucketName: "b",
		ModelName:  "demo",
		OutputDir:  t.TempDir(),
		Uploader:   uploader,
		History:    store,
	})
	assert.ErrorIs(t, err, ErrUploadFailed)

	record, err := store.Get("demo")
	assert.NoError(t, err)
	assert.Nil(t, record)
}
