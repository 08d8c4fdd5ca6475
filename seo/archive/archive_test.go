package archive_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/lac5q/creative-ads-repository/seo"
	"github.com/lac5q/creative-ads-repository/seo/archive"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

type memoryBucket struct {
	mu      sync.Mutex
	exists  bool
	putErr  error
	objects map[string][]byte
	options map[string]minio.PutObjectOptions
}

func (m *memoryBucket) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return m.exists, nil
}

func (m *memoryBucket) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if m.putErr != nil {
		return minio.UploadInfo{}, m.putErr
	}
	contents, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects == nil {
		m.objects = map[string][]byte{}
		m.options = map[string]minio.PutObjectOptions{}
	}
	m.objects[objectName] = contents
	m.options[objectName] = opts
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: objectSize}, nil
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Test_Archive(t *testing.T) {
	runAt := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	t.Run("ObjectName", func(t *testing.T) {
		assertions := assert.New(t)

		a := archive.New(&memoryBucket{}, "bucket", "seo", "example.com", runAt, quiet())
		assertions.Equal("seo/example.com/20250304T050607Z/003-serp-google-organic-live-advanced.json.gz", a.ObjectName(3, seo.EndpointSERPOrganic))
		assertions.Equal("seo/example.com/20250304T050607Z/001-domain_analytics-overview-live.json.gz", a.ObjectName(1, seo.EndpointDomainOverview))
	})
	t.Run("Succeed", func(t *testing.T) {
		assertions := assert.New(t)

		bucket := &memoryBucket{}
		a := archive.New(bucket, "bucket", "", "example.com", runAt, quiet())
		a.Archive(context.TODO(), seo.EndpointBacklinksSummary, []byte(`{"status_code":20000}`))
		a.Archive(context.TODO(), seo.EndpointBacklinksSummary, []byte(`{"status_code":20000,"again":true}`))

		if !assertions.Len(bucket.objects, 2, "every payload is kept") {
			return
		}

		name := "example.com/20250304T050607Z/001-backlinks-summary-live.json.gz"
		compressed, found := bucket.objects[name]
		if !assertions.True(found, "object expected: %s", name) {
			return
		}
		assertions.Equal("gzip", bucket.options[name].ContentEncoding)

		reader, err := gzip.NewReader(bytes.NewReader(compressed))
		if !assertions.Nil(err, "failed to open gzip") {
			return
		}
		contents, err := io.ReadAll(reader)
		if !assertions.Nil(err, "failed to read gzip") {
			return
		}
		assertions.Equal(`{"status_code":20000}`, string(contents))
	})
	t.Run("Upload failures are swallowed", func(t *testing.T) {
		assertions := assert.New(t)

		bucket := &memoryBucket{putErr: errors.New("unreachable")}
		a := archive.New(bucket, "bucket", "", "example.com", runAt, quiet())
		assertions.NotPanics(func() {
			a.Archive(context.TODO(), seo.EndpointBacklinksSummary, []byte(`{}`))
		})
	})
}

func Test_Open(t *testing.T) {
	t.Run("Missing bucket", func(t *testing.T) {
		assertions := assert.New(t)

		_, err := archive.Open(context.TODO(), &memoryBucket{exists: false}, "bucket", "", "example.com", quiet())
		assertions.NotNil(err)
	})
	t.Run("Succeed", func(t *testing.T) {
		assertions := assert.New(t)

		a, err := archive.Open(context.TODO(), &memoryBucket{exists: true}, "bucket", "", "example.com", quiet())
		assertions.Nil(err)
		assertions.NotNil(a)
	})
}
