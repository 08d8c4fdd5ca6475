// Copyright (C) 2025 ZedCloud Org.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"sync/atomic"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/lac5q/creative-ads-repository/pool"
	"github.com/lac5q/creative-ads-repository/seo"
	"github.com/minio/minio-go/v7"
)

// Client is the part of *minio.Client the archive uses.
type Client interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

var _ Client = (*minio.Client)(nil)

var _ seo.Archiver = (*Archive)(nil)

// Archive stores raw API payloads of a single run under
// <prefix>/<domain>/<run-timestamp>/<sequence>-<endpoint>.json.gz
type Archive struct {
	client Client
	bucket string
	prefix string
	domain string
	runAt  time.Time
	seq    atomic.Int64
	logger *slog.Logger
}

func New(client Client, bucket, prefix, domain string, runAt time.Time, logger *slog.Logger) (a *Archive) {
	if logger == nil {
		logger = slog.Default()
	}
	return &Archive{
		client: client,
		bucket: bucket,
		prefix: prefix,
		domain: domain,
		runAt:  runAt.UTC(),
		logger: logger.With("bucket", bucket, "domain", domain),
	}
}

// Open verifies the bucket is reachable before any payload is produced.
func Open(ctx context.Context, client Client, bucket, prefix, domain string, logger *slog.Logger) (a *Archive, err error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %s: %w", bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket not found: %s", bucket)
	}
	return New(client, bucket, prefix, domain, time.Now(), logger), nil
}

func (a *Archive) ObjectName(seq int64, endpoint string) (name string) {
	slug := strings.TrimPrefix(strings.Trim(endpoint, "/"), "v3/")
	slug = strings.ReplaceAll(slug, "/", "-")
	return path.Join(
		a.prefix,
		a.domain,
		a.runAt.Format("20060102T150405Z"),
		fmt.Sprintf("%03d-%s.json.gz", seq, slug),
	)
}

var buffers = pool.NewWithReset(func() *bytes.Buffer { return new(bytes.Buffer) }, (*bytes.Buffer).Reset)

func compress(buf *bytes.Buffer, body []byte) (err error) {
	writer := gzip.NewWriter(buf)
	_, err = writer.Write(body)
	if err != nil {
		return fmt.Errorf("failed to write contents: %w", err)
	}
	err = writer.Close()
	if err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}
	return nil
}

// Archive uploads body. Failures are logged, never returned, so reporting is not
// interrupted by storage issues.
func (a *Archive) Archive(ctx context.Context, endpoint string, body []byte) {
	name := a.ObjectName(a.seq.Add(1), endpoint)
	logger := a.logger.With("object", name)

	buf := buffers.Get()
	defer buffers.Put(buf)

	err := compress(buf, body)
	if err != nil {
		logger.Error("failed to compress payload", "error-msg", err)
		return
	}

	_, err = a.client.PutObject(
		ctx,
		a.bucket,
		name,
		bytes.NewReader(buf.Bytes()),
		int64(buf.Len()),
		minio.PutObjectOptions{
			ContentType:     "application/json",
			ContentEncoding: "gzip",
		},
	)
	if err != nil {
		logger.Error("failed to archive payload", "error-msg", err)
		return
	}
	logger.Debug("Archived payload", "size", buf.Len())
}
