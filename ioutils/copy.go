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

package ioutils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

const DefaultBufferSize = 32 * 1024

// CopyContext copies src into dst in chunks of size, stopping between chunks when ctx is done.
func CopyContext(ctx context.Context, dst io.Writer, src io.Reader, size int64) (n int64, err error) {
	for {
		select {
		case <-ctx.Done():
			return n, fmt.Errorf("context error during copy: %w", ctx.Err())
		default:
			chunkCopy, err := io.CopyN(dst, src, size)
			n += chunkCopy
			if err != nil {
				if errors.Is(err, io.EOF) {
					return n, nil
				}
				return n, fmt.Errorf("failed to copy chunk: %w: could write at least %d", err, n)
			}
		}
	}
}

// ReadAll reads src until EOF or until ctx is done.
func ReadAll(ctx context.Context, src io.Reader) (contents []byte, err error) {
	var buf bytes.Buffer
	_, err = CopyContext(ctx, &buf, src, DefaultBufferSize)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
