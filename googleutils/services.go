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

package googleutils

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/lac5q/creative-ads-repository/ioutils"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type Services struct {
	Drive  *drive.Service
	Sheets *sheets.Service
}

// ClientFromConfig returns an authorized client that backs off on rate limiting.
func ClientFromConfig(ctx context.Context, config *jwt.Config) (client *http.Client) {
	client = config.Client(ctx)
	client.Transport = ioutils.NewRetryTransport(client.Transport, 10, time.Second)
	return client
}

func NewServices(ctx context.Context, opts ...option.ClientOption) (svcs *Services, err error) {
	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	sheetsSvc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Services{Drive: driveSvc, Sheets: sheetsSvc}, nil
}

func NewServicesFromConfig(ctx context.Context, config *jwt.Config) (svcs *Services, err error) {
	return NewServices(ctx, option.WithHTTPClient(ClientFromConfig(ctx, config)))
}
