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

package driveutils

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/drive/v3"
)

const SpreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// ListSpreadsheets returns every spreadsheet visible to the account, most recently modified first.
func ListSpreadsheets(ctx context.Context, svc *drive.Service) (files []*drive.File, err error) {
	err = svc.Files.
		List().
		Q(fmt.Sprintf("mimeType='%s' and trashed=false", SpreadsheetMimeType)).
		Fields("nextPageToken,files(id,name,createdTime,modifiedTime,owners,webViewLink)").
		OrderBy("modifiedTime desc").
		PageSize(100).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Pages(ctx, func(fl *drive.FileList) (err error) {
			files = append(files, fl.Files...)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list spreadsheets: %w", err)
	}
	return files, nil
}

func WebViewLink(ctx context.Context, svc *drive.Service, fileId string) (link string, err error) {
	file, err := svc.Files.
		Get(fileId).
		Fields("webViewLink").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to get file by id: %w", err)
	}
	return file.WebViewLink, nil
}

// Date formats an RFC 3339 timestamp as YYYY-MM-DD, returning the input when it does not parse.
func Date(value string) (date string) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return t.Format(time.DateOnly)
}
