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
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/api/drive/v3"
)

// Remove the passed permissions from a document. Every deletion is attempted and the
// failures are returned joined.
func Unshare(ctx context.Context, svc *drive.Service, fileId string, permissions []*drive.Permission) (err error) {
	if len(permissions) == 0 {
		return errors.New("no permission id provided")
	}

	var errs []error
	for _, permission := range permissions {
		err = svc.Permissions.
			Delete(fileId, permission.Id).
			Context(ctx).
			SupportsAllDrives(true).
			Do()
		if err != nil {
			slog.Debug("Failed to remove permission",
				"file-id", fileId,
				"permission-id", permission.Id,
				"error-msg", err,
			)
			errs = append(errs, fmt.Errorf("failed to delete permission: %s: %w", permission.Id, err))
			continue
		}
		slog.Debug("Removed permission",
			"file-id", fileId,
			"email", permission.EmailAddress,
			"role", permission.Role,
		)
	}
	return errors.Join(errs...)
}

func revocable(permissions []*drive.Permission, match func(*drive.Permission) bool) (out []*drive.Permission) {
	for _, permission := range permissions {
		if permission.Role == RoleOwner {
			continue
		}
		if match(permission) {
			out = append(out, permission)
		}
	}
	return out
}

// UnshareEmail removes every non owner permission held by email. It returns how many
// permissions were targeted.
func UnshareEmail(ctx context.Context, svc *drive.Service, fileId, email string) (removed int, err error) {
	if strings.TrimSpace(email) == "" {
		return 0, ErrEmptyEmail
	}

	permissions, err := ListPermissions(ctx, svc, fileId)
	if err != nil {
		return 0, err
	}

	targets := revocable(permissions, func(p *drive.Permission) bool {
		return strings.EqualFold(p.EmailAddress, email)
	})
	if len(targets) == 0 {
		return 0, nil
	}

	err = Unshare(ctx, svc, fileId, targets)
	if err != nil {
		return 0, fmt.Errorf("failed to unshare file: %w", err)
	}
	return len(targets), nil
}

// Remove all non owner access to a document
func UnshareAll(ctx context.Context, svc *drive.Service, fileId string) (removed int, err error) {
	permissions, err := ListPermissions(ctx, svc, fileId)
	if err != nil {
		return 0, err
	}

	targets := revocable(permissions, func(*drive.Permission) bool { return true })
	if len(targets) == 0 {
		return 0, nil
	}

	err = Unshare(ctx, svc, fileId, targets)
	if err != nil {
		return 0, fmt.Errorf("failed to unshare file: %w", err)
	}
	return len(targets), nil
}
