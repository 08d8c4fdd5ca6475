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
	"slices"
	"strings"

	"google.golang.org/api/drive/v3"
)

const (
	RoleReader = "reader"
	RoleWriter = "writer"
	RoleOwner  = "owner"
)

var Roles = []string{RoleReader, RoleWriter, RoleOwner}

var ErrEmptyEmail = errors.New("no email address to share with")

func ValidRole(role string) (valid bool) {
	return slices.Contains(Roles, role)
}

type Outcome int

const (
	Created Outcome = iota + 1
	Updated
	Unchanged
)

func (o Outcome) String() (s string) {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	case Unchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

type (
	ShareOptions struct {
		Role                  string
		SendNotificationEmail bool
		EmailMessage          string
	}
	ShareResult struct {
		Outcome      Outcome
		PreviousRole string
		Permission   *drive.Permission
	}
)

func ListPermissions(ctx context.Context, svc *drive.Service, fileId string) (permissions []*drive.Permission, err error) {
	err = svc.Permissions.
		List(fileId).
		Fields("nextPageToken,permissions(id,emailAddress,role,type)").
		PageSize(100).
		SupportsAllDrives(true).
		Pages(ctx, func(pl *drive.PermissionList) (err error) {
			permissions = append(permissions, pl.Permissions...)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list file permissions: %w", err)
	}
	return permissions, nil
}

// FindPermission returns the permission granted to email, nil when there is none.
// Addresses are compared case insensitively.
func FindPermission(ctx context.Context, svc *drive.Service, fileId, email string) (permission *drive.Permission, err error) {
	permissions, err := ListPermissions(ctx, svc, fileId)
	if err != nil {
		return nil, err
	}
	for _, permission := range permissions {
		if strings.EqualFold(permission.EmailAddress, email) {
			return permission, nil
		}
	}
	return nil, nil
}

// Share grants email the requested role. An existing permission is updated in place
// when its role differs; otherwise a new user permission is created.
func Share(ctx context.Context, svc *drive.Service, fileId, email string, opts ShareOptions) (result *ShareResult, err error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmptyEmail
	}
	if !ValidRole(opts.Role) {
		return nil, fmt.Errorf("unknown role: %s: expecting: %s", opts.Role, strings.Join(Roles, ", "))
	}

	existing, err := FindPermission(ctx, svc, fileId, email)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		result = &ShareResult{PreviousRole: existing.Role, Permission: existing}
		if existing.Role == opts.Role {
			result.Outcome = Unchanged
			return result, nil
		}

		updated, err := svc.Permissions.
			Update(fileId, existing.Id, &drive.Permission{Role: opts.Role}).
			TransferOwnership(opts.Role == RoleOwner).
			SupportsAllDrives(true).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("failed to update permission: %w", err)
		}
		result.Outcome = Updated
		result.Permission = updated
		return result, nil
	}

	createCall := svc.Permissions.
		Create(fileId, &drive.Permission{
			EmailAddress: email,
			Role:         opts.Role,
			Type:         "user",
		}).
		SendNotificationEmail(opts.SendNotificationEmail || opts.Role == RoleOwner).
		TransferOwnership(opts.Role == RoleOwner).
		SupportsAllDrives(true).
		Context(ctx)
	if opts.SendNotificationEmail && opts.EmailMessage != "" {
		createCall = createCall.EmailMessage(opts.EmailMessage)
	}

	created, err := createCall.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create permission: %w", err)
	}
	return &ShareResult{Outcome: Created, Permission: created}, nil
}
