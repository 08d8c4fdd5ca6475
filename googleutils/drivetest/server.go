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

// Package drivetest serves an in-memory subset of the Drive v3 and Sheets v4 APIs.
package drivetest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"
	"testing"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type CreateCall struct {
	FileId                string
	Permission            drive.Permission
	SendNotificationEmail string
	EmailMessage          string
	TransferOwnership     string
}

type Server struct {
	*httptest.Server

	mu          sync.Mutex
	files       []*drive.File
	permissions map[string][]*drive.Permission
	tabs        map[string][]string
	denied      map[string]bool
	nextId      int

	// Files returned per list page.
	PageSize int
	Calls    []string
	Creates  []CreateCall
	Updates  []string
	Deletes  []string
}

func New(t *testing.T) (s *Server) {
	s = &Server{
		permissions: map[string][]*drive.Permission{},
		tabs:        map[string][]string{},
		denied:      map[string]bool{},
		PageSize:    2,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /drive/v3/files", s.listFiles)
	mux.HandleFunc("GET /drive/v3/files/{fileId}", s.getFile)
	mux.HandleFunc("GET /drive/v3/files/{fileId}/permissions", s.listPermissions)
	mux.HandleFunc("POST /drive/v3/files/{fileId}/permissions", s.createPermission)
	mux.HandleFunc("PATCH /drive/v3/files/{fileId}/permissions/{permissionId}", s.updatePermission)
	mux.HandleFunc("DELETE /drive/v3/files/{fileId}/permissions/{permissionId}", s.deletePermission)
	mux.HandleFunc("GET /v4/spreadsheets/{spreadsheetId}", s.getSpreadsheet)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.Calls = append(s.Calls, r.Method+" "+r.URL.Path)
		s.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

// AddFile registers a spreadsheet. Files are listed in insertion order.
func (s *Server) AddFile(file *drive.File, tabs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if file.WebViewLink == "" {
		file.WebViewLink = "https://docs.google.com/spreadsheets/d/" + file.Id + "/edit"
	}
	s.files = append(s.files, file)
	if _, found := s.permissions[file.Id]; !found {
		s.permissions[file.Id] = []*drive.Permission{}
	}
	s.tabs[file.Id] = tabs
}

func (s *Server) AddPermission(fileId string, permission *drive.Permission) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if permission.Id == "" {
		s.nextId++
		permission.Id = "perm-" + strconv.Itoa(s.nextId)
	}
	s.permissions[fileId] = append(s.permissions[fileId], permission)
}

// Deny makes every permission call on fileId fail with 403.
func (s *Server) Deny(fileId string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.denied[fileId] = true
}

func (s *Server) Permissions(fileId string) (permissions []*drive.Permission) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.permissions[fileId])
}

func (s *Server) DriveService(ctx context.Context) (svc *drive.Service, err error) {
	return drive.NewService(ctx,
		option.WithEndpoint(s.URL+"/drive/v3/"),
		option.WithHTTPClient(s.Client()),
	)
}

func (s *Server) SheetsService(ctx context.Context) (svc *sheets.Service, err error) {
	return sheets.NewService(ctx,
		option.WithEndpoint(s.URL+"/"),
		option.WithHTTPClient(s.Client()),
	)
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, reason, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    status,
			"message": message,
			"errors": []map[string]string{
				{"reason": reason, "message": message},
			},
		},
	})
}

func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start, _ := strconv.Atoi(r.URL.Query().Get("pageToken"))
	end := min(start+s.PageSize, len(s.files))
	if start > end {
		start = end
	}

	list := drive.FileList{Files: s.files[start:end]}
	if end < len(s.files) {
		list.NextPageToken = strconv.Itoa(end)
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) lookup(w http.ResponseWriter, fileId string) (found bool) {
	if s.denied[fileId] {
		writeError(w, http.StatusForbidden, "insufficientFilePermissions", "The user does not have sufficient permissions for this file.")
		return false
	}
	if _, found = s.permissions[fileId]; !found {
		writeError(w, http.StatusNotFound, "notFound", fmt.Sprintf("File not found: %s.", fileId))
		return false
	}
	return true
}

func (s *Server) getFile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fileId := r.PathValue("fileId")
	if !s.lookup(w, fileId) {
		return
	}
	for _, file := range s.files {
		if file.Id == fileId {
			writeJSON(w, http.StatusOK, file)
			return
		}
	}
	writeError(w, http.StatusNotFound, "notFound", "File not found: "+fileId)
}

func (s *Server) listPermissions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fileId := r.PathValue("fileId")
	if !s.lookup(w, fileId) {
		return
	}
	writeJSON(w, http.StatusOK, drive.PermissionList{Permissions: s.permissions[fileId]})
}

func (s *Server) createPermission(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fileId := r.PathValue("fileId")
	if !s.lookup(w, fileId) {
		return
	}

	var permission drive.Permission
	err := json.NewDecoder(r.Body).Decode(&permission)
	if err != nil {
		writeError(w, http.StatusBadRequest, "badRequest", err.Error())
		return
	}

	query := r.URL.Query()
	s.Creates = append(s.Creates, CreateCall{
		FileId:                fileId,
		Permission:            permission,
		SendNotificationEmail: query.Get("sendNotificationEmail"),
		EmailMessage:          query.Get("emailMessage"),
		TransferOwnership:     query.Get("transferOwnership"),
	})

	s.nextId++
	permission.Id = "perm-" + strconv.Itoa(s.nextId)
	s.permissions[fileId] = append(s.permissions[fileId], &permission)
	writeJSON(w, http.StatusOK, permission)
}

func (s *Server) updatePermission(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fileId, permissionId := r.PathValue("fileId"), r.PathValue("permissionId")
	if !s.lookup(w, fileId) {
		return
	}

	var patch drive.Permission
	err := json.NewDecoder(r.Body).Decode(&patch)
	if err != nil {
		writeError(w, http.StatusBadRequest, "badRequest", err.Error())
		return
	}

	for _, permission := range s.permissions[fileId] {
		if permission.Id == permissionId {
			permission.Role = patch.Role
			s.Updates = append(s.Updates, fileId+"/"+permissionId+"="+patch.Role)
			writeJSON(w, http.StatusOK, permission)
			return
		}
	}
	writeError(w, http.StatusNotFound, "notFound", "Permission not found: "+permissionId)
}

func (s *Server) deletePermission(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fileId, permissionId := r.PathValue("fileId"), r.PathValue("permissionId")
	if !s.lookup(w, fileId) {
		return
	}

	permissions := s.permissions[fileId]
	index := slices.IndexFunc(permissions, func(p *drive.Permission) bool { return p.Id == permissionId })
	if index == -1 {
		writeError(w, http.StatusNotFound, "notFound", "Permission not found: "+permissionId)
		return
	}
	s.permissions[fileId] = slices.Delete(permissions, index, index+1)
	s.Deletes = append(s.Deletes, fileId+"/"+permissionId)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getSpreadsheet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := r.PathValue("spreadsheetId")
	tabs, found := s.tabs[id]
	if !found {
		writeError(w, http.StatusNotFound, "notFound", "Requested entity was not found.")
		return
	}

	spreadsheet := sheets.Spreadsheet{SpreadsheetId: id}
	for _, title := range tabs {
		spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: title},
		})
	}
	writeJSON(w, http.StatusOK, spreadsheet)
}
