package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/noisersup/files-manager-api/database"
	"github.com/noisersup/files-manager-api/models"
)

// Handler function for POST /files.
// Validates the upload, persists the metadata and, for payload
// types, writes the decoded payload to disk before queueing a
// post-processing job.
//
// Validation short-circuits in a fixed order: name, type, data,
// then the parent reference. Duplicate names under one parent are
// allowed, there is no uniqueness constraint on name.
func (s *Server) postUpload(w http.ResponseWriter, r *http.Request, _ []string) {
	user := s.authorize(w, r)
	if user == nil {
		return
	}

	req := UploadRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.l.SWarn("postUpload", "malformed body: %s", err.Error())
	}

	if req.Name == "" {
		errResponse(w, http.StatusBadRequest, "Missing name")
		return
	}
	if !models.ValidType(req.Type) {
		errResponse(w, http.StatusBadRequest, "Missing type")
		return
	}
	if req.Type != models.TypeFolder && req.Data == "" {
		errResponse(w, http.StatusBadRequest, "Missing data")
		return
	}

	parentId, ok := parseParent(req.ParentId)
	if !ok {
		errResponse(w, http.StatusBadRequest, "Parent not found")
		return
	}
	if parentId != uuid.Nil {
		parent, err := s.db.GetFileById(parentId)
		if err != nil {
			if err == database.FileNotFound {
				errResponse(w, http.StatusBadRequest, "Parent not found")
				return
			}
			s.l.SErr("postUpload", "Internal error: %s", err.Error())
			serverError(w)
			return
		}
		if parent.Type != models.TypeFolder {
			errResponse(w, http.StatusBadRequest, "Parent is not a folder")
			return
		}
	}

	file := models.File{
		Id:       uuid.New(),
		UserId:   user.Id,
		Name:     req.Name,
		Type:     req.Type,
		IsPublic: req.IsPublic,
		ParentId: parentId,
	}

	if req.Type == models.TypeFolder {
		if err := s.db.NewFile(&file); err != nil {
			s.l.SErr("postUpload", "Internal error: %s", err.Error())
			serverError(w)
			return
		}
		writeResponse(w, file.Public(), http.StatusCreated)
		return
	}

	raw, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		errResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// The disk write comes first: a failure here must leave no
	// metadata pointing at a payload that was never stored.
	path, err := s.store.Save(raw)
	if err != nil {
		s.l.SErr("postUpload", "storage write failed: %s", err.Error())
		errResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	file.LocalPath = path
	if err = s.db.NewFile(&file); err != nil {
		s.l.SErr("postUpload", "Internal error: %s", err.Error())
		serverError(w)
		return
	}

	// Fire-and-forget: the record is already committed, a failed
	// enqueue is logged but does not change the outcome.
	if err = s.queue.Enqueue(models.Job{UserId: user.Id, FileId: file.Id}); err != nil {
		s.l.SErr("postUpload", "enqueue failed for file %s: %s", file.Id, err.Error())
	}

	writeResponse(w, file.Public(), http.StatusCreated)
}

// Handler function for GET /files/:id.
// Ownership sits inside the lookup filter, so a file owned by
// somebody else is answered exactly like a missing one.
func (s *Server) getShow(w http.ResponseWriter, r *http.Request, paths []string) {
	user := s.authorize(w, r)
	if user == nil {
		return
	}

	id, err := uuid.Parse(paths[0])
	if err != nil {
		errResponse(w, http.StatusNotFound, "Not found")
		return
	}

	file, err := s.db.GetFile(id, user.Id)
	if err != nil {
		if err == database.FileNotFound {
			errResponse(w, http.StatusNotFound, "Not found")
			return
		}
		s.l.SErr("getShow", "Internal error: %s", err.Error())
		serverError(w)
		return
	}

	writeResponse(w, file.Public(), http.StatusOK)
}

// Handler function for GET /files?parentId=&page=.
// Pages are 1-based, 20 items each, scoped to the caller and ordered
// by insertion sequence. A malformed parentId is deliberately
// treated as the root rather than rejected; an out-of-range page is
// an empty 200.
func (s *Server) getIndex(w http.ResponseWriter, r *http.Request, _ []string) {
	user := s.authorize(w, r)
	if user == nil {
		return
	}

	parentId := parseParentQuery(r.URL.Query().Get("parentId"))

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	files, err := s.db.ListFiles(user.Id, parentId, (page-1)*itemsPerPage, itemsPerPage)
	if err != nil {
		s.l.SErr("getIndex", "Internal error: %s", err.Error())
		serverError(w)
		return
	}

	results := []models.PublicFile{}
	for i := range files {
		results = append(results, files[i].Public())
	}

	writeResponse(w, results, http.StatusOK)
}

// Handler function for PUT /files/:id/publish.
func (s *Server) putPublish(w http.ResponseWriter, r *http.Request, paths []string) {
	s.setPublic(w, r, paths, true)
}

// Handler function for PUT /files/:id/unpublish.
func (s *Server) putUnpublish(w http.ResponseWriter, r *http.Request, paths []string) {
	s.setPublic(w, r, paths, false)
}

// setPublic flips isPublic on an owned file through a single
// conditional update, so the existence check and the write cannot
// race with a concurrent toggle.
func (s *Server) setPublic(w http.ResponseWriter, r *http.Request, paths []string, value bool) {
	user := s.authorize(w, r)
	if user == nil {
		return
	}

	id, err := uuid.Parse(paths[0])
	if err != nil {
		errResponse(w, http.StatusNotFound, "Not found")
		return
	}

	file, err := s.db.SetFilePublic(id, user.Id, value)
	if err != nil {
		if err == database.FileNotFound {
			errResponse(w, http.StatusNotFound, "Not found")
			return
		}
		s.l.SErr("setPublic", "Internal error: %s", err.Error())
		serverError(w)
		return
	}

	writeResponse(w, file.Public(), http.StatusOK)
}

// parseParent interprets the parentId of an upload request.
// Absent, 0 and "0" all mean the root. Anything else has to look
// like a file id; if it does not, the referenced parent cannot
// exist and the caller gets "Parent not found".
func parseParent(v interface{}) (uuid.UUID, bool) {
	switch t := v.(type) {
	case nil:
		return uuid.Nil, true
	case float64:
		if t == 0 {
			return uuid.Nil, true
		}
		return uuid.Nil, false
	case string:
		if t == "" || t == "0" {
			return uuid.Nil, true
		}
		id, err := uuid.Parse(t)
		if err != nil {
			return uuid.Nil, false
		}
		return id, true
	}
	return uuid.Nil, false
}

// parseParentQuery interprets the parentId of a listing request.
// Unlike uploads, anything that does not parse falls back to the
// root: a malformed scope hint narrows the listing instead of
// failing it.
func parseParentQuery(v string) uuid.UUID {
	if v == "" || v == "0" {
		return uuid.Nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil
	}
	return id
}
