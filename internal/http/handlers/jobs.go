package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"showcase/internal/domain"
)

// maxInspirationBytes caps inspiration photo uploads.
const maxInspirationBytes = 10 << 20

type generateRequest struct {
	Prompt      string `json:"prompt"`
	ProjectType string `json:"project_type"`
	Suburb      string `json:"suburb"`
}

type jobResponse struct {
	JobID  string       `json:"job_id"`
	Status domain.State `json:"status"`
}

func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "prompt is required")
		return
	}
	if req.ProjectType != "" && !domain.ValidProjectType(req.ProjectType) {
		a.error(w, http.StatusBadRequest, "bad_request", "unsupported project_type")
		return
	}

	jobID, err := a.Orchestrator.CreateTextJob(r.Context(), req.Prompt, req.ProjectType, req.Suburb)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusAccepted, jobResponse{JobID: jobID, Status: domain.StateParsing})
}

func (a *App) GenerateFromInspiration(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxInspirationBytes)
	if err := r.ParseMultipartForm(maxInspirationBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "image file is required")
		return
	}
	defer file.Close()

	ext, ok := inspirationExtension(header.Filename, header.Header.Get("Content-Type"))
	if !ok {
		a.error(w, http.StatusBadRequest, "bad_request", "image must be PNG or JPEG")
		return
	}
	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "image upload is empty")
		return
	}

	key := path.Join("uploads", fmt.Sprintf("%s%s", uuid.NewString(), ext))
	storedKey, err := a.Assets.Write(r.Context(), key, data)
	if err != nil {
		a.domainError(w, err)
		return
	}

	projectType := r.FormValue("project_type")
	if projectType != "" && !domain.ValidProjectType(projectType) {
		a.error(w, http.StatusBadRequest, "bad_request", "unsupported project_type")
		return
	}

	jobID, err := a.Orchestrator.CreateInspirationJob(
		r.Context(),
		storedKey,
		strings.TrimSpace(r.FormValue("prompt")),
		projectType,
		r.FormValue("suburb"),
	)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusAccepted, jobResponse{JobID: jobID, Status: domain.StateAnalyzing})
}

func inspirationExtension(filename, contentType string) (string, bool) {
	switch strings.ToLower(contentType) {
	case "image/png":
		return ".png", true
	case "image/jpeg", "image/jpg":
		return ".jpg", true
	}
	switch strings.ToLower(path.Ext(filename)) {
	case ".png":
		return ".png", true
	case ".jpg", ".jpeg":
		return ".jpg", true
	}
	return "", false
}

func (a *App) JobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")
	status, err := a.States.ReadStatus(jobID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, status)
}

func (a *App) JobManifest(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")
	manifest, err := a.States.ReadManifest(jobID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, manifest)
}
