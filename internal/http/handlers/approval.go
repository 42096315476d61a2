package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"showcase/internal/domain"
)

func (a *App) ApproveHero(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")
	if err := a.Orchestrator.Approve(r.Context(), jobID); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, jobResponse{JobID: jobID, Status: domain.StateGenerating})
}

func (a *App) RejectHero(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")
	if err := a.Orchestrator.Reject(r.Context(), jobID); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, jobResponse{JobID: jobID, Status: domain.StateRejected})
}

type regenerateHeroRequest struct {
	Feedback string `json:"feedback"`
}

func (a *App) RegenerateHero(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")
	var req regenerateHeroRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if err := a.Orchestrator.RegenerateHero(r.Context(), jobID, req.Feedback); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, jobResponse{JobID: jobID, Status: domain.StateRegenerating})
}

type regenerateImageRequest struct {
	VariationName string `json:"variation_name"`
}

func (a *App) RegenerateImage(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")
	var req regenerateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.VariationName == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "variation_name is required")
		return
	}
	if err := a.Orchestrator.RegenerateOne(r.Context(), jobID, req.VariationName); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, jobResponse{JobID: jobID, Status: domain.StateGenerating})
}
