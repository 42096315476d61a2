// Package handlers exposes the showcase HTTP API: job creation for both
// flows, polled status and manifest documents, the approval gate actions,
// and generated image delivery.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"showcase/internal/domain"
	"showcase/internal/infra"
	"showcase/internal/orchestrator"
	"showcase/internal/state"
	"showcase/internal/storage"
)

type App struct {
	Orchestrator *orchestrator.Orchestrator
	States       *state.Store
	Assets       *storage.FileStore
	Logger       infra.Logger
}

func NewApp(orch *orchestrator.Orchestrator, states *state.Store, assets *storage.FileStore, logger infra.Logger) *App {
	return &App{
		Orchestrator: orch,
		States:       states,
		Assets:       assets,
		Logger:       logger,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, map[string]string{"error": kind, "message": message})
}

// domainError maps sentinel errors to API responses; unknown errors become
// opaque 500s.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, state.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "job not found")
	case errors.Is(err, domain.ErrUnknownVariation):
		a.error(w, http.StatusNotFound, "not_found", "unknown variation")
	case errors.Is(err, domain.ErrNotAwaitingApproval):
		a.error(w, http.StatusConflict, "not_awaiting_approval", "job is not awaiting hero approval")
	case errors.Is(err, domain.ErrHeroImmutable):
		a.error(w, http.StatusConflict, "hero_immutable", "the hero image cannot be regenerated")
	case errors.Is(err, domain.ErrRegenCapExceeded):
		a.error(w, http.StatusTooManyRequests, "regen_cap_exceeded", "hero regeneration limit reached")
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	default:
		a.Logger.Error().Err(err).Msg("handlers: internal error")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
