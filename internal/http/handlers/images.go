package handlers

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"showcase/pkg/zip"
)

// ServeImage streams one generated image from job-scoped storage.
func (a *App) ServeImage(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")
	filename := chi.URLParam(r, "filename")
	if strings.Contains(filename, "/") || strings.Contains(filename, "..") {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid filename")
		return
	}

	filePath, err := a.Assets.Path(path.Join(jobID, filename))
	if err != nil {
		a.domainError(w, err)
		return
	}
	http.ServeFile(w, r, filePath)
}

// DownloadArchive bundles every manifest image of a job into a zip.
func (a *App) DownloadArchive(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")
	manifest, err := a.States.ReadManifest(jobID)
	if err != nil {
		a.domainError(w, err)
		return
	}

	var assets []zip.Asset
	for _, img := range manifest.Images {
		data, err := a.Assets.Read(r.Context(), path.Join(jobID, img.Filename))
		if err != nil {
			a.Logger.Warn().Err(err).
				Str("job_id", jobID).
				Str("filename", img.Filename).
				Msg("handlers: archive member missing")
			continue
		}
		assets = append(assets, zip.Asset{
			Filename: img.Filename,
			MIME:     "image/png",
			Data:     data,
		})
	}
	if len(assets) == 0 {
		a.error(w, http.StatusNotFound, "not_found", "no images available for this job")
		return
	}

	archive, err := zip.Bundle(assets)
	if err != nil {
		a.domainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=showcase-%s.zip", jobID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}
