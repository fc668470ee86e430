package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/danilovkiri/dk_go_snapshooter/internal/api/rest/middleware"
	"github.com/danilovkiri/dk_go_snapshooter/internal/api/rest/modeldto"
)

// HandleCapture runs the capture pipeline for the posted request.
func (h *Handler) HandleCapture() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.captureTimeout)
		defer cancel()
		var req modeldto.RequestCapture
		if !decodeJSON(w, r, &req) {
			return
		}
		owner := req.Owner()
		if owner == "" {
			owner = middleware.ExternalIDFromContext(r.Context())
		}
		log.Println("HandleCapture: capture requested for", req.URL)
		shot, err := h.processor.Capture(ctx, req.CaptureRequest(), owner)
		if err != nil {
			writeError(w, "HandleCapture", err, "Failed to capture screenshot")
			return
		}
		writeJSON(w, http.StatusOK, shot)
	}
}

// HandleListScreenshots lists recent screenshots, newest first.
func (h *Handler) HandleListScreenshots() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), StorageTimeout)
		defer cancel()
		query := r.URL.Query()
		limit := 0
		if raw := query.Get("limit"); raw != "" {
			var err error
			limit, err = strconv.Atoi(raw)
			if err != nil || limit < 0 {
				writeJSON(w, http.StatusBadRequest, modeldto.ResponseMessage{Message: "Invalid limit"})
				return
			}
		}
		owner := query.Get("externalId")
		if owner == "" {
			owner = query.Get("firebaseUid")
		}
		if owner == "" {
			owner = middleware.ExternalIDFromContext(r.Context())
		}
		shots, err := h.processor.ListRecent(ctx, limit, owner)
		if err != nil {
			writeError(w, "HandleListScreenshots", err, "Failed to fetch screenshots")
			return
		}
		writeJSON(w, http.StatusOK, shots)
	}
}

// HandleGetScreenshot returns a single screenshot.
func (h *Handler) HandleGetScreenshot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), StorageTimeout)
		defer cancel()
		id, ok := idParam(r)
		if !ok {
			writeJSON(w, http.StatusNotFound, modeldto.ResponseMessage{Message: notFoundMessage("screenshot")})
			return
		}
		shot, err := h.processor.GetScreenshot(ctx, id)
		if err != nil {
			writeError(w, "HandleGetScreenshot", err, "Failed to fetch screenshot")
			return
		}
		writeJSON(w, http.StatusOK, shot)
	}
}

// HandleDeleteScreenshot deletes a screenshot whether or not it exists.
func (h *Handler) HandleDeleteScreenshot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), StorageTimeout)
		defer cancel()
		id, ok := idParam(r)
		if !ok {
			writeJSON(w, http.StatusOK, modeldto.ResponseMessage{Message: "Screenshot deleted successfully"})
			return
		}
		if err := h.processor.Delete(ctx, id); err != nil {
			writeError(w, "HandleDeleteScreenshot", err, "Failed to delete screenshot")
			return
		}
		writeJSON(w, http.StatusOK, modeldto.ResponseMessage{Message: "Screenshot deleted successfully"})
	}
}

// HandleDownload streams the screenshot image as an attachment.
func (h *Handler) HandleDownload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.captureTimeout)
		defer cancel()
		id, ok := idParam(r)
		if !ok {
			writeJSON(w, http.StatusNotFound, modeldto.ResponseMessage{Message: notFoundMessage("screenshot")})
			return
		}
		artifact, filename, err := h.processor.Download(ctx, id)
		if err != nil {
			writeError(w, "HandleDownload", err, "Failed to download screenshot")
			return
		}
		defer artifact.Body.Close()
		w.Header().Set("Content-Type", artifact.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if artifact.Size > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(artifact.Size, 10))
		}
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, artifact.Body); err != nil {
			log.Println("HandleDownload:", err)
		}
	}
}
