package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/danilovkiri/dk_go_snapshooter/internal/api/rest/modeldto"
)

// HandleSyncUser creates or refreshes the user reported by the auth provider.
func (h *Handler) HandleSyncUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), StorageTimeout)
		defer cancel()
		var req modeldto.RequestSyncUser
		if !decodeJSON(w, r, &req) {
			return
		}
		user, err := h.resolver.ResolveAndSyncUser(ctx, req.Profile())
		if err != nil {
			writeError(w, "HandleSyncUser", err, "Failed to sync user")
			return
		}
		log.Println("HandleSyncUser: synced user", user.ID)
		writeJSON(w, http.StatusOK, user)
	}
}

// HandleGetPreferences returns the capture defaults of a user.
func (h *Handler) HandleGetPreferences() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), StorageTimeout)
		defer cancel()
		prefs, err := h.syncer.GetDefaultsByExternalID(ctx, chi.URLParam(r, "externalId"))
		if err != nil {
			writeError(w, "HandleGetPreferences", err, "Failed to fetch preferences")
			return
		}
		writeJSON(w, http.StatusOK, prefs)
	}
}

// HandlePutPreferences partially updates the capture defaults of a user.
func (h *Handler) HandlePutPreferences() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), StorageTimeout)
		defer cancel()
		var req modeldto.RequestPreferences
		if !decodeJSON(w, r, &req) {
			return
		}
		prefs, err := h.syncer.SetDefaultsByExternalID(ctx, chi.URLParam(r, "externalId"), req.Patch())
		if err != nil {
			writeError(w, "HandlePutPreferences", err, "Failed to update preferences")
			return
		}
		writeJSON(w, http.StatusOK, prefs)
	}
}
