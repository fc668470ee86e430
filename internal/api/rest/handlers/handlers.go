// Package handlers provides http.HandlerFunc handler functions to be used for endpoints.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/danilovkiri/dk_go_snapshooter/internal/api/rest/modeldto"
	"github.com/danilovkiri/dk_go_snapshooter/internal/config"
	"github.com/danilovkiri/dk_go_snapshooter/internal/service/capture"
	serviceErrors "github.com/danilovkiri/dk_go_snapshooter/internal/service/errors"
	"github.com/danilovkiri/dk_go_snapshooter/internal/service/identity"
	"github.com/danilovkiri/dk_go_snapshooter/internal/service/preferences"
	storageErrors "github.com/danilovkiri/dk_go_snapshooter/internal/storage/errors"
)

// StorageTimeout bounds requests that only talk to storage.
const StorageTimeout = 5 * time.Second

// Handler defines data structure handling and provides support for adding new implementations.
type Handler struct {
	processor      capture.Processor
	resolver       identity.Resolver
	syncer         preferences.Syncer
	captureTimeout time.Duration
}

// InitHandler initializes a Handler object and sets its attributes.
func InitHandler(processor capture.Processor, resolver identity.Resolver, syncer preferences.Syncer, cfg *config.Config) (*Handler, error) {
	if processor == nil || resolver == nil || syncer == nil {
		return nil, fmt.Errorf("nil service was passed to handler initializer")
	}
	return &Handler{
		processor:      processor,
		resolver:       resolver,
		syncer:         syncer,
		captureTimeout: cfg.ProviderTimeout + StorageTimeout,
	}, nil
}

// HandlePingDB reports storage availability.
func (h *Handler) HandlePingDB() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.processor.PingDB(); err != nil {
			log.Println("HandlePingDB:", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// HandleGetStats returns user and screenshot counters.
func (h *Handler) HandleGetStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), StorageTimeout)
		defer cancel()
		stats, err := h.processor.GetStats(ctx)
		if err != nil {
			writeError(w, "HandleGetStats", err, "Failed to fetch stats")
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

// decodeJSON reads a JSON request body into v, answering 400 on malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Println("decodeJSON:", err)
		writeJSON(w, http.StatusBadRequest, modeldto.ResponseMessage{Message: "Invalid request data"})
		return false
	}
	return true
}

// idParam parses the {id} URL parameter; ok is false unless it is a positive integer.
func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON:", err)
	}
}

// writeError maps service and storage errors onto HTTP statuses. fallback replaces the message
// of unclassified internal errors.
func writeError(w http.ResponseWriter, op string, err error, fallback string) {
	log.Println(op+":", err)
	var (
		validationErr *serviceErrors.ValidationError
		notFoundErr   *serviceErrors.NotFoundError
		storageNFErr  *storageErrors.NotFoundError
		conflictErr   *serviceErrors.ConflictError
		configErr     *serviceErrors.ConfigurationError
		upstreamErr   *serviceErrors.UpstreamError
		timeoutErr    *storageErrors.ContextTimeoutExceededError
	)
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, modeldto.ResponseValidation{Message: "Invalid request data", Errors: validationErr.Fields})
	case errors.As(err, &configErr), errors.As(err, &upstreamErr):
		writeJSON(w, http.StatusInternalServerError, modeldto.ResponseMessage{Message: err.Error()})
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusGatewayTimeout, modeldto.ResponseMessage{Message: "Request timed out"})
	case errors.As(err, &notFoundErr):
		writeJSON(w, http.StatusNotFound, modeldto.ResponseMessage{Message: notFoundMessage(notFoundErr.Entity)})
	case errors.As(err, &storageNFErr):
		writeJSON(w, http.StatusNotFound, modeldto.ResponseMessage{Message: notFoundMessage(storageNFErr.Entity)})
	case errors.As(err, &conflictErr):
		writeJSON(w, http.StatusConflict, modeldto.ResponseMessage{Message: conflictErr.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, modeldto.ResponseMessage{Message: fallback})
	}
}

func notFoundMessage(entity string) string {
	switch entity {
	case "user":
		return "User not found"
	case "screenshot":
		return "Screenshot not found"
	}
	return "Not found"
}
