// Package rest provides functionality for initializing a server for the screenshot service.
package rest

import (
	"expvar"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/danilovkiri/dk_go_snapshooter/internal/api/rest/handlers"
	"github.com/danilovkiri/dk_go_snapshooter/internal/api/rest/middleware"
	"github.com/danilovkiri/dk_go_snapshooter/internal/config"
	capture "github.com/danilovkiri/dk_go_snapshooter/internal/service/capture/v1"
	identity "github.com/danilovkiri/dk_go_snapshooter/internal/service/identity/v1"
	preferences "github.com/danilovkiri/dk_go_snapshooter/internal/service/preferences/v1"
	"github.com/danilovkiri/dk_go_snapshooter/internal/service/provider"
	"github.com/danilovkiri/dk_go_snapshooter/internal/storage"
)

var (
	serverStart = time.Now()
	publishOnce sync.Once
)

// uptime returns time in seconds since the server start-up.
func uptime() interface{} {
	return int64(time.Since(serverStart).Seconds())
}

// NewRouter wires services over st and p and returns the routed handler.
func NewRouter(cfg *config.Config, st storage.Storage, p provider.Provider) (*chi.Mux, error) {
	resolver, err := identity.InitResolver(st)
	if err != nil {
		return nil, err
	}
	syncer, err := preferences.InitSyncer(st, resolver)
	if err != nil {
		return nil, err
	}
	processor, err := capture.InitProcessor(st, p, resolver, cfg.ProviderPassThrough)
	if err != nil {
		return nil, err
	}
	h, err := handlers.InitHandler(processor, resolver, syncer, cfg)
	if err != nil {
		return nil, err
	}
	trustedNet := middleware.NewTrustedNetHandler(cfg)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORSHandle)
	r.Use(middleware.IdentityHandle)
	r.Use(middleware.CompressHandle)
	r.Use(middleware.DecompressHandle)

	r.Post("/api/auth/sync-user", h.HandleSyncUser())
	r.Route("/api/users/{externalId}/preferences", func(r chi.Router) {
		r.Get("/", h.HandleGetPreferences())
		r.Put("/", h.HandlePutPreferences())
	})
	r.Route("/api/screenshots", func(r chi.Router) {
		r.Post("/capture", h.HandleCapture())
		r.Get("/", h.HandleListScreenshots())
		r.Get("/{id}", h.HandleGetScreenshot())
		r.Delete("/{id}", h.HandleDeleteScreenshot())
		r.Get("/{id}/download", h.HandleDownload())
	})
	r.With(trustedNet.TrustedNetworkHandler).Get("/api/internal/stats", h.HandleGetStats())
	r.Get("/ping", h.HandlePingDB())
	r.Mount("/debug", chiMiddleware.Profiler())
	publishOnce.Do(func() {
		expvar.Publish("system.uptime", expvar.Func(uptime))
	})
	return r, nil
}

// InitServer returns a http.Server object ready to be listening and serving.
func InitServer(cfg *config.Config, st storage.Storage, p provider.Provider) (*http.Server, error) {
	r, err := NewRouter(cfg, st, p)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      r,
		IdleTimeout:  60 * time.Second,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: cfg.ProviderTimeout + 60*time.Second,
	}
	return srv, nil
}
