package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/danilovkiri/dk_go_snapshooter/internal/api/rest"
	"github.com/danilovkiri/dk_go_snapshooter/internal/config"
	provider "github.com/danilovkiri/dk_go_snapshooter/internal/service/provider/v1"
	"github.com/danilovkiri/dk_go_snapshooter/internal/storage"
	"github.com/danilovkiri/dk_go_snapshooter/internal/storage/inmemory"
	"github.com/danilovkiri/dk_go_snapshooter/internal/storage/insql"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// waits for the SQL storage listener to close the pool
	wg := &sync.WaitGroup{}
	cfg := config.NewDefaultConfiguration()
	if err := cfg.Parse(os.Args[1:]); err != nil {
		log.Println(config.Usage())
		log.Fatal(err)
	}
	if cfg.ProviderAPIKey == "" {
		log.Println("Provider API key is not set: captures will fail until SCREENSHOTONE_API_KEY is configured")
	}
	// the backend is chosen once here and injected everywhere else
	var st storage.Storage
	switch cfg.StorageBackend {
	case config.BackendMemory:
		st = inmemory.InitStorage()
	default:
		sqlStorage, err := insql.InitStorage(ctx, wg, cfg)
		if err != nil {
			log.Fatal(err)
		}
		st = sqlStorage
	}
	log.Println("Storage backend:", cfg.StorageBackend)

	server, err := rest.InitServer(cfg, st, provider.InitClient(cfg))
	if err != nil {
		log.Fatal(err)
	}
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-done
		log.Print("Server shutdown attempted")
		ctxTO, cancelTO := context.WithTimeout(ctx, 5*time.Second)
		defer cancelTO()
		if err := server.Shutdown(ctxTO); err != nil {
			log.Println("Server shutdown failed:", err)
		}
		cancel()
	}()
	log.Print("Server start attempted on ", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	wg.Wait()
	log.Print("Server shutdown succeeded")
}
