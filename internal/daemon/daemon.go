package daemon

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fleetshare-network/fleetshare/internal/api"
	"github.com/fleetshare-network/fleetshare/internal/app"
	"github.com/fleetshare-network/fleetshare/internal/infra/memstore"
	"github.com/fleetshare-network/fleetshare/internal/infra/sqlite"
	"github.com/fleetshare-network/fleetshare/internal/infra/treasury"
)

// Run assembles the service from the config and serves the HTTP API until
// the process is signalled to stop.
func Run(cfg Config) error {
	svc, cleanup, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	server := api.NewServer(svc, cfg.Admin.Key)
	if cfg.Metrics.Enabled {
		server.EnableMetrics()
	}

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr(),
		Handler: server.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[daemon] listening on http://%s", cfg.ListenAddr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Printf("[daemon] received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}

// buildService wires stores, treasury and journal per the storage config.
func buildService(cfg Config) (*app.Service, func(), error) {
	if cfg.Storage.Path == "" {
		log.Printf("[daemon] storage path empty, using in-memory state")
		store := memstore.New()
		return app.New(store, store, treasury.New(), memstore.NewJournal()), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o700); err != nil {
		return nil, nil, err
	}
	db, err := sqlite.Open(cfg.Storage.Path)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[daemon] using sqlite store at %s", cfg.Storage.Path)
	cleanup := func() {
		if err := db.Close(); err != nil {
			log.Printf("[daemon] close store: %v", err)
		}
	}
	return app.New(db, db, db, db), cleanup, nil
}
