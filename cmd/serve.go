package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/incident-desk/backend/internal/client"
	"github.com/incident-desk/backend/internal/config"
	"github.com/incident-desk/backend/internal/db"
	"github.com/incident-desk/backend/internal/handler"
	"github.com/incident-desk/backend/internal/registry"
	"github.com/incident-desk/backend/internal/service"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), loadConfig())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "HTTP listen address (HTTP_ADDR)")
	serveCmd.Flags().String("storage", "", "storage driver: postgres | memory (STORAGE_DRIVER)")
	serveCmd.Flags().String("prefix", "/api", "API path prefix (API_PREFIX)")
	bindFlag("HTTP_ADDR", serveCmd, "addr")
	bindFlag("STORAGE_DRIVER", serveCmd, "storage")
	bindFlag("API_PREFIX", serveCmd, "prefix")
}

// schemaStore - 시작 시 테이블을 준비하는 저장소
type schemaStore interface {
	service.RecordStore
	EnsureSchema(ctx context.Context, tables []string) error
}

func runServe(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := registry.Default()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.EnsureSchema(ctx, tableNames(reg)); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	completion, err := client.NewCompletionClient(ctx, cfg.AI)
	if err != nil {
		return err
	}
	var completer service.Completer
	if completion != nil {
		completer = completion
		log.Printf("[Server] completion provider enabled (model=%s)", completion.Model())
	} else {
		log.Printf("[Server] AI_API_KEY not set, AI actions will use fallbacks")
	}

	policy := service.NewAuthPolicy(cfg.Auth)
	if policy.DemoMode() {
		log.Printf("[Server] JWT_SECRET not set, running in demo mode (all requests anonymous)")
	}

	router := handler.NewRouter(cfg.Server, handler.Services{
		Registry: reg,
		Records:  service.NewRecordService(store),
		Assist:   service.NewAssistService(store, reg, completer),
		Auth:     service.NewAuthResolver(policy),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] listening on %s (prefix=%q, storage=%s)", cfg.Server.Addr, cfg.Server.APIPrefix, cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("[Server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.Config) (schemaStore, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Printf("[Server] using in-memory storage, data is lost on restart")
		return db.NewMemory(), func() {}, nil
	case config.StoragePostgres:
		pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		return db.NewPostgres(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func tableNames(reg *registry.Registry) []string {
	var tables []string
	for _, e := range reg.Entities() {
		tables = append(tables, e.Table)
	}
	return tables
}
