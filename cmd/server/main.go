package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recmap/internal/api"
	"recmap/internal/config"
	"recmap/internal/mapper"
	"recmap/internal/model"
	"recmap/internal/store"
)

func main() {
	cfg := config.LoadWithPath("config.json")
	log, err := cfg.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	// 1) DSL-схемы: каталог из конфига или встроенная
	schemas, err := model.LoadSchemas(cfg.SchemaDir)
	if err != nil {
		return fmt.Errorf("load schemas: %w", err)
	}
	log.Info("schemas loaded", zap.Int("entities", len(schemas)), zap.String("dir", cfg.SchemaDir))

	// 2) модели; замечания линтера не блокируют старт
	reg, err := model.NewRegistry(schemas)
	if err != nil {
		return err
	}
	for _, is := range reg.Lint() {
		log.Warn("schema lint",
			zap.String("entity", is.Entity),
			zap.String("field", is.Field),
			zap.String("code", is.Code),
			zap.String("message", is.Message),
		)
	}
	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("date location: %w", err)
	}

	// 3) хранилище записей
	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	// 4) маппер и микросервисы
	engine := mapper.New(st, reg, mapper.WithLogger(log), mapper.WithLocation(loc))
	services := api.NewLauncher(log)
	if err := api.RegisterBuiltins(services, engine); err != nil {
		return err
	}

	// 5) HTTP
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(api.NewBackend(engine, services, log)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Info("recmap server started",
		zap.String("addr", srv.Addr),
		zap.String("store", cfg.StoreDriver),
		zap.Strings("endpoints", services.Endpoints()),
	)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
