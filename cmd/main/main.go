package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pipe-stock/internal/config"
	"pipe-stock/internal/stock/catalog"
	serverhttp "pipe-stock/server/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := config.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// без данных сервер все равно стартует: /refresh и Watch подхватят файлы позже
	store := catalog.NewStore(catalog.NewLoader(cfg), logger)
	if _, err := store.Refresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial load failed, serving without data")
	}
	go store.Watch(ctx, cfg.RefreshInterval)

	r := serverhttp.NewRouter(cfg, store, logger)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	<-ctx.Done()
	logger.Info().Msg("server shutting down")
	shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shCtx)
	logger.Info().Msg("bye")
}
