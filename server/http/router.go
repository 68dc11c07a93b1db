package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"pipe-stock/internal/config"
	"pipe-stock/internal/middleware"
	"pipe-stock/internal/stock/catalog"
	stockHnd "pipe-stock/internal/stock/handler"
	"pipe-stock/server/http/handlers"
)

func NewRouter(cfg config.Config, store *catalog.Store, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxBodyMB) * 1024 * 1024))

	// health-check
	r.Get("/health", handlers.Health(store))

	// поиск и таблицы: под rate limit
	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
	r.Group(func(r chi.Router) {
		r.Use(rl.Handler)
		r.Post("/resolve", stockHnd.Resolve(store, logger))
		r.Get("/stock", stockHnd.Stock(store))
		r.Get("/stock/export", stockHnd.Export(store, logger))
		r.Get("/weight-sheet", stockHnd.WeightSheet(store, logger))
	})

	r.Post("/refresh", stockHnd.Refresh(store, logger))
	r.Get("/datasets", stockHnd.Datasets(store))

	return r
}
