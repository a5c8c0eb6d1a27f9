// Package app wires the catalog service together.
package app

import (
	"log/slog"
	"net/http"

	"github.com/BeltranCh97/catalog-service/internal/config"
	"github.com/BeltranCh97/catalog-service/internal/service"
	"github.com/BeltranCh97/catalog-service/internal/store"
	"github.com/BeltranCh97/catalog-service/internal/transport/rest"
	"github.com/BeltranCh97/catalog-service/pkg/server"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds the constructed collaborators of the service.
type Dependencies struct {
	Products   service.ProductService
	Categories service.CategoryService
	Logger     *slog.Logger
}

// SetupDependencies builds the stores and services on top of the pool.
func SetupDependencies(dbPool *pgxpool.Pool, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		Products:   service.NewProductService(store.NewPgProductStore(dbPool)),
		Categories: service.NewCategoryService(store.NewPgCategoryStore(dbPool)),
		Logger:     logger,
	}
}

// SetupHTTPHandler builds the router with all routes and middleware.
// Also used by tests to exercise the full HTTP surface.
func SetupHTTPHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	rest.NewProductHandler(deps.Products, deps.Logger).RegisterRoutes(mux)
	rest.NewCategoryHandler(deps.Categories, deps.Logger).RegisterRoutes(mux)
	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// SetupHTTPServer creates the API server from the configuration.
func SetupHTTPServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHTTPHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}
	return server.NewHTTPServer(httpCfg, mux)
}
