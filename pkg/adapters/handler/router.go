package handler

import (
	"net/http"

	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/naruebet/teachshare/internal/telemetry"
	"github.com/naruebet/teachshare/pkg/config"
	"github.com/naruebet/teachshare/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, linkService ports.LinkService, domainService ports.DomainService, storage ports.ObjectStorage, tel *telemetry.Telemetry, logger *zap.Logger) http.Handler {
	// Initialize Handlers
	lh := NewLinkHandler(linkService, logger)
	dh := NewDomainHandler(domainService, logger)
	fh := NewFileHandler(storage, logger)
	authHandler := NewAuthHandler(cfg, logger)

	// Initialize Middleware
	mw := NewMiddleware(cfg)

	// Setup Router
	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	mux.HandleFunc("POST /api/login", authHandler.Login)
	mux.HandleFunc("GET /api/links", lh.List)
	mux.HandleFunc("GET /api/domains", dh.List)
	mux.HandleFunc("GET /api/download/{filename}", fh.Download)
	if tel != nil {
		mux.Handle("GET /metrics", tel.Handler())
	}

	// Protected Routes: every mutation requires a valid bearer token.
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("POST /api/links", lh.Create)
	protectedMux.HandleFunc("PUT /api/links/{id}", lh.Update)
	protectedMux.HandleFunc("DELETE /api/links/{id}", lh.Delete)
	protectedMux.HandleFunc("POST /api/domains", dh.Create)
	protectedMux.HandleFunc("PUT /api/domains/{id}", dh.Update)
	protectedMux.HandleFunc("DELETE /api/domains/{id}", dh.Delete)
	protectedMux.HandleFunc("POST /api/upload", fh.Upload)

	// The method-specific public patterns above are more specific than this
	// subtree, so GET /api/links and friends stay public while everything
	// else under /api/ goes through auth.
	mux.Handle("/api/", mw.Auth(protectedMux))

	corsMiddleware := cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	})

	var h http.Handler = mux
	h = corsMiddleware(h)
	if tel != nil {
		h = tel.Middleware(h)
	}
	return h
}
