// cmd/server/server.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/codr1/accresults/internal/api"
	"github.com/codr1/accresults/internal/api/auth"
	teamhandlers "github.com/codr1/accresults/internal/api/teams"
	"github.com/codr1/accresults/internal/config"
	"github.com/codr1/accresults/internal/db"
	"github.com/codr1/accresults/internal/email"
	"github.com/codr1/accresults/internal/metrics"
	"github.com/codr1/accresults/internal/teams"
)

func newServer(ctx context.Context, cfg *config.Config, database *db.DB) (*http.Server, error) {
	handler, err := newHandler(ctx, cfg, database)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, nil
}

// newHandler wires services into the handler packages and returns the
// fully wrapped router.
func newHandler(ctx context.Context, cfg *config.Config, database *db.DB) (http.Handler, error) {
	sender, err := email.NewSender(ctx, cfg.Email)
	if err != nil {
		return nil, fmt.Errorf("email sender: %w", err)
	}
	notifier, err := email.NewCaptainNotifier(sender, cfg.App.BaseURL)
	if err != nil {
		return nil, err
	}

	repo, err := teams.NewSQLRepository(database)
	if err != nil {
		return nil, err
	}
	svc, err := teams.NewService(repo, teams.WithNotifier(notifier))
	if err != nil {
		return nil, err
	}

	auth.InitHandlers(database.Queries, cfg)
	teamhandlers.InitHandlers(svc)

	router := http.NewServeMux()
	registerRoutes(router, cfg)

	// Listed innermost first.
	chain := []api.Middleware{
		api.WithRoutePattern,
		api.WithMethodOverride,
		api.WithAuth,
		api.WithRecovery,
	}
	if cfg.Features.EnableMetrics {
		chain = append(chain, api.WithMetrics)
	}
	chain = append(chain, api.WithLogging, api.WithRequestID)

	return api.ChainMiddleware(router, chain...), nil
}

func registerRoutes(mux *http.ServeMux, cfg *config.Config) {
	admin := func(h http.HandlerFunc) http.Handler {
		return api.ChainMiddleware(h, api.WithAdminAuth)
	}
	adminAJAX := func(h http.HandlerFunc) http.Handler {
		return api.ChainMiddleware(h, api.WithAJAX, api.WithAdminAuth)
	}

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	if cfg.Features.EnableMetrics {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	mux.HandleFunc("GET /login", auth.HandleLoginPage)
	mux.HandleFunc("POST /login", auth.HandleLogin)
	mux.HandleFunc("POST /logout", auth.HandleLogout)

	mux.Handle("GET /{$}", admin(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/teams", http.StatusSeeOther)
	}))

	// Team routes
	mux.Handle("GET /teams", admin(teamhandlers.HandleIndex))
	mux.Handle("GET /teams/create", admin(teamhandlers.HandleCreatePage))
	mux.Handle("POST /teams", admin(teamhandlers.HandleStore))
	mux.Handle("GET /teams/{id}", admin(teamhandlers.HandleShow))
	mux.Handle("GET /teams/{id}/edit", admin(teamhandlers.HandleEditPage))
	mux.Handle("PUT /teams/{id}", admin(teamhandlers.HandleUpdate))
	mux.Handle("PATCH /teams/{id}", admin(teamhandlers.HandleUpdate))
	mux.Handle("DELETE /teams/{id}", admin(teamhandlers.HandleDestroy))
	mux.Handle("POST /teams/{id}/captain", admin(teamhandlers.HandleUpdateCaptain))
	mux.Handle("POST /teams/{id}/members", admin(teamhandlers.HandleAddMember))
	mux.Handle("DELETE /teams/{id}/members/{profile_id}", admin(teamhandlers.HandleRemoveMember))

	// AJAX fragments
	mux.Handle("GET /teams/{id}/captain-form", adminAJAX(teamhandlers.HandleCaptainForm))
	mux.Handle("GET /teams/{id}/member-form", adminAJAX(teamhandlers.HandleMemberForm))
	mux.Handle("GET /users/autocomplete", admin(teamhandlers.HandleAutocomplete))
}
