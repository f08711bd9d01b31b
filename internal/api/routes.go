// ABOUTME: Route table for the pantry HTTP API
// ABOUTME: Health and metrics live at the root; the API may sit under a base path

package api

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/2389/pantry/internal/auth"
)

// routes builds the root handler.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health endpoints - no auth required
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /health/ready", s.handleReady)

	if s.config.Metrics.Enabled {
		mux.Handle("GET "+s.config.Metrics.Path, promhttp.Handler())
	}

	api := metricsMiddleware(s.apiRoutes())
	if base := s.config.Server.BasePath; base != "" {
		mux.Handle(base+"/", http.StripPrefix(base, api))
	} else {
		mux.Handle("/", api)
	}

	return s.withMiddleware(mux)
}

// apiRoutes registers the auth and kitchen endpoints.
func (s *Server) apiRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	authed := auth.HTTPAuthMiddleware(s.gate)
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authed(h))
	}

	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/signup", s.handleSignup)
	mux.HandleFunc("POST /auth/password-reset", s.handleNotImplemented)
	mux.HandleFunc("POST /auth/request-password-reset", s.handleNotImplemented)
	handle("GET /auth/logout", s.handleLogout)
	handle("POST /auth/logout", s.handleLogout)
	handle("POST /auth/closeup", s.handleCloseup)

	handle("GET /recipes", s.handleListRecipes)
	handle("GET /recipe/{id}", s.handleGetRecipe)
	handle("POST /recipe/{id}", s.handleSaveRecipe)
	handle("DELETE /recipe/{id}", s.handleDeleteRecipe)

	handle("GET /shopping-list/{id}", s.handleGetShoppingList)
	handle("POST /shopping-list/{id}", s.handleSaveShoppingList)
	handle("DELETE /shopping-list/{id}", s.handleDeleteShoppingList)
	handle("GET /shopping-list/{id}/recipe/{recipe}", s.handleRecipeInList)
	handle("POST /shopping-list/{id}/recipe/{recipe}", s.handleToggleRecipe)

	handle("GET /ingredients", s.handleListIngredients)
	handle("GET /ingredient/{id}", s.handleGetIngredient)
	handle("POST /ingredient/{id}", s.handleSaveIngredient)
	handle("DELETE /ingredient/{id}", s.handleDeleteIngredient)
	handle("GET /ingredientbyname/{name...}", s.handleGetIngredientByName)
	handle("PUT /ingredientbyname/{name...}", s.handleCreateIngredientByName)

	handle("GET /shops", s.handleListShops)
	handle("GET /shop/current", s.handleGetCurrentShop)
	handle("POST /shop/current", s.handleSetCurrentShop)
	handle("GET /shop/{id}", s.handleGetShop)
	handle("POST /shop/{id}", s.handleSaveShop)
	handle("DELETE /shop/{id}", s.handleDeleteShop)

	handle("GET /locations", s.handleListLocations)
	handle("GET /location/{id}", s.handleGetLocation)
	handle("POST /location/{id}", s.handleSaveLocation)
	handle("DELETE /location/{id}", s.handleDeleteLocation)

	handle("GET /stats", s.handleStats)

	return mux
}

// handleHealth returns 200 OK if the server is alive.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleReady returns 200 OK if the database answers.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.store.(interface{ Ping(ctx context.Context) error }); ok {
		if err := p.Ping(r.Context()); err != nil {
			s.logger.Warn("readiness check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("database unavailable"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
