package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/riddles-game/server/internal/api/handler"
	apimw "github.com/riddles-game/server/internal/api/middleware"
	"github.com/riddles-game/server/internal/middleware"
	"github.com/riddles-game/server/internal/model"
	"github.com/riddles-game/server/internal/services/auth"
	"github.com/riddles-game/server/internal/services/player"
	"github.com/riddles-game/server/internal/services/riddle"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	AuthService   *auth.Service
	RiddleService *riddle.Service
	PlayerService *player.Service
	// SeedRiddlesPath is the default seed file for POST /riddles/load-initial
	SeedRiddlesPath string
}

// NewRouter creates the router with all routes configured.
//
// Auth levels, where iterations of the route table disagreed the
// strictest surviving version wins: leaderboard and score submission
// require authentication; player stats allows guests; the random riddle
// stays public.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Handlers
	rootHandler := handler.NewRootHandler()
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Logger)
	riddleHandler := handler.NewRiddleHandler(cfg.RiddleService, cfg.SeedRiddlesPath)
	playerHandler := handler.NewPlayerHandler(cfg.PlayerService)

	// Middleware
	requiredAuth := apimw.Authenticate(cfg.AuthService, apimw.Options{Required: true})
	optionalGuestAuth := apimw.Authenticate(cfg.AuthService, apimw.Options{AllowGuest: true})
	userOrAdmin := apimw.Authorize(model.RoleUser, model.RoleAdmin)
	adminOnly := apimw.Authorize(model.RoleAdmin)
	anyAuthenticated := apimw.Authorize()

	r.Use(apimw.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Public routes
	r.HandleFunc("/", rootHandler.Welcome).Methods(http.MethodGet)
	r.HandleFunc("/health", rootHandler.Health).Methods(http.MethodGet)
	r.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/riddles/random", riddleHandler.Random).Methods(http.MethodGet)

	// Authenticated auth routes
	authRoutes := r.PathPrefix("/auth").Subrouter()
	authRoutes.Use(requiredAuth)
	authRoutes.HandleFunc("/profile", authHandler.Profile).Methods(http.MethodGet)
	authRoutes.HandleFunc("/validate", authHandler.Validate).Methods(http.MethodPost)
	authRoutes.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	authRoutes.HandleFunc("/change-password", authHandler.ChangePassword).Methods(http.MethodPut)

	// Riddle routes for users and admins
	riddleRoutes := r.PathPrefix("/riddles").Subrouter()
	riddleRoutes.Use(requiredAuth, userOrAdmin)
	riddleRoutes.HandleFunc("", riddleHandler.List).Methods(http.MethodGet)
	riddleRoutes.HandleFunc("", riddleHandler.Create).Methods(http.MethodPost)
	riddleRoutes.HandleFunc("/{id}", riddleHandler.Get).Methods(http.MethodGet)
	riddleRoutes.HandleFunc("/{id}", riddleHandler.Update).Methods(http.MethodPut)

	// Admin-only riddle routes
	riddleAdminRoutes := r.PathPrefix("/riddles").Subrouter()
	riddleAdminRoutes.Use(requiredAuth, adminOnly)
	riddleAdminRoutes.HandleFunc("/load-initial", riddleHandler.LoadInitial).Methods(http.MethodPost)
	riddleAdminRoutes.HandleFunc("/{id}", riddleHandler.Delete).Methods(http.MethodDelete)

	// Leaderboard and score submission need a logged-in caller
	leaderboardRoutes := r.PathPrefix("/players").Subrouter()
	leaderboardRoutes.Use(requiredAuth, anyAuthenticated)
	leaderboardRoutes.HandleFunc("/leaderboard", playerHandler.Leaderboard).Methods(http.MethodGet)

	scoreRoutes := r.PathPrefix("/players").Subrouter()
	scoreRoutes.Use(requiredAuth, userOrAdmin)
	scoreRoutes.HandleFunc("/submit-score", playerHandler.SubmitScore).Methods(http.MethodPost)

	// Admin-only player routes
	playerAdminRoutes := r.PathPrefix("/players").Subrouter()
	playerAdminRoutes.Use(requiredAuth, adminOnly)
	playerAdminRoutes.HandleFunc("", playerHandler.List).Methods(http.MethodGet)
	playerAdminRoutes.HandleFunc("", playerHandler.Create).Methods(http.MethodPost)

	// Player stats: optional auth, guests see the basic projection.
	// Registered last so /players/leaderboard is not captured by {username}.
	statsRoutes := r.PathPrefix("/players").Subrouter()
	statsRoutes.Use(optionalGuestAuth)
	statsRoutes.HandleFunc("/{username}", playerHandler.Stats).Methods(http.MethodGet)

	return r
}
