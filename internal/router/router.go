package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"edudash/internal/config"
	"edudash/internal/handler"
	"edudash/internal/middleware"
)

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(a chi.Router) {
			a.Post("/login", authHandler.Login)
			// Self-registration is open; the service only hands out
			// teacher and student roles.
			a.Post("/register", authHandler.Register)
			a.With(authMiddleware.RequireAuth).Post("/change-password", authHandler.ChangePassword)
			a.With(authMiddleware.RequireAuth).Get("/me", authHandler.Me)
		})

		api.With(authMiddleware.RequireAuth, authMiddleware.RequirePermission("view_all_users")).Get("/users", userHandler.List)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequirePermission("create_user")).Post("/users", authHandler.Register)
		api.With(authMiddleware.RequireAuth).Put("/users/preferences", userHandler.UpdatePreferences)
		api.With(authMiddleware.RequireAuth).Get("/users/capabilities", userHandler.Capabilities)
	})

	return r
}
