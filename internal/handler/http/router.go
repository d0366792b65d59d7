package http

import (
	"log/slog"
	"net/http"

	"github.com/chronos-hq/chronos-backend-go/internal/handler/http/middleware"
	"github.com/chronos-hq/chronos-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
		})

		// Everything below requires a valid access token.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/status", attendanceHandler.Status)
				r.Get("/events", attendanceHandler.ListMyEvents)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/", attendanceHandler.List)
					r.Get("/{id}", attendanceHandler.Get)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Put("/{id}", attendanceHandler.Update)
					r.Delete("/{id}", attendanceHandler.Delete)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/me", reportHandler.MyStats)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/users/{id}", reportHandler.UserStats)
					r.Get("/teams/{id}", reportHandler.TeamStats)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	return r
}
