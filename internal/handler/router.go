package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskboard/internal/auth"
	"github.com/BuzzLyutic/taskboard/internal/metrics"
)

type RouterDeps struct {
	Tasks       *TaskHandler
	Auth        *AuthHandler
	Backups     *BackupHandler
	Tokens      *auth.TokenManager
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
	CORSOrigins []string
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter() // Создаем роутер
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(d.Logger))
	r.Use(middleware.Recoverer)

	if len(d.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   d.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})
	r.Handle("/metrics", d.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", d.Auth.Register)
		r.Post("/auth/login", d.Auth.Login)
		r.Post("/auth/logout", d.Auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireSession(d.Tokens, d.Logger))

			r.Get("/me", d.Auth.Me)
			r.Get("/board", d.Tasks.Board)
			r.Get("/calendar", d.Tasks.Calendar)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", d.Tasks.List)
				r.Post("/", d.Tasks.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", d.Tasks.Get)
					r.Delete("/", d.Tasks.Delete)
					r.Put("/text", d.Tasks.Edit)
					r.Put("/note", d.Tasks.Annotate)
					r.Put("/state", d.Tasks.Move)
					r.Put("/due-date", d.Tasks.Schedule)
					r.Put("/label", d.Tasks.Relabel)
				})
			})

			r.Route("/backups", func(r chi.Router) {
				r.Get("/", d.Backups.List)
				r.Post("/", d.Backups.Create)
				r.Get("/{name}", d.Backups.Download)
			})
		})
	})

	return r
}
