package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/submaker/backend/internal/api/handlers"
	"github.com/submaker/backend/internal/api/middleware"
	"github.com/submaker/backend/internal/config"
	"github.com/submaker/backend/internal/ffmpeg"
	"github.com/submaker/backend/internal/job"
)

const maxJSONBody = 1 << 20 // 1 MiB, requests carry paths and codes only

func NewRouter(cfg *config.Config, decoder *ffmpeg.Decoder, jobQueue *job.JobQueue) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(middleware.CORSHandler(cfg.CORSOrigins)))

	// Handlers
	healthHandler := handlers.NewHealthHandler(decoder.Available)
	languageHandler := handlers.NewLanguageHandler()
	subtitleHandler := handlers.NewSubtitleHandler(cfg.MediaPath, decoder, jobQueue)
	jobHandler := handlers.NewJobHandler(jobQueue)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)
		r.Get("/languages", languageHandler.ListLanguages)

		// Media
		r.Get("/media/info", subtitleHandler.MediaInfo)

		// Subtitles
		r.Group(func(r chi.Router) {
			r.Use(middleware.MaxBodySize(maxJSONBody))
			r.Post("/subtitle/generate", subtitleHandler.Generate)
		})
		r.Get("/subtitle/download/{id}", subtitleHandler.Download)

		// Jobs
		r.Get("/jobs", jobHandler.ListJobs)
		r.Get("/jobs/{id}", jobHandler.GetJob)
		r.Delete("/jobs/{id}", jobHandler.CancelJob)
		r.Post("/jobs/{id}/retry", jobHandler.RetryJob)
	})

	return r
}
