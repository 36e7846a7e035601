// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/cliparse"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/events"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/handlers"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/mediastore"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/middleware"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/polls"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/store"
)

// Deps is everything the routes need
type Deps struct {
	Config    cliparse.Config
	Store     *store.Store
	Media     mediastore.Store
	Publisher events.Publisher

	// DB gates the data routes; nil means always available
	DB middleware.Availability

	// Hub serves /api/ws when set
	Hub *events.Hub

	// UploadDir is served under /uploads/ when set
	UploadDir string
}

// NewRouter builds the HTTP handler tree
func NewRouter(d Deps) *chi.Mux {
	cfg := d.Config
	pub := d.Publisher
	if pub == nil {
		pub = events.Nop{}
	}

	// Initialize handlers
	tracker := handlers.NewTracker(d.Store, cfg.IPHashSalt)
	pollHandler := handlers.NewPollHandler(polls.NewEngine(d.Store, pub))
	mediaHandler := handlers.NewMediaHandler(d.Store, d.Media, pub, tracker, cfg.MaxUploadBytes)
	userHandler := handlers.NewUserHandler(d.Store, pub)
	feedbackHandler := handlers.NewFeedbackHandler(d.Store, pub, tracker)
	settingsHandler := handlers.NewSettingsHandler(d.Store, pub)
	analyticsHandler := handlers.NewAnalyticsHandler(tracker)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Logging)

	r.Get("/", handlers.Root)
	r.Handle("/metrics", promhttp.Handler())
	if d.UploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.UploadDir))))
	}

	limit := middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow)

	r.Route("/api", func(r chi.Router) {
		// Health and the event stream work without a database
		r.Get("/health", handlers.Health)
		if d.Hub != nil {
			r.Handle("/ws", handlers.NewWebSocketHandler(d.Hub, cfg.CORSOrigins))
		}

		r.Group(func(r chi.Router) {
			if d.DB != nil {
				r.Use(middleware.RequireDB(d.DB))
			}

			// Polls
			r.Get("/polls", pollHandler.ListAll)
			r.Post("/polls", pollHandler.CreatePoll)
			r.Get("/polls/user/{userId}", pollHandler.ListForPortfolio)
			r.Get("/polls/{id}", pollHandler.GetPoll)
			r.With(limit).Post("/polls/{id}/vote", pollHandler.Vote)
			r.Put("/polls/{id}/toggle", pollHandler.TogglePoll)
			r.Delete("/polls/{id}", pollHandler.DeletePoll)

			// Media
			r.Get("/photos", mediaHandler.ListPhotos)
			r.Get("/news", mediaHandler.ListNews)
			r.Get("/videos", mediaHandler.ListVideos)
			r.With(limit).Post("/upload", mediaHandler.Upload)
			r.With(limit).Post("/videos/youtube", mediaHandler.AddYouTubeVideo)
			r.Delete("/delete/{type}/{filename}", mediaHandler.DeleteMedia)

			// Users
			r.Get("/users", userHandler.ListUsers)
			r.Post("/users", userHandler.CreateUser)
			r.Get("/users/slug/{slug}", userHandler.GetUserBySlug)
			r.Get("/users/{id}", userHandler.GetUser)
			r.Put("/users/{id}", userHandler.UpdateUser)
			r.Delete("/users/{id}", userHandler.DeleteUser)

			// Suggestions and admin messages
			r.Get("/suggestions", feedbackHandler.ListSuggestions)
			r.With(limit).Post("/suggestions", feedbackHandler.CreateSuggestion)
			r.Get("/admin-message", feedbackHandler.ActiveAdminMessage)
			r.Post("/admin-message", feedbackHandler.CreateAdminMessage)
			r.Get("/admin-messages", feedbackHandler.ListAdminMessages)

			// Settings
			r.Get("/portfolio-settings/{userId}", settingsHandler.GetSettings)
			r.Post("/portfolio-settings/{userId}", settingsHandler.UpdateSettings)

			// Analytics
			r.Get("/analytics", analyticsHandler.Summary)
			r.With(limit).Post("/analytics/page-view", analyticsHandler.PageView)
		})
	})

	return r
}
