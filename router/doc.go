// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the portfolio API.

# Route Registration

NewRouter builds a chi router from its dependencies:

	r := router.NewRouter(router.Deps{
		Config:    cfg,
		Store:     store.New(conn),
		DB:        guard,
		Media:     media,
		Publisher: hub,
		Hub:       hub,
		UploadDir: cfg.UploadDir,
	})

# Middleware

Every request passes through request IDs, real-IP resolution, panic
recovery, CORS, Prometheus metrics and request logging. Data routes also
answer 503 while the database guard reports the database as unavailable.
Votes, uploads, suggestions and page views are rate limited per client IP.

# Endpoints

Always available:

	GET /                - Service banner
	GET /api/health      - Liveness, no database access
	GET /metrics         - Prometheus metrics
	GET /api/ws          - Event stream (WebSocket)
	GET /uploads/*       - Locally stored media

Polls:

	GET    /api/polls               - All polls with resolved users (admin)
	POST   /api/polls               - Create poll
	GET    /api/polls/user/{userId} - Active polls for a portfolio
	GET    /api/polls/{id}          - Poll details
	POST   /api/polls/{id}/vote     - Cast a vote
	PUT    /api/polls/{id}/toggle   - Activate or deactivate
	DELETE /api/polls/{id}          - Delete poll

Media:

	GET    /api/photos, /api/news, /api/videos
	POST   /api/upload                      - Multipart upload
	POST   /api/videos/youtube              - Register a YouTube link
	DELETE /api/delete/{type}/{filename}    - Remove media

Users, feedback, settings and analytics:

	GET|POST            /api/users
	GET|PUT|DELETE      /api/users/{id}
	GET                 /api/users/slug/{slug}
	GET|POST            /api/suggestions
	GET|POST            /api/admin-message
	GET                 /api/admin-messages
	GET|POST            /api/portfolio-settings/{userId}
	GET                 /api/analytics
	POST                /api/analytics/page-view
*/
package router
