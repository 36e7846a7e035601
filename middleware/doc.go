// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	r.Use(middleware.Logging)

Logs request start at debug level and completion (duration_ms, request_id).

# Request IDs

RequestID keeps an incoming X-Request-ID or assigns a new UUID, stores it in
the request context and echoes it on the response.

# Availability

RequireDB answers 503 {"error": "Database not available"} while the
persistence guard reports the database as unreachable.

# Metrics

PrometheusMetrics records api_requests_total and request latency labelled by
the chi route pattern. Its response wrapper supports hijacking so websocket
upgrades pass through.

# CORS and Rate Limiting

CORS builds a go-chi/cors handler for the configured origins. RateLimit
limits requests per client IP with go-chi/httprate and answers 429.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.WriteError(w, r, err)

WriteError maps apperr kinds to status codes and never leaks the text of
unclassified errors.

Parse JSON request bodies:

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used for rate limiting and for the hashed IP stored with analytics events.
*/
package middleware
