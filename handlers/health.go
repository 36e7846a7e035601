// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/middleware"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/models"
)

// Health handles GET /api/health. It does not touch the database.
func Health(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Root handles GET /
func Root(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
		Status:    "ok",
		Message:   "Portfolio API is running",
		Timestamp: time.Now().UTC(),
	})
}
