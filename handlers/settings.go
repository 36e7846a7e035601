// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/events"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/middleware"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/models"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/store"
)

// settings documents are small; anything larger is not a settings write
const maxSettingsBody = 1 << 20

type SettingsHandler struct {
	store *store.Store
	pub   events.Publisher
}

func NewSettingsHandler(s *store.Store, pub events.Publisher) *SettingsHandler {
	return &SettingsHandler{store: s, pub: pub}
}

// GetSettings handles GET /api/portfolio-settings/{userId}
// Users without a stored document get the defaults.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	ps, err := h.store.GetSettings(r.Context(), userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if ps == nil {
		defaults := models.DefaultSettings(userID)
		ps = &defaults
	}
	middleware.JSONResponse(w, http.StatusOK, ps)
}

// UpdateSettings handles POST /api/portfolio-settings/{userId}
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSettingsBody))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	patch, err := models.ParseSettingsPatch(body)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ps, err := h.store.MergeSettings(r.Context(), userID, patch, time.Now().UTC())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("settings updated", "user_id", userID, "groups", len(patch))
	h.pub.Publish(events.SettingsUpdated, models.SettingsEvent{UserID: userID})

	middleware.JSONResponse(w, http.StatusOK, ps)
}
