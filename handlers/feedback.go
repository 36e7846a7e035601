// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/events"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/idgen"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/middleware"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/models"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/store"
)

// FeedbackHandler serves visitor suggestions and admin broadcast messages
type FeedbackHandler struct {
	store   *store.Store
	pub     events.Publisher
	tracker *Tracker
}

func NewFeedbackHandler(s *store.Store, pub events.Publisher, tracker *Tracker) *FeedbackHandler {
	return &FeedbackHandler{store: s, pub: pub, tracker: tracker}
}

// ListSuggestions handles GET /api/suggestions
func (h *FeedbackHandler) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.store.ListSuggestions(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, suggestions)
}

// CreateSuggestion handles POST /api/suggestions
func (h *FeedbackHandler) CreateSuggestion(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSuggestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Message is required")
		return
	}

	sg := &models.Suggestion{
		ID:          idgen.NewID(),
		Message:     message,
		SubmittedAt: time.Now().UTC(),
	}
	if err := h.store.CreateSuggestion(r.Context(), sg); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("suggestion submitted", "id", sg.ID)
	h.tracker.Track(r, models.EventSuggestionSubmit, nil, nil)
	h.pub.Publish(events.SuggestionSubmitted, models.SuggestionEvent{ID: sg.ID})

	middleware.JSONResponse(w, http.StatusOK, models.CreatedResponse{
		Message: "Suggestion submitted successfully",
		ID:      sg.ID,
	})
}

// ActiveAdminMessage handles GET /api/admin-message
// Responds with JSON null when no message is active.
func (h *FeedbackHandler) ActiveAdminMessage(w http.ResponseWriter, r *http.Request) {
	m, err := h.store.ActiveAdminMessage(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	if m == nil {
		middleware.JSONResponse(w, http.StatusOK, nil)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, m)
}

// CreateAdminMessage handles POST /api/admin-message
func (h *FeedbackHandler) CreateAdminMessage(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAdminMessageRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Message is required")
		return
	}

	m := &models.AdminMessage{
		ID:        idgen.NewID(),
		Message:   message,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.CreateAdminMessage(r.Context(), m); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("admin message posted", "id", m.ID)
	h.tracker.Track(r, models.EventAdminMessage, nil, nil)
	h.pub.Publish(events.AdminMessagePosted, models.AdminMessageEvent{ID: m.ID, Message: m.Message})

	middleware.JSONResponse(w, http.StatusOK, models.CreatedResponse{
		Message: "Admin message created successfully",
		ID:      m.ID,
	})
}

// ListAdminMessages handles GET /api/admin-messages
func (h *FeedbackHandler) ListAdminMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.store.ListAdminMessages(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, messages)
}
