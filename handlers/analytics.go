// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/idgen"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/middleware"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/models"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/validation"
)

type analyticsStore interface {
	RecordEvent(ctx context.Context, ev *models.AnalyticsEvent) error
	CountEvents(ctx context.Context) (map[string]int, error)
}

// Tracker records analytics events on a best-effort basis
type Tracker struct {
	store analyticsStore
	salt  string
}

func NewTracker(store analyticsStore, salt string) *Tracker {
	return &Tracker{store: store, salt: salt}
}

// Track stores one event. Failures are logged and never reach the caller.
func (t *Tracker) Track(r *http.Request, eventType string, fileType, fileName *string) {
	if t == nil {
		return
	}
	ev := &models.AnalyticsEvent{
		ID:        idgen.NewID(),
		EventType: eventType,
		FileType:  fileType,
		FileName:  fileName,
		IPHash:    idgen.HashIP(middleware.GetClientIP(r), t.salt),
		UserAgent: r.UserAgent(),
		CreatedAt: time.Now().UTC(),
	}
	if err := t.store.RecordEvent(r.Context(), ev); err != nil {
		slog.Warn("failed to record analytics event", "event_type", eventType, "error", err)
	}
}

type AnalyticsHandler struct {
	tracker *Tracker
}

func NewAnalyticsHandler(tracker *Tracker) *AnalyticsHandler {
	return &AnalyticsHandler{tracker: tracker}
}

// PageView handles POST /api/analytics/page-view
// The viewed path is kept in the event's file name.
func (h *AnalyticsHandler) PageView(w http.ResponseWriter, r *http.Request) {
	var req models.PageViewRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	var path *string
	if p := strings.TrimSpace(req.Path); p != "" {
		path = &p
	}
	h.tracker.Track(r, models.EventPageView, nil, path)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Page view recorded"})
}

// Summary handles GET /api/analytics
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	counts, err := h.tracker.store.CountEvents(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	middleware.JSONResponse(w, http.StatusOK, models.AnalyticsSummary{Counts: counts, Total: total})
}
