// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/middleware"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/models"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/polls"
)

type PollHandler struct {
	engine *polls.Engine
}

func NewPollHandler(engine *polls.Engine) *PollHandler {
	return &PollHandler{engine: engine}
}

// ListAll handles GET /api/polls
func (h *PollHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	all, err := h.engine.ListAll(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, all)
}

// ListForPortfolio handles GET /api/polls/user/{userId}
func (h *PollHandler) ListForPortfolio(w http.ResponseWriter, r *http.Request) {
	active, err := h.engine.ListForPortfolio(r.Context(), r.PathValue("userId"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, active)
}

// GetPoll handles GET /api/polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	p, err := h.engine.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, p)
}

// CreatePoll handles POST /api/polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	endDate, ok := models.ParseEndDate(req.EndDate)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid end date")
		return
	}

	options := make([]string, len(req.Options))
	for i, o := range req.Options {
		options[i] = o.Text
	}

	in := polls.CreateInput{
		Question:        req.Question,
		Options:         options,
		PortfolioUserID: req.PortfolioUserID,
		EndDate:         endDate,
	}
	if createdBy := strings.TrimSpace(req.CreatedBy); createdBy != "" {
		in.CreatedBy = &createdBy
	}

	p, err := h.engine.Create(r.Context(), in)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, p)
}

// Vote handles POST /api/polls/{id}/vote
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	p, err := h.engine.Vote(r.Context(), r.PathValue("id"), req.OptionIndex, req.UserID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, p)
}

// TogglePoll handles PUT /api/polls/{id}/toggle
func (h *PollHandler) TogglePoll(w http.ResponseWriter, r *http.Request) {
	p, err := h.engine.Toggle(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, p)
}

// DeletePoll handles DELETE /api/polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Delete(r.Context(), r.PathValue("id")); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Poll deleted successfully"})
}
