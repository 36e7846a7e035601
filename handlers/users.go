// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/apperr"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/events"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/idgen"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/middleware"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/models"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/store"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/validation"
)

type UserHandler struct {
	store *store.Store
	pub   events.Publisher
}

func NewUserHandler(s *store.Store, pub events.Publisher) *UserHandler {
	return &UserHandler{store: s, pub: pub}
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, users)
}

// GetUser handles GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.store.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, u)
}

// GetUserBySlug handles GET /api/users/slug/{slug}
func (h *UserHandler) GetUserBySlug(w http.ResponseWriter, r *http.Request) {
	u, err := h.store.GetUserBySlug(r.Context(), strings.ToLower(r.PathValue("slug")))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, u)
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	trimUserRequest(&req)
	if err := validation.ValidateStruct(req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	now := time.Now().UTC()
	u := &models.User{
		ID:           idgen.NewID(),
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		Phone:        req.Phone,
		Address:      req.Address,
		Designation:  req.Designation,
		Organization: req.Organization,
		ProfileImage: titleOr(req.ProfileImage, models.DefaultProfileImage),
		AboutMe:      req.AboutMe,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	u.PortfolioSlug = portfolioSlug(req.PortfolioSlug, req.Name, u.ID)

	if err := h.store.CreateUser(r.Context(), u); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("user created", "user_id", u.ID, "slug", u.PortfolioSlug)
	h.pub.Publish(events.UserCreated, models.UserEvent{UserID: u.ID})

	middleware.JSONResponse(w, http.StatusCreated, u)
}

// UpdateUser handles PUT /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	u, err := h.store.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	if err := applyUserUpdate(u, req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	u.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateUser(r.Context(), u); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("user updated", "user_id", u.ID)
	h.pub.Publish(events.UserUpdated, models.UserEvent{UserID: u.ID})

	middleware.JSONResponse(w, http.StatusOK, u)
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("user deleted", "user_id", id)
	h.pub.Publish(events.UserDeleted, models.UserEvent{UserID: id})

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "User deleted successfully"})
}

func trimUserRequest(req *models.CreateUserRequest) {
	for _, f := range []*string{
		&req.Name, &req.Email, &req.Phone, &req.Address, &req.Designation,
		&req.Organization, &req.ProfileImage, &req.AboutMe, &req.PortfolioSlug,
	} {
		*f = strings.TrimSpace(*f)
	}
}

// applyUserUpdate copies the fields present in req onto u
func applyUserUpdate(u *models.User, req models.UpdateUserRequest) error {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&u.Name, req.Name)
	set(&u.Phone, req.Phone)
	set(&u.Address, req.Address)
	set(&u.Designation, req.Designation)
	set(&u.Organization, req.Organization)
	set(&u.ProfileImage, req.ProfileImage)
	set(&u.AboutMe, req.AboutMe)

	if req.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.PortfolioSlug != nil {
		slug := idgen.Slugify(*req.PortfolioSlug)
		if slug == "" {
			return apperr.Validation("portfolioSlug must contain letters or digits")
		}
		u.PortfolioSlug = slug
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if u.Name == "" {
		return apperr.Validation("name is required")
	}
	if u.Phone == "" {
		return apperr.Validation("phone is required")
	}
	return nil
}

// portfolioSlug prefers an explicit slug, then the name, then the id
func portfolioSlug(explicit, name, id string) string {
	if slug := idgen.Slugify(explicit); slug != "" {
		return slug
	}
	if slug := idgen.Slugify(name); slug != "" {
		return slug
	}
	return "user-" + id[:8]
}
