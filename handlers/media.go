// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/events"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/idgen"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/mediastore"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/middleware"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/models"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/store"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/videolink"
)

// multipart parts beyond this stay on disk while parsing
const uploadMemory = 8 << 20

var (
	videoExt  = regexp.MustCompile(`^\.(mp4|mov|avi|wmv|flv|webm)$`)
	imageExt  = regexp.MustCompile(`^\.(jpeg|jpg|png|gif|webp)$`)
	videoMIME = regexp.MustCompile(`^video/`)
	imageMIME = regexp.MustCompile(`^image/(jpeg|jpg|png|gif|webp)$`)
)

type MediaHandler struct {
	store    *store.Store
	media    mediastore.Store
	pub      events.Publisher
	tracker  *Tracker
	maxBytes int64
}

func NewMediaHandler(s *store.Store, media mediastore.Store, pub events.Publisher, tracker *Tracker, maxBytes int64) *MediaHandler {
	return &MediaHandler{store: s, media: media, pub: pub, tracker: tracker, maxBytes: maxBytes}
}

// ListPhotos handles GET /api/photos
func (h *MediaHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListMedia(r.Context(), models.CategoryPhotos)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	out := make([]models.PhotoResponse, len(items))
	for i, it := range items {
		out[i] = models.PhotoResponse{ID: it.ID, Src: it.Src, Filename: it.Filename}
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

// ListNews handles GET /api/news
func (h *MediaHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListMedia(r.Context(), models.CategoryNews)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	out := make([]models.NewsResponse, len(items))
	for i, it := range items {
		out[i] = models.NewsResponse{
			ID:       it.ID,
			Title:    titleOr(it.Title, fmt.Sprintf("News %d", i+1)),
			Src:      it.Src,
			Filename: it.Filename,
		}
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

// ListVideos handles GET /api/videos
func (h *MediaHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListMedia(r.Context(), models.CategoryVideos)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	out := make([]models.VideoResponse, len(items))
	for i, it := range items {
		out[i] = videoResponse(it, fmt.Sprintf("Video %d", i+1))
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

// Upload handles POST /api/upload
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(uploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer r.MultipartForm.RemoveAll()

	category := r.FormValue("type")
	if category == "" {
		category = models.CategoryPhotos
	}
	if !models.ValidCategory(category) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid type")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if msg, ok := acceptFile(category, header.Filename, header.Header.Get("Content-Type")); !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	obj, err := h.media.Put(r.Context(), file, header.Filename, category)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	item := &models.MediaItem{
		ID:         idgen.NewID(),
		Category:   category,
		Filename:   obj.Identifier,
		Src:        obj.URL,
		UserID:     optional(r.FormValue("userId")),
		UploadedAt: time.Now().UTC(),
	}
	switch category {
	case models.CategoryNews:
		item.Title = titleOr(strings.TrimSpace(r.FormValue("title")), "News")
	case models.CategoryVideos:
		item.Title = titleOr(strings.TrimSpace(r.FormValue("title")), "Video")
	}

	if err := h.store.CreateMedia(r.Context(), item); err != nil {
		h.discard(obj.Identifier, category)
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("media uploaded", "type", category, "id", item.ID, "filename", item.Filename, "backend", h.media.Backend())
	h.tracker.Track(r, models.EventFileUpload, &category, &item.Filename)
	h.pub.Publish(events.ContentUploaded, models.ContentEvent{Type: category, ID: item.ID, Filename: item.Filename, URL: item.Src})

	middleware.JSONResponse(w, http.StatusOK, models.UploadResponse{
		Message: "File uploaded successfully",
		File: models.UploadedFile{
			ID:       item.ID,
			Filename: item.Filename,
			URL:      item.Src,
			Type:     category,
		},
	})
}

// discard removes a stored binary whose metadata could not be saved
func (h *MediaHandler) discard(identifier, category string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := h.media.Remove(ctx, identifier, category); err != nil {
		slog.Error("failed to remove orphaned upload", "type", category, "filename", identifier, "error", err)
	}
}

// AddYouTubeVideo handles POST /api/videos/youtube
func (h *MediaHandler) AddYouTubeVideo(w http.ResponseWriter, r *http.Request) {
	var req models.AddYouTubeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.URL) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "YouTube URL is required")
		return
	}
	link, err := videolink.ParseYouTube(req.URL)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid YouTube URL")
		return
	}

	now := time.Now().UTC()
	item := &models.MediaItem{
		ID:          idgen.NewID(),
		Category:    models.CategoryVideos,
		Title:       titleOr(strings.TrimSpace(req.Title), "YouTube Video"),
		Filename:    fmt.Sprintf("youtube-%s-%d", link.ID, now.UnixMilli()),
		Src:         link.EmbedURL(),
		IsExternal:  true,
		ExternalURL: &link.Original,
		UserID:      optional(req.UserID),
		UploadedAt:  now,
	}
	if err := h.store.CreateMedia(r.Context(), item); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("youtube video added", "id", item.ID, "video_id", link.ID)
	h.pub.Publish(events.ContentUploaded, models.ContentEvent{Type: models.CategoryVideos, ID: item.ID, Filename: item.Filename, URL: item.Src})

	middleware.JSONResponse(w, http.StatusOK, models.AddYouTubeResponse{
		Message: "YouTube video added successfully",
		Video:   videoResponse(*item, item.Title),
	})
}

// DeleteMedia handles DELETE /api/delete/{type}/{filename}
func (h *MediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("type")
	filename := r.PathValue("filename")
	if !models.ValidCategory(category) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid type")
		return
	}

	item, err := h.store.FindMediaByFilename(r.Context(), category, filename)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	// external videos have no stored binary
	if !item.IsExternal {
		if err := h.media.Remove(r.Context(), item.Filename, category); err != nil {
			middleware.WriteError(w, r, err)
			return
		}
	}

	if err := h.store.DeleteMedia(r.Context(), category, item.ID); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	slog.Info("media deleted", "type", category, "id", item.ID, "filename", item.Filename)
	h.tracker.Track(r, models.EventFileDelete, &category, &item.Filename)
	h.pub.Publish(events.ContentDeleted, models.ContentEvent{Type: category, ID: item.ID, Filename: item.Filename})

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "File deleted successfully"})
}

// acceptFile applies the per-category extension and MIME filter
func acceptFile(category, name, contentType string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))

	if category == models.CategoryVideos {
		if videoExt.MatchString(ext) && videoMIME.MatchString(contentType) {
			return "", true
		}
		return "Only video files are allowed!", false
	}
	if imageExt.MatchString(ext) && imageMIME.MatchString(contentType) {
		return "", true
	}
	return "Only image files are allowed!", false
}

func videoResponse(it models.MediaItem, fallbackTitle string) models.VideoResponse {
	return models.VideoResponse{
		ID:          it.ID,
		Title:       titleOr(it.Title, fallbackTitle),
		Src:         it.Src,
		Filename:    it.Filename,
		IsExternal:  it.IsExternal,
		ExternalURL: it.ExternalURL,
	}
}

func titleOr(title, fallback string) string {
	if title == "" {
		return fallback
	}
	return title
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
