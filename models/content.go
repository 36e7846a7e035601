// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Media categories, also the upload "type" field and the storage folder
const (
	CategoryPhotos = "photos"
	CategoryVideos = "videos"
	CategoryNews   = "news"
)

// ValidCategory reports whether c is a known media category
func ValidCategory(c string) bool {
	return c == CategoryPhotos || c == CategoryVideos || c == CategoryNews
}

// MediaItem is the stored form shared by photos, news and videos
type MediaItem struct {
	ID          string
	Category    string
	Title       string
	Filename    string
	Src         string
	IsExternal  bool
	ExternalURL *string
	UserID      *string
	UploadedAt  time.Time
}

type PhotoResponse struct {
	ID       string `json:"id"`
	Src      string `json:"src"`
	Filename string `json:"filename"`
}

type NewsResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Src      string `json:"src"`
	Filename string `json:"filename"`
}

type VideoResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Src         string  `json:"src"`
	Filename    string  `json:"filename"`
	IsExternal  bool    `json:"isExternal"`
	ExternalURL *string `json:"externalUrl"`
}

type UploadedFile struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Type     string `json:"type"`
}

type UploadResponse struct {
	Message string       `json:"message"`
	File    UploadedFile `json:"file"`
}

type AddYouTubeRequest struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	UserID string `json:"userId"`
}

type AddYouTubeResponse struct {
	Message string        `json:"message"`
	Video   VideoResponse `json:"video"`
}

type ContentEvent struct {
	Type     string `json:"type"`
	ID       string `json:"id,omitempty"`
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
}

// Suggestions and admin messages

type Suggestion struct {
	ID          string    `json:"id"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type CreateSuggestionRequest struct {
	Message string `json:"message" validate:"required"`
}

type AdminMessage struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateAdminMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// CreatedResponse acknowledges a write that produced a new record
type CreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type SuggestionEvent struct {
	ID string `json:"id"`
}

type AdminMessageEvent struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Analytics

const (
	EventFileUpload       = "file_upload"
	EventFileDelete       = "file_delete"
	EventSuggestionSubmit = "suggestion_submit"
	EventAdminMessage     = "admin_message"
	EventPageView         = "page_view"
)

type AnalyticsEvent struct {
	ID        string    `json:"id"`
	EventType string    `json:"eventType"`
	FileType  *string   `json:"fileType,omitempty"`
	FileName  *string   `json:"fileName,omitempty"`
	IPHash    string    `json:"-"`
	UserAgent string    `json:"userAgent,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type PageViewRequest struct {
	Path string `json:"path" validate:"omitempty,max=512"`
}

type AnalyticsSummary struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}
