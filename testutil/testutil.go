// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/cliparse"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/db"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/idgen"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(context.Background(), conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3001,
		DatabaseType:      "sqlite",
		DatabaseURL:       ":memory:",
		UploadDir:         "uploads",
		MaxUploadBytes:    50 << 20,
		IPHashSalt:        "test-ip-salt",
		CORSOrigins:       []string{"*"},
		RateLimitRequests: 0,
		RateLimitWindow:   time.Minute,
	}
}

// CreateTestUser inserts a user and returns its ID
func CreateTestUser(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	id := idgen.NewID()
	slug := idgen.Slugify(name) + "-" + id[:8]
	now := time.Now().UTC()
	_, err := conn.Exec(`
		INSERT INTO users (id, name, email, phone, portfolio_slug, profile_image, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, id, name, slug+"@example.com", "555-0100", slug, "", true, now, now)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return id
}

// CreateTestPoll inserts an active poll owned by portfolioUserID and returns its ID
func CreateTestPoll(t *testing.T, conn *sql.DB, portfolioUserID string, options ...string) string {
	t.Helper()

	id := idgen.NewID()
	_, err := conn.Exec(`
		INSERT INTO poll (id, question, portfolio_user_id, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, "Test Poll?", portfolioUserID, true, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	for i, text := range options {
		_, err := conn.Exec(`
			INSERT INTO poll_option (poll_id, position, label, votes)
			VALUES ($1, $2, $3, $4)
		`, id, i, text, 0)
		if err != nil {
			t.Fatalf("Failed to create test option: %v", err)
		}
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertError checks the status code and the {"error": ...} message
func AssertError(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	AssertStatus(t, w, status)
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if body.Error != message {
		t.Errorf("Expected error %q, got %q", message, body.Error)
	}
}
