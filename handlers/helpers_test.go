// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"database/sql"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/goccy/go-json"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/events"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/mediastore"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/polls"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/store"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/testutil"
)

// testEnv wires every handler against an in-memory database
type testEnv struct {
	db        *sql.DB
	store     *store.Store
	recorder  *events.Recorder
	uploadDir string
	polls     *PollHandler
	media     *MediaHandler
	users     *UserHandler
	feedback  *FeedbackHandler
	settings  *SettingsHandler
	analytics *AnalyticsHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	s := store.New(db)
	rec := &events.Recorder{}

	uploadDir := t.TempDir()
	local, err := mediastore.NewLocalStore(uploadDir)
	if err != nil {
		t.Fatalf("Failed to create local store: %v", err)
	}
	tracker := NewTracker(s, cfg.IPHashSalt)

	return &testEnv{
		db:        db,
		store:     s,
		recorder:  rec,
		uploadDir: uploadDir,
		polls:     NewPollHandler(polls.NewEngine(s, rec)),
		media:     NewMediaHandler(s, local, rec, tracker, cfg.MaxUploadBytes),
		users:     NewUserHandler(s, rec),
		feedback:  NewFeedbackHandler(s, rec, tracker),
		settings:  NewSettingsHandler(s, rec),
		analytics: NewAnalyticsHandler(tracker),
	}
}

// jsonRequest builds a request with a JSON body and optional path values
func jsonRequest(method, path string, body interface{}, pathValues map[string]string) *http.Request {
	req := testutil.MakeRequest(method, path, body, nil)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}

func serve(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
}

// uploadRequest builds a multipart upload with the given form fields
func uploadRequest(t *testing.T, filename, contentType string, data []byte, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	if filename != "" {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("CreatePart: %v", err)
		}
		part.Write(data)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
