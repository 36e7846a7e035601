// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/events"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/models"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/testutil"
)

func createUser(t *testing.T, env *testEnv, body map[string]string) models.User {
	t.Helper()
	w := serve(env.users.CreateUser, jsonRequest("POST", "/api/users", body, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var u models.User
	decode(t, w, &u)
	return u
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)

	u := createUser(t, env, map[string]string{
		"name":  "  Jane O'Doe ",
		"email": "Jane@Example.COM",
		"phone": "555-0100",
	})

	if u.Name != "Jane O'Doe" {
		t.Errorf("Expected trimmed name, got %q", u.Name)
	}
	if u.Email != "jane@example.com" {
		t.Errorf("Expected lowercased email, got %q", u.Email)
	}
	if u.PortfolioSlug != "jane-o-doe" {
		t.Errorf("Expected slug derived from name, got %q", u.PortfolioSlug)
	}
	if u.ProfileImage != models.DefaultProfileImage {
		t.Errorf("Expected default profile image, got %q", u.ProfileImage)
	}
	if !u.IsActive {
		t.Error("Expected new user to be active")
	}
	if _, ok := env.recorder.Last(events.UserCreated); !ok {
		t.Error("Expected userCreated event")
	}

	w := serve(env.users.GetUserBySlug, jsonRequest("GET", "/", nil, map[string]string{"slug": "Jane-O-Doe"}))
	testutil.AssertStatus(t, w, http.StatusOK)
	var bySlug models.User
	decode(t, w, &bySlug)
	if bySlug.ID != u.ID {
		t.Errorf("Expected slug lookup to find %s, got %s", u.ID, bySlug.ID)
	}
}

func TestCreateUserValidation(t *testing.T) {
	testCases := []struct {
		name    string
		body    map[string]string
		message string
	}{
		{"missing name", map[string]string{"email": "a@example.com", "phone": "1"}, "name is required"},
		{"bad email", map[string]string{"name": "A", "email": "not-an-email", "phone": "1"}, "email must be a valid email address"},
		{"missing phone", map[string]string{"name": "A", "email": "a@example.com"}, "phone is required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			w := serve(env.users.CreateUser, jsonRequest("POST", "/api/users", tc.body, nil))
			testutil.AssertError(t, w, http.StatusBadRequest, tc.message)
		})
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	env := newTestEnv(t)
	createUser(t, env, map[string]string{"name": "Jane", "email": "jane@example.com", "phone": "1"})

	w := serve(env.users.CreateUser, jsonRequest("POST", "/api/users", map[string]string{"name": "Other", "email": "JANE@example.com", "phone": "2"}, nil))
	testutil.AssertError(t, w, http.StatusBadRequest, "A user with this email or portfolio slug already exists")
}

func TestUpdateAndDeleteUser(t *testing.T) {
	env := newTestEnv(t)
	u := createUser(t, env, map[string]string{"name": "Jane", "email": "jane@example.com", "phone": "1"})
	path := map[string]string{"id": u.ID}

	w := serve(env.users.UpdateUser, jsonRequest("PUT", "/api/users/"+u.ID, map[string]interface{}{
		"designation":   "Engineer",
		"portfolioSlug": "Jane Builds",
		"isActive":      false,
	}, path))
	testutil.AssertStatus(t, w, http.StatusOK)

	var updated models.User
	decode(t, w, &updated)
	if updated.Designation != "Engineer" || updated.PortfolioSlug != "jane-builds" || updated.IsActive {
		t.Errorf("Unexpected update result: %+v", updated)
	}
	if updated.Name != "Jane" || updated.Email != "jane@example.com" {
		t.Errorf("Fields not in the request must be kept: %+v", updated)
	}

	w = serve(env.users.UpdateUser, jsonRequest("PUT", "/", map[string]interface{}{"name": ""}, path))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	w = serve(env.users.DeleteUser, jsonRequest("DELETE", "/api/users/"+u.ID, nil, path))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = serve(env.users.GetUser, jsonRequest("GET", "/api/users/"+u.ID, nil, path))
	testutil.AssertError(t, w, http.StatusNotFound, "User not found")

	w = serve(env.users.UpdateUser, jsonRequest("PUT", "/", map[string]interface{}{"designation": "x"}, path))
	testutil.AssertError(t, w, http.StatusNotFound, "User not found")
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	createUser(t, env, map[string]string{"name": "A", "email": "a@example.com", "phone": "1"})
	createUser(t, env, map[string]string{"name": "B", "email": "b@example.com", "phone": "2"})

	w := serve(env.users.ListUsers, jsonRequest("GET", "/api/users", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var users []models.User
	decode(t, w, &users)
	if len(users) != 2 {
		t.Errorf("Expected 2 users, got %d", len(users))
	}
}
