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

func createTestPoll(t *testing.T, env *testEnv, body map[string]interface{}) models.Poll {
	t.Helper()
	w := serve(env.polls.CreatePoll, jsonRequest("POST", "/api/polls", body, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var p models.Poll
	decode(t, w, &p)
	return p
}

func TestCreatePoll(t *testing.T) {
	env := newTestEnv(t)

	p := createTestPoll(t, env, map[string]interface{}{
		"question":        "Best color?",
		"options":         []interface{}{"Red", map[string]string{"text": "Blue"}},
		"portfolioUserId": "U1",
		"createdBy":       "admin-1",
		"endDate":         "2030-01-01T12:00",
	})

	if p.ID == "" {
		t.Error("Expected poll id")
	}
	if !p.IsActive {
		t.Error("Expected new poll to be active")
	}
	if len(p.Options) != 2 || p.Options[0].Text != "Red" || p.Options[1].Text != "Blue" {
		t.Fatalf("Unexpected options: %+v", p.Options)
	}
	for i, o := range p.Options {
		if o.Votes != 0 || len(o.Voters) != 0 {
			t.Errorf("Option %d should start empty, got %+v", i, o)
		}
	}
	if p.CreatedBy == nil || *p.CreatedBy != "admin-1" {
		t.Errorf("Expected createdBy admin-1, got %v", p.CreatedBy)
	}
	if p.EndDate == nil || p.EndDate.Year() != 2030 {
		t.Errorf("Expected end date in 2030, got %v", p.EndDate)
	}

	if _, ok := env.recorder.Last(events.PollCreated); !ok {
		t.Error("Expected pollCreated event")
	}
}

func TestCreatePollValidation(t *testing.T) {
	testCases := []struct {
		name    string
		body    interface{}
		message string
	}{
		{"missing question", map[string]interface{}{"options": []string{"a", "b"}, "portfolioUserId": "U1"}, "Question is required"},
		{"single option", map[string]interface{}{"question": "q", "options": []string{"a"}, "portfolioUserId": "U1"}, "At least 2 options are required"},
		{"blank option", map[string]interface{}{"question": "q", "options": []string{"a", ""}, "portfolioUserId": "U1"}, "Option text cannot be empty"},
		{"missing portfolio user", map[string]interface{}{"question": "q", "options": []string{"a", "b"}}, "Portfolio user ID is required"},
		{"bad end date", map[string]interface{}{"question": "q", "options": []string{"a", "b"}, "portfolioUserId": "U1", "endDate": "next tuesday"}, "Invalid end date"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			w := serve(env.polls.CreatePoll, jsonRequest("POST", "/api/polls", tc.body, nil))
			testutil.AssertError(t, w, http.StatusBadRequest, tc.message)
		})
	}

	t.Run("invalid JSON", func(t *testing.T) {
		env := newTestEnv(t)
		req := jsonRequest("POST", "/api/polls", nil, nil)
		w := serve(env.polls.CreatePoll, req)
		testutil.AssertError(t, w, http.StatusBadRequest, "Invalid JSON")
	})
}

func TestVoteScenario(t *testing.T) {
	env := newTestEnv(t)
	p := createTestPoll(t, env, map[string]interface{}{
		"question":        "Best color?",
		"options":         []string{"Red", "Blue"},
		"portfolioUserId": "U1",
	})
	path := map[string]string{"id": p.ID}

	w := serve(env.polls.Vote, jsonRequest("POST", "/api/polls/"+p.ID+"/vote", map[string]interface{}{"optionIndex": 1, "userId": "A"}, path))
	testutil.AssertStatus(t, w, http.StatusOK)

	var voted models.Poll
	decode(t, w, &voted)
	if voted.Options[1].Votes != 1 || len(voted.Options[1].Voters) != 1 || voted.Options[1].Voters[0].UserID != "A" {
		t.Fatalf("Unexpected option after vote: %+v", voted.Options[1])
	}

	msg, ok := env.recorder.Last(events.PollUpdated)
	if !ok {
		t.Fatal("Expected pollUpdated event")
	}
	update := msg.Data.(models.PollUpdatedEvent)
	if update.PollID != p.ID || update.Options[1].Votes != 1 {
		t.Errorf("Unexpected pollUpdated payload: %+v", update)
	}

	// same user, other option
	w = serve(env.polls.Vote, jsonRequest("POST", "/api/polls/"+p.ID+"/vote", map[string]interface{}{"optionIndex": 0, "userId": "A"}, path))
	testutil.AssertError(t, w, http.StatusBadRequest, "You have already voted on this poll")

	w = serve(env.polls.GetPoll, jsonRequest("GET", "/api/polls/"+p.ID, nil, path))
	testutil.AssertStatus(t, w, http.StatusOK)
	var after models.Poll
	decode(t, w, &after)
	if after.Options[0].Votes != 0 || after.Options[1].Votes != 1 {
		t.Errorf("Tallies changed after rejected vote: %+v", after.Options)
	}
}

func TestVoteErrors(t *testing.T) {
	env := newTestEnv(t)
	open := createTestPoll(t, env, map[string]interface{}{"question": "q", "options": []string{"a", "b"}, "portfolioUserId": "U1"})
	ended := createTestPoll(t, env, map[string]interface{}{"question": "q", "options": []string{"a", "b"}, "portfolioUserId": "U1", "endDate": "2001-01-01"})
	inactive := createTestPoll(t, env, map[string]interface{}{"question": "q", "options": []string{"a", "b"}, "portfolioUserId": "U1"})
	testutil.AssertStatus(t, serve(env.polls.TogglePoll, jsonRequest("PUT", "/", nil, map[string]string{"id": inactive.ID})), http.StatusOK)

	testCases := []struct {
		name    string
		pollID  string
		body    interface{}
		status  int
		message string
	}{
		{"missing option index", open.ID, map[string]interface{}{"userId": "A"}, http.StatusBadRequest, "Option index is required"},
		{"missing user", open.ID, map[string]interface{}{"optionIndex": 0}, http.StatusBadRequest, "User ID is required"},
		{"unknown poll", "missing", map[string]interface{}{"optionIndex": 0, "userId": "A"}, http.StatusNotFound, "Poll not found"},
		{"inactive", inactive.ID, map[string]interface{}{"optionIndex": 0, "userId": "A"}, http.StatusBadRequest, "Poll is not active"},
		{"ended", ended.ID, map[string]interface{}{"optionIndex": 0, "userId": "A"}, http.StatusBadRequest, "Poll has ended"},
		{"index too large", open.ID, map[string]interface{}{"optionIndex": 2, "userId": "A"}, http.StatusBadRequest, "Invalid option index"},
		{"negative index", open.ID, map[string]interface{}{"optionIndex": -1, "userId": "A"}, http.StatusBadRequest, "Invalid option index"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := jsonRequest("POST", "/api/polls/"+tc.pollID+"/vote", tc.body, map[string]string{"id": tc.pollID})
			w := serve(env.polls.Vote, req)
			testutil.AssertError(t, w, tc.status, tc.message)
		})
	}
}

func TestToggleAndDeletePoll(t *testing.T) {
	env := newTestEnv(t)
	p := createTestPoll(t, env, map[string]interface{}{"question": "q", "options": []string{"a", "b"}, "portfolioUserId": "U1"})
	path := map[string]string{"id": p.ID}

	for _, want := range []bool{false, true} {
		w := serve(env.polls.TogglePoll, jsonRequest("PUT", "/api/polls/"+p.ID+"/toggle", nil, path))
		testutil.AssertStatus(t, w, http.StatusOK)
		var got models.Poll
		decode(t, w, &got)
		if got.IsActive != want {
			t.Errorf("Expected isActive %v, got %v", want, got.IsActive)
		}
	}

	w := serve(env.polls.DeletePoll, jsonRequest("DELETE", "/api/polls/"+p.ID, nil, path))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = serve(env.polls.DeletePoll, jsonRequest("DELETE", "/api/polls/"+p.ID, nil, path))
	testutil.AssertError(t, w, http.StatusNotFound, "Poll not found")

	w = serve(env.polls.TogglePoll, jsonRequest("PUT", "/api/polls/"+p.ID+"/toggle", nil, path))
	testutil.AssertError(t, w, http.StatusNotFound, "Poll not found")
}

func TestListPolls(t *testing.T) {
	env := newTestEnv(t)
	owner := testutil.CreateTestUser(t, env.db, "Jane Doe")

	active := createTestPoll(t, env, map[string]interface{}{"question": "active", "options": []string{"a", "b"}, "portfolioUserId": owner})
	hidden := createTestPoll(t, env, map[string]interface{}{"question": "hidden", "options": []string{"a", "b"}, "portfolioUserId": owner})
	serve(env.polls.TogglePoll, jsonRequest("PUT", "/", nil, map[string]string{"id": hidden.ID}))

	w := serve(env.polls.ListForPortfolio, jsonRequest("GET", "/api/polls/user/"+owner, nil, map[string]string{"userId": owner}))
	testutil.AssertStatus(t, w, http.StatusOK)
	var mine []models.Poll
	decode(t, w, &mine)
	if len(mine) != 1 || mine[0].ID != active.ID {
		t.Errorf("Expected only the active poll, got %+v", mine)
	}

	w = serve(env.polls.ListAll, jsonRequest("GET", "/api/polls", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var all []models.AdminPoll
	decode(t, w, &all)
	if len(all) != 2 {
		t.Fatalf("Expected 2 polls, got %d", len(all))
	}
	for _, p := range all {
		if p.PortfolioUser == nil || p.PortfolioUser.Name != "Jane Doe" {
			t.Errorf("Expected resolved portfolio user, got %+v", p.PortfolioUser)
		}
	}
}

func TestGetPollNotFound(t *testing.T) {
	env := newTestEnv(t)
	w := serve(env.polls.GetPoll, jsonRequest("GET", "/api/polls/nope", nil, map[string]string{"id": "nope"}))
	testutil.AssertError(t, w, http.StatusNotFound, "Poll not found")
}
