// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestOptionInputUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []string
		wantErr bool
	}{
		{"bare strings", `{"options":["Red","Blue"]}`, []string{"Red", "Blue"}, false},
		{"objects", `{"options":[{"text":"Red"},{"text":"Blue","votes":9}]}`, []string{"Red", "Blue"}, false},
		{"mixed", `{"options":["Red",{"text":"Blue"}]}`, []string{"Red", "Blue"}, false},
		{"number", `{"options":[1,2]}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreatePollRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if len(req.Options) != len(tt.want) {
				t.Fatalf("got %d options, want %d", len(req.Options), len(tt.want))
			}
			for i, o := range req.Options {
				if o.Text != tt.want[i] {
					t.Errorf("option %d = %q, want %q", i, o.Text, tt.want[i])
				}
			}
		})
	}
}

func TestParseEndDate(t *testing.T) {
	tests := []struct {
		in     string
		ok     bool
		isNil  bool
		wantYr int
	}{
		{"", true, true, 0},
		{"   ", true, true, 0},
		{"2030-01-02T15:04:05Z", true, false, 2030},
		{"2030-01-02T15:04:05.123+02:00", true, false, 2030},
		{"2030-01-02T15:04", true, false, 2030},
		{"2030-01-02", true, false, 2030},
		{"next tuesday", false, true, 0},
	}

	for _, tt := range tests {
		got, ok := ParseEndDate(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseEndDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if (got == nil) != tt.isNil {
			t.Errorf("ParseEndDate(%q) nil = %v, want %v", tt.in, got == nil, tt.isNil)
			continue
		}
		if got != nil && got.Year() != tt.wantYr {
			t.Errorf("ParseEndDate(%q) year = %d", tt.in, got.Year())
		}
	}
}

func TestPollHasVotedAndEnded(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	p := Poll{
		Options: []Option{
			{Text: "Red"},
			{Text: "Blue", Votes: 1, Voters: []Vote{{UserID: "A", VotedAt: now}}},
		},
		EndDate: &past,
	}

	if !p.HasVoted("A") {
		t.Error("HasVoted(A) = false")
	}
	if p.HasVoted("B") {
		t.Error("HasVoted(B) = true")
	}
	if !p.Ended(now) {
		t.Error("Ended() = false for past end date")
	}

	p.EndDate = nil
	if p.Ended(now) {
		t.Error("Ended() = true without end date")
	}

	tallies := p.Tallies()
	if len(tallies) != 2 || tallies[1].Votes != 1 || tallies[1].Text != "Blue" {
		t.Errorf("Tallies() = %+v", tallies)
	}
}

func TestSettingsMerge(t *testing.T) {
	s := DefaultSettings("u1")
	s.Colors = SettingsGroup{"primary": "#111", "secondary": "#222"}

	patch, err := ParseSettingsPatch([]byte(`{"userId":"ignored","colors":{"primary":"#999"},"fonts":{"heading":"Lora"}}`))
	if err != nil {
		t.Fatalf("ParseSettingsPatch() error = %v", err)
	}
	s.Merge(patch)

	if s.Colors["primary"] != "#999" {
		t.Errorf("primary = %q, want #999", s.Colors["primary"])
	}
	if s.Colors["secondary"] != "#222" {
		t.Errorf("secondary = %q, want #222", s.Colors["secondary"])
	}
	if s.Fonts["heading"] != "Lora" || s.Fonts["body"] != "Inter" {
		t.Errorf("fonts = %v", s.Fonts)
	}
	if s.Buttons["style"] != "rounded" {
		t.Errorf("untouched group changed: %v", s.Buttons)
	}
	if s.UserID != "u1" {
		t.Errorf("UserID = %q", s.UserID)
	}
}

func TestParseSettingsPatchInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"group not object", `{"colors":"red"}`},
		{"non-string value", `{"layout":{"spacing":3}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSettingsPatch([]byte(tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDefaultSettingsGroups(t *testing.T) {
	s := DefaultSettings("u1")
	for _, name := range SettingsGroups {
		g := s.Group(name)
		if g == nil || len(*g) == 0 {
			t.Errorf("group %s missing defaults", name)
		}
	}
	if s.Group("nope") != nil {
		t.Error("Group(nope) should be nil")
	}
}
