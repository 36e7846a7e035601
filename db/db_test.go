// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"testing"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/apperr"
)

func TestCreateSchemaIdempotent(t *testing.T) {
	conn, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := CreateSchema(ctx, conn); err != nil {
			t.Fatalf("CreateSchema() pass %d error = %v", i+1, err)
		}
	}

	for _, table := range []string{"users", "poll", "poll_option", "poll_vote", "photos", "news", "videos",
		"suggestions", "admin_messages", "portfolio_settings", "analytics_events"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestOpenUnsupported(t *testing.T) {
	if _, err := Open("mongo", "mongodb://localhost"); err == nil {
		t.Error("Open() expected error for unsupported type")
	}
}

func TestGuard(t *testing.T) {
	conn, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	g := NewGuard(conn)

	if err := g.Available(ctx); !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("Available() before init = %v, want unavailable", err)
	}

	if err := g.Init(ctx); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := g.Available(ctx); err != nil {
		t.Errorf("Available() after init = %v", err)
	}

	conn.Close()
	if err := g.Available(ctx); !apperr.Is(err, apperr.KindUnavailable) {
		t.Errorf("Available() after close = %v, want unavailable", err)
	}
}
