// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/apperr"
)

// Guard tracks whether the database is usable. The server starts even when
// the database is down; Serve keeps retrying schema setup and data routes
// answer 503 until it succeeds.
type Guard struct {
	conn  *sql.DB
	ready atomic.Bool
	retry time.Duration
}

// NewGuard creates a guard for conn
func NewGuard(conn *sql.DB) *Guard {
	return &Guard{conn: conn, retry: 5 * time.Second}
}

// Init makes one attempt to ping and create the schema
func (g *Guard) Init(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := g.conn.PingContext(ctx); err != nil {
		return err
	}
	if err := CreateSchema(ctx, g.conn); err != nil {
		return err
	}
	g.ready.Store(true)
	return nil
}

// Serve retries Init until it succeeds, then idles until ctx is done
func (g *Guard) Serve(ctx context.Context) error {
	for !g.ready.Load() {
		err := g.Init(ctx)
		if err == nil {
			slog.Info("database schema ready")
			break
		}
		slog.Warn("database not available, retrying", "error", err, "retry_in", g.retry)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(g.retry):
		}
	}

	<-ctx.Done()
	return ctx.Err()
}

// Available returns an Unavailable error unless the database is ready and answering
func (g *Guard) Available(ctx context.Context) error {
	if !g.ready.Load() {
		return apperr.Unavailable("Database not available", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := g.conn.PingContext(ctx); err != nil {
		return apperr.Unavailable("Database not available", err)
	}
	return nil
}

func (g *Guard) String() string {
	return "db-guard"
}
