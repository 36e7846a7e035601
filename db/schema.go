// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema sticks to types both SQLite and PostgreSQL accept.
// Timestamps are always written by the application in UTC.
const schema = `
-- Portfolio owners
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    phone TEXT NOT NULL,
    address TEXT NOT NULL DEFAULT '',
    designation TEXT NOT NULL DEFAULT '',
    organization TEXT NOT NULL DEFAULT '',
    profile_image TEXT NOT NULL DEFAULT '',
    about_me TEXT NOT NULL DEFAULT '',
    portfolio_slug TEXT NOT NULL UNIQUE,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    question TEXT NOT NULL,
    portfolio_user_id TEXT NOT NULL,
    created_by TEXT,
    end_date TIMESTAMP,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_portfolio_user ON poll(portfolio_user_id);

-- Options, ordered by position
CREATE TABLE IF NOT EXISTS poll_option (
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    label TEXT NOT NULL,
    votes INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (poll_id, position)
);

-- One row per voter per poll; the unique key is what makes voting atomic
CREATE TABLE IF NOT EXISTS poll_vote (
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    voted_at TIMESTAMP NOT NULL,
    UNIQUE (poll_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_poll_vote_option ON poll_vote(poll_id, position);

-- Media
CREATE TABLE IF NOT EXISTS photos (
    id TEXT PRIMARY KEY,
    filename TEXT NOT NULL,
    src TEXT NOT NULL,
    user_id TEXT,
    uploaded_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_photos_filename ON photos(filename);

CREATE TABLE IF NOT EXISTS news (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL DEFAULT 'News',
    filename TEXT NOT NULL,
    src TEXT NOT NULL,
    user_id TEXT,
    uploaded_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_news_filename ON news(filename);

CREATE TABLE IF NOT EXISTS videos (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL DEFAULT 'Video',
    filename TEXT NOT NULL,
    src TEXT NOT NULL,
    is_external BOOLEAN NOT NULL DEFAULT FALSE,
    external_url TEXT,
    user_id TEXT,
    uploaded_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_videos_filename ON videos(filename);

-- Visitor feedback and announcements
CREATE TABLE IF NOT EXISTS suggestions (
    id TEXT PRIMARY KEY,
    message TEXT NOT NULL,
    submitted_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS admin_messages (
    id TEXT PRIMARY KEY,
    message TEXT NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL
);

-- Per-user appearance settings, one JSON document per group
CREATE TABLE IF NOT EXISTS portfolio_settings (
    user_id TEXT PRIMARY KEY,
    colors TEXT NOT NULL,
    fonts TEXT NOT NULL,
    layout TEXT NOT NULL,
    effects TEXT NOT NULL,
    buttons TEXT NOT NULL,
    profile_image TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

-- Analytics
CREATE TABLE IF NOT EXISTS analytics_events (
    id TEXT PRIMARY KEY,
    event_type TEXT NOT NULL CHECK (event_type IN ('file_upload', 'file_delete', 'suggestion_submit', 'admin_message', 'page_view')),
    file_type TEXT,
    file_name TEXT,
    ip_hash TEXT,
    user_agent TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analytics_event_type ON analytics_events(event_type);
`
