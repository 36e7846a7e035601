// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and manages its schema.

# Drivers

Open selects the driver by type:

	conn, err := db.Open("sqlite", "portfolio.db")          // modernc.org/sqlite
	conn, err := db.Open("postgres", "postgres://...")      // lib/pq

SQLite handles are limited to a single connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
Queries use $n placeholders, which both drivers accept.

# Availability

Guard lets the process start without a database. It runs under the
supervisor, retrying until the schema is in place:

	guard := db.NewGuard(conn)
	supervisor.Add(guard)

	if err := guard.Available(ctx); err != nil {
		// apperr.KindUnavailable, rendered as 503
	}

# Tables

  - users: portfolio owners (unique email and portfolio_slug)
  - poll, poll_option, poll_vote: polls, their ordered options, and one vote per user
  - photos, news, videos: media metadata
  - suggestions, admin_messages
  - portfolio_settings: one row per user, one JSON column per group
  - analytics_events

# Relationships

	poll 1──* poll_option
	poll 1──* poll_vote   UNIQUE (poll_id, user_id)

Poll child rows cascade on delete.
*/
package db
