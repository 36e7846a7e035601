// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the portfolio API server.

The server backs a personal portfolio site: photo, news and video media,
portfolio owner profiles and settings, visitor suggestions, admin
messages, page-view analytics and single-choice polls where each visitor
votes at most once per poll.

# Starting the Server

With no configuration the server uses a local SQLite file and stores
uploads on disk:

	go run .

Or with flags:

	go run . -p 3001 -t postgres -d "postgres://..." -upload-dir ./uploads

# Configuration

Settings come from defaults, an optional YAML file (-c or CONFIG_PATH),
the environment (a .env file is loaded if present), then flags:

  - PORT (-p): Server port (default: 3001)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string; required for postgres
  - UPLOAD_DIR (-upload-dir): Local media directory
  - USE_CLOUD_UPLOADS, STORAGE_BUCKET, GOOGLE_CREDENTIALS: Firebase storage
  - REDIS_ADDR, REDIS_PASSWORD, REDIS_CHANNEL: Cross-instance events
  - CORS_ORIGINS, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, IP_HASH_SALT
  - LOG_LEVEL (-log-level), LOG_FORMAT

# Architecture

  - polls: Poll lifecycle and the serialized vote path
  - store: SQL persistence for every entity
  - handlers: HTTP request handlers
  - router: chi routes and middleware stack
  - middleware: Logging, errors, CORS, rate limits, metrics
  - events: WebSocket hub and Redis fan-out
  - mediastore: Local disk and Firebase Cloud Storage backends
  - db: Connections, schema and the availability guard
  - cliparse: Configuration loading

The database guard, event hub, Redis bridge and HTTP server run under a
suture supervisor. The server starts even when the database is down; data
routes answer 503 until the guard reports it ready.
*/
package main
