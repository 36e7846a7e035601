// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open returns a handle for the given database type ("sqlite" or "postgres").
// It does not require the database to be reachable.
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case "postgres":
		conn, err := sql.Open("postgres", url)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(5)
		return conn, nil

	case "sqlite", "":
		conn, err := sql.Open("sqlite", url)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		// One connection serializes writers and keeps :memory: databases alive
		conn.SetMaxOpenConns(1)
		conn.SetConnMaxLifetime(0)
		conn.SetConnMaxIdleTime(0)
		if _, err := conn.Exec(`PRAGMA foreign_keys = ON; PRAGMA busy_timeout = 5000;`); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to configure sqlite: %w", err)
		}
		return conn, nil

	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}
