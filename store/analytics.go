// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/models"
)

// RecordEvent stores an analytics event
func (s *Store) RecordEvent(ctx context.Context, ev *models.AnalyticsEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analytics_events (id, event_type, file_type, file_name, ip_hash, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, ev.ID, ev.EventType, nullString(ev.FileType), nullString(ev.FileName), ev.IPHash, ev.UserAgent, ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert analytics event: %w", err)
	}
	return nil
}

// CountEvents returns the number of events per type
func (s *Store) CountEvents(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT event_type, COUNT(*) FROM analytics_events GROUP BY event_type`)
	if err != nil {
		return nil, fmt.Errorf("count analytics events: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var eventType string
		var n int
		if err := rows.Scan(&eventType, &n); err != nil {
			return nil, fmt.Errorf("scan analytics count: %w", err)
		}
		counts[eventType] = n
	}
	return counts, rows.Err()
}
