// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/models"
)

// CreateSuggestion stores a visitor suggestion
func (s *Store) CreateSuggestion(ctx context.Context, sg *models.Suggestion) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO suggestions (id, message, submitted_at) VALUES ($1, $2, $3)
	`, sg.ID, sg.Message, sg.SubmittedAt)
	if err != nil {
		return fmt.Errorf("insert suggestion: %w", err)
	}
	return nil
}

// ListSuggestions returns suggestions newest first
func (s *Store) ListSuggestions(ctx context.Context) ([]models.Suggestion, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, message, submitted_at FROM suggestions ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	defer rows.Close()

	out := []models.Suggestion{}
	for rows.Next() {
		var sg models.Suggestion
		if err := rows.Scan(&sg.ID, &sg.Message, &sg.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		sg.SubmittedAt = sg.SubmittedAt.UTC()
		out = append(out, sg)
	}
	return out, rows.Err()
}

// CreateAdminMessage deactivates every existing message and inserts m as the
// only active one
func (s *Store) CreateAdminMessage(ctx context.Context, m *models.AdminMessage) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE admin_messages SET is_active = $1 WHERE is_active = $2`, false, true); err != nil {
			return fmt.Errorf("deactivate admin messages: %w", err)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO admin_messages (id, message, is_active, created_at) VALUES ($1, $2, $3, $4)
		`, m.ID, m.Message, m.IsActive, m.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert admin message: %w", err)
		}
		return nil
	})
}

// ActiveAdminMessage returns the newest active message, or nil if none
func (s *Store) ActiveAdminMessage(ctx context.Context) (*models.AdminMessage, error) {
	var m models.AdminMessage
	err := s.db.QueryRowContext(ctx, `
		SELECT id, message, is_active, created_at FROM admin_messages
		WHERE is_active = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, true).Scan(&m.ID, &m.Message, &m.IsActive, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get admin message: %w", err)
	}
	m.CreatedAt = m.CreatedAt.UTC()
	return &m, nil
}

// ListAdminMessages returns all messages newest first
func (s *Store) ListAdminMessages(ctx context.Context) ([]models.AdminMessage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, message, is_active, created_at FROM admin_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list admin messages: %w", err)
	}
	defer rows.Close()

	out := []models.AdminMessage{}
	for rows.Next() {
		var m models.AdminMessage
		if err := rows.Scan(&m.ID, &m.Message, &m.IsActive, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan admin message: %w", err)
		}
		m.CreatedAt = m.CreatedAt.UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}
