// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/apperr"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/models"
)

// GetSettings returns the stored settings for userID, or nil if none saved
func (s *Store) GetSettings(ctx context.Context, userID string) (*models.PortfolioSettings, error) {
	ps, err := getSettings(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return ps, nil
}

// MergeSettings applies patch over the user's current settings (or the
// defaults on first write) and saves the result
func (s *Store) MergeSettings(ctx context.Context, userID string, patch models.SettingsPatch, now time.Time) (*models.PortfolioSettings, error) {
	var out *models.PortfolioSettings

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = $1`, userID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("User not found")
		}
		if err != nil {
			return fmt.Errorf("check user: %w", err)
		}

		current, err := getSettings(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("get settings: %w", err)
		}

		out, err = saveSettings(ctx, tx, userID, current, patch, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// saveSettings merges patch into current and writes the result. current is
// nil when no row was found; if another writer creates the row first, the
// insert is skipped and the patch is merged into that row instead.
func saveSettings(ctx context.Context, tx *sql.Tx, userID string, current *models.PortfolioSettings, patch models.SettingsPatch, now time.Time) (*models.PortfolioSettings, error) {
	isNew := current == nil
	if isNew {
		d := models.DefaultSettings(userID)
		current = &d
		current.CreatedAt = &now
	}
	current.Merge(patch)
	current.UpdatedAt = &now

	cols, err := encodeGroups(current)
	if err != nil {
		return nil, err
	}

	if !isNew {
		_, err = tx.ExecContext(ctx, `
			UPDATE portfolio_settings
			SET colors = $1, fonts = $2, layout = $3, effects = $4, buttons = $5, profile_image = $6, updated_at = $7
			WHERE user_id = $8
		`, cols[0], cols[1], cols[2], cols[3], cols[4], cols[5], now, userID)
		if err != nil {
			return nil, fmt.Errorf("save settings: %w", err)
		}
		return current, nil
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO portfolio_settings (user_id, colors, fonts, layout, effects, buttons, profile_image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO NOTHING
	`, userID, cols[0], cols[1], cols[2], cols[3], cols[4], cols[5], now, now)
	if err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	if n == 1 {
		return current, nil
	}

	existing, err := getSettings(ctx, tx, userID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("save settings: row for %s vanished", userID)
	}
	return saveSettings(ctx, tx, userID, existing, patch, now)
}

func getSettings(ctx context.Context, q queryer, userID string) (*models.PortfolioSettings, error) {
	var cols [6]string
	var createdAt, updatedAt time.Time
	err := q.QueryRowContext(ctx, `
		SELECT colors, fonts, layout, effects, buttons, profile_image, created_at, updated_at
		FROM portfolio_settings WHERE user_id = $1
	`, userID).Scan(&cols[0], &cols[1], &cols[2], &cols[3], &cols[4], &cols[5], &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ps := models.DefaultSettings(userID)
	for i, name := range models.SettingsGroups {
		var g models.SettingsGroup
		if err := json.Unmarshal([]byte(cols[i]), &g); err != nil {
			return nil, fmt.Errorf("decode settings group %s: %w", name, err)
		}
		*ps.Group(name) = g
	}
	createdAt, updatedAt = createdAt.UTC(), updatedAt.UTC()
	ps.CreatedAt = &createdAt
	ps.UpdatedAt = &updatedAt
	return &ps, nil
}

// encodeGroups serializes the groups in models.SettingsGroups order
func encodeGroups(ps *models.PortfolioSettings) ([6]string, error) {
	var cols [6]string
	for i, name := range models.SettingsGroups {
		data, err := json.Marshal(*ps.Group(name))
		if err != nil {
			return cols, fmt.Errorf("encode settings group %s: %w", name, err)
		}
		cols[i] = string(data)
	}
	return cols, nil
}
