// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/apperr"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/models"
)

// mediaSQL holds the per-category statements. Photos have no title column
// and only videos can be external; the select lists fill those with constants
// so one scanner serves all three tables.
type mediaSQL struct {
	insert     string
	selectCols string
	table      string
}

var mediaTables = map[string]mediaSQL{
	models.CategoryPhotos: {
		insert:     `INSERT INTO photos (id, filename, src, user_id, uploaded_at) VALUES ($1, $2, $3, $4, $5)`,
		selectCols: `id, '' AS title, filename, src, FALSE AS is_external, NULL AS external_url, user_id, uploaded_at`,
		table:      "photos",
	},
	models.CategoryNews: {
		insert:     `INSERT INTO news (id, filename, src, user_id, uploaded_at, title) VALUES ($1, $2, $3, $4, $5, $6)`,
		selectCols: `id, title, filename, src, FALSE AS is_external, NULL AS external_url, user_id, uploaded_at`,
		table:      "news",
	},
	models.CategoryVideos: {
		insert: `INSERT INTO videos (id, filename, src, user_id, uploaded_at, title, is_external, external_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		selectCols: `id, title, filename, src, is_external, external_url, user_id, uploaded_at`,
		table:      "videos",
	},
}

func mediaTable(category string) (mediaSQL, error) {
	t, ok := mediaTables[category]
	if !ok {
		return mediaSQL{}, apperr.Validation("Invalid type")
	}
	return t, nil
}

// CreateMedia inserts a media record into its category's table
func (s *Store) CreateMedia(ctx context.Context, m *models.MediaItem) error {
	t, err := mediaTable(m.Category)
	if err != nil {
		return err
	}

	args := []any{m.ID, m.Filename, m.Src, nullString(m.UserID), m.UploadedAt}
	switch m.Category {
	case models.CategoryNews:
		args = append(args, m.Title)
	case models.CategoryVideos:
		args = append(args, m.Title, m.IsExternal, nullString(m.ExternalURL))
	}

	if _, err := s.db.ExecContext(ctx, t.insert, args...); err != nil {
		return fmt.Errorf("insert %s: %w", t.table, err)
	}
	return nil
}

// ListMedia returns a category's records newest first
func (s *Store) ListMedia(ctx context.Context, category string) ([]models.MediaItem, error) {
	t, err := mediaTable(category)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+t.selectCols+` FROM `+t.table+` ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.table, err)
	}
	defer rows.Close()

	items := []models.MediaItem{}
	for rows.Next() {
		m, err := scanMedia(rows, category)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.table, err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// FindMediaByFilename loads the record whose stored filename matches
func (s *Store) FindMediaByFilename(ctx context.Context, category, filename string) (*models.MediaItem, error) {
	t, err := mediaTable(category)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+t.selectCols+` FROM `+t.table+` WHERE filename = $1`, filename)
	m, err := scanMedia(row, category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("File not found in database")
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", t.table, err)
	}
	return m, nil
}

// DeleteMedia removes a record by id
func (s *Store) DeleteMedia(ctx context.Context, category, id string) error {
	t, err := mediaTable(category)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM `+t.table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.table, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("File not found in database")
	}
	return nil
}

func scanMedia(row rowScanner, category string) (*models.MediaItem, error) {
	m := models.MediaItem{Category: category}
	var externalURL, userID sql.NullString
	err := row.Scan(&m.ID, &m.Title, &m.Filename, &m.Src, &m.IsExternal, &externalURL, &userID, &m.UploadedAt)
	if err != nil {
		return nil, err
	}
	m.ExternalURL = stringPtr(externalURL)
	m.UserID = stringPtr(userID)
	m.UploadedAt = m.UploadedAt.UTC()
	return &m, nil
}
