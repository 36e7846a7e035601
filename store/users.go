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

const userColumns = `id, name, email, phone, address, designation, organization,
	profile_image, about_me, portfolio_slug, is_active, created_at, updated_at`

var errUserExists = apperr.Conflict("A user with this email or portfolio slug already exists")

// CreateUser inserts a user; duplicate email or slug is a conflict
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, u.ID, u.Name, u.Email, u.Phone, u.Address, u.Designation, u.Organization,
		u.ProfileImage, u.AboutMe, u.PortfolioSlug, u.IsActive, u.CreatedAt, u.UpdatedAt)
	if isUniqueViolation(err) {
		return errUserExists
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUser loads a user by id
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.getUserWhere(ctx, `id = $1`, id)
}

// GetUserBySlug loads a user by portfolio slug
func (s *Store) GetUserBySlug(ctx context.Context, slug string) (*models.User, error) {
	return s.getUserWhere(ctx, `portfolio_slug = $1`, slug)
}

func (s *Store) getUserWhere(ctx context.Context, cond string, arg any) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+cond, arg)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// ListUsers returns all users newest first
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateUser overwrites every mutable column of u
func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET name = $1, email = $2, phone = $3, address = $4, designation = $5,
			organization = $6, profile_image = $7, about_me = $8, portfolio_slug = $9,
			is_active = $10, updated_at = $11
		WHERE id = $12
	`, u.Name, u.Email, u.Phone, u.Address, u.Designation, u.Organization, u.ProfileImage,
		u.AboutMe, u.PortfolioSlug, u.IsActive, u.UpdatedAt, u.ID)
	if isUniqueViolation(err) {
		return errUserExists
	}
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}

// DeleteUser removes a user. Polls, media and settings that reference the
// user are left in place.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}

// UserRefs resolves user ids to display references. Unknown ids are absent
// from the result.
func (s *Store) UserRefs(ctx context.Context, ids []string) (map[string]models.UserRef, error) {
	refs := make(map[string]models.UserRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, portfolio_slug FROM users
		WHERE id IN (`+placeholders(1, len(ids))+`)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("resolve users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.UserRef
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.PortfolioSlug); err != nil {
			return nil, fmt.Errorf("scan user ref: %w", err)
		}
		refs[r.ID] = r
	}
	return refs, rows.Err()
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Address, &u.Designation, &u.Organization,
		&u.ProfileImage, &u.AboutMe, &u.PortfolioSlug, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}
