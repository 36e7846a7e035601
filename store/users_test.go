// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/apperr"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/models"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/testutil"
)

func newUser(id, email, slug string) *models.User {
	now := time.Now().UTC()
	return &models.User{
		ID:            id,
		Name:          "Jane Doe",
		Email:         email,
		Phone:         "555-0100",
		ProfileImage:  models.DefaultProfileImage,
		PortfolioSlug: slug,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestUserCRUD(t *testing.T) {
	s := New(testutil.SetupTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, newUser("u1", "jane@example.com", "jane-doe")))

	got, err := s.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", got.Email)

	bySlug, err := s.GetUserBySlug(ctx, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, "u1", bySlug.ID)

	got.Designation = "Engineer"
	got.IsActive = false
	require.NoError(t, s.UpdateUser(ctx, got))
	got, err = s.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Engineer", got.Designation)
	assert.False(t, got.IsActive)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, s.DeleteUser(ctx, "u1"))
	_, err = s.GetUser(ctx, "u1")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.True(t, apperr.Is(s.DeleteUser(ctx, "u1"), apperr.KindNotFound))
	assert.True(t, apperr.Is(s.UpdateUser(ctx, got), apperr.KindNotFound))
}

func TestUserUniqueness(t *testing.T) {
	s := New(testutil.SetupTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, newUser("u1", "jane@example.com", "jane")))

	err := s.CreateUser(ctx, newUser("u2", "jane@example.com", "other"))
	assert.True(t, apperr.Is(err, apperr.KindConflict), "duplicate email: %v", err)

	err = s.CreateUser(ctx, newUser("u3", "other@example.com", "jane"))
	assert.True(t, apperr.Is(err, apperr.KindConflict), "duplicate slug: %v", err)

	require.NoError(t, s.CreateUser(ctx, newUser("u4", "four@example.com", "four")))
	u4, err := s.GetUser(ctx, "u4")
	require.NoError(t, err)
	u4.Email = "jane@example.com"
	assert.True(t, apperr.Is(s.UpdateUser(ctx, u4), apperr.KindConflict))
}

func TestUserRefs(t *testing.T) {
	s := New(testutil.SetupTestDB(t))
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, newUser("u1", "a@example.com", "a")))
	require.NoError(t, s.CreateUser(ctx, newUser("u2", "b@example.com", "b")))

	refs, err := s.UserRefs(ctx, []string{"u1", "u2", "ghost"})
	require.NoError(t, err)
	assert.Len(t, refs, 2)
	assert.Equal(t, "b", refs["u2"].PortfolioSlug)
	_, ok := refs["ghost"]
	assert.False(t, ok)

	empty, err := s.UserRefs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
