// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// DefaultProfileImage is used when a user has no uploaded image
const DefaultProfileImage = "https://via.placeholder.com/150x150/4f46e5/ffffff?text=Profile"

type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	Designation   string    `json:"designation"`
	Organization  string    `json:"organization"`
	ProfileImage  string    `json:"profileImage"`
	AboutMe       string    `json:"aboutMe"`
	PortfolioSlug string    `json:"portfolioSlug"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type CreateUserRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,max=50"`
	Address       string `json:"address" validate:"max=500"`
	Designation   string `json:"designation" validate:"max=200"`
	Organization  string `json:"organization" validate:"max=200"`
	ProfileImage  string `json:"profileImage" validate:"omitempty,url"`
	AboutMe       string `json:"aboutMe" validate:"max=5000"`
	PortfolioSlug string `json:"portfolioSlug" validate:"max=200"`
}

// UpdateUserRequest only changes the fields that are present
type UpdateUserRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone" validate:"omitempty,min=1,max=50"`
	Address       *string `json:"address" validate:"omitempty,max=500"`
	Designation   *string `json:"designation" validate:"omitempty,max=200"`
	Organization  *string `json:"organization" validate:"omitempty,max=200"`
	ProfileImage  *string `json:"profileImage" validate:"omitempty,url"`
	AboutMe       *string `json:"aboutMe" validate:"omitempty,max=5000"`
	PortfolioSlug *string `json:"portfolioSlug" validate:"omitempty,max=200"`
	IsActive      *bool   `json:"isActive"`
}

// UserEvent is broadcast when a user record changes
type UserEvent struct {
	UserID string `json:"userId"`
}
