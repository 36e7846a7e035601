// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package validation wraps go-playground/validator with a shared instance
// that reports JSON field names and returns apperr validation errors.
package validation
