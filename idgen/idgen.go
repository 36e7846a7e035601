// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package idgen

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns a random identifier for database records
func NewID() string {
	return uuid.NewString()
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every run of non-alphanumerics into a
// single hyphen, trimming hyphens at either end
func Slugify(s string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}

// UploadName builds a collision-resistant file name that keeps the original
// extension: <unix ms>-<9 random digits><ext>
func UploadName(original string, now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%d-%09d%s", now.UnixMilli(), n.Int64(), ext), nil
}

// ObjectKey builds a cloud storage key for a category
func ObjectKey(category, original string) string {
	return "uploads/" + category + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(original))
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
