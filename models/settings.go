// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// SettingsGroup is a flat mapping of style keys to values
type SettingsGroup map[string]string

// Settings group names, in document order
var SettingsGroups = []string{"colors", "fonts", "layout", "effects", "buttons", "profileImage"}

type PortfolioSettings struct {
	UserID       string        `json:"userId"`
	Colors       SettingsGroup `json:"colors"`
	Fonts        SettingsGroup `json:"fonts"`
	Layout       SettingsGroup `json:"layout"`
	Effects      SettingsGroup `json:"effects"`
	Buttons      SettingsGroup `json:"buttons"`
	ProfileImage SettingsGroup `json:"profileImage"`
	CreatedAt    *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time    `json:"updatedAt,omitempty"`
}

// SettingsPatch holds the groups supplied in a settings write
type SettingsPatch map[string]SettingsGroup

// DefaultSettings returns the document served before a user saves anything
func DefaultSettings(userID string) PortfolioSettings {
	return PortfolioSettings{
		UserID: userID,
		Colors: SettingsGroup{
			"primary":    "#4361ee",
			"secondary":  "#7209b7",
			"accent":     "#f72585",
			"background": "#ffffff",
			"text":       "#1e293b",
			"cardBg":     "#f8fafc",
		},
		Fonts: SettingsGroup{
			"heading": "Inter",
			"body":    "Inter",
			"size":    "medium",
		},
		Layout: SettingsGroup{
			"headerStyle":     "modern",
			"cardStyle":       "rounded",
			"spacing":         "comfortable",
			"borderRadius":    "medium",
			"shadowIntensity": "medium",
		},
		Effects: SettingsGroup{
			"backgroundType":     "solid",
			"backgroundGradient": "linear-gradient(135deg, #667eea 0%, #764ba2 100%)",
			"backgroundPattern":  "none",
			"hoverEffect":        "none",
			"transition":         "smooth",
		},
		Buttons: SettingsGroup{
			"style":  "rounded",
			"size":   "medium",
			"effect": "shadow",
		},
		ProfileImage: SettingsGroup{
			"shape":       "circle",
			"size":        "large",
			"border":      "gradient",
			"borderWidth": "medium",
			"shadow":      "medium",
			"animation":   "none",
		},
	}
}

// Group returns a pointer to the named group, or nil if the name is unknown
func (s *PortfolioSettings) Group(name string) *SettingsGroup {
	switch name {
	case "colors":
		return &s.Colors
	case "fonts":
		return &s.Fonts
	case "layout":
		return &s.Layout
	case "effects":
		return &s.Effects
	case "buttons":
		return &s.Buttons
	case "profileImage":
		return &s.ProfileImage
	default:
		return nil
	}
}

// Merge applies a shallow per-group merge: supplied keys overwrite, other
// keys and unmentioned groups are left alone
func (s *PortfolioSettings) Merge(patch SettingsPatch) {
	for name, values := range patch {
		g := s.Group(name)
		if g == nil {
			continue
		}
		if *g == nil {
			*g = SettingsGroup{}
		}
		for k, v := range values {
			(*g)[k] = v
		}
	}
}

// ParseSettingsPatch decodes a settings write body. Keys that are not
// settings groups (userId, timestamps) are ignored; a group whose value is
// not an object of strings is rejected.
func ParseSettingsPatch(body []byte) (SettingsPatch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("invalid settings document: %w", err)
	}

	patch := SettingsPatch{}
	for _, name := range SettingsGroups {
		data, ok := raw[name]
		if !ok || string(data) == "null" {
			continue
		}
		var g SettingsGroup
		if err := json.Unmarshal(data, &g); err != nil {
			return nil, fmt.Errorf("settings group %q must be an object of strings", name)
		}
		patch[name] = g
	}
	return patch, nil
}

// SettingsEvent is broadcast after a settings write
type SettingsEvent struct {
	UserID string `json:"userId"`
}
