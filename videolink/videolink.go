// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package videolink

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// ErrUnrecognized is returned for links that are not YouTube videos
var ErrUnrecognized = errors.New("unrecognized YouTube URL")

var videoID = regexp.MustCompile(`^[A-Za-z0-9_-]{6,64}$`)

// Link is a parsed YouTube video reference
type Link struct {
	ID       string
	Original string
}

// EmbedURL is the player URL stored as the video's src
func (l Link) EmbedURL() string {
	return "https://www.youtube.com/embed/" + l.ID
}

// ParseYouTube extracts the video id from youtu.be/<id>,
// youtube.com/watch?v=<id>, youtube.com/embed/<id> and
// youtube.com/shorts/<id>. A missing scheme is treated as https.
func ParseYouTube(raw string) (Link, error) {
	original := strings.TrimSpace(raw)
	if original == "" {
		return Link{}, ErrUnrecognized
	}

	s := original
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return Link{}, ErrUnrecognized
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	var id string
	switch host {
	case "youtu.be":
		id = firstSegment(u.Path)
	case "youtube.com", "youtube-nocookie.com":
		switch seg := firstSegment(u.Path); seg {
		case "watch":
			id = u.Query().Get("v")
		case "embed", "shorts", "live":
			id = secondSegment(u.Path)
		}
	}

	if !videoID.MatchString(id) {
		return Link{}, ErrUnrecognized
	}
	return Link{ID: id, Original: original}, nil
}

func segments(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}

func firstSegment(p string) string {
	return segments(p)[0]
}

func secondSegment(p string) string {
	parts := segments(p)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
