// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package videolink recognizes YouTube video links and turns them into
// embeddable player URLs.
package videolink
