// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mediastore

import (
	"context"
	"io"
	"time"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/metrics"
)

// Object identifies a stored binary. Identifier is what the metadata row
// keeps as its filename and what Remove expects back.
type Object struct {
	Identifier string
	URL        string
}

// Store persists uploaded binaries
type Store interface {
	Put(ctx context.Context, r io.Reader, originalName, category string) (Object, error)
	Remove(ctx context.Context, identifier, category string) error
	Backend() string
}

func observe(backend, operation string, start time.Time, err error) {
	metrics.RecordMediaOp(backend, operation, time.Since(start), err)
}
