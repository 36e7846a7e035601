// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mediastore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/apperr"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/idgen"
)

// LocalStore keeps uploads on disk under <dir>/<category>/ and serves them
// from /uploads/<category>/<file>
type LocalStore struct {
	dir string
	now func() time.Time
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, now: time.Now}, nil
}

// Dir is the root served under /uploads/
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Backend() string { return "local" }

func (s *LocalStore) Put(ctx context.Context, r io.Reader, originalName, category string) (obj Object, err error) {
	start := time.Now()
	defer func() { observe(s.Backend(), "put", start, err) }()

	if err := checkSegment(category); err != nil {
		return Object{}, err
	}
	name, err := idgen.UploadName(originalName, s.now())
	if err != nil {
		return Object{}, apperr.Storage("Failed to store file", err)
	}

	catDir := filepath.Join(s.dir, category)
	if err := os.MkdirAll(catDir, 0o755); err != nil {
		return Object{}, apperr.Storage("Failed to store file", err)
	}

	path := filepath.Join(catDir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return Object{}, apperr.Storage("Failed to store file", err)
	}
	if _, err := io.Copy(f, contextReader{ctx: ctx, r: r}); err != nil {
		f.Close()
		os.Remove(path)
		return Object{}, apperr.Storage("Failed to store file", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return Object{}, apperr.Storage("Failed to store file", err)
	}

	return Object{Identifier: name, URL: "/uploads/" + category + "/" + name}, nil
}

// Remove deletes a stored file. A file that is already gone counts as removed.
func (s *LocalStore) Remove(ctx context.Context, identifier, category string) (err error) {
	start := time.Now()
	defer func() { observe(s.Backend(), "remove", start, err) }()

	if err := checkSegment(category); err != nil {
		return err
	}
	if err := checkSegment(identifier); err != nil {
		return err
	}

	err = os.Remove(filepath.Join(s.dir, category, identifier))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperr.Storage("Failed to delete file", err)
	}
	return nil
}

// checkSegment rejects names that would escape their directory
func checkSegment(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return apperr.Validation("Invalid file name")
	}
	return nil
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
