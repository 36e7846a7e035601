// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mediastore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path"
	"path/filepath"
	"time"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	gobreaker "github.com/sony/gobreaker/v2"
	"google.golang.org/api/option"

	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/apperr"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/idgen"
	"github.com/ashishpimple94/Protfolio-Backend-Nanawalke/metrics"
)

const breakerName = "cloud-media"

// bucket is the slice of a storage bucket the cloud store uses
type bucket interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	Name() string
}

// ErrObjectNotExist is returned by a bucket when the key is unknown
var ErrObjectNotExist = gcs.ErrObjectNotExist

// CloudStore keeps uploads in a Firebase Cloud Storage bucket
type CloudStore struct {
	bucket bucket
	cb     *gobreaker.CircuitBreaker[struct{}]
}

// NewCloudStore connects to bucketName through Firebase. credentialsFile may
// be empty to use application default credentials.
func NewCloudStore(ctx context.Context, bucketName, credentialsFile string) (*CloudStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucketName}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase: %w", err)
	}
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	handle, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %q: %w", bucketName, err)
	}

	return newCloudStore(gcsBucket{handle: handle, name: bucketName}), nil
}

func newCloudStore(b bucket) *CloudStore {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})

	return &CloudStore{bucket: b, cb: cb}
}

func (s *CloudStore) Backend() string { return "cloud" }

func (s *CloudStore) Put(ctx context.Context, r io.Reader, originalName, category string) (obj Object, err error) {
	start := time.Now()
	defer func() { observe(s.Backend(), "put", start, err) }()

	if err := checkSegment(category); err != nil {
		return Object{}, err
	}
	key := idgen.ObjectKey(category, originalName)
	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.cb.Execute(func() (struct{}, error) {
		return struct{}{}, s.bucket.Upload(ctx, key, contentType, r)
	})
	if err != nil {
		return Object{}, apperr.Storage("Failed to store file", err)
	}

	return Object{
		Identifier: path.Base(key),
		URL:        fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket.Name(), key),
	}, nil
}

// Remove deletes an object. An object that is already gone counts as removed.
func (s *CloudStore) Remove(ctx context.Context, identifier, category string) (err error) {
	start := time.Now()
	defer func() { observe(s.Backend(), "remove", start, err) }()

	if err := checkSegment(category); err != nil {
		return err
	}
	if err := checkSegment(identifier); err != nil {
		return err
	}

	_, err = s.cb.Execute(func() (struct{}, error) {
		err := s.bucket.Delete(ctx, objectKey(category, identifier))
		if errors.Is(err, ErrObjectNotExist) {
			return struct{}{}, nil
		}
		return struct{}{}, err
	})
	if err != nil {
		return apperr.Storage("Failed to delete file", err)
	}
	return nil
}

func objectKey(category, identifier string) string {
	return "uploads/" + category + "/" + identifier
}

type gcsBucket struct {
	handle *gcs.BucketHandle
	name   string
}

func (b gcsBucket) Name() string { return b.name }

func (b gcsBucket) Upload(ctx context.Context, key, contentType string, r io.Reader) error {
	w := b.handle.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close object %s: %w", key, err)
	}
	return nil
}

func (b gcsBucket) Delete(ctx context.Context, key string) error {
	return b.handle.Object(key).Delete(ctx)
}
