// Package storage stores user-uploaded objects such as avatars.
package storage

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no bucket is configured.
var ErrNotConfigured = errors.New("object storage is not configured")

// ObjectStorage defines the object operations the application needs.
type ObjectStorage interface {
	// Put writes body under key, replacing any existing object.
	Put(ctx context.Context, key, contentType string, body []byte) error

	// Delete removes an object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// PublicURL returns the URL clients use to fetch key.
	PublicURL(key string) string
}
