package storage

import (
	"context"
	"errors"
	"io"
)

// Package storage contains blob storage abstractions. A blob is written once
// under an opaque key (the file's stored name) and deleted once; it is never
// renamed or moved. Implementations stream content and never buffer whole
// payloads in memory.

// ErrObjectNotExist is returned by Get when the key has no blob. Callers use
// it to distinguish a missing blob (metadata/storage divergence) from an
// absent record.
var ErrObjectNotExist = errors.New("storage: object does not exist")

// PutObjectOptions define optional parameters for uploading objects.
// Size is the client-declared length and is advisory only; implementations
// measure the persisted byte count themselves and never let the declared
// value bound or truncate the write.
type PutObjectOptions struct {
	Size        int64
	ContentType string
}

// ObjectInfo contains basic information about a stored object. Size is the
// actual number of bytes persisted, which callers treat as authoritative
// over any client-declared length.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
}

// Storage is a blob storage backend.
type Storage interface {
	// Put writes an object under the given key using the provided reader and
	// options, and reports the byte count actually persisted.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its
	// info. Returns ErrObjectNotExist when the key has no blob.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Deleting a missing object is a no-op.
	Delete(ctx context.Context, key string) error
	// Exists reports whether a blob is present under the key.
	Exists(ctx context.Context, key string) (bool, error)
}
