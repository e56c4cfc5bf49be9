package repository

import (
	"context"

	"dataroom/internal/model"
)

// FileRepository defines data access for file metadata records.
// Blob content is not handled here; see the storage package.
type FileRepository interface {
	// Create inserts a new file record and returns the stored row.
	Create(ctx context.Context, file *model.File) (*model.File, error)

	// FindByID returns a file by its ID.
	FindByID(ctx context.Context, id string) (*model.File, error)

	// ListByFolder returns one page of a folder's files ordered by name
	// ascending, plus the total file count for that folder.
	ListByFolder(ctx context.Context, folderID string, pq PageQuery) (*PageResult[model.File], error)

	// ListAllByFolder returns every file in the folder (no paging).
	// Used by the cascading delete traversal to locate blobs.
	ListAllByFolder(ctx context.Context, folderID string) ([]model.File, error)

	// FindByFolderAndName returns the first file in the folder with the
	// given user-visible name, or (nil, nil) if none exists. Used by
	// idempotent seeding only.
	FindByFolderAndName(ctx context.Context, folderID, name string) (*model.File, error)

	// Rename replaces the file's user-visible name. Returns sql.ErrNoRows if
	// the file does not exist. The stored name never changes.
	Rename(ctx context.Context, id, name string) error

	// UpdateSize sets size_bytes, used when a missing blob is re-created
	// during seeding.
	UpdateSize(ctx context.Context, id string, sizeBytes int64) error

	// Delete removes a file record. It returns nil if the row was deleted or
	// did not exist.
	Delete(ctx context.Context, id string) error

	// SearchByName returns files whose name contains the query,
	// case-insensitive, ordered by name ascending, capped at limit.
	SearchByName(ctx context.Context, query string, limit int) ([]model.File, error)
}
