package repository

import (
	"context"

	"dataroom/internal/model"
)

// FolderRepository defines data access for the folder tree using SQL queries
// only. No business logic here — strictly persistence operations. Subtree
// semantics (breadcrumbs, cascading blob cleanup) are recomputed by the
// service layer from identity lookups against this repository.
type FolderRepository interface {
	// Create inserts a new folder record and returns the stored row.
	Create(ctx context.Context, folder *model.Folder) (*model.Folder, error)

	// FindByID returns a folder by its ID.
	FindByID(ctx context.Context, id string) (*model.Folder, error)

	// OldestRoot returns the root folder (parent IS NULL) with the earliest
	// created_at, or sql.ErrNoRows if no root exists yet.
	OldestRoot(ctx context.Context) (*model.Folder, error)

	// ListRoots returns all root folders ordered by name ascending.
	ListRoots(ctx context.Context) ([]model.Folder, error)

	// ListChildren returns one page of a folder's immediate sub-folders
	// ordered by name ascending, plus the total child count.
	ListChildren(ctx context.Context, parentID string, pq PageQuery) (*PageResult[model.Folder], error)

	// ListAllChildren returns every immediate sub-folder of parentID.
	// Used by the cascading delete traversal.
	ListAllChildren(ctx context.Context, parentID string) ([]model.Folder, error)

	// FindChildByName returns the first immediate sub-folder with the given
	// name, or (nil, nil) if none exists. Sibling name duplicates are legal;
	// this lookup exists for idempotent seeding only.
	FindChildByName(ctx context.Context, parentID, name string) (*model.Folder, error)

	// Rename replaces the folder's name in place. Returns sql.ErrNoRows if
	// the folder does not exist.
	Rename(ctx context.Context, id, name string) error

	// Delete removes a folder record. Descendant folder and file records are
	// removed by the ON DELETE CASCADE foreign keys.
	Delete(ctx context.Context, id string) error

	// SearchByName returns folders whose name contains the query,
	// case-insensitive, ordered by name ascending, capped at limit.
	SearchByName(ctx context.Context, query string, limit int) ([]model.Folder, error)
}
