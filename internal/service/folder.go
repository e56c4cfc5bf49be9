package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dataroom/internal/model"
	"dataroom/internal/repository"
	"dataroom/internal/storage"
)

// DefaultRootName is the label of the dataroom created when none exists.
const DefaultRootName = "General Dataroom"

// Pagination bounds for folder contents. Folder and file windows are clamped
// independently with the same rules.
const (
	DefaultPage     = 1
	DefaultPageSize = 50
	MinPageSize     = 10
	MaxPageSize     = 100
)

// ContentsParams carries the requested pagination. Absent parameters are
// defaulted by the transport layer before they get here; out-of-range values
// are clamped, never rejected, so an explicit page_size=0 lands on the
// minimum rather than the default.
type ContentsParams struct {
	FolderPage     int
	FolderPageSize int
	FilePage       int
	FilePageSize   int
}

// FolderContents is the service-level DTO for one paginated folder view.
// The pagination fields echo the values actually applied after clamping so
// callers can compute page counts and detect clamping.
type FolderContents struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Breadcrumbs    []model.Folder `json:"breadcrumbs"`
	Folders        []model.Folder `json:"folders"`
	Files          []model.File   `json:"files"`
	TotalFolders   int            `json:"total_folders"`
	TotalFiles     int            `json:"total_files"`
	FolderPage     int            `json:"folder_page"`
	FolderPageSize int            `json:"folder_page_size"`
	FilePage       int            `json:"file_page"`
	FilePageSize   int            `json:"file_page_size"`
}

// FolderService owns the dataroom tree: root resolution, structural
// mutations, cascading deletion, and paginated listing.
type FolderService interface {
	// EnsureDefaultRoot returns the oldest root folder, creating the default
	// dataroom if none exists. Repeated calls never create a second root.
	EnsureDefaultRoot(ctx context.Context) (*model.Folder, error)

	// GetRoot resolves a root folder: the default one when dataroomID is
	// empty, otherwise the named dataroom (which must be a root).
	GetRoot(ctx context.Context, dataroomID string) (*model.Folder, error)

	// ListRoots returns every dataroom root ordered by name.
	ListRoots(ctx context.Context) ([]model.Folder, error)

	// CreateRoot creates a new independent dataroom.
	CreateRoot(ctx context.Context, name string) (*model.Folder, error)

	// CreateFolder creates a child folder under an existing parent.
	CreateFolder(ctx context.Context, parentID, name string) (*model.Folder, error)

	// Rename replaces the folder's name in place.
	Rename(ctx context.Context, id, name string) (*model.Folder, error)

	// Delete removes a non-root folder, every descendant folder and file
	// record, and every blob under the subtree.
	Delete(ctx context.Context, id string) error

	// Contents returns one breadcrumb-annotated, independently paginated
	// view of a folder's immediate children and files.
	Contents(ctx context.Context, id string, p ContentsParams) (*FolderContents, error)
}

type folderService struct {
	folders repository.FolderRepository
	files   repository.FileRepository
	store   storage.Storage
}

// NewFolderService constructs a new FolderService.
func NewFolderService(folders repository.FolderRepository, files repository.FileRepository, store storage.Storage) FolderService {
	return &folderService{folders: folders, files: files, store: store}
}

// ensureDefaultRoot is shared with the seeder, which works at repository
// level.
func ensureDefaultRoot(ctx context.Context, folders repository.FolderRepository) (*model.Folder, error) {
	root, err := folders.OldestRoot(ctx)
	if err == nil {
		return root, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find oldest root: %w", err)
	}
	return folders.Create(ctx, &model.Folder{
		ID:        uuid.NewString(),
		Name:      DefaultRootName,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *folderService) EnsureDefaultRoot(ctx context.Context) (*model.Folder, error) {
	return ensureDefaultRoot(ctx, s.folders)
}

func (s *folderService) GetRoot(ctx context.Context, dataroomID string) (*model.Folder, error) {
	if dataroomID == "" {
		return s.EnsureDefaultRoot(ctx)
	}
	folder, err := s.folders.FindByID(ctx, dataroomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDataroomNotFound
		}
		return nil, err
	}
	if !folder.IsRoot() {
		return nil, ErrDataroomNotFound
	}
	return folder, nil
}

func (s *folderService) ListRoots(ctx context.Context) ([]model.Folder, error) {
	return s.folders.ListRoots(ctx)
}

func (s *folderService) CreateRoot(ctx context.Context, name string) (*model.Folder, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	return s.folders.Create(ctx, &model.Folder{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *folderService) CreateFolder(ctx context.Context, parentID, name string) (*model.Folder, error) {
	if parentID == "" {
		return nil, ErrIDRequired
	}
	if name == "" {
		return nil, ErrNameRequired
	}
	// Sibling name duplicates are allowed; only parent existence is checked.
	if _, err := s.folders.FindByID(ctx, parentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}
	return s.folders.Create(ctx, &model.Folder{
		ID:        uuid.NewString(),
		Name:      name,
		ParentID:  &parentID,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *folderService) Rename(ctx context.Context, id, name string) (*model.Folder, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if name == "" {
		return nil, ErrNameRequired
	}
	if err := s.folders.Rename(ctx, id, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}
	return s.folders.FindByID(ctx, id)
}

// Delete removes the subtree's blobs depth-first, then deletes the folder
// record; the cascading foreign keys remove every descendant record in one
// statement. Blob removal and record removal are not atomic — a crash in
// between can briefly surface files as Gone (documented gap).
func (s *folderService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	folder, err := s.folders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrFolderNotFound
		}
		return err
	}
	if folder.IsRoot() {
		return ErrRootFolder
	}

	if err := s.removeSubtreeBlobs(ctx, folder.ID); err != nil {
		return err
	}
	return s.folders.Delete(ctx, folder.ID)
}

// removeSubtreeBlobs walks the tree depth-first in pre-order, deleting every
// file blob under folderID. One blob per file record; missing blobs are
// skipped by the storage contract.
func (s *folderService) removeSubtreeBlobs(ctx context.Context, folderID string) error {
	files, err := s.files.ListAllByFolder(ctx, folderID)
	if err != nil {
		return fmt.Errorf("list files of %s: %w", folderID, err)
	}
	for _, f := range files {
		if err := s.store.Delete(ctx, f.StoredName); err != nil {
			return fmt.Errorf("delete blob %s: %w", f.StoredName, err)
		}
	}

	children, err := s.folders.ListAllChildren(ctx, folderID)
	if err != nil {
		return fmt.Errorf("list children of %s: %w", folderID, err)
	}
	for _, child := range children {
		if err := s.removeSubtreeBlobs(ctx, child.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *folderService) Contents(ctx context.Context, id string, p ContentsParams) (*FolderContents, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	folder, err := s.folders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}

	folderPage := clampPage(p.FolderPage)
	folderPageSize := clampPageSize(p.FolderPageSize)
	filePage := clampPage(p.FilePage)
	filePageSize := clampPageSize(p.FilePageSize)

	breadcrumbs, err := s.breadcrumbs(ctx, folder)
	if err != nil {
		return nil, err
	}

	childFolders, err := s.folders.ListChildren(ctx, folder.ID, repository.PageQuery{
		Limit:  folderPageSize,
		Offset: (folderPage - 1) * folderPageSize,
	})
	if err != nil {
		return nil, err
	}

	childFiles, err := s.files.ListByFolder(ctx, folder.ID, repository.PageQuery{
		Limit:  filePageSize,
		Offset: (filePage - 1) * filePageSize,
	})
	if err != nil {
		return nil, err
	}

	return &FolderContents{
		ID:             folder.ID,
		Name:           folder.Name,
		Breadcrumbs:    breadcrumbs,
		Folders:        childFolders.Items,
		Files:          childFiles.Items,
		TotalFolders:   childFolders.Total,
		TotalFiles:     childFiles.Total,
		FolderPage:     folderPage,
		FolderPageSize: folderPageSize,
		FilePage:       filePage,
		FilePageSize:   filePageSize,
	}, nil
}

// breadcrumbs walks the parent chain up to the root and returns the chain
// ordered root first, self last. The chain is finite because parent_id is
// assigned once at creation and never changed.
func (s *folderService) breadcrumbs(ctx context.Context, folder *model.Folder) ([]model.Folder, error) {
	chain := []model.Folder{*folder}
	current := folder
	for current.ParentID != nil {
		parent, err := s.folders.FindByID(ctx, *current.ParentID)
		if err != nil {
			return nil, fmt.Errorf("resolve parent of %s: %w", current.ID, err)
		}
		chain = append([]model.Folder{*parent}, chain...)
		current = parent
	}
	return chain, nil
}

func clampPage(page int) int {
	if page < 1 {
		return DefaultPage
	}
	return page
}

func clampPageSize(size int) int {
	if size < MinPageSize {
		return MinPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}
