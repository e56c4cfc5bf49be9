package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"dataroom/internal/model"
	"dataroom/internal/repository"
	repomocks "dataroom/internal/repository/mocks"
	storagemocks "dataroom/internal/storage/mocks"
)

func newFolderServiceWithMocks() (FolderService, *repomocks.MockFolderRepository, *repomocks.MockFileRepository, *storagemocks.MockStorage) {
	folders := new(repomocks.MockFolderRepository)
	files := new(repomocks.MockFileRepository)
	store := new(storagemocks.MockStorage)
	return NewFolderService(folders, files, store), folders, files, store
}

func TestFolderService_EnsureDefaultRoot(t *testing.T) {
	ctx := context.Background()

	t.Run("returns existing root without creating", func(t *testing.T) {
		svc, folders, _, _ := newFolderServiceWithMocks()
		existing := &model.Folder{ID: "root-id", Name: "General Dataroom", CreatedAt: time.Now()}
		folders.On("OldestRoot", ctx).Return(existing, nil)

		root, err := svc.EnsureDefaultRoot(ctx)

		assert.NoError(t, err)
		assert.Equal(t, "root-id", root.ID)
		folders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("creates the default root when none exists", func(t *testing.T) {
		svc, folders, _, _ := newFolderServiceWithMocks()
		folders.On("OldestRoot", ctx).Return(nil, sql.ErrNoRows)
		folders.On("Create", ctx, mock.MatchedBy(func(f *model.Folder) bool {
			return f.Name == DefaultRootName && f.ParentID == nil && f.ID != ""
		})).Return(&model.Folder{ID: "new-root", Name: DefaultRootName}, nil)

		root, err := svc.EnsureDefaultRoot(ctx)

		assert.NoError(t, err)
		assert.Equal(t, DefaultRootName, root.Name)
		folders.AssertExpectations(t)
	})
}

func TestFolderService_GetRoot(t *testing.T) {
	ctx := context.Background()

	t.Run("empty id resolves the default root", func(t *testing.T) {
		svc, folders, _, _ := newFolderServiceWithMocks()
		folders.On("OldestRoot", ctx).Return(&model.Folder{ID: "root-id"}, nil)

		root, err := svc.GetRoot(ctx, "")

		assert.NoError(t, err)
		assert.Equal(t, "root-id", root.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, folders, _, _ := newFolderServiceWithMocks()
		folders.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.GetRoot(ctx, "missing")

		assert.ErrorIs(t, err, ErrDataroomNotFound)
	})

	t.Run("non-root folder is not a dataroom", func(t *testing.T) {
		svc, folders, _, _ := newFolderServiceWithMocks()
		parent := "parent-id"
		folders.On("FindByID", ctx, "child-id").Return(&model.Folder{ID: "child-id", ParentID: &parent}, nil)

		_, err := svc.GetRoot(ctx, "child-id")

		assert.ErrorIs(t, err, ErrDataroomNotFound)
	})
}

func TestFolderService_CreateFolder(t *testing.T) {
	ctx := context.Background()

	t.Run("missing parent", func(t *testing.T) {
		svc, folders, _, _ := newFolderServiceWithMocks()
		folders.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.CreateFolder(ctx, "missing", "New Folder")

		assert.ErrorIs(t, err, ErrFolderNotFound)
	})

	t.Run("creates under existing parent", func(t *testing.T) {
		svc, folders, _, _ := newFolderServiceWithMocks()
		folders.On("FindByID", ctx, "parent-id").Return(&model.Folder{ID: "parent-id"}, nil)
		folders.On("Create", ctx, mock.MatchedBy(func(f *model.Folder) bool {
			return f.Name == "New Folder" && f.ParentID != nil && *f.ParentID == "parent-id"
		})).Return(&model.Folder{ID: "new-id", Name: "New Folder"}, nil)

		folder, err := svc.CreateFolder(ctx, "parent-id", "New Folder")

		assert.NoError(t, err)
		assert.Equal(t, "new-id", folder.ID)
		folders.AssertExpectations(t)
	})

	t.Run("empty name", func(t *testing.T) {
		svc, _, _, _ := newFolderServiceWithMocks()

		_, err := svc.CreateFolder(ctx, "parent-id", "")

		assert.ErrorIs(t, err, ErrNameRequired)
	})
}

func TestFolderService_Rename(t *testing.T) {
	ctx := context.Background()

	t.Run("missing folder", func(t *testing.T) {
		svc, folders, _, _ := newFolderServiceWithMocks()
		folders.On("Rename", ctx, "missing", "Renamed").Return(sql.ErrNoRows)

		_, err := svc.Rename(ctx, "missing", "Renamed")

		assert.ErrorIs(t, err, ErrFolderNotFound)
	})

	t.Run("returns the renamed folder", func(t *testing.T) {
		svc, folders, _, _ := newFolderServiceWithMocks()
		folders.On("Rename", ctx, "folder-id", "Renamed").Return(nil)
		folders.On("FindByID", ctx, "folder-id").Return(&model.Folder{ID: "folder-id", Name: "Renamed"}, nil)

		folder, err := svc.Rename(ctx, "folder-id", "Renamed")

		assert.NoError(t, err)
		assert.Equal(t, "Renamed", folder.Name)
	})
}

func TestFolderService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("missing folder", func(t *testing.T) {
		svc, folders, _, _ := newFolderServiceWithMocks()
		folders.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrFolderNotFound)
	})

	t.Run("root folders are protected", func(t *testing.T) {
		svc, folders, _, _ := newFolderServiceWithMocks()
		folders.On("FindByID", ctx, "root-id").Return(&model.Folder{ID: "root-id"}, nil)

		assert.ErrorIs(t, svc.Delete(ctx, "root-id"), ErrRootFolder)
		folders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("removes every blob in the subtree before the record", func(t *testing.T) {
		svc, folders, files, store := newFolderServiceWithMocks()
		parent := "root-id"
		target := &model.Folder{ID: "target-id", Name: "Financials", ParentID: &parent}
		child := model.Folder{ID: "child-id", Name: "Quarterly Reports", ParentID: &target.ID}

		folders.On("FindByID", ctx, "target-id").Return(target, nil)
		files.On("ListAllByFolder", ctx, "target-id").Return([]model.File{{ID: "f1", StoredName: "a.pdf"}}, nil)
		folders.On("ListAllChildren", ctx, "target-id").Return([]model.Folder{child}, nil)
		files.On("ListAllByFolder", ctx, "child-id").Return([]model.File{{ID: "f2", StoredName: "b.pdf"}}, nil)
		folders.On("ListAllChildren", ctx, "child-id").Return([]model.Folder{}, nil)
		store.On("Delete", ctx, "a.pdf").Return(nil)
		store.On("Delete", ctx, "b.pdf").Return(nil)
		folders.On("Delete", ctx, "target-id").Return(nil)

		assert.NoError(t, svc.Delete(ctx, "target-id"))
		store.AssertExpectations(t)
		folders.AssertExpectations(t)
	})
}

func TestFolderService_Contents(t *testing.T) {
	ctx := context.Background()

	t.Run("clamps pagination and echoes applied values", func(t *testing.T) {
		svc, folders, files, _ := newFolderServiceWithMocks()
		folder := &model.Folder{ID: "folder-id", Name: "Legal"}
		folders.On("FindByID", ctx, "folder-id").Return(folder, nil)

		// folder_page 0 and size 5 clamp to page 1, size 10
		folders.On("ListChildren", ctx, "folder-id", repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.Folder]{Items: []model.Folder{}, Total: 0}, nil)
		// file_page 3 and size 1000 clamp to page 3, size 100
		files.On("ListByFolder", ctx, "folder-id", repository.PageQuery{Limit: 100, Offset: 200}).
			Return(&repository.PageResult[model.File]{Items: []model.File{}, Total: 250}, nil)

		contents, err := svc.Contents(ctx, "folder-id", ContentsParams{
			FolderPage:     0,
			FolderPageSize: 5,
			FilePage:       3,
			FilePageSize:   1000,
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, contents.FolderPage)
		assert.Equal(t, 10, contents.FolderPageSize)
		assert.Equal(t, 3, contents.FilePage)
		assert.Equal(t, 100, contents.FilePageSize)
		assert.Equal(t, 250, contents.TotalFiles)
		folders.AssertExpectations(t)
		files.AssertExpectations(t)
	})

	t.Run("explicit zero page size clamps to the minimum", func(t *testing.T) {
		// Zero is an out-of-range request like any other, not a stand-in for
		// "use the default"; defaults for absent parameters are the transport
		// layer's job.
		svc, folders, files, _ := newFolderServiceWithMocks()
		folder := &model.Folder{ID: "folder-id", Name: "Legal"}
		folders.On("FindByID", ctx, "folder-id").Return(folder, nil)
		folders.On("ListChildren", ctx, "folder-id", repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.Folder]{Items: []model.Folder{}, Total: 0}, nil)
		files.On("ListByFolder", ctx, "folder-id", repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.File]{Items: []model.File{}, Total: 0}, nil)

		contents, err := svc.Contents(ctx, "folder-id", ContentsParams{})

		assert.NoError(t, err)
		assert.Equal(t, MinPageSize, contents.FolderPageSize)
		assert.Equal(t, MinPageSize, contents.FilePageSize)
		assert.Equal(t, DefaultPage, contents.FilePage)
	})

	t.Run("breadcrumbs run root first", func(t *testing.T) {
		svc, folders, files, _ := newFolderServiceWithMocks()
		rootID := "root-id"
		midID := "mid-id"
		leaf := &model.Folder{ID: "leaf-id", Name: "Roadmaps", ParentID: &midID}

		folders.On("FindByID", ctx, "leaf-id").Return(leaf, nil)
		folders.On("FindByID", ctx, midID).Return(&model.Folder{ID: midID, Name: "Product", ParentID: &rootID}, nil)
		folders.On("FindByID", ctx, rootID).Return(&model.Folder{ID: rootID, Name: "General Dataroom"}, nil)
		folders.On("ListChildren", ctx, "leaf-id", mock.Anything).
			Return(&repository.PageResult[model.Folder]{Items: []model.Folder{}, Total: 0}, nil)
		files.On("ListByFolder", ctx, "leaf-id", mock.Anything).
			Return(&repository.PageResult[model.File]{Items: []model.File{}, Total: 0}, nil)

		contents, err := svc.Contents(ctx, "leaf-id", ContentsParams{})

		assert.NoError(t, err)
		if assert.Len(t, contents.Breadcrumbs, 3) {
			assert.Equal(t, rootID, contents.Breadcrumbs[0].ID)
			assert.Equal(t, midID, contents.Breadcrumbs[1].ID)
			assert.Equal(t, "leaf-id", contents.Breadcrumbs[2].ID)
		}
	})

	t.Run("missing folder", func(t *testing.T) {
		svc, folders, _, _ := newFolderServiceWithMocks()
		folders.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.Contents(ctx, "missing", ContentsParams{})

		assert.ErrorIs(t, err, ErrFolderNotFound)
	})
}

func TestClampPageSize(t *testing.T) {
	assert.Equal(t, MinPageSize, clampPageSize(0))
	assert.Equal(t, MinPageSize, clampPageSize(-5))
	assert.Equal(t, MinPageSize, clampPageSize(1))
	assert.Equal(t, MinPageSize, clampPageSize(10))
	assert.Equal(t, 42, clampPageSize(42))
	assert.Equal(t, MaxPageSize, clampPageSize(100))
	assert.Equal(t, MaxPageSize, clampPageSize(5000))
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, clampPage(-3))
	assert.Equal(t, 1, clampPage(0))
	assert.Equal(t, 7, clampPage(7))
}
