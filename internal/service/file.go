package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"dataroom/internal/model"
	"dataroom/internal/repository"
	"dataroom/internal/storage"
)

// Upload constraints. Only PDF payloads are accepted; content is never
// parsed beyond the declared mime type.
const (
	MimeTypePDF   = "application/pdf"
	MaxUploadSize = 100 << 20 // 100 MiB
)

// FileService sequences file mutations across the metadata repository and
// blob storage so neither side is left with an orphan on the happy path.
type FileService interface {
	// Upload stores the payload as a new blob under a fresh opaque name and
	// creates the metadata record. The recorded size is the byte count
	// actually persisted, not the declared one.
	Upload(ctx context.Context, folderID string, r io.Reader, filename, mimeType string, declaredSize int64) (*model.File, error)

	// Get returns a file's metadata by ID.
	Get(ctx context.Context, id string) (*model.File, error)

	// Download streams the file's blob together with its metadata. Returns
	// ErrBlobMissing when the record exists but the blob does not.
	Download(ctx context.Context, id string) (io.ReadCloser, *model.File, error)

	// Rename replaces the user-visible name; the blob is untouched.
	Rename(ctx context.Context, id, name string) (*model.File, error)

	// Delete removes the blob (if present), then the record.
	Delete(ctx context.Context, id string) error
}

type fileService struct {
	store   storage.Storage
	files   repository.FileRepository
	folders repository.FolderRepository
}

// NewFileService constructs a new FileService.
func NewFileService(store storage.Storage, files repository.FileRepository, folders repository.FolderRepository) FileService {
	return &fileService{store: store, files: files, folders: folders}
}

func (s *fileService) Upload(ctx context.Context, folderID string, r io.Reader, filename, mimeType string, declaredSize int64) (*model.File, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if folderID == "" {
		return nil, ErrIDRequired
	}
	if mimeType != MimeTypePDF {
		return nil, ErrUnsupportedMime
	}
	if declaredSize == 0 {
		return nil, ErrEmptyFile
	}
	if declaredSize > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	if _, err := s.folders.FindByID(ctx, folderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}

	// The stored name is generated once and never derived from the
	// user-supplied filename, so renames and name collisions never require
	// blob relocation.
	storedName := uuid.New().String() + ".pdf"

	// Cap the stream one byte past the limit so an understated declared
	// size cannot smuggle in an oversized payload.
	limited := io.LimitReader(r, MaxUploadSize+1)
	info, err := s.store.Put(ctx, storedName, limited, storage.PutObjectOptions{
		Size:        declaredSize,
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	// The persisted byte count is authoritative, re-measured after the
	// write rather than trusted from the client.
	if info.Size == 0 || info.Size > MaxUploadSize {
		sizeErr := ErrEmptyFile
		if info.Size > MaxUploadSize {
			sizeErr = ErrFileTooLarge
		}
		if delErr := s.store.Delete(ctx, storedName); delErr != nil {
			return nil, fmt.Errorf("%w; rollback delete failed: %v", sizeErr, delErr)
		}
		return nil, sizeErr
	}

	if filename == "" {
		filename = "Untitled"
	}

	file := &model.File{
		ID:         uuid.NewString(),
		Name:       filename,
		StoredName: storedName,
		MimeType:   mimeType,
		SizeBytes:  info.Size,
		CreatedAt:  time.Now().UTC(),
		FolderID:   folderID,
	}
	stored, err := s.files.Create(ctx, file)
	if err != nil {
		// Rollback: delete the blob so the failed insert leaves no orphan.
		if delErr := s.store.Delete(ctx, storedName); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *fileService) Get(ctx context.Context, id string) (*model.File, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	file, err := s.files.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return file, nil
}

func (s *fileService) Download(ctx context.Context, id string) (io.ReadCloser, *model.File, error) {
	file, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, file.StoredName)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, nil, ErrBlobMissing
		}
		return nil, nil, fmt.Errorf("open blob: %w", err)
	}
	return rc, file, nil
}

func (s *fileService) Rename(ctx context.Context, id, name string) (*model.File, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if name == "" {
		return nil, ErrNameRequired
	}
	if err := s.files.Rename(ctx, id, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return s.files.FindByID(ctx, id)
}

// Delete removes the blob before the record: a crash in between surfaces as
// the defined Gone condition rather than an untracked orphan blob.
func (s *fileService) Delete(ctx context.Context, id string) error {
	file, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, file.StoredName); err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	return s.files.Delete(ctx, file.ID)
}
