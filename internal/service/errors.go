package service

import "errors"

// Expected, caller-recoverable failures. Handlers translate these into
// client-visible statuses; anything else surfaces as a server fault.
var (
	ErrIDRequired   = errors.New("id is required")
	ErrNameRequired = errors.New("name is required")
	ErrReaderNil    = errors.New("reader is nil")

	ErrFolderNotFound   = errors.New("folder not found")
	ErrFileNotFound     = errors.New("file not found")
	ErrDataroomNotFound = errors.New("dataroom not found")
	ErrUserNotFound     = errors.New("user not found")

	// ErrRootFolder rejects deletion of a dataroom root; roots are permanent
	// once created.
	ErrRootFolder = errors.New("cannot delete root folder")

	// ErrBlobMissing marks the Gone condition: the metadata record exists
	// but its blob is absent from storage.
	ErrBlobMissing = errors.New("file data missing")

	ErrUnsupportedMime = errors.New("only PDF files are supported")
	ErrEmptyFile       = errors.New("empty file not allowed")
	ErrFileTooLarge    = errors.New("file size exceeds limit")

	ErrEmailTaken      = errors.New("email already registered")
	ErrInvalidLogin    = errors.New("invalid email or password")
	ErrAccountDisabled = errors.New("account is disabled")
)
