package model

import "time"

// File is the metadata record for one uploaded PDF. Name is the user-visible
// filename and may collide with siblings; StoredName is the opaque, globally
// unique blob key and is never exposed over the API or derived from Name, so
// renames never touch storage.
type File struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StoredName string    `json:"-"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	CreatedAt  time.Time `json:"created_at"`
	FolderID   string    `json:"folder_id"`
}
