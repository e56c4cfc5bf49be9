package model

import "time"

// Folder is a node in the dataroom tree. A nil ParentID marks a dataroom
// root; every other folder has exactly one parent, assigned at creation and
// never changed. This is a pure domain model with no database-specific
// dependencies or tags.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsRoot reports whether the folder is the head of a dataroom tree.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}
