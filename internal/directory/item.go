package directory

import (
	"time"
)

type Kind string

const (
	KindFile   Kind = "file"
	KindFolder Kind = "folder"
)

// Item is a file or a folder. Items form a forest through ParentID; nil is a root.
type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      Kind      `json:"type"`
	ParentID  *string   `json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (item Item) IsFolder() bool {
	return item.Kind == KindFolder
}

func (item Item) IsRoot() bool {
	return item.ParentID == nil
}

func (item Item) hasParent(parentID string) bool {
	return item.ParentID != nil && *item.ParentID == parentID
}

// touch refreshes UpdatedAt without letting it go backwards
func (item *Item) touch(now time.Time) {
	if now.After(item.UpdatedAt) {
		item.UpdatedAt = now
	}
}

func cloneID(id *string) *string {
	if id == nil {
		return nil
	}
	value := *id
	return &value
}

// displayParentID returns an empty string for a root
func displayParentID(parentID *string) string {
	if parentID == nil {
		return ""
	}
	return *parentID
}
