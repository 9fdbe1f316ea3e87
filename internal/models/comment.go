package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is tenant-scoped implicitly through its post. ParentID forms a
// logical reply tree; the store hands clients the flat list and the parent
// reference, it never builds the tree itself.
type Comment struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	PostID   uint     `gorm:"not null;index" json:"post_id"`
	AuthorID uint     `gorm:"not null" json:"author_id"`
	Author   Employee `gorm:"foreignKey:AuthorID" json:"author"`
	Content  string   `gorm:"type:text;not null" json:"content"`
	// ParentID, when set, must reference an existing comment on the same post.
	ParentID  *uint          `gorm:"index" json:"parent_id,omitempty"`
	Reactions []Reaction     `gorm:"polymorphic:Target" json:"reactions"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
