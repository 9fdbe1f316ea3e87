package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Post types. Type is immutable after creation.
const (
	PostTypeText         = "text"
	PostTypeImage        = "image"
	PostTypePoll         = "poll"
	PostTypeAppreciation = "appreciation"
	PostTypeAnnouncement = "announcement"
	PostTypeEvent        = "event"
	PostTypeMilestone    = "milestone"
)

// Post visibility scopes.
const (
	ScopeCompany    = "company"
	ScopeDepartment = "department"
	ScopeProject    = "project"
)

// Post is the feed aggregate root. All posts are scoped to exactly one tenant;
// cross-tenant visibility is never permitted.
type Post struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	TenantID uint     `gorm:"not null;index" json:"tenant_id"`
	AuthorID uint     `gorm:"not null;index" json:"author_id"`
	Author   Employee `gorm:"foreignKey:AuthorID" json:"author"`
	Type     string   `gorm:"not null;default:text;index" json:"type"`
	Scope    string   `gorm:"not null;default:company;index" json:"scope"`
	Content  string   `gorm:"type:text" json:"content"`
	// Media is an ordered list of opaque object-store URLs, stored as JSON.
	Media datatypes.JSON `json:"media,omitempty"`
	Poll  *Poll          `gorm:"foreignKey:PostID" json:"poll,omitempty"`
	// Reactions share one polymorphic ledger with comments.
	Reactions []Reaction `gorm:"polymorphic:Target" json:"reactions"`
	// CommentCount mirrors the number of live comments on this post. It is
	// maintained by atomic increments alongside comment writes; a failed
	// increment after a durable comment write is logged for reconciliation.
	CommentCount          int            `gorm:"not null;default:0" json:"comment_count"`
	IsPinned              bool           `gorm:"not null;default:false;index" json:"is_pinned"`
	RelatedAppreciationID *uint          `gorm:"index" json:"related_appreciation_id,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostSummary is the compact shape returned by the new-activity poll endpoint.
type PostSummary struct {
	ID         uint      `json:"id"`
	Type       string    `json:"type"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// ValidPostType reports whether t is one of the supported post types.
func ValidPostType(t string) bool {
	switch t {
	case PostTypeText, PostTypeImage, PostTypePoll, PostTypeAppreciation,
		PostTypeAnnouncement, PostTypeEvent, PostTypeMilestone:
		return true
	}
	return false
}

// ValidScope reports whether s is one of the supported post scopes.
func ValidScope(s string) bool {
	switch s {
	case ScopeCompany, ScopeDepartment, ScopeProject:
		return true
	}
	return false
}
