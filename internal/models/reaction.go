package models

import (
	"time"
)

// Reaction target types, as written by GORM's polymorphic association.
const (
	ReactionTargetPost    = "posts"
	ReactionTargetComment = "comments"
)

// Reaction types.
const (
	ReactionLike       = "like"
	ReactionCelebrate  = "celebrate"
	ReactionSupport    = "support"
	ReactionInsightful = "insightful"
	ReactionLaugh      = "laugh"
	ReactionLove       = "love"
)

// Reaction type sets. The post and comment sets overlap but are defined
// independently.
var (
	postReactionTypes = map[string]struct{}{
		ReactionLike: {}, ReactionCelebrate: {}, ReactionSupport: {}, ReactionInsightful: {}, ReactionLaugh: {},
	}
	commentReactionTypes = map[string]struct{}{
		ReactionLike: {}, ReactionLove: {}, ReactionLaugh: {}, ReactionInsightful: {}, ReactionCelebrate: {},
	}
)

// Reaction is one entry in the shared reaction ledger embedded in posts and
// comments. The composite unique index enforces at most one entry per actor
// per target; toggle semantics live in the reaction repository.
type Reaction struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TargetType string    `gorm:"not null;uniqueIndex:idx_target_actor" json:"-"`
	TargetID   uint      `gorm:"not null;uniqueIndex:idx_target_actor" json:"-"`
	EmployeeID uint      `gorm:"not null;uniqueIndex:idx_target_actor" json:"employee_id"`
	Employee   Employee  `gorm:"foreignKey:EmployeeID" json:"employee"`
	Type       string    `gorm:"not null" json:"type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ValidReactionType reports whether reactionType belongs to the set allowed
// for the given target type.
func ValidReactionType(targetType, reactionType string) bool {
	switch targetType {
	case ReactionTargetPost:
		_, ok := postReactionTypes[reactionType]
		return ok
	case ReactionTargetComment:
		_, ok := commentReactionTypes[reactionType]
		return ok
	}
	return false
}
