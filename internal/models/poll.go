package models

import (
	"time"
)

// Poll holds a poll post's question and voting policy. Present only for posts
// of type "poll".
type Poll struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	PostID        uint   `gorm:"not null;uniqueIndex" json:"post_id"`
	Question      string `gorm:"not null" json:"question"`
	AllowMultiple bool   `gorm:"not null;default:false" json:"allow_multiple"`
	// ExpiresAt is advisory presentation metadata. Votes after expiry are
	// still accepted; clients decide how to render a closed poll.
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
	Options   []PollOption `gorm:"foreignKey:PollID" json:"options"`
	CreatedAt time.Time    `json:"created_at"`
}

// PollOption is one choice in a poll, ordered by Idx.
type PollOption struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	PollID    uint       `gorm:"not null;index" json:"poll_id"`
	Idx       int        `gorm:"not null" json:"idx"`
	Text      string     `gorm:"not null" json:"text"`
	Votes     []PollVote `gorm:"foreignKey:OptionID" json:"votes"`
	CreatedAt time.Time  `json:"created_at"`
}

// PollVote records one employee's vote for one option. The unique index keeps
// repeat votes for an already-chosen option a no-op at the store level.
type PollVote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OptionID   uint      `gorm:"not null;uniqueIndex:idx_option_voter" json:"option_id"`
	EmployeeID uint      `gorm:"not null;uniqueIndex:idx_option_voter" json:"employee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Expired reports whether the poll's advisory expiry lies in the past.
func (p *Poll) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && p.ExpiresAt.Before(now)
}

// OptionByIdx returns the option with the given zero-based index, or nil.
func (p *Poll) OptionByIdx(idx int) *PollOption {
	for i := range p.Options {
		if p.Options[i].Idx == idx {
			return &p.Options[i]
		}
	}
	return nil
}
