package models

import (
	"time"
)

// Notification types.
const (
	NotificationTypeMention = "MENTION"
)

// Notification is a fire-and-forget record emitted by secondary effects such
// as the mention scan. Delivery is pull-based; there is no push channel.
type Notification struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	TenantID    uint   `gorm:"not null;index" json:"tenant_id"`
	RecipientID uint   `gorm:"not null;index" json:"recipient_id"`
	Type        string `gorm:"not null" json:"type"`
	Title       string `gorm:"not null" json:"title"`
	Message     string `gorm:"type:text" json:"message"`
	// RelatedID references the post the notification points at. Comment
	// mentions reference the comment's post so clients land on the thread.
	RelatedID uint      `gorm:"index" json:"related_id"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
