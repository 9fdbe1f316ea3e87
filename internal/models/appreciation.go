package models

import (
	"time"

	"gorm.io/gorm"
)

// Badge is a catalog entry referenced by appreciations. The catalog is seeded
// at migration time and read-only at runtime.
type Badge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null;unique" json:"title"`
	Icon      string    `gorm:"not null" json:"icon"`
	CreatedAt time.Time `json:"created_at"`
}

// Appreciation is a peer-recognition record. It is immutable once created;
// creation synthesizes exactly one feed post referencing it.
type Appreciation struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	TenantID    uint           `gorm:"not null;index" json:"tenant_id"`
	SenderID    uint           `gorm:"not null" json:"sender_id"`
	Sender      Employee       `gorm:"foreignKey:SenderID" json:"sender"`
	RecipientID uint           `gorm:"not null;index" json:"recipient_id"`
	Recipient   Employee       `gorm:"foreignKey:RecipientID" json:"recipient"`
	BadgeID     uint           `gorm:"not null" json:"badge_id"`
	Badge       Badge          `gorm:"foreignKey:BadgeID" json:"badge"`
	Message     string         `gorm:"type:text" json:"message"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
