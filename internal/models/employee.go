// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Employee roles. Admin-class roles may delete or pin any post in their tenant.
const (
	RoleEmployee = "employee"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
)

// Employee is the tenant-scoped profile record social actions are attributed to.
// It is distinct from the identity/login record: UserID references the identity
// service's user, while Employee.ID is what posts, comments and reactions carry.
type Employee struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	TenantID  uint           `gorm:"not null;uniqueIndex:idx_tenant_identity" json:"tenant_id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_tenant_identity" json:"user_id"`
	FirstName string         `gorm:"not null;index" json:"first_name"`
	LastName  string         `json:"last_name"`
	Role      string         `gorm:"not null;default:employee" json:"role"`
	Avatar    string         `json:"avatar"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsAdminClass reports whether the employee holds a role that can moderate
// tenant content (delete others' posts, pin posts).
func (e *Employee) IsAdminClass() bool {
	return e.Role == RoleAdmin || e.Role == RoleHR
}

// FullName returns the display name used in synthesized content.
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}
