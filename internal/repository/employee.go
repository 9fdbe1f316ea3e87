// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"github.com/neointeraction/hrms-backend-sub001/internal/models"

	"gorm.io/gorm"
)

// EmployeeRepository defines the interface for employee profile lookups.
// Writes go through the external HR CRUD surface; the social engine only reads.
type EmployeeRepository interface {
	GetByUserID(ctx context.Context, tenantID, userID uint) (*models.Employee, error)
	GetByID(ctx context.Context, tenantID, id uint) (*models.Employee, error)
	FindByFirstName(ctx context.Context, tenantID uint, name string) ([]*models.Employee, error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByUserID(ctx context.Context, tenantID, userID uint) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, tenantID, id uint) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&employee, id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByFirstName matches the full first name case-insensitively. Substring
// matches are deliberately excluded; mention resolution depends on exact-name
// semantics.
func (r *employeeRepository) FindByFirstName(ctx context.Context, tenantID uint, name string) ([]*models.Employee, error) {
	var employees []*models.Employee
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND LOWER(first_name) = LOWER(?)", tenantID, name).
		Find(&employees).Error
	return employees, err
}
