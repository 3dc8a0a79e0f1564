// Package profilerepo resolves department membership from the user_profiles table.
package profilerepo

import (
	"context"
	"errors"
	"strings"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/ports"
	"printshop/internal/pkg/errs"

	"gorm.io/gorm"
)

// UserProfileDTO is owned by the identity side; this service only reads it.
type UserProfileDTO struct {
	UserID     string `gorm:"primaryKey"`
	Name       string
	Department string `gorm:"type:varchar(32);index"`
}

func (UserProfileDTO) TableName() string {
	return "user_profiles"
}

// GormDepartmentDirectory implements ports.DepartmentDirectory.
type GormDepartmentDirectory struct {
	db *gorm.DB
}

func NewGormDepartmentDirectory(db *gorm.DB) *GormDepartmentDirectory {
	return &GormDepartmentDirectory{db: db}
}

// Lookup returns *errs.ObjectNotFoundError for unknown users. A stored department that
// is not one of the known ones is reported as an error rather than mapped.
func (d *GormDepartmentDirectory) Lookup(ctx context.Context, userID string) (ports.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ports.Profile{}, errs.NewValueIsRequiredError("user id")
	}

	var dto UserProfileDTO
	if err := d.db.WithContext(ctx).First(&dto, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Profile{}, errs.NewObjectNotFoundError("user profile", userID)
		}
		return ports.Profile{}, err
	}

	dept, err := kernel.ParseDepartment(dto.Department)
	if err != nil {
		return ports.Profile{}, err
	}

	return ports.Profile{UserID: dto.UserID, Name: dto.Name, Department: dept}, nil
}
