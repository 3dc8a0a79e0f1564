// Package allocationrepo persists job material allocations.
package allocationrepo

import (
	"time"

	"printshop/internal/core/domain/model/allocation"
	"printshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type AllocationDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID           uuid.UUID `gorm:"type:uuid;index;not null"`
	PaperID         uuid.UUID `gorm:"type:uuid;index;not null"`
	SheetsRequired  int       `gorm:"not null"`
	SheetsAllocated int       `gorm:"not null"`
	Status          string    `gorm:"type:varchar(16);not null;index"`
	CreatedAt       time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false"`
}

func (AllocationDTO) TableName() string {
	return "job_material_allocations"
}

func fromDomain(a *allocation.Allocation) AllocationDTO {
	return AllocationDTO{
		ID:              a.ID().Bytes(),
		JobID:           a.JobID().Bytes(),
		PaperID:         a.PaperID().Bytes(),
		SheetsRequired:  a.SheetsRequired(),
		SheetsAllocated: a.SheetsAllocated(),
		Status:          string(a.Status()),
		CreatedAt:       a.CreatedAt(),
		UpdatedAt:       a.UpdatedAt(),
	}
}

func toDomain(dto AllocationDTO) (*allocation.Allocation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	jobID, err := kernel.UUIDFromBytes(dto.JobID[:])
	if err != nil {
		return nil, err
	}
	paperID, err := kernel.UUIDFromBytes(dto.PaperID[:])
	if err != nil {
		return nil, err
	}

	return allocation.RestoreAllocation(allocation.Snapshot{
		ID:              id,
		JobID:           jobID,
		PaperID:         paperID,
		SheetsRequired:  dto.SheetsRequired,
		SheetsAllocated: dto.SheetsAllocated,
		Status:          allocation.Status(dto.Status),
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
	})
}
