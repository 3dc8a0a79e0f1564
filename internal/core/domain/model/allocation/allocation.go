// Package allocation provides JobMaterialAllocation, the binding of reserved paper
// sheets to an order item's job.
//
// An allocation is created reserved and leaves that status exactly once, either
// consumed by production or released back to stock. Both outcomes are terminal.
package allocation

import (
	"errors"
	"fmt"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

// ErrAllocationIsNotConstructed is returned for an Allocation built without a constructor.
var ErrAllocationIsNotConstructed = errors.New("Allocation must be created via NewAllocation constructor")

type Status string

const (
	StatusReserved Status = "reserved"
	StatusConsumed Status = "consumed"
	StatusReleased Status = "released"
)

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s Status) Validate() error {
	switch s {
	case StatusReserved, StatusConsumed, StatusReleased:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("allocation status", fmt.Errorf("%q is not a valid status", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == StatusConsumed || s == StatusReleased
}

type Allocation struct {
	id              kernel.UUID
	jobID           kernel.UUID
	paperID         kernel.UUID
	sheetsRequired  int
	sheetsAllocated int
	status          Status
	createdAt       time.Time
	updatedAt       time.Time

	guard guard.ConstructorGuard
}

// Snapshot is the persistence view of an Allocation.
type Snapshot struct {
	ID              kernel.UUID
	JobID           kernel.UUID
	PaperID         kernel.UUID
	SheetsRequired  int
	SheetsAllocated int
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewAllocation creates a reserved allocation. Reservations are all-or-nothing, so the
// allocated amount equals the required amount.
func NewAllocation(id, jobID, paperID kernel.UUID, sheets int, now time.Time) (*Allocation, error) {
	a := &Allocation{
		status:    StatusReserved,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		a.setIDs(id, jobID, paperID),
		a.setSheets(sheets, sheets),
	); err != nil {
		return nil, err
	}
	return a, nil
}

func RestoreAllocation(s Snapshot) (*Allocation, error) {
	a := &Allocation{
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
		guard:     guard.NewConstructorGuard(),
	}
	var statusErr error
	if statusErr = s.Status.Validate(); statusErr == nil {
		a.status = s.Status
	}
	if err := errors.Join(
		a.setIDs(s.ID, s.JobID, s.PaperID),
		a.setSheets(s.SheetsRequired, s.SheetsAllocated),
		statusErr,
	); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Allocation) Validate() error {
	if a == nil {
		return ErrAllocationIsNotConstructed
	}
	return a.guard.Validate(ErrAllocationIsNotConstructed)
}

func (a *Allocation) ID() kernel.UUID      { return a.id }
func (a *Allocation) JobID() kernel.UUID   { return a.jobID }
func (a *Allocation) PaperID() kernel.UUID { return a.paperID }
func (a *Allocation) SheetsRequired() int  { return a.sheetsRequired }
func (a *Allocation) SheetsAllocated() int { return a.sheetsAllocated }
func (a *Allocation) Status() Status       { return a.status }
func (a *Allocation) CreatedAt() time.Time { return a.createdAt }
func (a *Allocation) UpdatedAt() time.Time { return a.updatedAt }

// Consume moves a reserved allocation to consumed.
func (a *Allocation) Consume(now time.Time) error {
	if a.status != StatusReserved {
		return errs.NewDoubleConsumeError(a.id.String(), string(a.status))
	}
	a.status = StatusConsumed
	a.updatedAt = now
	return nil
}

// Release moves a reserved allocation to released.
func (a *Allocation) Release(now time.Time) error {
	if a.status != StatusReserved {
		return errs.NewOverReleaseError(a.id.String(), string(a.status))
	}
	a.status = StatusReleased
	a.updatedAt = now
	return nil
}

func (a *Allocation) Snapshot() Snapshot {
	return Snapshot{
		ID:              a.id,
		JobID:           a.jobID,
		PaperID:         a.paperID,
		SheetsRequired:  a.sheetsRequired,
		SheetsAllocated: a.sheetsAllocated,
		Status:          a.status,
		CreatedAt:       a.createdAt,
		UpdatedAt:       a.updatedAt,
	}
}

func (a *Allocation) setIDs(id, jobID, paperID kernel.UUID) error {
	if err := errors.Join(
		id.Validate(),
		wrapRequired("job id", jobID.Validate()),
		wrapRequired("paper id", paperID.Validate()),
	); err != nil {
		return err
	}
	a.id, a.jobID, a.paperID = id, jobID, paperID
	return nil
}

func (a *Allocation) setSheets(required, allocated int) error {
	if err := errors.Join(
		kernel.ValidateSheets("sheets required", required, false),
		kernel.ValidateSheets("sheets allocated", allocated, false),
	); err != nil {
		return err
	}
	if allocated > required {
		return errs.NewValueIsOutOfRangeError("sheets allocated", allocated, 1, required)
	}
	a.sheetsRequired, a.sheetsAllocated = required, allocated
	return nil
}

func wrapRequired(param string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(param, err)
}
