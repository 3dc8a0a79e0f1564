package stock

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
	"printshop/internal/pkg/guard"
)

var (
	// ErrPaperStockIsNotConstructed is returned when a PaperStock was not created through
	// NewPaperStock or RestorePaperStock.
	ErrPaperStockIsNotConstructed = errors.New("PaperStock must be created via NewPaperStock constructor")

	ErrPaperNameIsRequired = errs.NewValueIsRequiredError("paper name")
)

// Status of a paper SKU.
type Status string

const (
	StatusActive       Status = "active"
	StatusDiscontinued Status = "discontinued"
)

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s Status) Validate() error {
	if s != StatusActive && s != StatusDiscontinued {
		return errs.NewValueIsInvalidErrorWithCause("paper status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// PaperStock is one paper SKU. Its counters are a projection of the ledger and change
// only through Record.
type PaperStock struct {
	id               kernel.UUID
	name             string
	gsm              int
	width            int
	height           int
	counters         Counters
	reorderThreshold int
	status           Status
	lastSequence     int64
	createdAt        time.Time
	updatedAt        time.Time

	guard guard.ConstructorGuard
}

// PaperStockSnapshot is the persistence view of a PaperStock.
type PaperStockSnapshot struct {
	ID               kernel.UUID
	Name             string
	GSM              int
	Width            int
	Height           int
	TotalSheets      int
	ReservedSheets   int
	ReorderThreshold int
	Status           Status
	LastSequence     int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewPaperStock registers a SKU with empty counters. Stock arrives through "in" entries.
func NewPaperStock(id kernel.UUID, name string, gsm, width, height, reorderThreshold int, now time.Time) (*PaperStock, error) {
	p := &PaperStock{
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setDimensions(gsm, width, height),
		p.setReorderThreshold(reorderThreshold),
	); err != nil {
		return nil, err
	}
	return p, nil
}

// RestorePaperStock rebuilds a SKU from storage and checks the counter invariant.
func RestorePaperStock(s PaperStockSnapshot) (*PaperStock, error) {
	p := &PaperStock{
		counters:     Counters{Total: s.TotalSheets, Reserved: s.ReservedSheets},
		lastSequence: s.LastSequence,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
		guard:        guard.NewConstructorGuard(),
	}
	var countersErr error
	if !p.counters.Valid() {
		countersErr = errs.NewValueIsOutOfRangeError("reserved sheets", s.ReservedSheets, 0, s.TotalSheets)
	}
	if err := errors.Join(
		p.setID(s.ID),
		p.setName(s.Name),
		p.setDimensions(s.GSM, s.Width, s.Height),
		p.setReorderThreshold(s.ReorderThreshold),
		p.setStatus(s.Status),
		countersErr,
	); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PaperStock) Validate() error {
	if p == nil {
		return ErrPaperStockIsNotConstructed
	}
	return p.guard.Validate(ErrPaperStockIsNotConstructed)
}

func (p *PaperStock) ID() kernel.UUID        { return p.id }
func (p *PaperStock) Name() string           { return p.name }
func (p *PaperStock) GSM() int               { return p.gsm }
func (p *PaperStock) Width() int             { return p.width }
func (p *PaperStock) Height() int            { return p.height }
func (p *PaperStock) TotalSheets() int       { return p.counters.Total }
func (p *PaperStock) ReservedSheets() int    { return p.counters.Reserved }
func (p *PaperStock) AvailableSheets() int   { return p.counters.Available() }
func (p *PaperStock) Counters() Counters     { return p.counters }
func (p *PaperStock) ReorderThreshold() int  { return p.reorderThreshold }
func (p *PaperStock) Status() Status         { return p.status }
func (p *PaperStock) LastSequence() int64    { return p.lastSequence }
func (p *PaperStock) CreatedAt() time.Time   { return p.createdAt }
func (p *PaperStock) UpdatedAt() time.Time   { return p.updatedAt }
func (p *PaperStock) IsDiscontinued() bool   { return p.status == StatusDiscontinued }
func (p *PaperStock) IsBelowThreshold() bool { return p.counters.Available() < p.reorderThreshold }

// Record validates an entry against the current counters, applies it and returns the
// sequenced ledger entry. jobReserved is what the ledger currently holds reserved for
// entry.JobID on this paper. On error nothing changes.
//
// Example:
//
//	tx, err := paper.Record(stock.Entry{Type: stock.TxReserve, Quantity: 500, JobID: &jobID, ActorID: "u-1"}, 0, kernel.NewUUID(), now)
func (p *PaperStock) Record(e Entry, jobReserved int, txID kernel.UUID, now time.Time) (*Transaction, error) {
	if err := errors.Join(txID.Validate(), e.Validate()); err != nil {
		return nil, err
	}
	if p.IsDiscontinued() && (e.Type == TxIn || e.Type == TxReserve) {
		return nil, errs.NewInvalidTransitionError("paper", p.id.String(), string(e.Type), string(p.status), string(p.status)).
			WithReason("paper is discontinued")
	}
	if e.JobID == nil {
		jobReserved = p.counters.Reserved
	}

	next, err := p.counters.Apply(p.id.String(), e.Type, e.Quantity, jobReserved)
	if err != nil {
		return nil, err
	}

	p.counters = next
	p.lastSequence++
	p.updatedAt = now
	return newTransaction(txID, p.id, e, p.lastSequence, now), nil
}

// Discontinue stops receipts and new reservations. Existing reservations can still be
// consumed or released.
func (p *PaperStock) Discontinue(now time.Time) error {
	if p.IsDiscontinued() {
		return errs.NewInvalidTransitionError("paper", p.id.String(), "discontinue", string(p.status), string(StatusDiscontinued))
	}
	p.status = StatusDiscontinued
	p.updatedAt = now
	return nil
}

// Snapshot exports the SKU for persistence.
func (p *PaperStock) Snapshot() PaperStockSnapshot {
	return PaperStockSnapshot{
		ID:               p.id,
		Name:             p.name,
		GSM:              p.gsm,
		Width:            p.width,
		Height:           p.height,
		TotalSheets:      p.counters.Total,
		ReservedSheets:   p.counters.Reserved,
		ReorderThreshold: p.reorderThreshold,
		Status:           p.status,
		LastSequence:     p.lastSequence,
		CreatedAt:        p.createdAt,
		UpdatedAt:        p.updatedAt,
	}
}

func (p *PaperStock) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *PaperStock) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrPaperNameIsRequired
	}
	p.name = name
	return nil
}

func (p *PaperStock) setDimensions(gsm, width, height int) error {
	var result []error
	for _, d := range []struct {
		name  string
		value int
	}{{"gsm", gsm}, {"width", width}, {"height", height}} {
		if d.value <= 0 {
			result = append(result, errs.NewValueIsInvalidErrorWithCause(d.name, fmt.Errorf("%d is not greater than 0", d.value)))
		}
	}
	if len(result) > 0 {
		return errors.Join(result...)
	}
	p.gsm, p.width, p.height = gsm, width, height
	return nil
}

func (p *PaperStock) setReorderThreshold(threshold int) error {
	if threshold < 0 {
		return errs.NewValueIsInvalidErrorWithCause("reorder threshold", fmt.Errorf("%d is negative", threshold))
	}
	p.reorderThreshold = threshold
	return nil
}

func (p *PaperStock) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}
