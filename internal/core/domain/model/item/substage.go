package item

import (
	"fmt"
	"strings"

	"printshop/internal/pkg/errs"
)

// Substage is a named step inside the production stage.
type Substage string

const (
	SubstageFoiling     Substage = "foiling"
	SubstagePrinting    Substage = "printing"
	SubstagePasting     Substage = "pasting"
	SubstageCutting     Substage = "cutting"
	SubstageLetterpress Substage = "letterpress"
	SubstageEmbossing   Substage = "embossing"
	SubstagePacking     Substage = "packing"
)

// DefaultSequence is the production department's sequence used when an item defines none.
func DefaultSequence() []Substage {
	return []Substage{
		SubstageFoiling,
		SubstagePrinting,
		SubstagePasting,
		SubstageCutting,
		SubstageLetterpress,
		SubstageEmbossing,
		SubstagePacking,
	}
}

// NewSubstage accepts any non-empty lower-case key so shops can configure their own steps.
func NewSubstage(key string) (Substage, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return "", errs.NewValueIsRequiredError("substage")
	}
	if strings.ContainsAny(key, " \t\n,") {
		return "", errs.NewValueIsInvalidErrorWithCause("substage", fmt.Errorf("%q contains whitespace or commas", key))
	}
	return Substage(key), nil
}

func (s Substage) String() string {
	return string(s)
}

// SubstageStatus is the progress of a single production step.
type SubstageStatus string

const (
	SubstagePending    SubstageStatus = "pending"
	SubstageInProgress SubstageStatus = "in_progress"
	SubstageCompleted  SubstageStatus = "completed"
)

func ParseSubstageStatus(s string) (SubstageStatus, error) {
	status := SubstageStatus(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s SubstageStatus) Validate() error {
	switch s {
	case SubstagePending, SubstageInProgress, SubstageCompleted:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("substage status", fmt.Errorf("%q is not a valid status", string(s)))
	}
}

func (s SubstageStatus) String() string {
	return string(s)
}

// canBecome allows start, completion and reopening. A completed step is reopened to
// in_progress, never reset to pending.
func (s SubstageStatus) canBecome(next SubstageStatus) bool {
	switch s {
	case SubstagePending:
		return next == SubstageInProgress || next == SubstageCompleted
	case SubstageInProgress:
		return next == SubstageCompleted || next == SubstagePending
	case SubstageCompleted:
		return next == SubstageInProgress
	default:
		return false
	}
}
