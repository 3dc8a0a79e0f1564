package item

import (
	"fmt"
	"slices"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
)

// Stage is the top-level department phase of an order item.
//
//	sales ──> design ──> prepress ──> production ──> dispatch ──> completed
//	  │                    ▲  │           ▲
//	  └────────────────────┘  └───────────┘   (one-stage skips)
//	  └──────────────────────────────────┘    (no-design fast path)
//
//	design | prepress | production <──> outsource   (returns to origin only)
type Stage string

const (
	StageSales      Stage = "sales"
	StageDesign     Stage = "design"
	StagePrepress   Stage = "prepress"
	StageProduction Stage = "production"
	StageDispatch   Stage = "dispatch"
	StageCompleted  Stage = "completed"
	StageOutsource  Stage = "outsource"
)

// getStageDepartments maps every valid stage to the department that owns it.
// Dispatch and completed stay with production, which packs and ships.
func getStageDepartments() map[Stage]kernel.Department {
	return map[Stage]kernel.Department{
		StageSales:      kernel.DepartmentSales,
		StageDesign:     kernel.DepartmentDesign,
		StagePrepress:   kernel.DepartmentPrepress,
		StageProduction: kernel.DepartmentProduction,
		StageDispatch:   kernel.DepartmentProduction,
		StageCompleted:  kernel.DepartmentProduction,
		StageOutsource:  kernel.DepartmentOutsource,
	}
}

// getForwardTransitions is the allowed-transition table, outsource returns excluded.
func getForwardTransitions() map[Stage][]Stage {
	return map[Stage][]Stage{
		StageSales:      {StageDesign, StagePrepress, StageProduction},
		StageDesign:     {StagePrepress, StageOutsource},
		StagePrepress:   {StageProduction, StageDesign, StageOutsource},
		StageProduction: {StageDispatch, StageOutsource},
		StageDispatch:   {StageCompleted},
		StageCompleted:  {},
		StageOutsource:  {},
	}
}

// ParseStage converts a wire value into a Stage.
func ParseStage(s string) (Stage, error) {
	stage := Stage(s)
	if err := stage.Validate(); err != nil {
		return "", err
	}
	return stage, nil
}

func (s Stage) Validate() error {
	if _, ok := getStageDepartments()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a valid stage", string(s)))
	}
	return nil
}

func (s Stage) String() string {
	return string(s)
}

// Department returns the department responsible for the stage.
func (s Stage) Department() kernel.Department {
	return getStageDepartments()[s]
}

// IsPreProduction reports whether the stage comes before production.
func (s Stage) IsPreProduction() bool {
	return s == StageSales || s == StageDesign || s == StagePrepress
}

// CanReach checks the allowed-transition table.
//
// Parameters:
//   - target: the requested stage
//   - needDesign: items needing design cannot take the sales -> production fast path
//   - origin: the stage that sent the item to outsource (only used when s is outsource)
func (s Stage) CanReach(target Stage, needDesign bool, origin Stage) bool {
	if s == StageOutsource {
		return origin != "" && target == origin
	}
	if s == StageSales && target == StageProduction && needDesign {
		return false
	}
	return slices.Contains(getForwardTransitions()[s], target)
}
