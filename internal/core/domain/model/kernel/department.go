package kernel

import (
	"fmt"

	"printshop/internal/pkg/errs"
)

// Department is the closed set of departments an order item can be assigned to.
type Department string

const (
	DepartmentSales      Department = "sales"
	DepartmentDesign     Department = "design"
	DepartmentPrepress   Department = "prepress"
	DepartmentProduction Department = "production"
	DepartmentOutsource  Department = "outsource"
)

// AllDepartments lists every valid department in workflow order.
func AllDepartments() []Department {
	return []Department{
		DepartmentSales,
		DepartmentDesign,
		DepartmentPrepress,
		DepartmentProduction,
		DepartmentOutsource,
	}
}

// ParseDepartment converts a wire value into a Department.
func ParseDepartment(s string) (Department, error) {
	d := Department(s)
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

func (d Department) Validate() error {
	for _, known := range AllDepartments() {
		if d == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("department", fmt.Errorf("%q is not a known department", string(d)))
}

func (d Department) String() string {
	return string(d)
}
