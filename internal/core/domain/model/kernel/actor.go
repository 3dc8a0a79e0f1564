package kernel

import (
	"errors"
	"strings"

	"printshop/internal/pkg/errs"
)

var (
	ErrActorIDIsRequired   = errs.NewValueIsRequiredError("actor id")
	ErrActorRoleIsRequired = errs.NewValueIsRequiredError("actor role")
)

// Actor is the identity behind a mutating call. It is supplied per call by the
// authentication collaborator and never cached by the core.
type Actor struct {
	id         string
	role       string
	department Department
	name       string
}

// NewActor builds an Actor. The department is optional; an empty name falls back to the id.
func NewActor(id, role string, department Department, name string) (Actor, error) {
	id = strings.TrimSpace(id)
	role = strings.ToLower(strings.TrimSpace(role))

	var idErr, roleErr, deptErr error
	if id == "" {
		idErr = ErrActorIDIsRequired
	}
	if role == "" {
		roleErr = ErrActorRoleIsRequired
	}
	if department != "" {
		deptErr = department.Validate()
	}
	if err := errors.Join(idErr, roleErr, deptErr); err != nil {
		return Actor{}, err
	}

	if strings.TrimSpace(name) == "" {
		name = id
	}
	return Actor{id: id, role: role, department: department, name: name}, nil
}

func (a Actor) ID() string {
	return a.id
}

func (a Actor) Role() string {
	return a.role
}

func (a Actor) Department() Department {
	return a.department
}

func (a Actor) Name() string {
	return a.name
}

// Validate reports a zero-value Actor.
func (a Actor) Validate() error {
	if a.id == "" {
		return ErrActorIDIsRequired
	}
	if a.role == "" {
		return ErrActorRoleIsRequired
	}
	return nil
}
