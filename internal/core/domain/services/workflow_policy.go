package services

import (
	"slices"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"
)

// WorkflowPolicy decides whether an actor may run an operation. It holds no state
// besides the injected capability table.
//
// Example usage:
//
//	policy := services.NewWorkflowPolicy(services.DefaultRoleCapabilities())
//	if err := policy.AuthorizeDepartment(actor, it.Department(), "transition"); err != nil {
//	    return err // *errs.UnauthorizedError
//	}
type WorkflowPolicy struct {
	capabilities RoleCapabilities
}

func NewWorkflowPolicy(capabilities RoleCapabilities) WorkflowPolicy {
	return WorkflowPolicy{capabilities: capabilities}
}

// IsElevated reports whether the actor's role may override gates.
func (p WorkflowPolicy) IsElevated(actor kernel.Actor) bool {
	c, ok := p.capabilities.Lookup(actor.Role())
	return ok && c.Elevated
}

// CanActOn reports whether the actor may act on items owned by department.
func (p WorkflowPolicy) CanActOn(actor kernel.Actor, department kernel.Department) bool {
	c, ok := p.capabilities.Lookup(actor.Role())
	if !ok {
		return false
	}
	if c.Elevated || slices.Contains(c.Departments, department) {
		return true
	}
	return c.OwnDepartment && actor.Department() != "" && actor.Department() == department
}

// AuthorizeDepartment fails with Unauthorized unless the actor may act on department.
func (p WorkflowPolicy) AuthorizeDepartment(actor kernel.Actor, department kernel.Department, operation string) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !p.CanActOn(actor, department) {
		return errs.NewUnauthorizedError(actor.ID(), actor.Role(), string(department), operation)
	}
	return nil
}

// AuthorizeForce fails unless the actor is elevated. Used for readiness overrides.
func (p WorkflowPolicy) AuthorizeForce(actor kernel.Actor, department kernel.Department, operation string) error {
	if !p.IsElevated(actor) {
		return errs.NewUnauthorizedError(actor.ID(), actor.Role(), string(department), operation+" with force")
	}
	return nil
}

// AuthorizeInventory guards stock administration: registration, receipts, issues,
// adjustments and discontinuation.
func (p WorkflowPolicy) AuthorizeInventory(actor kernel.Actor, operation string) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c, ok := p.capabilities.Lookup(actor.Role())
	if !ok || !(c.Elevated || c.Inventory) {
		return errs.NewUnauthorizedError(actor.ID(), actor.Role(), "inventory", operation)
	}
	return nil
}
