package services

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

// RoleCapability describes what one role may do.
type RoleCapability struct {
	// Elevated roles act in every department, may force readiness gates and may
	// redefine a production sequence after production has been entered.
	Elevated bool `yaml:"elevated"`
	// Departments the role may act on.
	Departments []kernel.Department `yaml:"departments"`
	// OwnDepartment lets the role act on the department supplied with the actor.
	OwnDepartment bool `yaml:"own_department"`
	// Inventory allows paper registration, receipts, issues, adjustments and discontinuation.
	Inventory bool `yaml:"inventory"`
}

// RoleCapabilities is the injected role lookup table. Unknown roles can do nothing.
type RoleCapabilities struct {
	roles map[string]RoleCapability
}

type roleCapabilitiesFile struct {
	Roles map[string]RoleCapability `yaml:"roles"`
}

// DefaultRoleCapabilities is the table used when no file is configured.
func DefaultRoleCapabilities() RoleCapabilities {
	return RoleCapabilities{roles: map[string]RoleCapability{
		"admin":       {Elevated: true, Inventory: true},
		"manager":     {Elevated: true, Inventory: true},
		"sales":       {Departments: []kernel.Department{kernel.DepartmentSales}},
		"designer":    {Departments: []kernel.Department{kernel.DepartmentDesign}},
		"prepress":    {Departments: []kernel.Department{kernel.DepartmentPrepress}},
		"production":  {Departments: []kernel.Department{kernel.DepartmentProduction, kernel.DepartmentOutsource}},
		"storekeeper": {Inventory: true},
		"staff":       {OwnDepartment: true},
	}}
}

// NewRoleCapabilities validates a table. Role names are case-insensitive.
func NewRoleCapabilities(roles map[string]RoleCapability) (RoleCapabilities, error) {
	if len(roles) == 0 {
		return RoleCapabilities{}, errs.NewValueIsRequiredError("role capabilities")
	}
	table := make(map[string]RoleCapability, len(roles))
	var result []error
	for _, role := range slices.Sorted(maps.Keys(roles)) {
		c := roles[role]
		name := strings.ToLower(strings.TrimSpace(role))
		if name == "" {
			result = append(result, errs.NewValueIsRequiredError("role name"))
			continue
		}
		for _, d := range c.Departments {
			if err := d.Validate(); err != nil {
				result = append(result, fmt.Errorf("role %s: %w", name, err))
			}
		}
		table[name] = RoleCapability{
			Elevated:      c.Elevated,
			Departments:   slices.Clone(c.Departments),
			OwnDepartment: c.OwnDepartment,
			Inventory:     c.Inventory,
		}
	}
	if len(result) > 0 {
		return RoleCapabilities{}, errors.Join(result...)
	}
	return RoleCapabilities{roles: table}, nil
}

// LoadRoleCapabilities reads a YAML file of the form
//
//	roles:
//	  manager: {elevated: true, inventory: true}
//	  designer: {departments: [design]}
//
// An empty path returns the defaults.
func LoadRoleCapabilities(path string) (RoleCapabilities, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultRoleCapabilities(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return RoleCapabilities{}, fmt.Errorf("failed to read role capabilities: %w", err)
	}
	return ParseRoleCapabilities(data)
}

func ParseRoleCapabilities(data []byte) (RoleCapabilities, error) {
	var file roleCapabilitiesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return RoleCapabilities{}, fmt.Errorf("failed to parse role capabilities: %w", err)
	}
	return NewRoleCapabilities(file.Roles)
}

// Lookup returns the capability of a role; ok is false for unknown roles.
func (c RoleCapabilities) Lookup(role string) (RoleCapability, bool) {
	capability, ok := c.roles[strings.ToLower(strings.TrimSpace(role))]
	return capability, ok
}

// Roles lists the configured role names in order.
func (c RoleCapabilities) Roles() []string {
	return slices.Sorted(maps.Keys(c.roles))
}
