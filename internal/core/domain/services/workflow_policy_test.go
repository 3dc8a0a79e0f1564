package services_test

import (
	"os"
	"path/filepath"
	"testing"

	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/services"
	"printshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actor(t *testing.T, role string, dept kernel.Department) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor("u-1", role, dept, "")
	require.NoError(t, err)
	return a
}

func TestWorkflowPolicy_AuthorizeDepartment(t *testing.T) {
	policy := services.NewWorkflowPolicy(services.DefaultRoleCapabilities())

	tests := []struct {
		name    string
		role    string
		own     kernel.Department
		target  kernel.Department
		allowed bool
	}{
		{"manager anywhere", "manager", "", kernel.DepartmentPrepress, true},
		{"role is case insensitive", "ADMIN", "", kernel.DepartmentSales, true},
		{"designer in design", "designer", "", kernel.DepartmentDesign, true},
		{"designer in prepress", "designer", "", kernel.DepartmentPrepress, false},
		{"production in outsource", "production", "", kernel.DepartmentOutsource, true},
		{"staff in own department", "staff", kernel.DepartmentPrepress, kernel.DepartmentPrepress, true},
		{"staff elsewhere", "staff", kernel.DepartmentPrepress, kernel.DepartmentSales, false},
		{"unknown role", "intern", kernel.DepartmentSales, kernel.DepartmentSales, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.AuthorizeDepartment(actor(t, tt.role, tt.own), tt.target, "transition")
			if tt.allowed {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, errs.ErrUnauthorized)
			var unauthorized *errs.UnauthorizedError
			require.ErrorAs(t, err, &unauthorized)
			assert.Equal(t, string(tt.target), unauthorized.Department)
		})
	}
}

func TestWorkflowPolicy_ForceAndInventory(t *testing.T) {
	policy := services.NewWorkflowPolicy(services.DefaultRoleCapabilities())

	require.NoError(t, policy.AuthorizeForce(actor(t, "manager", ""), kernel.DepartmentPrepress, "transition"))
	require.ErrorIs(t, policy.AuthorizeForce(actor(t, "prepress", ""), kernel.DepartmentPrepress, "transition"), errs.ErrUnauthorized)

	require.NoError(t, policy.AuthorizeInventory(actor(t, "storekeeper", ""), "adjust"))
	require.ErrorIs(t, policy.AuthorizeInventory(actor(t, "designer", ""), "adjust"), errs.ErrUnauthorized)
}

func TestLoadRoleCapabilities(t *testing.T) {
	t.Run("empty path gives defaults", func(t *testing.T) {
		caps, err := services.LoadRoleCapabilities("")
		require.NoError(t, err)
		assert.Contains(t, caps.Roles(), "manager")
	})

	t.Run("should parse a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "roles.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
roles:
  Owner: {elevated: true}
  finisher:
    departments: [production]
`), 0o600))

		caps, err := services.LoadRoleCapabilities(path)

		require.NoError(t, err)
		assert.Equal(t, []string{"finisher", "owner"}, caps.Roles())
		c, ok := caps.Lookup("FINISHER")
		require.True(t, ok)
		assert.Equal(t, []kernel.Department{kernel.DepartmentProduction}, c.Departments)
	})

	t.Run("should reject unknown departments", func(t *testing.T) {
		_, err := services.ParseRoleCapabilities([]byte("roles:\n  x: {departments: [warehouse]}\n"))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject an empty table", func(t *testing.T) {
		_, err := services.ParseRoleCapabilities([]byte("roles: {}\n"))
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
