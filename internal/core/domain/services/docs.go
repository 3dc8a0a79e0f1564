// Package services provides domain services that span aggregates or carry injected
// policy.
//
// The package includes:
//   - RoleCapabilities: the role -> departments table injected at startup, loadable from YAML
//   - WorkflowPolicy: authorization of workflow and inventory operations against that table
//
// Policies are immutable once built and safe for concurrent use.
package services
