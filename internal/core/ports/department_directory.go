package ports

import (
	"context"

	"printshop/internal/core/domain/model/kernel"
)

// Profile is the department membership of a user as known to the profile collaborator.
type Profile struct {
	UserID     string
	Name       string
	Department kernel.Department
}

// DepartmentDirectory resolves user profiles. An unknown user is *errs.ObjectNotFoundError;
// callers fail closed on it.
type DepartmentDirectory interface {
	Lookup(ctx context.Context, userID string) (Profile, error)
}
