package rolebus

import (
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/business/types/name"
	"github.com/planora/planora/business/types/permission"
)

// Role represents a named bundle of grants inside one workspace. System
// roles are the seeded defaults and cannot be edited or removed.
type Role struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	Name        name.Name
	System      bool
	Permissions []Permission
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Permission represents a single grant carried by a role.
type Permission struct {
	Code  permission.Code
	Scope permission.Scope
}

// NewRole contains information needed to create a new role.
type NewRole struct {
	WorkspaceID uuid.UUID
	Name        name.Name
	System      bool
	Permissions []Permission
}

// UpdateRole contains information needed to update a role.
type UpdateRole struct {
	Name        *name.Name
	Permissions *[]Permission
}
