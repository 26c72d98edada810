package workspacebus

import (
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/business/types/name"
)

// Workspace represents an isolated tenant in the system. Every billing,
// membership and permission decision hangs off one of these.
type Workspace struct {
	ID             uuid.UUID
	Name           name.Name
	OwnerID        uuid.UUID
	OrganizationID *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// NewWorkspace contains information needed to create a new workspace.
type NewWorkspace struct {
	Name           name.Name
	OwnerID        uuid.UUID
	OrganizationID *uuid.UUID
}

// UpdateWorkspace contains information needed to update a workspace.
type UpdateWorkspace struct {
	Name           *name.Name
	OrganizationID *uuid.UUID
}
