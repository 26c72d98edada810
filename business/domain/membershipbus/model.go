package membershipbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/business/types/permission"
)

// Membership ties a user to a workspace with at most one role. Overrides
// adjust the role's grants for this member only.
type Membership struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	UserID      uuid.UUID
	RoleID      *uuid.UUID
	Active      bool
	Overrides   []Override
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Override represents a per member grant adjustment. Allow true adds the
// grant on top of the role. Allow false is recorded but takes nothing away.
type Override struct {
	Code  permission.Code
	Scope permission.Scope
	Allow bool
}

// NewMembership contains information needed to enroll a user.
type NewMembership struct {
	WorkspaceID uuid.UUID
	UserID      uuid.UUID
	RoleID      *uuid.UUID
}

// UpdateMembership contains information needed to update a membership.
type UpdateMembership struct {
	RoleID *uuid.UUID
	Active *bool
}
