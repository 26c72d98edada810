package accessbus

import (
	"github.com/google/uuid"
	"github.com/planora/planora/business/types/permission"
)

// Subject identifies who is asking for access.
type Subject struct {
	UserID    uuid.UUID
	Superuser bool
}

// Grant represents one permission a member holds.
type Grant struct {
	Code  permission.Code
	Scope permission.Scope
}

// Override represents a per member adjustment on top of the role.
type Override struct {
	Code  permission.Code
	Scope permission.Scope
	Allow bool
}

// MemberGrants is the raw grant material for one active membership.
type MemberGrants struct {
	Grants    []Grant
	Overrides []Override
}
