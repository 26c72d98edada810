package invitebus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// Invite represents a pending offer to join a workspace.
type Invite struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	Email       mail.Address
	RoleID      *uuid.UUID
	Token       string
	Accepted    bool
	AcceptedAt  *time.Time
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewInvite contains information needed to issue an invite.
type NewInvite struct {
	WorkspaceID uuid.UUID
	Email       mail.Address
	RoleID      *uuid.UUID
	CreatedBy   uuid.UUID
}
