package inviteapp

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/app/sdk/errs"
	"github.com/planora/planora/business/domain/invitebus"
)

// Invite represents a pending offer to join a workspace. The token is only
// returned to the member who issued the invite.
type Invite struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspaceId"`
	Email       string `json:"email"`
	RoleID      string `json:"roleId,omitempty"`
	Token       string `json:"token,omitempty"`
	Accepted    bool   `json:"accepted"`
	AcceptedAt  string `json:"acceptedAt,omitempty"`
	DateCreated string `json:"dateCreated"`
}

// Encode implements the web.Encoder interface.
func (i Invite) Encode() ([]byte, string, error) {
	data, err := json.Marshal(i)
	return data, "application/json", err
}

func toAppInvite(bus invitebus.Invite, withToken bool) Invite {
	app := Invite{
		ID:          bus.ID.String(),
		WorkspaceID: bus.WorkspaceID.String(),
		Email:       bus.Email.Address,
		Accepted:    bus.Accepted,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
	}

	if bus.RoleID != nil {
		app.RoleID = bus.RoleID.String()
	}

	if bus.AcceptedAt != nil {
		app.AcceptedAt = bus.AcceptedAt.Format(time.RFC3339)
	}

	if withToken {
		app.Token = bus.Token
	}

	return app
}

// Invites is a list response.
type Invites []Invite

// Encode implements the web.Encoder interface.
func (i Invites) Encode() ([]byte, string, error) {
	data, err := json.Marshal(i)
	return data, "application/json", err
}

func toAppInvites(invs []invitebus.Invite) Invites {
	app := make(Invites, len(invs))
	for i, inv := range invs {
		app[i] = toAppInvite(inv, false)
	}
	return app
}

// NewInvite defines the data needed to issue an invite.
type NewInvite struct {
	Email  string `json:"email" validate:"required,email"`
	RoleID string `json:"roleId"`
}

// Decode implements the web.Decoder interface.
func (app *NewInvite) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewInvite) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewInvite(app NewInvite, workspaceID uuid.UUID, createdBy uuid.UUID) (invitebus.NewInvite, error) {
	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		return invitebus.NewInvite{}, fmt.Errorf("parse email: %w", err)
	}

	var roleID *uuid.UUID
	if app.RoleID != "" {
		id, err := uuid.Parse(app.RoleID)
		if err != nil {
			return invitebus.NewInvite{}, fmt.Errorf("parse role id: %w", err)
		}
		roleID = &id
	}

	bus := invitebus.NewInvite{
		WorkspaceID: workspaceID,
		Email:       *addr,
		RoleID:      roleID,
		CreatedBy:   createdBy,
	}

	return bus, nil
}

// AcceptInvite defines the data needed to accept an invite.
type AcceptInvite struct {
	Token string `json:"token" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *AcceptInvite) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app AcceptInvite) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}
