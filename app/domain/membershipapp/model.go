package membershipapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/app/sdk/errs"
	"github.com/planora/planora/business/domain/membershipbus"
	"github.com/planora/planora/business/types/permission"
)

// Override represents a per member grant adjustment.
type Override struct {
	Code  string `json:"code"`
	Scope string `json:"scope"`
	Allow bool   `json:"allow"`
}

// Membership represents a user's enrollment in a workspace.
type Membership struct {
	ID          string     `json:"id"`
	WorkspaceID string     `json:"workspaceId"`
	UserID      string     `json:"userId"`
	RoleID      string     `json:"roleId,omitempty"`
	Active      bool       `json:"active"`
	Overrides   []Override `json:"overrides"`
	DateCreated string     `json:"dateCreated"`
	DateUpdated string     `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (m Membership) Encode() ([]byte, string, error) {
	data, err := json.Marshal(m)
	return data, "application/json", err
}

func toAppMembership(bus membershipbus.Membership) Membership {
	app := Membership{
		ID:          bus.ID.String(),
		WorkspaceID: bus.WorkspaceID.String(),
		UserID:      bus.UserID.String(),
		Active:      bus.Active,
		Overrides:   make([]Override, len(bus.Overrides)),
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}

	if bus.RoleID != nil {
		app.RoleID = bus.RoleID.String()
	}

	for i, ovr := range bus.Overrides {
		app.Overrides[i] = Override{
			Code:  ovr.Code.String(),
			Scope: ovr.Scope.String(),
			Allow: ovr.Allow,
		}
	}

	return app
}

// Memberships is a list response.
type Memberships []Membership

// Encode implements the web.Encoder interface.
func (m Memberships) Encode() ([]byte, string, error) {
	data, err := json.Marshal(m)
	return data, "application/json", err
}

func toAppMemberships(mems []membershipbus.Membership) Memberships {
	app := make(Memberships, len(mems))
	for i, mem := range mems {
		app[i] = toAppMembership(mem)
	}
	return app
}

// UpdateMembership defines the data needed to update a membership.
type UpdateMembership struct {
	RoleID *string `json:"roleId"`
	Active *bool   `json:"active"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateMembership) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateMembership) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateMembership(app UpdateMembership) (membershipbus.UpdateMembership, error) {
	var roleID *uuid.UUID
	if app.RoleID != nil {
		id, err := uuid.Parse(*app.RoleID)
		if err != nil {
			return membershipbus.UpdateMembership{}, fmt.Errorf("parse role id: %w", err)
		}
		roleID = &id
	}

	bus := membershipbus.UpdateMembership{
		RoleID: roleID,
		Active: app.Active,
	}

	return bus, nil
}

// NewOverride defines the data needed to set an override.
type NewOverride struct {
	Code  string `json:"code" validate:"required"`
	Scope string `json:"scope" validate:"required"`
	Allow bool   `json:"allow"`
}

// Decode implements the web.Decoder interface.
func (app *NewOverride) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewOverride) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusOverride(app NewOverride) (membershipbus.Override, error) {
	code, err := permission.ParseCode(app.Code)
	if err != nil {
		return membershipbus.Override{}, fmt.Errorf("parse code: %w", err)
	}

	scope, err := permission.ParseScope(app.Scope)
	if err != nil {
		return membershipbus.Override{}, fmt.Errorf("parse scope: %w", err)
	}

	bus := membershipbus.Override{
		Code:  code,
		Scope: scope,
		Allow: app.Allow,
	}

	return bus, nil
}

func toBusCode(value string) (permission.Code, error) {
	code, err := permission.ParseCode(value)
	if err != nil {
		return permission.Code{}, fmt.Errorf("parse code: %w", err)
	}
	return code, nil
}
