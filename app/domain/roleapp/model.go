package roleapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/app/sdk/errs"
	"github.com/planora/planora/business/domain/rolebus"
	"github.com/planora/planora/business/types/name"
	"github.com/planora/planora/business/types/permission"
)

// Permission represents a single grant carried by a role.
type Permission struct {
	Code  string `json:"code"`
	Scope string `json:"scope"`
}

// Role represents a named bundle of grants.
type Role struct {
	ID          string       `json:"id"`
	WorkspaceID string       `json:"workspaceId"`
	Name        string       `json:"name"`
	System      bool         `json:"system"`
	Permissions []Permission `json:"permissions"`
	DateCreated string       `json:"dateCreated"`
	DateUpdated string       `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (r Role) Encode() ([]byte, string, error) {
	data, err := json.Marshal(r)
	return data, "application/json", err
}

func toAppRole(bus rolebus.Role) Role {
	app := Role{
		ID:          bus.ID.String(),
		WorkspaceID: bus.WorkspaceID.String(),
		Name:        bus.Name.String(),
		System:      bus.System,
		Permissions: make([]Permission, len(bus.Permissions)),
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}

	for i, perm := range bus.Permissions {
		app.Permissions[i] = Permission{
			Code:  perm.Code.String(),
			Scope: perm.Scope.String(),
		}
	}

	return app
}

// Roles is a list response.
type Roles []Role

// Encode implements the web.Encoder interface.
func (r Roles) Encode() ([]byte, string, error) {
	data, err := json.Marshal(r)
	return data, "application/json", err
}

func toAppRoles(rls []rolebus.Role) Roles {
	app := make(Roles, len(rls))
	for i, rl := range rls {
		app[i] = toAppRole(rl)
	}
	return app
}

// Definition describes one entry of the permission vocabulary.
type Definition struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Definitions is a list response.
type Definitions []Definition

// Encode implements the web.Encoder interface.
func (d Definitions) Encode() ([]byte, string, error) {
	data, err := json.Marshal(d)
	return data, "application/json", err
}

func toAppDefinitions(defs []permission.Definition) Definitions {
	app := make(Definitions, len(defs))
	for i, def := range defs {
		app[i] = Definition{
			Code:        def.Code.String(),
			Description: def.Description,
		}
	}
	return app
}

// NewRole defines the data needed to create a role.
type NewRole struct {
	Name        string       `json:"name" validate:"required"`
	Permissions []Permission `json:"permissions" validate:"required,dive"`
}

// Decode implements the web.Decoder interface.
func (app *NewRole) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewRole) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewRole(app NewRole, workspaceID uuid.UUID, reg *permission.Registry) (rolebus.NewRole, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return rolebus.NewRole{}, fmt.Errorf("parse name: %w", err)
	}

	perms, err := toBusPermissions(app.Permissions, reg)
	if err != nil {
		return rolebus.NewRole{}, err
	}

	bus := rolebus.NewRole{
		WorkspaceID: workspaceID,
		Name:        nme,
		Permissions: perms,
	}

	return bus, nil
}

// UpdateRole defines the data needed to update a role.
type UpdateRole struct {
	Name        *string       `json:"name"`
	Permissions *[]Permission `json:"permissions" validate:"omitempty,dive"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateRole) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateRole) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateRole(app UpdateRole, reg *permission.Registry) (rolebus.UpdateRole, error) {
	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return rolebus.UpdateRole{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	var perms *[]rolebus.Permission
	if app.Permissions != nil {
		p, err := toBusPermissions(*app.Permissions, reg)
		if err != nil {
			return rolebus.UpdateRole{}, err
		}
		perms = &p
	}

	bus := rolebus.UpdateRole{
		Name:        nme,
		Permissions: perms,
	}

	return bus, nil
}

func toBusPermissions(app []Permission, reg *permission.Registry) ([]rolebus.Permission, error) {
	perms := make([]rolebus.Permission, len(app))

	for i, p := range app {
		code, err := permission.ParseCode(p.Code)
		if err != nil {
			return nil, fmt.Errorf("parse code: %w", err)
		}

		if !reg.Known(code) {
			return nil, fmt.Errorf("unknown permission code: %s", p.Code)
		}

		scope, err := permission.ParseScope(p.Scope)
		if err != nil {
			return nil, fmt.Errorf("parse scope: %w", err)
		}

		if !reg.Allows(code, scope) {
			return nil, fmt.Errorf("scope %q not allowed for code %s", p.Scope, p.Code)
		}

		perms[i] = rolebus.Permission{
			Code:  code,
			Scope: scope,
		}
	}

	return perms, nil
}
