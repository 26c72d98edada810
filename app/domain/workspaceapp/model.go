package workspaceapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/app/sdk/errs"
	"github.com/planora/planora/business/domain/workspacebus"
	"github.com/planora/planora/business/types/name"
)

// Workspace represents information about an individual workspace.
type Workspace struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	OwnerID        string `json:"ownerId"`
	OrganizationID string `json:"organizationId,omitempty"`
	DateCreated    string `json:"dateCreated"`
	DateUpdated    string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (w Workspace) Encode() ([]byte, string, error) {
	data, err := json.Marshal(w)
	return data, "application/json", err
}

func toAppWorkspace(bus workspacebus.Workspace) Workspace {
	app := Workspace{
		ID:          bus.ID.String(),
		Name:        bus.Name.String(),
		OwnerID:     bus.OwnerID.String(),
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}

	if bus.OrganizationID != nil {
		app.OrganizationID = bus.OrganizationID.String()
	}

	return app
}

// Workspaces is a list response.
type Workspaces []Workspace

// Encode implements the web.Encoder interface.
func (w Workspaces) Encode() ([]byte, string, error) {
	data, err := json.Marshal(w)
	return data, "application/json", err
}

func toAppWorkspaces(wss []workspacebus.Workspace) Workspaces {
	app := make(Workspaces, len(wss))
	for i, ws := range wss {
		app[i] = toAppWorkspace(ws)
	}
	return app
}

// NewWorkspace defines the data needed to create a workspace.
type NewWorkspace struct {
	Name           string `json:"name" validate:"required"`
	OrganizationID string `json:"organizationId"`
}

// Decode implements the web.Decoder interface.
func (app *NewWorkspace) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewWorkspace) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewWorkspace(app NewWorkspace, ownerID uuid.UUID) (workspacebus.NewWorkspace, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return workspacebus.NewWorkspace{}, fmt.Errorf("parse name: %w", err)
	}

	var orgID *uuid.UUID
	if app.OrganizationID != "" {
		id, err := uuid.Parse(app.OrganizationID)
		if err != nil {
			return workspacebus.NewWorkspace{}, fmt.Errorf("parse organization id: %w", err)
		}
		orgID = &id
	}

	bus := workspacebus.NewWorkspace{
		Name:           nme,
		OwnerID:        ownerID,
		OrganizationID: orgID,
	}

	return bus, nil
}

// UpdateWorkspace defines the data needed to update a workspace.
type UpdateWorkspace struct {
	Name           *string `json:"name"`
	OrganizationID *string `json:"organizationId"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateWorkspace) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateWorkspace) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateWorkspace(app UpdateWorkspace) (workspacebus.UpdateWorkspace, error) {
	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return workspacebus.UpdateWorkspace{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	var orgID *uuid.UUID
	if app.OrganizationID != nil {
		id, err := uuid.Parse(*app.OrganizationID)
		if err != nil {
			return workspacebus.UpdateWorkspace{}, fmt.Errorf("parse organization id: %w", err)
		}
		orgID = &id
	}

	bus := workspacebus.UpdateWorkspace{
		Name:           nme,
		OrganizationID: orgID,
	}

	return bus, nil
}
