// Package workspacebus provides business access to workspace domain.
package workspacebus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/foundation/logger"
	"github.com/planora/planora/foundation/otel"
)

var (
	ErrNotFound   = errors.New("workspace not found")
	ErrUniqueName = errors.New("workspace name is not unique for owner")
)

// Storer defines the behavior required by the workspacebus to interact with
// the database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, ws Workspace) error
	Update(ctx context.Context, ws Workspace) error
	Delete(ctx context.Context, ws Workspace) error
	QueryByID(ctx context.Context, workspaceID uuid.UUID) (Workspace, error)
	QueryByOwner(ctx context.Context, ownerID uuid.UUID) ([]Workspace, error)
	QueryForUser(ctx context.Context, userID uuid.UUID) ([]Workspace, error)
}

// Core manages the set of APIs for workspace access.
type Core struct {
	storer Storer
	log    *logger.Logger
}

// NewCore constructs a core for workspace api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		storer: storer,
		log:    log,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	return NewCore(c.log, storer), nil
}

// Create adds a new workspace to the system owned by the specified user.
func (c *Core) Create(ctx context.Context, nw NewWorkspace) (Workspace, error) {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.create")
	defer span.End()

	now := time.Now()

	ws := Workspace{
		ID:             uuid.New(),
		Name:           nw.Name,
		OwnerID:        nw.OwnerID,
		OrganizationID: nw.OrganizationID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := c.storer.Create(ctx, ws); err != nil {
		return Workspace{}, fmt.Errorf("create: %w", err)
	}

	return ws, nil
}

// Update modifies data about a workspace.
func (c *Core) Update(ctx context.Context, ws Workspace, uw UpdateWorkspace) (Workspace, error) {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.update")
	defer span.End()

	if uw.Name != nil {
		ws.Name = *uw.Name
	}

	if uw.OrganizationID != nil {
		ws.OrganizationID = uw.OrganizationID
	}

	ws.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, ws); err != nil {
		return Workspace{}, fmt.Errorf("update: %w", err)
	}

	return ws, nil
}

// Delete retires the specified workspace from the system. The row stays
// behind with a deletion timestamp so billing history survives.
func (c *Core) Delete(ctx context.Context, ws Workspace) error {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.delete")
	defer span.End()

	now := time.Now()
	ws.DeletedAt = &now
	ws.UpdatedAt = now

	if err := c.storer.Delete(ctx, ws); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// QueryByID finds the workspace by the specified ID. Deleted workspaces are
// not found.
func (c *Core) QueryByID(ctx context.Context, workspaceID uuid.UUID) (Workspace, error) {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.queryByID")
	defer span.End()

	ws, err := c.storer.QueryByID(ctx, workspaceID)
	if err != nil {
		return Workspace{}, fmt.Errorf("query: workspaceID[%s]: %w", workspaceID, err)
	}

	return ws, nil
}

// QueryByOwner returns the workspaces owned by the specified user.
func (c *Core) QueryByOwner(ctx context.Context, ownerID uuid.UUID) ([]Workspace, error) {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.queryByOwner")
	defer span.End()

	wss, err := c.storer.QueryByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query: ownerID[%s]: %w", ownerID, err)
	}

	return wss, nil
}

// QueryForUser returns the workspaces where the specified user holds an
// active membership.
func (c *Core) QueryForUser(ctx context.Context, userID uuid.UUID) ([]Workspace, error) {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.queryForUser")
	defer span.End()

	wss, err := c.storer.QueryForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query: userID[%s]: %w", userID, err)
	}

	return wss, nil
}
