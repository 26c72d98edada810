// Package rolebus provides business access to workspace role domain.
package rolebus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/business/types/permission"
	"github.com/planora/planora/foundation/logger"
	"github.com/planora/planora/foundation/otel"
)

var (
	ErrNotFound   = errors.New("role not found")
	ErrUniqueName = errors.New("role name is not unique in workspace")
	ErrSystemRole = errors.New("system role cannot be modified")
)

// Storer defines the behavior required by the rolebus to interact with the
// database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, rl Role) error
	Update(ctx context.Context, rl Role) error
	Delete(ctx context.Context, rl Role) error
	QueryByID(ctx context.Context, roleID uuid.UUID) (Role, error)
	QueryByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Role, error)
}

// Core manages the set of APIs for role access.
type Core struct {
	storer Storer
	log    *logger.Logger
}

// NewCore constructs a core for role api access.
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

// Create adds a new role to the workspace.
func (c *Core) Create(ctx context.Context, nr NewRole) (Role, error) {
	ctx, span := otel.AddSpan(ctx, "business.rolebus.create")
	defer span.End()

	now := time.Now()

	rl := Role{
		ID:          uuid.New(),
		WorkspaceID: nr.WorkspaceID,
		Name:        nr.Name,
		System:      nr.System,
		Permissions: dedupe(nr.Permissions),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storer.Create(ctx, rl); err != nil {
		return Role{}, fmt.Errorf("create: %w", err)
	}

	return rl, nil
}

// Update modifies data about a role. System roles are read only.
func (c *Core) Update(ctx context.Context, rl Role, ur UpdateRole) (Role, error) {
	ctx, span := otel.AddSpan(ctx, "business.rolebus.update")
	defer span.End()

	if rl.System {
		return Role{}, ErrSystemRole
	}

	if ur.Name != nil {
		rl.Name = *ur.Name
	}

	if ur.Permissions != nil {
		rl.Permissions = dedupe(*ur.Permissions)
	}

	rl.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, rl); err != nil {
		return Role{}, fmt.Errorf("update: %w", err)
	}

	return rl, nil
}

// Delete removes the specified role from the workspace. System roles are
// read only.
func (c *Core) Delete(ctx context.Context, rl Role) error {
	ctx, span := otel.AddSpan(ctx, "business.rolebus.delete")
	defer span.End()

	if rl.System {
		return ErrSystemRole
	}

	if err := c.storer.Delete(ctx, rl); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// QueryByID finds the role by the specified ID.
func (c *Core) QueryByID(ctx context.Context, roleID uuid.UUID) (Role, error) {
	ctx, span := otel.AddSpan(ctx, "business.rolebus.queryByID")
	defer span.End()

	rl, err := c.storer.QueryByID(ctx, roleID)
	if err != nil {
		return Role{}, fmt.Errorf("query: roleID[%s]: %w", roleID, err)
	}

	return rl, nil
}

// QueryByWorkspace returns the roles defined in the workspace.
func (c *Core) QueryByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Role, error) {
	ctx, span := otel.AddSpan(ctx, "business.rolebus.queryByWorkspace")
	defer span.End()

	rls, err := c.storer.QueryByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("query: workspaceID[%s]: %w", workspaceID, err)
	}

	return rls, nil
}

// dedupe keeps the last grant for each code so a role never carries two
// scopes for the same permission.
func dedupe(perms []Permission) []Permission {
	idx := make(map[string]int, len(perms))
	out := make([]Permission, 0, len(perms))

	for _, p := range perms {
		if i, exists := idx[p.Code.String()]; exists {
			out[i] = p
			continue
		}
		idx[p.Code.String()] = len(out)
		out = append(out, p)
	}

	return out
}

// filterKnown drops grants whose code the registry does not recognise.
func filterKnown(reg *permission.Registry, perms []Permission) []Permission {
	out := make([]Permission, 0, len(perms))
	for _, p := range perms {
		if reg.Known(p.Code) {
			out = append(out, p)
		}
	}

	return out
}
