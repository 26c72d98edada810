// Package membershipbus provides business access to workspace membership
// domain.
package membershipbus

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
	ErrNotFound     = errors.New("membership not found")
	ErrUniqueMember = errors.New("user is already a member of the workspace")
)

// Storer defines the behavior required by the membershipbus to interact
// with the database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, mem Membership) error
	Update(ctx context.Context, mem Membership) error
	QueryByID(ctx context.Context, membershipID uuid.UUID) (Membership, error)
	QueryByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Membership, error)
	QueryByUserWorkspace(ctx context.Context, userID uuid.UUID, workspaceID uuid.UUID) (Membership, error)
	CountActiveByWorkspace(ctx context.Context, workspaceID uuid.UUID) (int, error)
	UpsertOverride(ctx context.Context, membershipID uuid.UUID, ovr Override) error
	DeleteOverride(ctx context.Context, membershipID uuid.UUID, code permission.Code) error
}

// Core manages the set of APIs for membership access.
type Core struct {
	storer Storer
	log    *logger.Logger
}

// NewCore constructs a core for membership api access.
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

// Create enrolls a user into a workspace. A user can hold at most one
// membership per workspace.
func (c *Core) Create(ctx context.Context, nm NewMembership) (Membership, error) {
	ctx, span := otel.AddSpan(ctx, "business.membershipbus.create")
	defer span.End()

	now := time.Now()

	mem := Membership{
		ID:          uuid.New(),
		WorkspaceID: nm.WorkspaceID,
		UserID:      nm.UserID,
		RoleID:      nm.RoleID,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storer.Create(ctx, mem); err != nil {
		return Membership{}, fmt.Errorf("create: %w", err)
	}

	return mem, nil
}

// Enroll makes the user an active member of the workspace. An existing
// active membership is left unchanged. A deactivated membership is
// reactivated, picking up the supplied role when one is given. Otherwise a new membership is
// created.
func (c *Core) Enroll(ctx context.Context, nm NewMembership) (Membership, error) {
	ctx, span := otel.AddSpan(ctx, "business.membershipbus.enroll")
	defer span.End()

	mem, err := c.storer.QueryByUserWorkspace(ctx, nm.UserID, nm.WorkspaceID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return Membership{}, fmt.Errorf("query: userID[%s] workspaceID[%s]: %w", nm.UserID, nm.WorkspaceID, err)
		}
		return c.Create(ctx, nm)
	}

	if mem.Active {
		return mem, nil
	}

	active := true

	return c.Update(ctx, mem, UpdateMembership{RoleID: nm.RoleID, Active: &active})
}

// Update modifies data about a membership.
func (c *Core) Update(ctx context.Context, mem Membership, um UpdateMembership) (Membership, error) {
	ctx, span := otel.AddSpan(ctx, "business.membershipbus.update")
	defer span.End()

	if um.RoleID != nil {
		mem.RoleID = um.RoleID
	}

	if um.Active != nil {
		mem.Active = *um.Active
	}

	mem.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, mem); err != nil {
		return Membership{}, fmt.Errorf("update: %w", err)
	}

	return mem, nil
}

// SetOverride adds or replaces a per member grant adjustment. One override
// per code per membership.
func (c *Core) SetOverride(ctx context.Context, mem Membership, ovr Override) error {
	ctx, span := otel.AddSpan(ctx, "business.membershipbus.setOverride")
	defer span.End()

	if err := c.storer.UpsertOverride(ctx, mem.ID, ovr); err != nil {
		return fmt.Errorf("upsertOverride: %w", err)
	}

	return nil
}

// DeleteOverride removes a per member grant adjustment.
func (c *Core) DeleteOverride(ctx context.Context, mem Membership, code permission.Code) error {
	ctx, span := otel.AddSpan(ctx, "business.membershipbus.deleteOverride")
	defer span.End()

	if err := c.storer.DeleteOverride(ctx, mem.ID, code); err != nil {
		return fmt.Errorf("deleteOverride: %w", err)
	}

	return nil
}

// QueryByID finds the membership by the specified ID.
func (c *Core) QueryByID(ctx context.Context, membershipID uuid.UUID) (Membership, error) {
	ctx, span := otel.AddSpan(ctx, "business.membershipbus.queryByID")
	defer span.End()

	mem, err := c.storer.QueryByID(ctx, membershipID)
	if err != nil {
		return Membership{}, fmt.Errorf("query: membershipID[%s]: %w", membershipID, err)
	}

	return mem, nil
}

// QueryByWorkspace returns the memberships of the workspace.
func (c *Core) QueryByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Membership, error) {
	ctx, span := otel.AddSpan(ctx, "business.membershipbus.queryByWorkspace")
	defer span.End()

	mems, err := c.storer.QueryByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("query: workspaceID[%s]: %w", workspaceID, err)
	}

	return mems, nil
}

// QueryByUserWorkspace finds the membership tying the user to the workspace.
func (c *Core) QueryByUserWorkspace(ctx context.Context, userID uuid.UUID, workspaceID uuid.UUID) (Membership, error) {
	ctx, span := otel.AddSpan(ctx, "business.membershipbus.queryByUserWorkspace")
	defer span.End()

	mem, err := c.storer.QueryByUserWorkspace(ctx, userID, workspaceID)
	if err != nil {
		return Membership{}, fmt.Errorf("query: userID[%s] workspaceID[%s]: %w", userID, workspaceID, err)
	}

	return mem, nil
}

// CountActiveByWorkspace returns the number of active members, used to
// enforce the plan seat limit.
func (c *Core) CountActiveByWorkspace(ctx context.Context, workspaceID uuid.UUID) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.membershipbus.countActiveByWorkspace")
	defer span.End()

	count, err := c.storer.CountActiveByWorkspace(ctx, workspaceID)
	if err != nil {
		return 0, fmt.Errorf("count: workspaceID[%s]: %w", workspaceID, err)
	}

	return count, nil
}
