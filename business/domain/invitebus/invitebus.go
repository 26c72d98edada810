// Package invitebus provides business access to workspace invite domain.
package invitebus

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/foundation/logger"
	"github.com/planora/planora/foundation/otel"
)

var (
	ErrNotFound        = errors.New("invite not found")
	ErrUniqueInvite    = errors.New("email already invited to workspace")
	ErrAlreadyAccepted = errors.New("invite already accepted")
	ErrEmailMismatch   = errors.New("invite was issued for a different email")
)

// Storer defines the behavior required by the invitebus to interact with
// the database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, inv Invite) error
	Delete(ctx context.Context, inv Invite) error
	Accept(ctx context.Context, inv Invite) error
	QueryByID(ctx context.Context, inviteID uuid.UUID) (Invite, error)
	QueryByToken(ctx context.Context, token string) (Invite, error)
	QueryByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Invite, error)
}

// Core manages the set of APIs for invite access.
type Core struct {
	storer Storer
	log    *logger.Logger
}

// NewCore constructs a core for invite api access.
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

// Create issues an invite for an email address. The token travels in the
// invite link and is the only way to redeem the invite.
func (c *Core) Create(ctx context.Context, ni NewInvite) (Invite, error) {
	ctx, span := otel.AddSpan(ctx, "business.invitebus.create")
	defer span.End()

	token, err := generateToken()
	if err != nil {
		return Invite{}, fmt.Errorf("generateToken: %w", err)
	}

	now := time.Now()

	inv := Invite{
		ID:          uuid.New(),
		WorkspaceID: ni.WorkspaceID,
		Email:       ni.Email,
		RoleID:      ni.RoleID,
		Token:       token,
		CreatedBy:   ni.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storer.Create(ctx, inv); err != nil {
		return Invite{}, fmt.Errorf("create: %w", err)
	}

	return inv, nil
}

// Accept redeems the invite for the specified user. The invite is single
// use. Two racing accepts resolve in the database, the loser gets
// ErrAlreadyAccepted. The redeeming user's email must match the invite.
func (c *Core) Accept(ctx context.Context, inv Invite, userEmail mail.Address) (Invite, error) {
	ctx, span := otel.AddSpan(ctx, "business.invitebus.accept")
	defer span.End()

	if inv.Accepted {
		return Invite{}, ErrAlreadyAccepted
	}

	if !strings.EqualFold(inv.Email.Address, userEmail.Address) {
		return Invite{}, ErrEmailMismatch
	}

	now := time.Now()
	inv.Accepted = true
	inv.AcceptedAt = &now
	inv.UpdatedAt = now

	if err := c.storer.Accept(ctx, inv); err != nil {
		return Invite{}, fmt.Errorf("accept: %w", err)
	}

	return inv, nil
}

// Delete removes the specified invite.
func (c *Core) Delete(ctx context.Context, inv Invite) error {
	ctx, span := otel.AddSpan(ctx, "business.invitebus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, inv); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// QueryByID finds the invite by the specified ID.
func (c *Core) QueryByID(ctx context.Context, inviteID uuid.UUID) (Invite, error) {
	ctx, span := otel.AddSpan(ctx, "business.invitebus.queryByID")
	defer span.End()

	inv, err := c.storer.QueryByID(ctx, inviteID)
	if err != nil {
		return Invite{}, fmt.Errorf("query: inviteID[%s]: %w", inviteID, err)
	}

	return inv, nil
}

// QueryByToken finds the invite carrying the specified token.
func (c *Core) QueryByToken(ctx context.Context, token string) (Invite, error) {
	ctx, span := otel.AddSpan(ctx, "business.invitebus.queryByToken")
	defer span.End()

	inv, err := c.storer.QueryByToken(ctx, token)
	if err != nil {
		return Invite{}, fmt.Errorf("query by token: %w", err)
	}

	return inv, nil
}

// QueryByWorkspace returns the invites issued for the workspace.
func (c *Core) QueryByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Invite, error) {
	ctx, span := otel.AddSpan(ctx, "business.invitebus.queryByWorkspace")
	defer span.End()

	invs, err := c.storer.QueryByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("query: workspaceID[%s]: %w", workspaceID, err)
	}

	return invs, nil
}

// generateToken produces a URL safe random token for the invite link.
func generateToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
