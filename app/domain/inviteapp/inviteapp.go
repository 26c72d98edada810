// Package inviteapp provides the application layer for workspace invites.
// Accepting an invite enrolls the user as a member, which runs inside a
// transaction so the invite cannot be consumed twice.
package inviteapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/planora/planora/app/sdk/errs"
	"github.com/planora/planora/app/sdk/mid"
	"github.com/planora/planora/business/domain/invitebus"
	"github.com/planora/planora/business/domain/membershipbus"
	"github.com/planora/planora/business/domain/subscriptionbus"
	"github.com/planora/planora/business/sdk/web"
)

type app struct {
	inviteBus       *invitebus.Core
	membershipBus   *membershipbus.Core
	subscriptionBus *subscriptionbus.Core
}

func newApp(cfg Config) *app {
	return &app{
		inviteBus:       cfg.InviteBus,
		membershipBus:   cfg.MembershipBus,
		subscriptionBus: cfg.SubscriptionBus,
	}
}

// executeUnderTransaction rebinds the cores against the request transaction
// when one is present.
func (a *app) executeUnderTransaction(ctx context.Context) (*app, error) {
	tx, err := mid.GetTran(ctx)
	if err != nil {
		return a, nil
	}

	inviteBus, err := a.inviteBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	membershipBus, err := a.membershipBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	subscriptionBus, err := a.subscriptionBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return &app{
		inviteBus:       inviteBus,
		membershipBus:   membershipBus,
		subscriptionBus: subscriptionBus,
	}, nil
}

// create issues an invite for the resolved workspace.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewInvite
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.Errorf(errs.PermissionDenied, "access denied")
	}

	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	ni, err := toBusNewInvite(app, workspaceID, userID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	inv, err := a.inviteBus.Create(ctx, ni)
	if err != nil {
		if errors.Is(err, invitebus.ErrUniqueInvite) {
			return errs.New(errs.Aborted, invitebus.ErrUniqueInvite)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create invite: workspaceID[%s]: %s", workspaceID, err)
	}

	return toAppInvite(inv, true)
}

// accept consumes an invite token and enrolls the caller. The invite email
// must match the caller's account and the workspace must still have seats
// under its plan.
func (a *app) accept(ctx context.Context, r *http.Request) web.Encoder {
	var app AcceptInvite
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, err := mid.GetUser(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "user missing in context: %s", err)
	}

	a, err = a.executeUnderTransaction(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	inv, err := a.inviteBus.QueryByToken(ctx, app.Token)
	if err != nil {
		if errors.Is(err, invitebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "querybytoken: %s", err)
	}

	// An already active member does not consume another seat, so the limit
	// only matters when the accept enrolls someone new.
	mem, err := a.membershipBus.QueryByUserWorkspace(ctx, usr.ID, inv.WorkspaceID)
	if err != nil && !errors.Is(err, membershipbus.ErrNotFound) {
		return errs.Errorf(errs.InternalOnlyLog, "query membership: workspaceID[%s] userID[%s]: %s", inv.WorkspaceID, usr.ID, err)
	}

	if err != nil || !mem.Active {
		sub, err := a.subscriptionBus.QueryByWorkspace(ctx, inv.WorkspaceID)
		if err != nil {
			return errs.Errorf(errs.InternalOnlyLog, "query subscription: workspaceID[%s]: %s", inv.WorkspaceID, err)
		}

		active, err := a.membershipBus.CountActiveByWorkspace(ctx, inv.WorkspaceID)
		if err != nil {
			return errs.Errorf(errs.InternalOnlyLog, "count members: workspaceID[%s]: %s", inv.WorkspaceID, err)
		}

		if active >= sub.Limits.Users {
			return errs.Errorf(errs.FailedPrecondition, "workspace member limit reached")
		}
	}

	inv, err = a.inviteBus.Accept(ctx, inv, usr.Email)
	if err != nil {
		switch {
		case errors.Is(err, invitebus.ErrAlreadyAccepted):
			return errs.New(errs.Aborted, invitebus.ErrAlreadyAccepted)
		case errors.Is(err, invitebus.ErrEmailMismatch):
			return errs.New(errs.PermissionDenied, invitebus.ErrEmailMismatch)
		default:
			return errs.Errorf(errs.InternalOnlyLog, "accept: inviteID[%s]: %s", inv.ID, err)
		}
	}

	if _, err := a.membershipBus.Enroll(ctx, membershipbus.NewMembership{
		WorkspaceID: inv.WorkspaceID,
		UserID:      usr.ID,
		RoleID:      inv.RoleID,
	}); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "enroll: workspaceID[%s] userID[%s]: %s", inv.WorkspaceID, usr.ID, err)
	}

	return toAppInvite(inv, false)
}

// delete revokes a pending invite.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	inv, errResp := a.load(ctx, r)
	if errResp != nil {
		return errResp
	}

	if inv.Accepted {
		return errs.New(errs.Aborted, invitebus.ErrAlreadyAccepted)
	}

	if err := a.inviteBus.Delete(ctx, inv); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete invite: inviteID[%s]: %s", inv.ID, err)
	}

	return nil
}

// query returns the invites of the resolved workspace.
func (a *app) query(ctx context.Context, _ *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.Errorf(errs.PermissionDenied, "access denied")
	}

	invs, err := a.inviteBus.QueryByWorkspace(ctx, workspaceID)
	if err != nil {
		return errs.Errorf(errs.Internal, "querybyworkspace: workspaceID[%s]: %s", workspaceID, err)
	}

	return toAppInvites(invs)
}

func (a *app) load(ctx context.Context, r *http.Request) (invitebus.Invite, web.Encoder) {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return invitebus.Invite{}, errs.Errorf(errs.PermissionDenied, "access denied")
	}

	inviteID, err := uuid.Parse(r.PathValue("invite_id"))
	if err != nil {
		return invitebus.Invite{}, errs.NewFieldErrors("invite_id", err)
	}

	inv, err := a.inviteBus.QueryByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, invitebus.ErrNotFound) {
			return invitebus.Invite{}, errs.New(errs.NotFound, err)
		}
		return invitebus.Invite{}, errs.Errorf(errs.InternalOnlyLog, "querybyid: inviteID[%s]: %s", inviteID, err)
	}

	if inv.WorkspaceID != workspaceID {
		return invitebus.Invite{}, errs.New(errs.NotFound, invitebus.ErrNotFound)
	}

	return inv, nil
}
