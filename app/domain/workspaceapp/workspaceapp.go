// Package workspaceapp provides the application layer for the workspace
// domain. Creating a workspace is the onboarding moment: the default roles
// are seeded, the creator becomes the owner member, and a free subscription
// is started, all inside one transaction.
package workspaceapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/planora/planora/app/sdk/errs"
	"github.com/planora/planora/app/sdk/mid"
	"github.com/planora/planora/business/domain/accessbus/stores/accesscache"
	"github.com/planora/planora/business/domain/membershipbus"
	"github.com/planora/planora/business/domain/rolebus"
	"github.com/planora/planora/business/domain/subscriptionbus"
	"github.com/planora/planora/business/domain/workspacebus"
	"github.com/planora/planora/business/sdk/web"
	"github.com/planora/planora/business/types/permission"
	"github.com/planora/planora/business/types/plan"
	"github.com/planora/planora/business/types/role"
)

type app struct {
	workspaceBus    *workspacebus.Core
	roleBus         *rolebus.Core
	membershipBus   *membershipbus.Core
	subscriptionBus *subscriptionbus.Core
	registry        *permission.Registry
	accessCache     *accesscache.Store
}

func newApp(cfg Config) *app {
	return &app{
		workspaceBus:    cfg.WorkspaceBus,
		roleBus:         cfg.RoleBus,
		membershipBus:   cfg.MembershipBus,
		subscriptionBus: cfg.SubscriptionBus,
		registry:        cfg.Registry,
		accessCache:     cfg.AccessCache,
	}
}

// executeUnderTransaction rebinds the cores against the request transaction
// when one is present.
func (a *app) executeUnderTransaction(ctx context.Context) (*app, error) {
	tx, err := mid.GetTran(ctx)
	if err != nil {
		return a, nil
	}

	workspaceBus, err := a.workspaceBus.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	roleBus, err := a.roleBus.NewWithTx(tx)
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
		workspaceBus:    workspaceBus,
		roleBus:         roleBus,
		membershipBus:   membershipBus,
		subscriptionBus: subscriptionBus,
		registry:        a.registry,
		accessCache:     a.accessCache,
	}, nil
}

// create builds a new workspace for the caller.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewWorkspace
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	a, err = a.executeUnderTransaction(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	nw, err := toBusNewWorkspace(app, userID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	ws, err := a.workspaceBus.Create(ctx, nw)
	if err != nil {
		if errors.Is(err, workspacebus.ErrUniqueName) {
			return errs.New(errs.Aborted, workspacebus.ErrUniqueName)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create workspace: %s", err)
	}

	roles, err := a.roleBus.Seed(ctx, a.registry, ws.ID)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "seed roles: workspaceID[%s]: %s", ws.ID, err)
	}

	owner, exists := roles[rolebus.RoleOwner]
	if !exists {
		return errs.Errorf(errs.InternalOnlyLog, "seed roles: workspaceID[%s]: owner role missing", ws.ID)
	}

	if _, err := a.membershipBus.Create(ctx, membershipbus.NewMembership{
		WorkspaceID: ws.ID,
		UserID:      userID,
		RoleID:      &owner.ID,
	}); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "enroll owner: workspaceID[%s]: %s", ws.ID, err)
	}

	if _, err := a.subscriptionBus.Create(ctx, subscriptionbus.NewSubscription{
		WorkspaceID: ws.ID,
		Plan:        plan.Free,
	}); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "start subscription: workspaceID[%s]: %s", ws.ID, err)
	}

	return toAppWorkspace(ws)
}

// update changes the workspace name or organization link. Owner only.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateWorkspace
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	ws, errResp := a.loadOwned(ctx)
	if errResp != nil {
		return errResp
	}

	uw, err := toBusUpdateWorkspace(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updWs, err := a.workspaceBus.Update(ctx, ws, uw)
	if err != nil {
		if errors.Is(err, workspacebus.ErrUniqueName) {
			return errs.New(errs.Aborted, workspacebus.ErrUniqueName)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update workspace: workspaceID[%s]: %s", ws.ID, err)
	}

	return toAppWorkspace(updWs)
}

// delete soft deletes the workspace. Owner only.
func (a *app) delete(ctx context.Context, _ *http.Request) web.Encoder {
	ws, errResp := a.loadOwned(ctx)
	if errResp != nil {
		return errResp
	}

	if err := a.workspaceBus.Delete(ctx, ws); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "delete workspace: workspaceID[%s]: %s", ws.ID, err)
	}

	a.accessCache.InvalidateWorkspace(ctx, ws.ID)

	return nil
}

// query returns the workspaces the caller is an active member of.
func (a *app) query(ctx context.Context, _ *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	wss, err := a.workspaceBus.QueryForUser(ctx, userID)
	if err != nil {
		return errs.Errorf(errs.Internal, "queryforuser: userID[%s]: %s", userID, err)
	}

	return toAppWorkspaces(wss)
}

// queryByID returns the resolved workspace.
func (a *app) queryByID(ctx context.Context, _ *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.Errorf(errs.PermissionDenied, "access denied")
	}

	ws, err := a.workspaceBus.QueryByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, workspacebus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "querybyid: workspaceID[%s]: %s", workspaceID, err)
	}

	return toAppWorkspace(ws)
}

// loadOwned fetches the resolved workspace and checks the caller owns it.
// Platform admins pass as well.
func (a *app) loadOwned(ctx context.Context) (workspacebus.Workspace, web.Encoder) {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return workspacebus.Workspace{}, errs.Errorf(errs.PermissionDenied, "access denied")
	}

	ws, err := a.workspaceBus.QueryByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, workspacebus.ErrNotFound) {
			return workspacebus.Workspace{}, errs.New(errs.NotFound, err)
		}
		return workspacebus.Workspace{}, errs.Errorf(errs.InternalOnlyLog, "querybyid: workspaceID[%s]: %s", workspaceID, err)
	}

	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return workspacebus.Workspace{}, errs.New(errs.Unauthenticated, err)
	}

	if ws.OwnerID != userID && mid.GetClaims(ctx).Role != role.Admin.String() {
		return workspacebus.Workspace{}, errs.Errorf(errs.PermissionDenied, "access denied")
	}

	return ws, nil
}
