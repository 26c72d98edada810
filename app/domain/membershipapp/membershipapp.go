// Package membershipapp provides the application layer for workspace
// members and their per member overrides.
package membershipapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/planora/planora/app/sdk/errs"
	"github.com/planora/planora/app/sdk/mid"
	"github.com/planora/planora/business/domain/accessbus/stores/accesscache"
	"github.com/planora/planora/business/domain/membershipbus"
	"github.com/planora/planora/business/sdk/web"
)

type app struct {
	membershipBus *membershipbus.Core
	accessCache   *accesscache.Store
}

func newApp(membershipBus *membershipbus.Core, accessCache *accesscache.Store) *app {
	return &app{
		membershipBus: membershipBus,
		accessCache:   accessCache,
	}
}

// query returns the members of the resolved workspace.
func (a *app) query(ctx context.Context, _ *http.Request) web.Encoder {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return errs.Errorf(errs.PermissionDenied, "access denied")
	}

	mems, err := a.membershipBus.QueryByWorkspace(ctx, workspaceID)
	if err != nil {
		return errs.Errorf(errs.Internal, "querybyworkspace: workspaceID[%s]: %s", workspaceID, err)
	}

	return toAppMemberships(mems)
}

// update changes a member's role or active flag.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateMembership
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	mem, errResp := a.load(ctx, r)
	if errResp != nil {
		return errResp
	}

	um, err := toBusUpdateMembership(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updMem, err := a.membershipBus.Update(ctx, mem, um)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update: membershipID[%s]: %s", mem.ID, err)
	}

	a.accessCache.Invalidate(ctx, mem.UserID, mem.WorkspaceID)

	return toAppMembership(updMem)
}

// deactivate turns a member off without losing history.
func (a *app) deactivate(ctx context.Context, r *http.Request) web.Encoder {
	mem, errResp := a.load(ctx, r)
	if errResp != nil {
		return errResp
	}

	active := false
	if _, err := a.membershipBus.Update(ctx, mem, membershipbus.UpdateMembership{Active: &active}); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "deactivate: membershipID[%s]: %s", mem.ID, err)
	}

	a.accessCache.Invalidate(ctx, mem.UserID, mem.WorkspaceID)

	return nil
}

// setOverride adds or replaces a per member grant adjustment.
func (a *app) setOverride(ctx context.Context, r *http.Request) web.Encoder {
	var app NewOverride
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	mem, errResp := a.load(ctx, r)
	if errResp != nil {
		return errResp
	}

	ovr, err := toBusOverride(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	if err := a.membershipBus.SetOverride(ctx, mem, ovr); err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "setoverride: membershipID[%s]: %s", mem.ID, err)
	}

	a.accessCache.Invalidate(ctx, mem.UserID, mem.WorkspaceID)

	return nil
}

// deleteOverride removes a per member grant adjustment.
func (a *app) deleteOverride(ctx context.Context, r *http.Request) web.Encoder {
	mem, errResp := a.load(ctx, r)
	if errResp != nil {
		return errResp
	}

	code, err := toBusCode(r.PathValue("code"))
	if err != nil {
		return errs.NewFieldErrors("code", err)
	}

	if err := a.membershipBus.DeleteOverride(ctx, mem, code); err != nil {
		if errors.Is(err, membershipbus.ErrNotFound) {
			return errs.New(errs.NotFound, err)
		}
		return errs.Errorf(errs.InternalOnlyLog, "deleteoverride: membershipID[%s]: %s", mem.ID, err)
	}

	a.accessCache.Invalidate(ctx, mem.UserID, mem.WorkspaceID)

	return nil
}

// load fetches the membership from the path and checks it belongs to the
// resolved workspace.
func (a *app) load(ctx context.Context, r *http.Request) (membershipbus.Membership, web.Encoder) {
	workspaceID, err := mid.GetWorkspaceID(ctx)
	if err != nil {
		return membershipbus.Membership{}, errs.Errorf(errs.PermissionDenied, "access denied")
	}

	membershipID, err := uuid.Parse(r.PathValue("membership_id"))
	if err != nil {
		return membershipbus.Membership{}, errs.NewFieldErrors("membership_id", err)
	}

	mem, err := a.membershipBus.QueryByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, membershipbus.ErrNotFound) {
			return membershipbus.Membership{}, errs.New(errs.NotFound, err)
		}
		return membershipbus.Membership{}, errs.Errorf(errs.InternalOnlyLog, "querybyid: membershipID[%s]: %s", membershipID, err)
	}

	if mem.WorkspaceID != workspaceID {
		return membershipbus.Membership{}, errs.New(errs.NotFound, membershipbus.ErrNotFound)
	}

	return mem, nil
}
